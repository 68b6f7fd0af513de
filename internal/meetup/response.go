package meetup

import (
	"time"

	"github.com/google/uuid"
)

// Availability is the window during which a responder is free.
type Availability struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// Validate requires a strictly positive window.
func (a Availability) Validate() error {
	if !a.Earliest.Before(a.Latest) {
		return Validation("latest must be after earliest")
	}
	return nil
}

// Preferences are optional free-form venue preferences attached to a
// response. They do not participate in matching.
type Preferences struct {
	MaxDistance    *float64 `json:"max_distance,omitempty"`
	PreferredAreas []string `json:"preferred_areas,omitempty"`
	ExcludedAreas  []string `json:"excluded_areas,omitempty"`
}

// Response is one group member's answer to a ping. At most one exists
// per user per ping.
type Response struct {
	ID           uuid.UUID     `json:"id"`
	User         uuid.UUID     `json:"user"`
	Answer       bool          `json:"answer"`
	Availability *Availability `json:"availability,omitempty"`
	Preferences  *Preferences  `json:"preferences,omitempty"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type CreateResponseRequest struct {
	User         uuid.UUID     `json:"user"`
	Answer       bool          `json:"answer"`
	Availability *Availability `json:"availability,omitempty"`
	Preferences  *Preferences  `json:"preferences,omitempty"`
}

func (r CreateResponseRequest) Validate() error {
	if r.User == uuid.Nil {
		return Validation("user is required")
	}
	if r.Availability != nil {
		if err := r.Availability.Validate(); err != nil {
			return err
		}
	}
	return validatePreferences(r.Preferences)
}

// UpdateResponseRequest patches an existing response. Nil fields are
// left untouched.
type UpdateResponseRequest struct {
	User         uuid.UUID     `json:"user"`
	Answer       *bool         `json:"answer,omitempty"`
	Availability *Availability `json:"availability,omitempty"`
	Preferences  *Preferences  `json:"preferences,omitempty"`
}

func (r UpdateResponseRequest) Validate() error {
	if r.User == uuid.Nil {
		return Validation("user is required")
	}
	if r.Availability != nil {
		if err := r.Availability.Validate(); err != nil {
			return err
		}
	}
	return validatePreferences(r.Preferences)
}

func validatePreferences(p *Preferences) error {
	if p != nil && p.MaxDistance != nil && *p.MaxDistance < 0 {
		return Validation("max_distance must be non-negative")
	}
	return nil
}

// NewResponse stamps an identifier and timestamp onto a validated
// create request.
func NewResponse(req CreateResponseRequest) Response {
	return Response{
		ID:           uuid.New(),
		User:         req.User,
		Answer:       req.Answer,
		Availability: req.Availability,
		Preferences:  req.Preferences,
		UpdatedAt:    time.Now().UTC(),
	}
}

// Apply merges an update request into the response.
func (r *Response) Apply(req UpdateResponseRequest) {
	if req.Answer != nil {
		r.Answer = *req.Answer
	}
	if req.Availability != nil {
		r.Availability = req.Availability
	}
	if req.Preferences != nil {
		r.Preferences = req.Preferences
	}
	r.UpdatedAt = time.Now().UTC()
}

// Clone deep-copies the response so store snapshots never alias
// stored data.
func (r Response) Clone() Response {
	out := r
	if r.Availability != nil {
		a := *r.Availability
		out.Availability = &a
	}
	if r.Preferences != nil {
		p := Preferences{MaxDistance: r.Preferences.MaxDistance}
		if r.Preferences.MaxDistance != nil {
			d := *r.Preferences.MaxDistance
			p.MaxDistance = &d
		}
		p.PreferredAreas = append([]string(nil), r.Preferences.PreferredAreas...)
		p.ExcludedAreas = append([]string(nil), r.Preferences.ExcludedAreas...)
		out.Preferences = &p
	}
	return out
}

func cloneResponses(in []Response) []Response {
	if in == nil {
		return nil
	}
	out := make([]Response, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
