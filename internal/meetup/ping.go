package meetup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State names a lifecycle phase. Values are the wire discriminator.
type State string

const (
	StatePingSent       State = "ping_sent"
	StateGathering      State = "gathering"
	StateMatching       State = "matching"
	StateVenueConfirmed State = "venue_confirmed"
	StateActiveHangout  State = "active_hangout"
	StateComplete       State = "complete"
	StateCancelled      State = "cancelled"
	StateNoMatch        State = "no_match"
)

// ValidState reports whether s names a known lifecycle phase. Used for
// the ?state= listing filter.
func ValidState(s State) bool {
	switch s {
	case StatePingSent, StateGathering, StateMatching, StateVenueConfirmed,
		StateActiveHangout, StateComplete, StateCancelled, StateNoMatch:
		return true
	}
	return false
}

// Lifecycle is a closed sum type: each variant carries exactly the
// data that exists in that phase, nothing more. Code that reads
// lifecycle data must switch over every variant; the unexported
// marker method keeps the set closed to this package.
type Lifecycle interface {
	State() State
	isLifecycle()
}

type PingSent struct{}

type Gathering struct {
	Responses []Response
}

type Matching struct {
	Responses    []Response
	MatchResults MatchResults
}

type NoMatch struct {
	Responses []Response
}

type VenueConfirmed struct {
	Responses []Response
	Hangout   HangoutData
}

type ActiveHangout struct {
	Responses []Response
	Hangout   HangoutData
}

type Complete struct {
	Responses []Response
	Hangout   HangoutData
}

type Cancelled struct {
	Responses []Response
}

func (PingSent) State() State       { return StatePingSent }
func (Gathering) State() State      { return StateGathering }
func (Matching) State() State       { return StateMatching }
func (NoMatch) State() State        { return StateNoMatch }
func (VenueConfirmed) State() State { return StateVenueConfirmed }
func (ActiveHangout) State() State  { return StateActiveHangout }
func (Complete) State() State       { return StateComplete }
func (Cancelled) State() State      { return StateCancelled }

func (PingSent) isLifecycle()       {}
func (Gathering) isLifecycle()      {}
func (Matching) isLifecycle()       {}
func (NoMatch) isLifecycle()        {}
func (VenueConfirmed) isLifecycle() {}
func (ActiveHangout) isLifecycle()  {}
func (Complete) isLifecycle()       {}
func (Cancelled) isLifecycle()      {}

// Ping is a proposed activity sent to a group. Identity fields are
// immutable after creation; only Lifecycle changes, and only through
// the transition functions.
type Ping struct {
	ID           uuid.UUID
	Initiator    uuid.UUID
	Group        uuid.UUID
	ActivityType string
	RoughTiming  string
	Vibe         string
	CreatedAt    time.Time
	Lifecycle    Lifecycle
}

type CreatePingRequest struct {
	Initiator    uuid.UUID `json:"initiator"`
	Group        uuid.UUID `json:"group"`
	ActivityType string    `json:"activity_type" validate:"required,min=1,max=50"`
	RoughTiming  string    `json:"rough_timing" validate:"required,min=1,max=50"`
	Vibe         string    `json:"vibe,omitempty" validate:"omitempty,max=100"`
}

func (r CreatePingRequest) Validate() error {
	if r.Initiator == uuid.Nil {
		return Validation("initiator is required")
	}
	if r.Group == uuid.Nil {
		return Validation("group is required")
	}
	return validateStruct(r)
}

type CancelPingRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type TriggerMatchRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// NewPing stamps identity and starts the lifecycle at ping_sent.
func NewPing(req CreatePingRequest) Ping {
	return Ping{
		ID:           uuid.New(),
		Initiator:    req.Initiator,
		Group:        req.Group,
		ActivityType: req.ActivityType,
		RoughTiming:  req.RoughTiming,
		Vibe:         req.Vibe,
		CreatedAt:    time.Now().UTC(),
		Lifecycle:    PingSent{},
	}
}

func (p *Ping) State() State { return p.Lifecycle.State() }

// IsTerminal reports whether no further transition is possible.
func (p *Ping) IsTerminal() bool {
	switch p.Lifecycle.(type) {
	case Complete, Cancelled, NoMatch:
		return true
	}
	return false
}

// Responses returns the accumulated responses for any phase. The
// returned slice aliases the lifecycle value; callers own the Ping
// copy they hold and must not assume independence.
func (p *Ping) Responses() []Response {
	switch l := p.Lifecycle.(type) {
	case PingSent:
		return nil
	case Gathering:
		return l.Responses
	case Matching:
		return l.Responses
	case NoMatch:
		return l.Responses
	case VenueConfirmed:
		return l.Responses
	case ActiveHangout:
		return l.Responses
	case Complete:
		return l.Responses
	case Cancelled:
		return l.Responses
	}
	panic(fmt.Sprintf("meetup: unknown lifecycle variant %T", p.Lifecycle))
}

// Hangout returns the embedded hangout record for the phases that
// carry one.
func (p *Ping) Hangout() (HangoutData, bool) {
	switch l := p.Lifecycle.(type) {
	case VenueConfirmed:
		return l.Hangout, true
	case ActiveHangout:
		return l.Hangout, true
	case Complete:
		return l.Hangout, true
	}
	return HangoutData{}, false
}

// StoredMatchResults returns the match results carried by the
// matching phase. Other phases carry none; see ComputeMatch for
// on-demand recomputation.
func (p *Ping) StoredMatchResults() (MatchResults, bool) {
	if l, ok := p.Lifecycle.(Matching); ok {
		return l.MatchResults, true
	}
	return MatchResults{}, false
}

func (p *Ping) HasUserResponded(userID uuid.UUID) bool {
	for _, r := range p.Responses() {
		if r.User == userID {
			return true
		}
	}
	return false
}

func (p *Ping) ResponseByID(responseID uuid.UUID) (Response, bool) {
	for _, r := range p.Responses() {
		if r.ID == responseID {
			return r, true
		}
	}
	return Response{}, false
}

// PositiveResponses returns every "in" answer, with or without an
// availability window.
func (p *Ping) PositiveResponses() []Response {
	var out []Response
	for _, r := range p.Responses() {
		if r.Answer {
			out = append(out, r)
		}
	}
	return out
}

// AddResponse records a response. Legal only in ping_sent or
// gathering; CanAddResponse must have passed.
func (p *Ping) AddResponse(r Response) {
	switch l := p.Lifecycle.(type) {
	case PingSent:
		p.Lifecycle = Gathering{Responses: []Response{r}}
	case Gathering:
		p.Lifecycle = Gathering{Responses: append(l.Responses, r)}
	}
}

// UpdateResponse applies req to the response with the given id and
// returns the updated copy.
func (p *Ping) UpdateResponse(responseID uuid.UUID, req UpdateResponseRequest) (Response, bool) {
	if l, ok := p.Lifecycle.(Gathering); ok {
		for i := range l.Responses {
			if l.Responses[i].ID == responseID {
				l.Responses[i].Apply(req)
				return l.Responses[i].Clone(), true
			}
		}
	}
	return Response{}, false
}

// SetAttendeeStatus updates one attendee's status inside the embedded
// hangout. Legal only in the hangout-carrying phases.
func (p *Ping) SetAttendeeStatus(userID uuid.UUID, status AttendeeStatus) bool {
	switch l := p.Lifecycle.(type) {
	case VenueConfirmed:
		l.Hangout.SetAttendeeStatus(userID, status)
		p.Lifecycle = l
	case ActiveHangout:
		l.Hangout.SetAttendeeStatus(userID, status)
		p.Lifecycle = l
	case Complete:
		l.Hangout.SetAttendeeStatus(userID, status)
		p.Lifecycle = l
	default:
		return false
	}
	return true
}

// Clone deep-copies the ping, including its lifecycle payload.
func (p Ping) Clone() Ping {
	out := p
	switch l := p.Lifecycle.(type) {
	case PingSent:
		out.Lifecycle = PingSent{}
	case Gathering:
		out.Lifecycle = Gathering{Responses: cloneResponses(l.Responses)}
	case Matching:
		out.Lifecycle = Matching{Responses: cloneResponses(l.Responses), MatchResults: l.MatchResults.Clone()}
	case NoMatch:
		out.Lifecycle = NoMatch{Responses: cloneResponses(l.Responses)}
	case VenueConfirmed:
		out.Lifecycle = VenueConfirmed{Responses: cloneResponses(l.Responses), Hangout: l.Hangout.Clone()}
	case ActiveHangout:
		out.Lifecycle = ActiveHangout{Responses: cloneResponses(l.Responses), Hangout: l.Hangout.Clone()}
	case Complete:
		out.Lifecycle = Complete{Responses: cloneResponses(l.Responses), Hangout: l.Hangout.Clone()}
	case Cancelled:
		out.Lifecycle = Cancelled{Responses: cloneResponses(l.Responses)}
	}
	return out
}

// pingJSON is the flattened wire layout: entity fields plus the
// lifecycle discriminator and the current variant's payload.
type pingJSON struct {
	ID           uuid.UUID     `json:"id"`
	Initiator    uuid.UUID     `json:"initiator"`
	Group        uuid.UUID     `json:"group"`
	ActivityType string        `json:"activity_type"`
	RoughTiming  string        `json:"rough_timing"`
	Vibe         string        `json:"vibe,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	State        State         `json:"state"`
	Responses    []Response    `json:"responses,omitempty"`
	MatchResults *MatchResults `json:"match_results,omitempty"`
	Hangout      *HangoutData  `json:"hangout,omitempty"`
}

func (p Ping) MarshalJSON() ([]byte, error) {
	out := pingJSON{
		ID:           p.ID,
		Initiator:    p.Initiator,
		Group:        p.Group,
		ActivityType: p.ActivityType,
		RoughTiming:  p.RoughTiming,
		Vibe:         p.Vibe,
		CreatedAt:    p.CreatedAt,
		State:        p.State(),
	}
	switch l := p.Lifecycle.(type) {
	case PingSent:
	case Gathering:
		out.Responses = l.Responses
	case Matching:
		out.Responses = l.Responses
		mr := l.MatchResults
		out.MatchResults = &mr
	case NoMatch:
		out.Responses = l.Responses
	case VenueConfirmed:
		out.Responses = l.Responses
		h := l.Hangout
		out.Hangout = &h
	case ActiveHangout:
		out.Responses = l.Responses
		h := l.Hangout
		out.Hangout = &h
	case Complete:
		out.Responses = l.Responses
		h := l.Hangout
		out.Hangout = &h
	case Cancelled:
		out.Responses = l.Responses
	}
	return json.Marshal(out)
}

func (p *Ping) UnmarshalJSON(data []byte) error {
	var in pingJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.ID = in.ID
	p.Initiator = in.Initiator
	p.Group = in.Group
	p.ActivityType = in.ActivityType
	p.RoughTiming = in.RoughTiming
	p.Vibe = in.Vibe
	p.CreatedAt = in.CreatedAt

	switch in.State {
	case StatePingSent:
		p.Lifecycle = PingSent{}
	case StateGathering:
		p.Lifecycle = Gathering{Responses: in.Responses}
	case StateMatching:
		if in.MatchResults == nil {
			return fmt.Errorf("meetup: matching state without match_results")
		}
		p.Lifecycle = Matching{Responses: in.Responses, MatchResults: *in.MatchResults}
	case StateNoMatch:
		p.Lifecycle = NoMatch{Responses: in.Responses}
	case StateVenueConfirmed, StateActiveHangout, StateComplete:
		if in.Hangout == nil {
			return fmt.Errorf("meetup: %s state without hangout", in.State)
		}
		switch in.State {
		case StateVenueConfirmed:
			p.Lifecycle = VenueConfirmed{Responses: in.Responses, Hangout: *in.Hangout}
		case StateActiveHangout:
			p.Lifecycle = ActiveHangout{Responses: in.Responses, Hangout: *in.Hangout}
		default:
			p.Lifecycle = Complete{Responses: in.Responses, Hangout: *in.Hangout}
		}
	case StateCancelled:
		p.Lifecycle = Cancelled{Responses: in.Responses}
	default:
		return fmt.Errorf("meetup: unknown lifecycle state %q", in.State)
	}
	return nil
}
