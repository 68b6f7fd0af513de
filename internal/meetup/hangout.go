package meetup

import (
	"time"

	"github.com/google/uuid"
)

// AttendeeStatus tracks one confirmed attendee through the hangout.
type AttendeeStatus string

const (
	AttendeePending AttendeeStatus = "pending"
	AttendeeEnroute AttendeeStatus = "enroute"
	AttendeeArrived AttendeeStatus = "arrived"
	AttendeeLeft    AttendeeStatus = "left"
)

func (s AttendeeStatus) Valid() bool {
	switch s {
	case AttendeePending, AttendeeEnroute, AttendeeArrived, AttendeeLeft:
		return true
	}
	return false
}

// Timeline is the organizer-supplied concrete window for a hangout.
type Timeline struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (t Timeline) Validate() error {
	if !t.Start.Before(t.End) {
		return Validation("timeline end must be after start")
	}
	return nil
}

// HangoutData is the confirmed-hangout record embedded in a ping's
// lifecycle. It is a value object, not an entity: the ping id is the
// hangout identifier.
type HangoutData struct {
	ConfirmedAttendees []uuid.UUID                  `json:"confirmed_attendees"`
	Timeline           Timeline                     `json:"timeline"`
	AttendeeStatuses   map[uuid.UUID]AttendeeStatus `json:"attendee_statuses"`
}

// NewHangoutData freezes the attendee set and defaults every attendee
// to pending.
func NewHangoutData(attendees []uuid.UUID, timeline Timeline) HangoutData {
	statuses := make(map[uuid.UUID]AttendeeStatus, len(attendees))
	for _, id := range attendees {
		statuses[id] = AttendeePending
	}
	return HangoutData{
		ConfirmedAttendees: attendees,
		Timeline:           timeline,
		AttendeeStatuses:   statuses,
	}
}

func (h HangoutData) IsAttendee(userID uuid.UUID) bool {
	for _, id := range h.ConfirmedAttendees {
		if id == userID {
			return true
		}
	}
	return false
}

func (h *HangoutData) SetAttendeeStatus(userID uuid.UUID, status AttendeeStatus) {
	h.AttendeeStatuses[userID] = status
}

func (h HangoutData) Clone() HangoutData {
	out := h
	out.ConfirmedAttendees = append([]uuid.UUID(nil), h.ConfirmedAttendees...)
	out.AttendeeStatuses = make(map[uuid.UUID]AttendeeStatus, len(h.AttendeeStatuses))
	for id, s := range h.AttendeeStatuses {
		out.AttendeeStatuses[id] = s
	}
	return out
}

// TimeOverlap is the window during which all contributing responders
// are simultaneously available. AttendeeCount counts contributing
// responses only: a "yes" without an availability window is preserved
// on the ping but does not contribute here.
type TimeOverlap struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	AttendeeCount int       `json:"attendee_count"`
}

// MatchResults is the matching engine's verdict for one ping.
type MatchResults struct {
	PingID   uuid.UUID    `json:"ping_id"`
	Overlap  *TimeOverlap `json:"overlap,omitempty"`
	HasMatch bool         `json:"has_match"`
}

func (m MatchResults) Clone() MatchResults {
	out := m
	if m.Overlap != nil {
		o := *m.Overlap
		out.Overlap = &o
	}
	return out
}

type ConfirmHangoutRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	Timeline Timeline  `json:"timeline"`
}

func (r ConfirmHangoutRequest) Validate() error {
	return r.Timeline.Validate()
}

type UpdateAttendeeStatusRequest struct {
	Status AttendeeStatus `json:"status"`
}

func (r UpdateAttendeeStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return Validation("status must be one of pending, enroute, arrived, left")
	}
	return nil
}
