package meetup

import (
	"testing"

	"github.com/google/uuid"
)

func pingInState(l Lifecycle) Ping {
	p := gatheringPing()
	p.Lifecycle = l
	return p
}

func sampleHangout(attendees ...uuid.UUID) HangoutData {
	return NewHangoutData(attendees, Timeline{Start: at(15), End: at(17)})
}

func TestCanAddResponse(t *testing.T) {
	tests := []struct {
		lifecycle Lifecycle
		wantOK    bool
	}{
		{PingSent{}, true},
		{Gathering{}, true},
		{Matching{}, false},
		{NoMatch{}, false},
		{VenueConfirmed{}, false},
		{ActiveHangout{}, false},
		{Complete{}, false},
		{Cancelled{}, false},
	}

	for _, tt := range tests {
		p := pingInState(tt.lifecycle)
		err := CanAddResponse(&p)
		if tt.wantOK && err != nil {
			t.Errorf("CanAddResponse in %s: unexpected error %v", p.State(), err)
		}
		if !tt.wantOK {
			if err == nil {
				t.Errorf("CanAddResponse in %s: expected conflict, got nil", p.State())
				continue
			}
			if kind := err.(*Error).Kind; kind != KindConflict {
				t.Errorf("CanAddResponse in %s: kind = %v, want conflict", p.State(), kind)
			}
		}
	}
}

func TestCanTriggerMatchForbiddenBeforeConflict(t *testing.T) {
	// A non-initiator poking a ping in the wrong state must see
	// forbidden, not conflict. Authorization is checked first.
	p := pingInState(Complete{Hangout: sampleHangout()})
	stranger := uuid.New()

	err := CanTriggerMatch(&p, stranger)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if kind := err.(*Error).Kind; kind != KindForbidden {
		t.Fatalf("kind = %v, want forbidden", kind)
	}

	// The initiator in the wrong state sees the conflict.
	err = CanTriggerMatch(&p, p.Initiator)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if kind := err.(*Error).Kind; kind != KindConflict {
		t.Fatalf("kind = %v, want conflict", kind)
	}
}

func TestCanTriggerMatchWhileGathering(t *testing.T) {
	p := pingInState(Gathering{})
	if err := CanTriggerMatch(&p, p.Initiator); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCanCancel(t *testing.T) {
	nonTerminal := []Lifecycle{
		PingSent{},
		Gathering{},
		Matching{},
		VenueConfirmed{Hangout: sampleHangout()},
		ActiveHangout{Hangout: sampleHangout()},
	}
	for _, l := range nonTerminal {
		p := pingInState(l)
		if err := CanCancel(&p, p.Initiator); err != nil {
			t.Errorf("CanCancel in %s: unexpected error %v", p.State(), err)
		}
	}

	terminal := []Lifecycle{
		Complete{Hangout: sampleHangout()},
		Cancelled{},
		NoMatch{},
	}
	for _, l := range terminal {
		p := pingInState(l)
		err := CanCancel(&p, p.Initiator)
		if err == nil {
			t.Errorf("CanCancel in %s: expected conflict, got nil", p.State())
			continue
		}
		if kind := err.(*Error).Kind; kind != KindConflict {
			t.Errorf("CanCancel in %s: kind = %v, want conflict", p.State(), kind)
		}
	}

	// Non-initiator is forbidden even in a terminal state.
	p := pingInState(Cancelled{})
	err := CanCancel(&p, uuid.New())
	if err == nil || err.(*Error).Kind != KindForbidden {
		t.Fatalf("expected forbidden for non-initiator, got %v", err)
	}
}

func TestCanConfirmActivateComplete(t *testing.T) {
	p := pingInState(Matching{MatchResults: MatchResults{HasMatch: true}})
	if err := CanConfirm(&p); err != nil {
		t.Fatalf("CanConfirm in matching: %v", err)
	}
	p = pingInState(Gathering{})
	if err := CanConfirm(&p); err == nil {
		t.Fatalf("CanConfirm in gathering: expected conflict")
	}

	p = pingInState(VenueConfirmed{Hangout: sampleHangout()})
	if err := CanActivate(&p); err != nil {
		t.Fatalf("CanActivate in venue_confirmed: %v", err)
	}
	p = pingInState(Matching{})
	if err := CanActivate(&p); err == nil {
		t.Fatalf("CanActivate in matching: expected conflict")
	}

	p = pingInState(ActiveHangout{Hangout: sampleHangout()})
	if err := CanComplete(&p); err != nil {
		t.Fatalf("CanComplete in active_hangout: %v", err)
	}
	p = pingInState(VenueConfirmed{Hangout: sampleHangout()})
	if err := CanComplete(&p); err == nil {
		t.Fatalf("CanComplete in venue_confirmed: expected conflict")
	}
}

func TestTransitionToMatchingForks(t *testing.T) {
	p := gatheringPing(yes(at(14), at(18)), yes(at(15), at(19)))
	responses := len(p.Responses())

	TransitionToMatching(&p, ComputeMatch(&p))

	if p.State() != StateMatching {
		t.Fatalf("state = %s, want matching", p.State())
	}
	if len(p.Responses()) != responses {
		t.Errorf("responses lost across transition: %d, want %d", len(p.Responses()), responses)
	}
	stored, ok := p.StoredMatchResults()
	if !ok || !stored.HasMatch {
		t.Errorf("matching state should carry the computed results")
	}

	// No overlap forks to no_match, a terminal state with no results.
	q := gatheringPing(yes(at(9), at(10)), yes(at(14), at(18)))
	TransitionToMatching(&q, ComputeMatch(&q))

	if q.State() != StateNoMatch {
		t.Fatalf("state = %s, want no_match", q.State())
	}
	if !q.IsTerminal() {
		t.Errorf("no_match should be terminal")
	}
	if _, ok := q.StoredMatchResults(); ok {
		t.Errorf("no_match should not carry match results")
	}
	if len(q.Responses()) != 2 {
		t.Errorf("responses lost in no_match: %d, want 2", len(q.Responses()))
	}
}

func TestTransitionChainPreservesResponses(t *testing.T) {
	p := gatheringPing(yes(at(14), at(18)), yes(at(15), at(19)))

	TransitionToMatching(&p, ComputeMatch(&p))
	TransitionToVenueConfirmed(&p, BuildHangoutData(&p, Timeline{Start: at(15), End: at(17)}))
	if p.State() != StateVenueConfirmed {
		t.Fatalf("state = %s, want venue_confirmed", p.State())
	}
	TransitionToActive(&p)
	if p.State() != StateActiveHangout {
		t.Fatalf("state = %s, want active_hangout", p.State())
	}
	TransitionToComplete(&p)
	if p.State() != StateComplete {
		t.Fatalf("state = %s, want complete", p.State())
	}

	if len(p.Responses()) != 2 {
		t.Errorf("responses lost across the chain: %d, want 2", len(p.Responses()))
	}
	if !p.IsTerminal() {
		t.Errorf("complete should be terminal")
	}
	if _, ok := p.Hangout(); !ok {
		t.Errorf("complete should carry the hangout record")
	}
}

func TestTransitionToCancelledDropsPhaseData(t *testing.T) {
	p := gatheringPing(yes(at(14), at(18)))
	TransitionToMatching(&p, ComputeMatch(&p))
	TransitionToVenueConfirmed(&p, BuildHangoutData(&p, Timeline{Start: at(15), End: at(17)}))

	TransitionToCancelled(&p)

	if p.State() != StateCancelled {
		t.Fatalf("state = %s, want cancelled", p.State())
	}
	if len(p.Responses()) != 1 {
		t.Errorf("responses should survive cancellation")
	}
	if _, ok := p.Hangout(); ok {
		t.Errorf("cancelled should not carry hangout data")
	}
	if _, ok := p.StoredMatchResults(); ok {
		t.Errorf("cancelled should not carry match results")
	}
}

func TestBuildHangoutData(t *testing.T) {
	in1 := yes(at(14), at(18))
	in2 := Response{ID: uuid.New(), User: uuid.New(), Answer: true}
	out := Response{ID: uuid.New(), User: uuid.New(), Answer: false}

	p := gatheringPing(in1, in2, out)
	h := BuildHangoutData(&p, Timeline{Start: at(15), End: at(17)})

	// Every positive responder is frozen in, windowless ones included.
	if len(h.ConfirmedAttendees) != 2 {
		t.Fatalf("attendees = %d, want 2", len(h.ConfirmedAttendees))
	}
	if !h.IsAttendee(in1.User) || !h.IsAttendee(in2.User) {
		t.Errorf("positive responders missing from attendee set")
	}
	if h.IsAttendee(out.User) {
		t.Errorf("negative responder should not be an attendee")
	}
	for _, id := range h.ConfirmedAttendees {
		if h.AttendeeStatuses[id] != AttendeePending {
			t.Errorf("attendee %s status = %s, want pending", id, h.AttendeeStatuses[id])
		}
	}
}

func TestSetAttendeeStatusPhases(t *testing.T) {
	attendee := uuid.New()

	p := pingInState(ActiveHangout{Hangout: sampleHangout(attendee)})
	if !p.SetAttendeeStatus(attendee, AttendeeArrived) {
		t.Fatalf("expected status update to succeed in active_hangout")
	}
	h, _ := p.Hangout()
	if h.AttendeeStatuses[attendee] != AttendeeArrived {
		t.Errorf("status = %s, want arrived", h.AttendeeStatuses[attendee])
	}

	p = pingInState(Gathering{})
	if p.SetAttendeeStatus(attendee, AttendeeArrived) {
		t.Errorf("expected status update to fail outside hangout phases")
	}
}
