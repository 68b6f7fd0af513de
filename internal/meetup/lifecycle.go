package meetup

import "github.com/google/uuid"

// Guards are pure predicates; transitions assume their guard passed
// and replace the lifecycle value wholesale, carrying the accumulated
// responses forward. Authorization is always checked before state, so
// a wrong actor sees Forbidden even when the state would also reject.

// CanAddResponse permits responses while the ping is still open.
func CanAddResponse(p *Ping) error {
	switch p.Lifecycle.(type) {
	case PingSent, Gathering:
		return nil
	}
	return Conflictf("cannot add response when ping is in %s state", p.State())
}

// CanTriggerMatch permits matching only for the initiator, only while
// gathering.
func CanTriggerMatch(p *Ping, userID uuid.UUID) error {
	if p.Initiator != userID {
		return Forbidden("only the initiator can trigger matching")
	}
	if _, ok := p.Lifecycle.(Gathering); !ok {
		return Conflictf("cannot trigger match when ping is in %s state", p.State())
	}
	return nil
}

// CanConfirm permits venue confirmation only after a successful match.
func CanConfirm(p *Ping) error {
	if _, ok := p.Lifecycle.(Matching); !ok {
		return Conflictf("cannot confirm when ping is in %s state", p.State())
	}
	return nil
}

// CanActivate permits starting the hangout only once confirmed.
func CanActivate(p *Ping) error {
	if _, ok := p.Lifecycle.(VenueConfirmed); !ok {
		return Conflictf("cannot activate when ping is in %s state", p.State())
	}
	return nil
}

// CanComplete permits finishing only an active hangout.
func CanComplete(p *Ping) error {
	if _, ok := p.Lifecycle.(ActiveHangout); !ok {
		return Conflictf("cannot complete when ping is in %s state", p.State())
	}
	return nil
}

// CanCancel permits withdrawal by the initiator from any non-terminal
// state.
func CanCancel(p *Ping, userID uuid.UUID) error {
	if p.Initiator != userID {
		return Forbidden("only the initiator can cancel the ping")
	}
	if p.IsTerminal() {
		return Conflictf("cannot cancel when ping is in %s state", p.State())
	}
	return nil
}

// TransitionToMatching forks on the computed results: a match moves
// the ping to matching with the results embedded, no match ends it in
// no_match. There is no retry path out of no_match.
func TransitionToMatching(p *Ping, results MatchResults) {
	responses := p.Responses()
	if results.HasMatch {
		p.Lifecycle = Matching{Responses: responses, MatchResults: results}
	} else {
		p.Lifecycle = NoMatch{Responses: responses}
	}
}

// TransitionToVenueConfirmed embeds the hangout record built from the
// ping's positive responses.
func TransitionToVenueConfirmed(p *Ping, hangout HangoutData) {
	p.Lifecycle = VenueConfirmed{Responses: p.Responses(), Hangout: hangout}
}

// TransitionToActive marks the hangout window as started.
func TransitionToActive(p *Ping) {
	if l, ok := p.Lifecycle.(VenueConfirmed); ok {
		p.Lifecycle = ActiveHangout{Responses: l.Responses, Hangout: l.Hangout}
	}
}

// TransitionToComplete finishes the hangout.
func TransitionToComplete(p *Ping) {
	if l, ok := p.Lifecycle.(ActiveHangout); ok {
		p.Lifecycle = Complete{Responses: l.Responses, Hangout: l.Hangout}
	}
}

// TransitionToCancelled keeps the accumulated responses and discards
// match or hangout data.
func TransitionToCancelled(p *Ping) {
	p.Lifecycle = Cancelled{Responses: p.Responses()}
}

// BuildHangoutData freezes the attendee set from the ping's current
// positive responses and starts every attendee at pending.
func BuildHangoutData(p *Ping, timeline Timeline) HangoutData {
	positive := p.PositiveResponses()
	attendees := make([]uuid.UUID, 0, len(positive))
	for _, r := range positive {
		attendees = append(attendees, r.User)
	}
	return NewHangoutData(attendees, timeline)
}
