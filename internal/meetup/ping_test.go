package meetup

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPingJSONRoundTrip(t *testing.T) {
	attendee := uuid.New()
	variants := []Lifecycle{
		PingSent{},
		Gathering{Responses: []Response{yes(at(14), at(18))}},
		Matching{
			Responses: []Response{yes(at(14), at(18))},
			MatchResults: MatchResults{
				PingID:   uuid.New(),
				Overlap:  &TimeOverlap{Start: at(14), End: at(18), AttendeeCount: 1},
				HasMatch: true,
			},
		},
		NoMatch{Responses: []Response{yes(at(14), at(18))}},
		VenueConfirmed{Responses: []Response{yes(at(14), at(18))}, Hangout: sampleHangout(attendee)},
		ActiveHangout{Responses: []Response{yes(at(14), at(18))}, Hangout: sampleHangout(attendee)},
		Complete{Responses: []Response{yes(at(14), at(18))}, Hangout: sampleHangout(attendee)},
		Cancelled{Responses: []Response{yes(at(14), at(18))}},
	}

	for _, v := range variants {
		p := pingInState(v)
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %s: %v", p.State(), err)
		}

		var back Ping
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", p.State(), err)
		}

		if back.State() != p.State() {
			t.Errorf("state = %s, want %s", back.State(), p.State())
		}
		if back.ID != p.ID || back.Initiator != p.Initiator || back.Group != p.Group {
			t.Errorf("%s: identity fields changed in round trip", p.State())
		}
		if len(back.Responses()) != len(p.Responses()) {
			t.Errorf("%s: responses = %d, want %d", p.State(), len(back.Responses()), len(p.Responses()))
		}
		_, wantHangout := p.Hangout()
		_, gotHangout := back.Hangout()
		if gotHangout != wantHangout {
			t.Errorf("%s: hangout presence = %v, want %v", p.State(), gotHangout, wantHangout)
		}
	}
}

func TestPingJSONShape(t *testing.T) {
	// Each phase exposes exactly its own payload on the wire.
	p := pingInState(Gathering{Responses: []Response{yes(at(14), at(18))}})
	data, _ := json.Marshal(p)
	s := string(data)

	if !strings.Contains(s, `"state":"gathering"`) {
		t.Errorf("missing state discriminator: %s", s)
	}
	if strings.Contains(s, "match_results") {
		t.Errorf("gathering must not expose match_results: %s", s)
	}
	if strings.Contains(s, "hangout") {
		t.Errorf("gathering must not expose hangout: %s", s)
	}

	p = pingInState(Matching{
		Responses: []Response{yes(at(14), at(18))},
		MatchResults: MatchResults{
			PingID:   p.ID,
			Overlap:  &TimeOverlap{Start: at(14), End: at(18), AttendeeCount: 1},
			HasMatch: true,
		},
	})
	data, _ = json.Marshal(p)
	s = string(data)

	if !strings.Contains(s, `"match_results"`) {
		t.Errorf("matching must expose match_results: %s", s)
	}
	if !strings.Contains(s, `"attendee_count":1`) {
		t.Errorf("overlap payload missing: %s", s)
	}
}

func TestPingUnmarshalRejectsMalformed(t *testing.T) {
	id, init, grp := uuid.New(), uuid.New(), uuid.New()
	build := func(state string) string {
		return fmt.Sprintf(`{"id":"%s","initiator":"%s","group":"%s","activity_type":"coffee","rough_timing":"now","created_at":"2025-06-14T12:00:00Z","state":"%s"}`,
			id, init, grp, state)
	}

	var p Ping
	if err := json.Unmarshal([]byte(build("matching")), &p); err == nil {
		t.Errorf("matching without match_results should fail to unmarshal")
	}
	if err := json.Unmarshal([]byte(build("venue_confirmed")), &p); err == nil {
		t.Errorf("venue_confirmed without hangout should fail to unmarshal")
	}
	if err := json.Unmarshal([]byte(build("warp_drive")), &p); err == nil {
		t.Errorf("unknown state should fail to unmarshal")
	}
	if err := json.Unmarshal([]byte(build("ping_sent")), &p); err != nil {
		t.Errorf("ping_sent with no payload should unmarshal: %v", err)
	}
}

func TestAddResponseStartsGathering(t *testing.T) {
	p := pingInState(PingSent{})
	r := yes(at(14), at(18))

	p.AddResponse(r)

	if p.State() != StateGathering {
		t.Fatalf("state = %s, want gathering after first response", p.State())
	}
	if len(p.Responses()) != 1 {
		t.Fatalf("responses = %d, want 1", len(p.Responses()))
	}

	p.AddResponse(yes(at(15), at(19)))
	if p.State() != StateGathering || len(p.Responses()) != 2 {
		t.Fatalf("second response: state = %s responses = %d", p.State(), len(p.Responses()))
	}
	if !p.HasUserResponded(r.User) {
		t.Errorf("HasUserResponded should find the first responder")
	}
}

func TestUpdateResponseInPlace(t *testing.T) {
	r := yes(at(14), at(18))
	p := pingInState(Gathering{Responses: []Response{r}})

	no := false
	updated, ok := p.UpdateResponse(r.ID, UpdateResponseRequest{User: r.User, Answer: &no})
	if !ok {
		t.Fatalf("expected update to find the response")
	}
	if updated.Answer {
		t.Errorf("answer should have been flipped to false")
	}

	stored, _ := p.ResponseByID(r.ID)
	if stored.Answer {
		t.Errorf("update did not persist on the ping")
	}

	if _, ok := p.UpdateResponse(uuid.New(), UpdateResponseRequest{User: r.User}); ok {
		t.Errorf("unknown response id should not update")
	}
}

func TestPingCloneIsDeep(t *testing.T) {
	r := yes(at(14), at(18))
	p := pingInState(Gathering{Responses: []Response{r}})

	c := p.Clone()
	cl := c.Lifecycle.(Gathering)
	cl.Responses[0].Answer = false
	cl.Responses[0].Availability.Earliest = at(0)

	orig, _ := p.ResponseByID(r.ID)
	if !orig.Answer {
		t.Errorf("mutating a clone's response leaked into the original")
	}
	if !orig.Availability.Earliest.Equal(at(14)) {
		t.Errorf("mutating a clone's availability leaked into the original")
	}
}

func TestValidState(t *testing.T) {
	for _, s := range []State{StatePingSent, StateGathering, StateMatching,
		StateVenueConfirmed, StateActiveHangout, StateComplete, StateCancelled, StateNoMatch} {
		if !ValidState(s) {
			t.Errorf("ValidState(%s) = false", s)
		}
	}
	if ValidState("warp_drive") {
		t.Errorf("ValidState should reject unknown states")
	}
}

func TestCreatePingRequestValidate(t *testing.T) {
	valid := CreatePingRequest{
		Initiator:    uuid.New(),
		Group:        uuid.New(),
		ActivityType: "coffee",
		RoughTiming:  "this afternoon",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*CreatePingRequest)
	}{
		{"missing initiator", func(r *CreatePingRequest) { r.Initiator = uuid.Nil }},
		{"missing group", func(r *CreatePingRequest) { r.Group = uuid.Nil }},
		{"empty activity", func(r *CreatePingRequest) { r.ActivityType = "" }},
		{"long activity", func(r *CreatePingRequest) { r.ActivityType = strings.Repeat("x", 51) }},
		{"empty timing", func(r *CreatePingRequest) { r.RoughTiming = "" }},
		{"long vibe", func(r *CreatePingRequest) { r.Vibe = strings.Repeat("x", 101) }},
	}
	for _, tt := range tests {
		req := valid
		tt.mut(&req)
		if err := req.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
