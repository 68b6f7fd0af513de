package server

import (
	"net/http"

	"github.com/sensomatic/api/internal/meetup"
)

func handleCreatePing(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meetup.CreatePingRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		group, ok := st.Groups.Get(req.Group)
		if !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}
		if !group.IsMember(req.Initiator) {
			writeDomainError(w, meetup.Forbidden("user is not a member of the group"))
			return
		}

		ping := meetup.NewPing(req)
		st.Pings.Insert(ping.ID, ping)

		broker.Publish(ping.Group.String(), Event{
			Type:   eventPingCreated,
			PingID: ping.ID.String(),
			State:  string(ping.State()),
			UserID: ping.Initiator.String(),
		})

		writeJSON(w, http.StatusCreated, ping)
	}
}

func handleGetPing(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		ping, ok := st.Pings.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}
		writeJSON(w, http.StatusOK, ping)
	}
}

func handleCancelPing(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		var req meetup.CancelPingRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ping, ok := st.Pings.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}
		if err := meetup.CanCancel(&ping, req.UserID); err != nil {
			writeDomainError(w, err)
			return
		}

		updated, ok := st.Pings.Update(id, func(p *meetup.Ping) {
			meetup.TransitionToCancelled(p)
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		broker.Publish(updated.Group.String(), Event{
			Type:   eventPingCancelled,
			PingID: updated.ID.String(),
			State:  string(updated.State()),
			UserID: req.UserID.String(),
		})

		writeJSON(w, http.StatusOK, updated)
	}
}

func handleTriggerMatch(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		var req meetup.TriggerMatchRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ping, ok := st.Pings.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}
		if err := meetup.CanTriggerMatch(&ping, req.UserID); err != nil {
			writeDomainError(w, err)
			return
		}

		// Compute inside the update so the match covers every response
		// that landed before the lock was taken.
		updated, ok := st.Pings.Update(id, func(p *meetup.Ping) {
			meetup.TransitionToMatching(p, meetup.ComputeMatch(p))
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		broker.Publish(updated.Group.String(), Event{
			Type:   eventMatchComputed,
			PingID: updated.ID.String(),
			State:  string(updated.State()),
		})

		writeJSON(w, http.StatusOK, updated)
	}
}

func handleGetMatchResults(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		ping, ok := st.Pings.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		// Only the matching phase stores results; for later phases
		// recompute from the preserved responses. Recomputation is
		// idempotent over an unchanged response set.
		results, ok := ping.StoredMatchResults()
		if !ok {
			results = meetup.ComputeMatch(&ping)
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func handleConfirmHangout(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		var req meetup.ConfirmHangoutRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		ping, ok := st.Pings.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}
		if err := meetup.CanConfirm(&ping); err != nil {
			writeDomainError(w, err)
			return
		}

		hangout := meetup.BuildHangoutData(&ping, req.Timeline)

		updated, ok := st.Pings.Update(id, func(p *meetup.Ping) {
			meetup.TransitionToVenueConfirmed(p, hangout)
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		broker.Publish(updated.Group.String(), Event{
			Type:   eventHangoutConfirmed,
			PingID: updated.ID.String(),
			State:  string(updated.State()),
		})

		writeJSON(w, http.StatusCreated, updated)
	}
}

func handleActivatePing(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		ping, ok := st.Pings.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}
		if err := meetup.CanActivate(&ping); err != nil {
			writeDomainError(w, err)
			return
		}

		updated, ok := st.Pings.Update(id, func(p *meetup.Ping) {
			meetup.TransitionToActive(p)
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		broker.Publish(updated.Group.String(), Event{
			Type:   eventHangoutActivated,
			PingID: updated.ID.String(),
			State:  string(updated.State()),
		})

		writeJSON(w, http.StatusOK, updated)
	}
}

func handleCompletePing(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		ping, ok := st.Pings.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}
		if err := meetup.CanComplete(&ping); err != nil {
			writeDomainError(w, err)
			return
		}

		updated, ok := st.Pings.Update(id, func(p *meetup.Ping) {
			meetup.TransitionToComplete(p)
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		broker.Publish(updated.Group.String(), Event{
			Type:   eventHangoutCompleted,
			PingID: updated.ID.String(),
			State:  string(updated.State()),
		})

		writeJSON(w, http.StatusOK, updated)
	}
}

func handleUpdateAttendeeStatus(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pingID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}
		userID, ok := pathID(r, "userID")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var req meetup.UpdateAttendeeStatusRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		ping, ok := st.Pings.Get(pingID)
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		hangout, ok := ping.Hangout()
		if !ok {
			writeDomainError(w, meetup.Conflictf("ping does not have an active hangout"))
			return
		}
		if !hangout.IsAttendee(userID) {
			writeDomainError(w, meetup.NotFound("attendee"))
			return
		}

		updated, ok := st.Pings.Update(pingID, func(p *meetup.Ping) {
			p.SetAttendeeStatus(userID, req.Status)
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("ping"))
			return
		}

		broker.Publish(updated.Group.String(), Event{
			Type:   eventAttendeeStatus,
			PingID: updated.ID.String(),
			State:  string(updated.State()),
			UserID: userID.String(),
		})

		writeJSON(w, http.StatusOK, updated)
	}
}
