package server

import (
	"net/http"

	"github.com/sensomatic/api/internal/meetup"
)

func handleCreateResponse(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pingID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}

		var req meetup.CreateResponseRequest
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
		if err := meetup.CanAddResponse(&ping); err != nil {
			writeDomainError(w, err)
			return
		}
		if ping.HasUserResponded(req.User) {
			writeDomainError(w, meetup.Conflictf("user has already responded to this ping"))
			return
		}

		group, ok := st.Groups.Get(ping.Group)
		if !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}
		if !group.IsMember(req.User) {
			writeDomainError(w, meetup.Forbidden("user is not a member of the group"))
			return
		}

		response := meetup.NewResponse(req)
		st.Pings.Update(pingID, func(p *meetup.Ping) {
			p.AddResponse(response)
		})

		broker.Publish(ping.Group.String(), Event{
			Type:   eventResponseAdded,
			PingID: ping.ID.String(),
			UserID: req.User.String(),
		})

		writeJSON(w, http.StatusCreated, response)
	}
}

func handleUpdateResponse(st *State, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pingID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid ping id")
			return
		}
		responseID, ok := pathID(r, "responseID")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid response id")
			return
		}

		var req meetup.UpdateResponseRequest
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

		// Responses freeze once matching is triggered.
		if err := meetup.CanAddResponse(&ping); err != nil {
			writeDomainError(w, err)
			return
		}

		existing, ok := ping.ResponseByID(responseID)
		if !ok {
			writeDomainError(w, meetup.NotFound("response"))
			return
		}
		if existing.User != req.User {
			writeDomainError(w, meetup.Forbidden("user can only update their own response"))
			return
		}

		var updated meetup.Response
		var found bool
		st.Pings.Update(pingID, func(p *meetup.Ping) {
			updated, found = p.UpdateResponse(responseID, req)
		})
		if !found {
			writeDomainError(w, meetup.NotFound("response"))
			return
		}

		broker.Publish(ping.Group.String(), Event{
			Type:   eventResponseUpdated,
			PingID: ping.ID.String(),
			UserID: req.User.String(),
		})

		writeJSON(w, http.StatusOK, updated)
	}
}
