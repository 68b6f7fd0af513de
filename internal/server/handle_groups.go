package server

import (
	"net/http"

	"github.com/sensomatic/api/internal/meetup"
)

func handleCreateGroup(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meetup.CreateGroupRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		group := meetup.NewGroup(req)
		st.Groups.Insert(group.ID, group)

		writeJSON(w, http.StatusCreated, group)
	}
}

func handleGetGroup(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return
		}

		group, ok := st.Groups.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}
		writeJSON(w, http.StatusOK, group)
	}
}

func handleJoinGroup(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meetup.JoinGroupRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		group, ok := st.FindGroupByInviteCode(req.InviteCode)
		if !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}

		updated, ok := st.Groups.Update(group.ID, func(g *meetup.Group) {
			g.AddMember(req.UserID)
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleLeaveGroup(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return
		}

		var req meetup.LeaveGroupRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if _, ok := st.Groups.Update(id, func(g *meetup.Group) {
			g.RemoveMember(req.UserID)
		}); !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRegenerateInvite(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return
		}

		var req meetup.RegenerateInviteRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		group, ok := st.Groups.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}

		// Any member may rotate the code.
		if !group.IsMember(req.UserID) {
			writeDomainError(w, meetup.Forbidden("only group members can regenerate the invite code"))
			return
		}

		updated, ok := st.Groups.Update(id, func(g *meetup.Group) {
			g.RegenerateInviteCode()
		})
		if !ok {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleListGroupPings(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return
		}

		if !st.Groups.Exists(id) {
			writeDomainError(w, meetup.NotFound("group"))
			return
		}

		pings := st.GroupPings(id)

		if raw := r.URL.Query().Get("state"); raw != "" {
			want := meetup.State(raw)
			if !meetup.ValidState(want) {
				writeDomainError(w, meetup.Validation("unknown ping state filter"))
				return
			}
			filtered := pings[:0]
			for _, p := range pings {
				if p.State() == want {
					filtered = append(filtered, p)
				}
			}
			pings = filtered
		}

		if pings == nil {
			pings = []meetup.Ping{}
		}
		writeJSON(w, http.StatusOK, pings)
	}
}
