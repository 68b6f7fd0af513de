package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sensomatic/api/internal/meetup"
)

// pathID parses a UUID route parameter. An empty uuid and an error
// both mean "not a valid id".
func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

func handleCreateUser(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meetup.CreateUserRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		user := meetup.NewUser(req)
		st.Users.Insert(user.ID, user)

		writeJSON(w, http.StatusCreated, user)
	}
}

func handleGetUser(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		user, ok := st.Users.Get(id)
		if !ok {
			writeDomainError(w, meetup.NotFound("user"))
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func handleUpdateUser(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var req meetup.UpdateUserRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		user, ok := st.Users.Update(id, func(u *meetup.User) { u.Apply(req) })
		if !ok {
			writeDomainError(w, meetup.NotFound("user"))
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func handleDeleteUser(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		if _, ok := st.Users.Remove(id); !ok {
			writeDomainError(w, meetup.NotFound("user"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListUserGroups(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		if !st.Users.Exists(id) {
			writeDomainError(w, meetup.NotFound("user"))
			return
		}

		groups := st.UserGroups(id)
		if groups == nil {
			groups = []meetup.Group{}
		}
		writeJSON(w, http.StatusOK, groups)
	}
}
