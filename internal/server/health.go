package server

import "net/http"

// HealthResponse reports liveness plus collection sizes. There are no
// external dependencies to check; the store is in-process.
type HealthResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
	Groups int    `json:"groups"`
	Pings  int    `json:"pings"`
}

func handleHealth(st *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status: "ok",
			Users:  st.Users.Len(),
			Groups: st.Groups.Len(),
			Pings:  st.Pings.Len(),
		})
	}
}
