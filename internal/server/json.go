package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sensomatic/api/internal/meetup"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the closed error taxonomy onto status codes.
// Anything that is not a meetup.Error is an internal error.
func writeDomainError(w http.ResponseWriter, err error) {
	var de *meetup.Error
	if !errors.As(err, &de) {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case meetup.KindNotFound:
		status = http.StatusNotFound
	case meetup.KindForbidden:
		status = http.StatusForbidden
	case meetup.KindConflict:
		status = http.StatusConflict
	case meetup.KindValidation:
		status = http.StatusBadRequest
	}
	writeError(w, status, de.Message)
}
