package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sensomatic/api/internal/meetup"
)

// handleEvents streams lifecycle events for one group over SSE.
func handleEvents(logger *slog.Logger, st *State, broker *Broker) http.HandlerFunc {
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

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		groupID := id.String()
		ch := broker.Subscribe(groupID)
		defer broker.Unsubscribe(groupID, ch)
		logger.Debug("sse subscriber connected", "group", groupID)
		defer logger.Debug("sse subscriber disconnected", "group", groupID)

		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: lifecycle\ndata: %s\n\n", data)
				flusher.Flush()
			case <-keepalive.C:
				fmt.Fprintf(w, ": keepalive\n\n")
				flusher.Flush()
			}
		}
	}
}
