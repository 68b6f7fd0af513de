package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, st *State, broker *Broker) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Sens-O-Matic API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(st))

	r.Route("/api", func(r chi.Router) {
		// Users
		r.Post("/users", handleCreateUser(st))
		r.Get("/users/{id}", handleGetUser(st))
		r.Patch("/users/{id}", handleUpdateUser(st))
		r.Delete("/users/{id}", handleDeleteUser(st))
		r.Get("/users/{id}/groups", handleListUserGroups(st))

		// Groups
		r.Post("/groups", handleCreateGroup(st))
		r.Get("/groups/{id}", handleGetGroup(st))
		r.Post("/groups/join", handleJoinGroup(st))
		r.Post("/groups/{id}/leave", handleLeaveGroup(st))
		r.Post("/groups/{id}/regenerate-invite", handleRegenerateInvite(st))
		r.Get("/groups/{id}/pings", handleListGroupPings(st))
		r.Get("/groups/{id}/events", handleEvents(logger, st, broker))

		// Pings
		r.Post("/pings", handleCreatePing(st, broker))
		r.Get("/pings/{id}", handleGetPing(st))
		r.Post("/pings/{id}/cancel", handleCancelPing(st, broker))
		r.Post("/pings/{id}/match", handleTriggerMatch(st, broker))
		r.Get("/pings/{id}/match-results", handleGetMatchResults(st))
		r.Post("/pings/{id}/confirm", handleConfirmHangout(st, broker))
		r.Post("/pings/{id}/activate", handleActivatePing(st, broker))
		r.Post("/pings/{id}/complete", handleCompletePing(st, broker))
		r.Put("/pings/{id}/attendees/{userID}/status", handleUpdateAttendeeStatus(st, broker))

		// Responses
		r.Post("/pings/{id}/responses", handleCreateResponse(st, broker))
		r.Put("/pings/{id}/responses/{responseID}", handleUpdateResponse(st, broker))
	})
}
