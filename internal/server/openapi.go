package server

import (
	"encoding/json"
	"net/http"
	"time"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/sensomatic/api/internal/meetup"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// pingDoc mirrors the flattened ping wire layout for documentation.
// The entity itself uses a custom marshaler, so the reflector cannot
// derive the schema from meetup.Ping directly.
type pingDoc struct {
	ID           string               `json:"id" format:"uuid"`
	Initiator    string               `json:"initiator" format:"uuid"`
	Group        string               `json:"group" format:"uuid"`
	ActivityType string               `json:"activity_type"`
	RoughTiming  string               `json:"rough_timing"`
	Vibe         string               `json:"vibe,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	State        string               `json:"state" enum:"ping_sent,gathering,matching,venue_confirmed,active_hangout,complete,cancelled,no_match"`
	Responses    []meetup.Response    `json:"responses,omitempty"`
	MatchResults *meetup.MatchResults `json:"match_results,omitempty"`
	Hangout      *meetup.HangoutData  `json:"hangout,omitempty"`
}

func newOpenAPISpec() *openapi31.Spec {
	r := openapi31.NewReflector()
	r.Spec.Info.Title = "Sens-O-Matic API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("API for coordinating spontaneous meetups with friends.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns liveness and in-memory collection sizes.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealthz)

	// POST /api/users
	postUser, _ := r.NewOperationContext(http.MethodPost, "/api/users")
	postUser.SetSummary("Create user")
	postUser.AddReqStructure(meetup.CreateUserRequest{})
	postUser.AddRespStructure(meetup.User{}, openapi.WithHTTPStatus(http.StatusCreated))
	postUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postUser)

	// GET /api/users/{id}
	getUser, _ := r.NewOperationContext(http.MethodGet, "/api/users/{id}")
	getUser.SetSummary("Get user")
	getUser.AddRespStructure(meetup.User{}, openapi.WithHTTPStatus(http.StatusOK))
	getUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getUser)

	// PATCH /api/users/{id}
	patchUser, _ := r.NewOperationContext(http.MethodPatch, "/api/users/{id}")
	patchUser.SetSummary("Update user")
	patchUser.AddReqStructure(meetup.UpdateUserRequest{})
	patchUser.AddRespStructure(meetup.User{}, openapi.WithHTTPStatus(http.StatusOK))
	patchUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	patchUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(patchUser)

	// DELETE /api/users/{id}
	deleteUser, _ := r.NewOperationContext(http.MethodDelete, "/api/users/{id}")
	deleteUser.SetSummary("Delete user")
	deleteUser.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteUser)

	// GET /api/users/{id}/groups
	listUserGroups, _ := r.NewOperationContext(http.MethodGet, "/api/users/{id}/groups")
	listUserGroups.SetSummary("List user groups")
	listUserGroups.SetDescription("Returns every group the user is a member of.")
	listUserGroups.AddRespStructure([]meetup.Group{}, openapi.WithHTTPStatus(http.StatusOK))
	listUserGroups.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(listUserGroups)

	// POST /api/groups
	postGroup, _ := r.NewOperationContext(http.MethodPost, "/api/groups")
	postGroup.SetSummary("Create group")
	postGroup.SetDescription("Creates a group with the creator as first member and a fresh invite code.")
	postGroup.AddReqStructure(meetup.CreateGroupRequest{})
	postGroup.AddRespStructure(meetup.Group{}, openapi.WithHTTPStatus(http.StatusCreated))
	postGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postGroup)

	// GET /api/groups/{id}
	getGroup, _ := r.NewOperationContext(http.MethodGet, "/api/groups/{id}")
	getGroup.SetSummary("Get group")
	getGroup.AddRespStructure(meetup.Group{}, openapi.WithHTTPStatus(http.StatusOK))
	getGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGroup)

	// POST /api/groups/join
	joinGroup, _ := r.NewOperationContext(http.MethodPost, "/api/groups/join")
	joinGroup.SetSummary("Join group by invite code")
	joinGroup.SetDescription("Codes are 6-8 alphanumeric characters.")
	joinGroup.AddReqStructure(meetup.JoinGroupRequest{})
	joinGroup.AddRespStructure(meetup.Group{}, openapi.WithHTTPStatus(http.StatusOK))
	joinGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	joinGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(joinGroup)

	// POST /api/groups/{id}/leave
	leaveGroup, _ := r.NewOperationContext(http.MethodPost, "/api/groups/{id}/leave")
	leaveGroup.SetSummary("Leave group")
	leaveGroup.AddReqStructure(meetup.LeaveGroupRequest{})
	leaveGroup.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	leaveGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(leaveGroup)

	// POST /api/groups/{id}/regenerate-invite
	regenInvite, _ := r.NewOperationContext(http.MethodPost, "/api/groups/{id}/regenerate-invite")
	regenInvite.SetSummary("Regenerate invite code")
	regenInvite.SetDescription("Any current member may rotate the code. Old codes stop working immediately.")
	regenInvite.AddReqStructure(meetup.RegenerateInviteRequest{})
	regenInvite.AddRespStructure(meetup.Group{}, openapi.WithHTTPStatus(http.StatusOK))
	regenInvite.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	regenInvite.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(regenInvite)

	// GET /api/groups/{id}/pings
	listPings, _ := r.NewOperationContext(http.MethodGet, "/api/groups/{id}/pings")
	listPings.SetSummary("List group pings")
	listPings.SetDescription("Optional ?state= filter restricts to one lifecycle state.")
	listPings.AddRespStructure([]pingDoc{}, openapi.WithHTTPStatus(http.StatusOK))
	listPings.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(listPings)

	// GET /api/groups/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/groups/{id}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of ping lifecycle events for the group.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getEvents)

	// POST /api/pings
	postPing, _ := r.NewOperationContext(http.MethodPost, "/api/pings")
	postPing.SetSummary("Create ping")
	postPing.SetDescription("Initiator must be a member of the target group.")
	postPing.AddReqStructure(meetup.CreatePingRequest{})
	postPing.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusCreated))
	postPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postPing)

	// GET /api/pings/{id}
	getPing, _ := r.NewOperationContext(http.MethodGet, "/api/pings/{id}")
	getPing.SetSummary("Get ping")
	getPing.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusOK))
	getPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getPing)

	// POST /api/pings/{id}/cancel
	cancelPing, _ := r.NewOperationContext(http.MethodPost, "/api/pings/{id}/cancel")
	cancelPing.SetSummary("Cancel ping")
	cancelPing.SetDescription("Initiator only, from any non-terminal state.")
	cancelPing.AddReqStructure(meetup.CancelPingRequest{})
	cancelPing.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusOK))
	cancelPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	cancelPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	cancelPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(cancelPing)

	// POST /api/pings/{id}/match
	triggerMatch, _ := r.NewOperationContext(http.MethodPost, "/api/pings/{id}/match")
	triggerMatch.SetSummary("Trigger matching")
	triggerMatch.SetDescription("Initiator only, while gathering. Moves the ping to matching or no_match.")
	triggerMatch.AddReqStructure(meetup.TriggerMatchRequest{})
	triggerMatch.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusOK))
	triggerMatch.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	triggerMatch.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	triggerMatch.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(triggerMatch)

	// GET /api/pings/{id}/match-results
	matchResults, _ := r.NewOperationContext(http.MethodGet, "/api/pings/{id}/match-results")
	matchResults.SetSummary("Get match results")
	matchResults.SetDescription("Returns stored results, or recomputes them from the preserved responses.")
	matchResults.AddRespStructure(meetup.MatchResults{}, openapi.WithHTTPStatus(http.StatusOK))
	matchResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(matchResults)

	// POST /api/pings/{id}/confirm
	confirmPing, _ := r.NewOperationContext(http.MethodPost, "/api/pings/{id}/confirm")
	confirmPing.SetSummary("Confirm hangout")
	confirmPing.SetDescription("Freezes the attendee set from positive responses and embeds the timeline.")
	confirmPing.AddReqStructure(meetup.ConfirmHangoutRequest{})
	confirmPing.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusCreated))
	confirmPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	confirmPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	confirmPing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(confirmPing)

	// POST /api/pings/{id}/activate
	activatePing, _ := r.NewOperationContext(http.MethodPost, "/api/pings/{id}/activate")
	activatePing.SetSummary("Activate hangout")
	activatePing.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusOK))
	activatePing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	activatePing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(activatePing)

	// POST /api/pings/{id}/complete
	completePing, _ := r.NewOperationContext(http.MethodPost, "/api/pings/{id}/complete")
	completePing.SetSummary("Complete hangout")
	completePing.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusOK))
	completePing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	completePing.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(completePing)

	// PUT /api/pings/{id}/attendees/{userID}/status
	attendeeStatus, _ := r.NewOperationContext(http.MethodPut, "/api/pings/{id}/attendees/{userID}/status")
	attendeeStatus.SetSummary("Update attendee status")
	attendeeStatus.SetDescription("Attendees report pending, enroute, arrived, or left during a hangout.")
	attendeeStatus.AddReqStructure(meetup.UpdateAttendeeStatusRequest{})
	attendeeStatus.AddRespStructure(pingDoc{}, openapi.WithHTTPStatus(http.StatusOK))
	attendeeStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	attendeeStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(attendeeStatus)

	// POST /api/pings/{id}/responses
	postResponse, _ := r.NewOperationContext(http.MethodPost, "/api/pings/{id}/responses")
	postResponse.SetSummary("Submit response")
	postResponse.SetDescription("One response per user per ping, while the ping is still gathering.")
	postResponse.AddReqStructure(meetup.CreateResponseRequest{})
	postResponse.AddRespStructure(meetup.Response{}, openapi.WithHTTPStatus(http.StatusCreated))
	postResponse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postResponse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postResponse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postResponse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postResponse)

	// PUT /api/pings/{id}/responses/{responseID}
	putResponse, _ := r.NewOperationContext(http.MethodPut, "/api/pings/{id}/responses/{responseID}")
	putResponse.SetSummary("Update response")
	putResponse.SetDescription("Owner only, while the ping is still gathering.")
	putResponse.AddReqStructure(meetup.UpdateResponseRequest{})
	putResponse.AddRespStructure(meetup.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	putResponse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putResponse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	putResponse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putResponse)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
