package server

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/sensomatic/api/internal/meetup"
)

func TestUserCRUD(t *testing.T) {
	r, _ := testRouter(t)

	user := createUser(t, r, "Alice")
	if user.Name != "Alice" {
		t.Fatalf("name = %q", user.Name)
	}
	if user.ID == uuid.Nil {
		t.Fatalf("created user has no id")
	}

	w := do(t, r, http.MethodGet, "/api/users/"+user.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	w = do(t, r, http.MethodPatch, "/api/users/"+user.ID.String(),
		meetup.UpdateUserRequest{Name: "Alicia", Avatar: "https://example.com/a.png"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decode[meetup.User](t, w)
	if updated.Name != "Alicia" || updated.Avatar == "" {
		t.Fatalf("update not applied: %+v", updated)
	}

	w = do(t, r, http.MethodDelete, "/api/users/"+user.ID.String(), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/users/"+user.ID.String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
	w = do(t, r, http.MethodDelete, "/api/users/"+user.ID.String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d", w.Code)
	}
}

func TestCreateUserValidation(t *testing.T) {
	r, _ := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/users", meetup.CreateUserRequest{Name: ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty name: expected 400, got %d", w.Code)
	}
}

func TestListUserGroups(t *testing.T) {
	r, _ := testRouter(t)

	alice := createUser(t, r, "Alice")
	bob := createUser(t, r, "Bob")
	g1 := createGroup(t, r, alice.ID, bob.ID)
	createGroup(t, r, alice.ID)

	w := do(t, r, http.MethodGet, "/api/users/"+bob.ID.String()+"/groups", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	groups := decode[[]meetup.Group](t, w)
	if len(groups) != 1 || groups[0].ID != g1.ID {
		t.Fatalf("bob's groups = %d, want exactly the joined one", len(groups))
	}

	// A member of nothing gets an empty list, not null.
	loner := createUser(t, r, "Loner")
	w = do(t, r, http.MethodGet, "/api/users/"+loner.ID.String()+"/groups", nil)
	if got := w.Body.String(); got != "[]\n" {
		t.Fatalf("empty membership = %q, want []", got)
	}

	w = do(t, r, http.MethodGet, "/api/users/"+uuid.NewString()+"/groups", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown user: expected 404, got %d", w.Code)
	}
}
