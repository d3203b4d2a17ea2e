package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/volleybot/admin-api/internal/core/domain"
)

func newTestTransport(t *testing.T, handler http.Handler) (*Transport, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport, err := NewTransport(server.URL, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTransport: %v", err)
	}
	return transport, server
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func TestSessionStore_CheckAuthAuthenticated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.Principal{TelegramID: 77, FirstName: "Ivan", IsAdmin: true})
	})
	transport, _ := newTestTransport(t, mux)
	store := NewSessionStore(transport)

	if got := store.State(); got != StateUninitialized {
		t.Fatalf("initial state = %v, want uninitialized", got)
	}

	state := store.CheckAuth(context.Background())
	if state != StateAuthenticated {
		t.Fatalf("CheckAuth = %v, want authenticated", state)
	}

	principal, ok := store.Principal()
	if !ok {
		t.Fatal("expected a principal after successful check")
	}
	if principal.TelegramID != 77 || principal.FirstName != "Ivan" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestSessionStore_CheckAuthUnauthorizedClearsPrincipal(t *testing.T) {
	authorized := true
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !authorized {
			writeDetail(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Principal{TelegramID: 77, FirstName: "Ivan"})
	})
	transport, _ := newTestTransport(t, mux)
	store := NewSessionStore(transport)

	if state := store.CheckAuth(context.Background()); state != StateAuthenticated {
		t.Fatalf("first CheckAuth = %v, want authenticated", state)
	}

	authorized = false
	if state := store.CheckAuth(context.Background()); state != StateUnauthenticated {
		t.Fatalf("second CheckAuth = %v, want unauthenticated", state)
	}
	if _, ok := store.Principal(); ok {
		t.Fatal("principal must be cleared after a failed check")
	}
}

func TestSessionStore_CheckAuthTransportFailure(t *testing.T) {
	transport, server := newTestTransport(t, http.NewServeMux())
	server.Close()
	store := NewSessionStore(transport)

	if state := store.CheckAuth(context.Background()); state != StateUnauthenticated {
		t.Fatalf("CheckAuth = %v, want unauthenticated on transport failure", state)
	}
}

func TestSessionStore_AuthenticateSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/telegram", func(w http.ResponseWriter, r *http.Request) {
		var payload WidgetPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeDetail(w, http.StatusBadRequest, "bad payload")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    domain.Principal{TelegramID: payload.ID, FirstName: payload.FirstName, IsAdmin: true},
		})
	})
	transport, _ := newTestTransport(t, mux)
	store := NewSessionStore(transport)

	err := store.Authenticate(context.Background(), WidgetPayload{
		ID: 42, FirstName: "Olga", AuthDate: 1700000000, Hash: "cafe",
	})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if state := store.State(); state != StateAuthenticated {
		t.Fatalf("state after login = %v, want authenticated", state)
	}
	principal, _ := store.Principal()
	if principal.TelegramID != 42 {
		t.Fatalf("principal id = %d, want 42", principal.TelegramID)
	}
}

func TestSessionStore_AuthenticateDisqualified(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/telegram", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusForbidden, "user is not an admin")
	})
	transport, _ := newTestTransport(t, mux)
	store := NewSessionStore(transport)

	err := store.Authenticate(context.Background(), WidgetPayload{ID: 42, FirstName: "Olga", AuthDate: 1, Hash: "x"})
	if err == nil {
		t.Fatal("expected rejection for non-admin login")
	}
	consoleErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if !consoleErr.AccountDisqualified() {
		t.Fatalf("AccountDisqualified = false for %+v", consoleErr)
	}
	if state := store.State(); state == StateAuthenticated {
		t.Fatal("store must not become authenticated after a rejected login")
	}
}

func TestSessionStore_LogoutClearsStateEvenWhenServerFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.Principal{TelegramID: 9, FirstName: "Max"})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusInternalServerError, "boom")
	})
	transport, _ := newTestTransport(t, mux)
	store := NewSessionStore(transport)

	store.CheckAuth(context.Background())
	store.Logout(context.Background())

	if state := store.State(); state != StateUnauthenticated {
		t.Fatalf("state after logout = %v, want unauthenticated", state)
	}
	if _, ok := store.Principal(); ok {
		t.Fatal("principal must be cleared by logout regardless of server outcome")
	}
}

func TestSessionStore_SetPrincipalAndReset(t *testing.T) {
	transport, _ := newTestTransport(t, http.NewServeMux())
	store := NewSessionStore(transport)

	store.SetPrincipal(domain.Principal{TelegramID: 5, FirstName: "Nina"})
	if state := store.State(); state != StateAuthenticated {
		t.Fatalf("state after SetPrincipal = %v, want authenticated", state)
	}

	store.Reset()
	if state := store.State(); state != StateUninitialized {
		t.Fatalf("state after Reset = %v, want uninitialized", state)
	}
	if _, ok := store.Principal(); ok {
		t.Fatal("Reset must drop the principal")
	}
}
