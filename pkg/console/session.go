package console

import (
	"context"
	"sync"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// SessionState is the session store's externally observable state.
type SessionState int

const (
	// StateUninitialized: no authentication check has run yet.
	StateUninitialized SessionState = iota
	// StateChecking: an identity query is in flight.
	StateChecking
	// StateAuthenticated: a principal is held.
	StateAuthenticated
	// StateUnauthenticated: the last check settled without a principal.
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Settled reports whether the state is a terminal authentication decision.
func (s SessionState) Settled() bool {
	return s == StateAuthenticated || s == StateUnauthenticated
}

// SessionStore holds the current principal, if any. It exclusively owns the
// principal; readers get a copy. All operations are serialized by the store's
// mutex, so a logout issued after a pending check can never be overwritten
// by that check's stale result.
type SessionStore struct {
	transport *Transport

	mu        sync.Mutex
	state     SessionState
	principal domain.Principal
}

// NewSessionStore creates a store in the uninitialized state.
func NewSessionStore(transport *Transport) *SessionStore {
	return &SessionStore{transport: transport, state: StateUninitialized}
}

// State returns the current session state.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Principal returns a copy of the current principal; ok is false unless the
// store is authenticated.
func (s *SessionStore) Principal() (domain.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal, s.state == StateAuthenticated
}

// CheckAuth queries the server for the current identity and settles the
// store to authenticated or unauthenticated. Safe to call from any state and
// any number of times; concurrent callers serialize and each observes a
// settled state on return. The call suspends on network I/O.
func (s *SessionStore) CheckAuth(ctx context.Context) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateChecking

	var principal domain.Principal
	if err := s.transport.get(ctx, "/api/auth/me", &principal); err != nil {
		// Any failure (401, 403 or connectivity) settles to
		// unauthenticated; the principal is cleared either way.
		s.principal = domain.Principal{}
		s.state = StateUnauthenticated
		return s.state
	}

	s.principal = principal
	s.state = StateAuthenticated
	return s.state
}

// WidgetPayload is the signed user payload the Telegram login widget hands
// to the login view, forwarded verbatim to the server.
type WidgetPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
}

// Authenticate forwards a widget payload to the server and, on success,
// transitions straight to authenticated without a redundant identity query.
// A returned *Error with AccountDisqualified() true means the login view
// should hide the widget entirely.
func (s *SessionStore) Authenticate(ctx context.Context, payload WidgetPayload) error {
	var result struct {
		Success bool             `json:"success"`
		User    domain.Principal `json:"user"`
	}
	if err := s.transport.post(ctx, "/api/auth/telegram", payload, &result); err != nil {
		return err
	}

	s.SetPrincipal(result.User)
	return nil
}

// SetPrincipal transitions directly to authenticated with the given
// principal. Used when an authentication flow already obtained it.
func (s *SessionStore) SetPrincipal(p domain.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = p
	s.state = StateAuthenticated
}

// Logout requests server-side session termination. The local state clears
// to unauthenticated regardless of the network outcome: a failed logout
// call must never leave the console believing it is still signed in.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transport.post(ctx, "/api/auth/logout", nil, nil); err != nil {
		s.transport.log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
	}
	s.principal = domain.Principal{}
	s.state = StateUnauthenticated
}

// Reset returns the store to its initial state. Intended for tests and for
// tearing down a console instance.
func (s *SessionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = domain.Principal{}
	s.state = StateUninitialized
}
