package console

import "context"

// Decision is the route guard's verdict for one navigation.
type Decision int

const (
	// Allow renders the target view.
	Allow Decision = iota
	// RedirectToEntry sends the caller to the unauthenticated landing view.
	RedirectToEntry
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "redirect-to-entry"
}

// Route describes a navigation target as far as the guard cares.
type Route struct {
	Name         string
	RequiresAuth bool
}

// RouteGuard decides, before a protected view renders, whether the caller
// holds a valid session.
type RouteGuard struct {
	store *SessionStore
}

func NewRouteGuard(store *SessionStore) *RouteGuard {
	return &RouteGuard{store: store}
}

// Decide evaluates one navigation. Routes without an auth requirement are
// always allowed. For protected routes the guard never answers from an
// unsettled store: it forces a CheckAuth first, then decides. Decisions are
// not cached; every navigation re-evaluates against the store.
func (g *RouteGuard) Decide(ctx context.Context, route Route) Decision {
	if !route.RequiresAuth {
		return Allow
	}

	state := g.store.State()
	if !state.Settled() {
		state = g.store.CheckAuth(ctx)
	}

	if state == StateAuthenticated {
		return Allow
	}
	return RedirectToEntry
}
