package ports

import (
	"context"
	"time"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// LoginInput carries the signed payload handed over by the Telegram login
// widget. Hash covers every other field; the service verifies it verbatim.
type LoginInput struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	AuthDate  int64
	Hash      string
}

// SessionTokens is the signed cookie pair issued after a successful login
// or refresh.
type SessionTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService defines the session lifecycle operations.
type AuthService interface {
	// Login verifies the widget payload, enforces the admin gate, upserts the
	// user and issues a fresh token pair.
	Login(ctx context.Context, input LoginInput) (*domain.Principal, *SessionTokens, error)
	// Refresh rotates the refresh token and issues a new pair.
	Refresh(ctx context.Context, refreshToken string) (*domain.Principal, *SessionTokens, error)
	// Identity resolves an access token to the current principal.
	Identity(ctx context.Context, accessToken string) (*domain.Principal, error)
	// Logout revokes the refresh token. It never fails the caller.
	Logout(ctx context.Context, refreshToken string)
}

// AdminLookup exposes the roster membership check the login gate needs.
// Satisfied by the settings repository.
type AdminLookup interface {
	AdminIDs(ctx context.Context) ([]int64, error)
}

// UserRepository persists principals keyed by Telegram id.
type UserRepository interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.Principal, error)
	Upsert(ctx context.Context, p *domain.Principal) error
	List(ctx context.Context) ([]*domain.Principal, error)
}

// TokenStore tracks which refresh tokens are still honoured. Rotation
// revokes the old id before admitting the new one.
type TokenStore interface {
	Allow(ctx context.Context, jti string, ttl time.Duration) error
	IsAllowed(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

// ReplayGuard remembers widget payload hashes long enough to reject a second
// submission of the same signed login.
type ReplayGuard interface {
	Seen(ctx context.Context, hash string) (bool, error)
	Mark(ctx context.Context, hash string) error
}
