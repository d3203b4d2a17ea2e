package service

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/volleybot/admin-api/internal/core/domain"
	"github.com/volleybot/admin-api/internal/core/ports"
	"github.com/volleybot/admin-api/internal/telegram"
)

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AuthService implements the Telegram login flow and the cookie-token
// session lifecycle.
type AuthService struct {
	users      ports.UserRepository
	roster     ports.AdminLookup
	tokens     ports.TokenStore
	replay     ports.ReplayGuard
	verifier   *telegram.LoginVerifier
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	roster ports.AdminLookup,
	tokens ports.TokenStore,
	replay ports.ReplayGuard,
	verifier *telegram.LoginVerifier,
	jwtSecret string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		roster:     roster,
		tokens:     tokens,
		replay:     replay,
		verifier:   verifier,
		jwtSecret:  jwtSecret,
		accessTTL:  defaultAccessTTL,
		refreshTTL: defaultRefreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Login verifies the widget payload and, for roster members, upserts the
// user and issues a fresh access/refresh pair.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.Principal, *ports.SessionTokens, error) {
	if !s.verifier.Verify(input) {
		s.logger.Warn().Int64("telegram_id", input.ID).Msg("login signature mismatch")
		return nil, nil, domain.ErrInvalidLogin
	}
	if !s.verifier.Fresh(input.AuthDate) {
		s.logger.Warn().Int64("telegram_id", input.ID).Msg("stale login payload")
		return nil, nil, domain.ErrLoginExpired
	}

	seen, err := s.replay.Seen(ctx, input.Hash)
	if err != nil {
		return nil, nil, err
	}
	if seen {
		s.logger.Warn().Int64("telegram_id", input.ID).Msg("replayed login payload")
		return nil, nil, domain.ErrLoginReplayed
	}

	admins, err := s.roster.AdminIDs(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !containsID(admins, input.ID) {
		s.logger.Warn().Int64("telegram_id", input.ID).Msg("login rejected: not an administrator")
		return nil, nil, domain.ErrNotAdmin
	}

	now := s.now().UTC()
	principal := &domain.Principal{
		TelegramID: input.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Username:   input.Username,
		PhotoURL:   input.PhotoURL,
		IsAdmin:    true,
		LastLogin:  now,
		UpdatedAt:  now,
	}
	if err := s.users.Upsert(ctx, principal); err != nil {
		return nil, nil, err
	}

	if err := s.replay.Mark(ctx, input.Hash); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issuePair(ctx, principal)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("telegram_id", input.ID).Str("username", input.Username).Msg("administrator signed in")
	return principal, tokens, nil
}

// Refresh rotates the refresh token: the presented jti is revoked before a
// new pair is issued, so each refresh token is single-use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Principal, *ports.SessionTokens, error) {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, nil, err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, nil, domain.ErrInvalidToken
	}
	allowed, err := s.tokens.IsAllowed(ctx, jti)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, domain.ErrSessionExpired
	}

	principal, err := s.principalFromClaims(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	if !principal.IsAdmin {
		return nil, nil, domain.ErrNotAdmin
	}

	if err := s.tokens.Revoke(ctx, jti); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issuePair(ctx, principal)
	if err != nil {
		return nil, nil, err
	}
	return principal, tokens, nil
}

// Identity resolves an access token to the stored principal.
func (s *AuthService) Identity(ctx context.Context, accessToken string) (*domain.Principal, error) {
	claims, err := s.parseToken(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return s.principalFromClaims(ctx, claims)
}

// Logout revokes the refresh token. Invalid or absent tokens are ignored:
// logout must always succeed from the client's point of view.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return
	}
	if jti, _ := claims["jti"].(string); jti != "" {
		if err := s.tokens.Revoke(ctx, jti); err != nil {
			s.logger.Warn().Err(err).Msg("refresh token revocation failed on logout")
		}
	}
}

func (s *AuthService) issuePair(ctx context.Context, p *domain.Principal) (*ports.SessionTokens, error) {
	now := s.now()
	accessExp := now.Add(s.accessTTL)
	refreshExp := now.Add(s.refreshTTL)
	refreshJTI := uuid.NewString()

	access, err := s.signToken(p, tokenTypeAccess, uuid.NewString(), accessExp)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(p, tokenTypeRefresh, refreshJTI, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Allow(ctx, refreshJTI, s.refreshTTL); err != nil {
		return nil, err
	}

	return &ports.SessionTokens{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) signToken(p *domain.Principal, tokenType, jti string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(p.TelegramID, 10),
		"username": p.Username,
		"is_admin": p.IsAdmin,
		"type":     tokenType,
		"jti":      jti,
		"exp":      expiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(token, expectedType string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims["type"] != expectedType {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) principalFromClaims(ctx context.Context, claims jwt.MapClaims) (*domain.Principal, error) {
	sub, _ := claims["sub"].(string)
	telegramID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return s.users.FindByTelegramID(ctx, telegramID)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
