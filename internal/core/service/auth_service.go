package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
	"github.com/formotex/inventory-api/internal/pkg/metrics"
)

// AuthService implements login, per-request authentication and logout.
type AuthService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	revoked ports.TokenRevoker
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revoked ports.TokenRevoker,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoked: revoked,
		log:     log,
		now:     time.Now,
	}
}

// Login verifies an email/password pair. Unknown email, missing hash and wrong
// password all produce the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if user.PasswordHash == "" || s.hasher.Compare(user.PasswordHash, password) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{Token: token, User: user.Identity()}, nil
}

// Authenticate resolves rawToken to the current identity of its subject. The
// role embedded in the token is ignored: the user is re-read on every call so
// role changes and deletions apply to already-issued tokens.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		metrics.AuthenticationFailuresTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("authenticate: revocation lookup: %w", err)
		}
		if revoked {
			metrics.AuthenticationFailuresTotal.WithLabelValues("revoked").Inc()
			return nil, domain.ErrInvalidToken
		}
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			metrics.AuthenticationFailuresTotal.WithLabelValues("account_gone").Inc()
			return nil, domain.ErrAccountGone
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	identity := user.Identity()
	return &identity, nil
}

// Logout revokes rawToken until it would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return domain.ErrInvalidToken
	}
	if claims.ID == "" {
		return domain.ErrInvalidToken
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info().Str("user_id", claims.Subject).Msg("token revoked")
	return nil
}
