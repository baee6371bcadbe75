package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 4 * time.Hour

// ErrMissingSigningKey is returned at construction when no secret is configured.
var ErrMissingSigningKey = errors.New("token service: signing secret is empty")

type tokenClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for subject. Every token gets a unique id so it can be
// revoked on logout.
func (s *TokenService) Issue(subject string, role domain.Role) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry. Every failure is reported as
// domain.ErrInvalidToken.
func (s *TokenService) Verify(raw string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
