package ports

import (
	"context"
	"time"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// TokenClaims is what a verified bearer token carries. Role is a snapshot
// taken at issuance and must not be used for authorization.
type TokenClaims struct {
	Subject   string
	Role      domain.Role
	ID        string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(subject string, role domain.Role) (string, error)
	Verify(raw string) (*TokenClaims, error)
}

// PasswordHasher is a one-way hash with verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenRevoker keeps the ids of logged-out tokens until they would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
