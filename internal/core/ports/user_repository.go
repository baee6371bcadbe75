package ports

import (
	"context"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations
// translate storage signals into domain errors: a missing document becomes
// domain.ErrUserNotFound, a unique-index violation domain.ErrEmailTaken and a
// malformed id domain.ErrInvalidID.
type UserRepository interface {
	// Create stores u and assigns its ID.
	Create(ctx context.Context, u *domain.User) error
	// FindByID never populates PasswordHash.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// FindCredentials looks a user up by normalized email including the
	// password hash. It is the only read path that returns the hash.
	FindCredentials(ctx context.Context, email string) (*domain.User, error)
	// EmailExists reports whether another user (not excludeID) has email.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	// Update persists name, email, role and updated_at, and the password hash
	// when it is non-empty.
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}
