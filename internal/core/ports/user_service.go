package ports

import (
	"context"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// CreateUserInput carries a new account. Email is normalized by the service.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserService is the admin-only user directory.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
