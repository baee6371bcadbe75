package ports

import (
	"context"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  domain.Identity
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Authenticate resolves a raw bearer token to the live identity of its subject.
	Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error)
	Logout(ctx context.Context, rawToken string) error
}
