package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

// UserService is the admin user directory. Route-level role gating happens in
// the middleware; the service itself is role-agnostic.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger, now: time.Now}
}

// Create stores a new account. The email pre-check is a fast path; a
// concurrent duplicate is still rejected by the repository's unique index.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)

	taken, err := s.repo.EmailExists(ctx, email, "")
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies patch to the user. A changed email is re-checked against
// every other account and a new password is re-hashed.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email, ok := patch.Email.Get(); ok {
		email = domain.NormalizeEmail(email)
		if email != user.Email {
			taken, err := s.repo.EmailExists(ctx, email, user.ID)
			if err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
			if taken {
				return nil, domain.ErrEmailTaken
			}
		}
	}

	patch.Apply(user)

	if password, ok := patch.Password.Get(); ok {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user updated")

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
