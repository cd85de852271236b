package repository

import (
	"context"

	"github.com/wishify/wishify/internal/domain"
)

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type UserRepository interface {
	// Create persists a new user. Email uniqueness is enforced by the store
	// (unique index), so two concurrent registrations with the same address
	// cannot both succeed; the loser gets domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
