package repository

import (
	"context"
	"time"

	"github.com/wishify/wishify/internal/domain"
)

type WishRepository interface {
	Create(ctx context.Context, wish *domain.Wish) (*domain.Wish, error)
	// ListByOwner returns only the owner's wishes, ordered by occasion date
	// ascending. Scoping happens in the query, not as a post-filter.
	ListByOwner(ctx context.Context, userID string) ([]*domain.Wish, error)
	// FindByID is deliberately unscoped: the delete path needs existence and
	// ownership as two separate answers.
	FindByID(ctx context.Context, id string) (*domain.Wish, error)
	Delete(ctx context.Context, id string) error

	// Dispatcher methods. ClaimDue atomically marks due unsent wishes as sent
	// and returns them; ResetSent puts one back for the next cycle after a
	// failed send.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*domain.Wish, error)
	ResetSent(ctx context.Context, id string) error
}
