package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wishify/wishify/internal/domain"
	"github.com/wishify/wishify/internal/repository"
)

type WishUsecase struct {
	repo repository.WishRepository
}

func NewWishUsecase(repo repository.WishRepository) *WishUsecase {
	return &WishUsecase{repo: repo}
}

type CreateWishInput struct {
	OwnerID string
	Name    string
	Email   string
	Type    domain.WishType
	Date    time.Time
}

// Create persists a wish for the authenticated caller. The owner always comes
// from the verified token, never from the request body.
func (u *WishUsecase) Create(ctx context.Context, input CreateWishInput) (*domain.Wish, error) {
	if input.Type == "" {
		input.Type = domain.WishTypeOther
	}

	wish := &domain.Wish{
		UserID: input.OwnerID,
		Name:   input.Name,
		Email:  NormalizeEmail(input.Email),
		Type:   input.Type,
		Date:   input.Date,
	}

	created, err := u.repo.Create(ctx, wish)
	if err != nil {
		return nil, fmt.Errorf("create wish: %w", err)
	}
	return created, nil
}

func (u *WishUsecase) List(ctx context.Context, ownerID string) ([]*domain.Wish, error) {
	wishes, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	return wishes, nil
}

// Delete checks existence before ownership, so the two failures keep their
// distinct status codes at the boundary.
func (u *WishUsecase) Delete(ctx context.Context, id, callerID string) error {
	wish, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrWishNotFound) {
			return domain.ErrWishNotFound
		}
		return fmt.Errorf("find wish: %w", err)
	}

	if wish.UserID != callerID {
		return domain.ErrNotWishOwner
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete wish: %w", err)
	}
	return nil
}
