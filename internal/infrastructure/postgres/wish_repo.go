package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wishify/wishify/internal/domain"
)

type WishRepository struct {
	pool *pgxpool.Pool
}

func NewWishRepository(pool *pgxpool.Pool) *WishRepository {
	return &WishRepository{pool: pool}
}

func (r *WishRepository) Create(ctx context.Context, wish *domain.Wish) (*domain.Wish, error) {
	query := `
		INSERT INTO wishes (user_id, name, email, wish_type, wish_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, email, wish_type, wish_date,
		          is_sent, sent_date, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		wish.UserID, wish.Name, wish.Email, wish.Type, wish.Date)
	return scanWish(row)
}

func (r *WishRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Wish, error) {
	query := `
		SELECT id, user_id, name, email, wish_type, wish_date,
		       is_sent, sent_date, created_at, updated_at
		FROM wishes
		WHERE user_id = $1
		ORDER BY wish_date ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	defer rows.Close()

	var wishes []*domain.Wish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, err
		}
		wishes = append(wishes, w)
	}
	return wishes, rows.Err()
}

func (r *WishRepository) FindByID(ctx context.Context, id string) (*domain.Wish, error) {
	query := `
		SELECT id, user_id, name, email, wish_type, wish_date,
		       is_sent, sent_date, created_at, updated_at
		FROM wishes
		WHERE id = $1`

	return scanWish(r.pool.QueryRow(ctx, query, id))
}

func (r *WishRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wishes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete wish: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWishNotFound
	}
	return nil
}

func (r *WishRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*domain.Wish, error) {
	// FOR UPDATE SKIP LOCKED prevents double-sending when more than one
	// dispatcher instance runs against the same database.
	query := `
		UPDATE wishes
		SET    is_sent    = TRUE,
		       sent_date  = $1,
		       updated_at = $1
		WHERE id IN (
			SELECT id FROM wishes
			WHERE  is_sent   = FALSE
			  AND  wish_date <= $1
			ORDER BY wish_date ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, user_id, name, email, wish_type, wish_date,
		          is_sent, sent_date, created_at, updated_at`

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due wishes: %w", err)
	}
	defer rows.Close()

	var wishes []*domain.Wish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, err
		}
		wishes = append(wishes, w)
	}
	return wishes, rows.Err()
}

func (r *WishRepository) ResetSent(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE wishes
		SET is_sent = FALSE, sent_date = NULL, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reset sent: %w", err)
	}
	return nil
}

func scanWish(row rowScanner) (*domain.Wish, error) {
	var w domain.Wish
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Email, &w.Type, &w.Date,
		&w.Sent, &w.SentAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishNotFound
		}
		return nil, fmt.Errorf("scan wish: %w", err)
	}
	return &w, nil
}
