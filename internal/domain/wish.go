package domain

import (
	"errors"
	"time"
)

var (
	ErrWishNotFound = errors.New("wish not found")
	ErrNotWishOwner = errors.New("user not authorized for this wish")
)

type WishType string

const (
	WishTypeBirthday    WishType = "Birthday"
	WishTypeAnniversary WishType = "Anniversary"
	WishTypeHoliday     WishType = "Holiday"
	WishTypeOther       WishType = "Other"
)

// Wish is an upcoming occasion for a friend, owned by exactly one user.
// Sent/SentAt track whether the greeting email has gone out.
type Wish struct {
	ID     string
	UserID string

	Name  string
	Email string
	Type  WishType
	Date  time.Time

	Sent   bool
	SentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
