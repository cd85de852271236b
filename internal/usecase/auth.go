package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wishify/wishify/internal/domain"
	"github.com/wishify/wishify/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 5 * time.Hour

type AuthUsecase struct {
	users      repository.UserRepository
	jwtKey     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthUsecase(users repository.UserRepository, jwtKey []byte, tokenTTL time.Duration, bcryptCost int) *AuthUsecase {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthUsecase{
		users:      users,
		jwtKey:     jwtKey,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register hashes the password, persists the user, and returns a signed
// session token. The plaintext never touches the store or the logs; bcrypt
// salts per call, so equal passwords still produce distinct digests.
func (u *AuthUsecase) Register(ctx context.Context, username, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        NormalizeEmail(email),
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return u.issueToken(user.ID)
}

// Login verifies the credentials and returns a fresh signed token. Unknown
// email and wrong password collapse into the same error so the endpoint does
// not reveal which accounts exist.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return u.issueToken(user.ID)
}

func (u *AuthUsecase) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(u.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// NormalizeEmail is the canonical form used for lookups and the unique index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
