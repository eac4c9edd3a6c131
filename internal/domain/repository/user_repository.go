package repository

import (
	"context"
	"errors"

	"github.com/rzkmak/auth-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user persistence. The store is
// the single piece of shared state; per-row updates are assumed atomic.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateRefreshFingerprint overwrites the stored refresh fingerprint.
	// A nil fingerprint clears it.
	UpdateRefreshFingerprint(ctx context.Context, id string, fingerprint *string) error
	// SwapRefreshFingerprint replaces the fingerprint only if the stored
	// value still equals old. Returns false when a concurrent rotation won.
	SwapRefreshFingerprint(ctx context.Context, id string, old, next *string) (bool, error)
}
