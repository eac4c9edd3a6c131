// Package memory provides an in-memory UserRepository with the same
// contract as the postgres implementation, including the conditional
// fingerprint swap. It backs the test suites.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rzkmak/auth-service/internal/domain/entity"
	"github.com/rzkmak/auth-service/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // keyed by id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = "user-" + strconv.Itoa(r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) UpdateRefreshFingerprint(ctx context.Context, id string, fingerprint *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshTokenHash = copyPtr(fingerprint)
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) SwapRefreshFingerprint(ctx context.Context, id string, old, next *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	if !ptrEqual(u.RefreshTokenHash, old) {
		return false, nil
	}
	u.RefreshTokenHash = copyPtr(next)
	u.UpdatedAt = time.Now()
	return true, nil
}

// Count reports the number of stored users.
func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func clone(u *entity.User) *entity.User {
	cp := *u
	cp.RefreshTokenHash = copyPtr(u.RefreshTokenHash)
	return &cp
}

func copyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var _ repository.UserRepository = (*UserRepository)(nil)
