package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rzkmak/auth-service/internal/domain/entity"
	"github.com/rzkmak/auth-service/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `
		SELECT id, email, password_hash, first_name, last_name, refresh_token_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `
		SELECT id, email, password_hash, first_name, last_name, refresh_token_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.RefreshTokenHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) UpdateRefreshFingerprint(ctx context.Context, id string, fingerprint *string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_token_hash = $1, updated_at = now()
		WHERE id = $2
	`, fingerprint, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SwapRefreshFingerprint(ctx context.Context, id string, old, next *string) (bool, error) {
	// IS NOT DISTINCT FROM treats two NULLs as equal, so a cleared
	// fingerprint still participates in the compare-and-swap.
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_token_hash = $1, updated_at = now()
		WHERE id = $2 AND refresh_token_hash IS NOT DISTINCT FROM $3
	`, next, id, old)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
