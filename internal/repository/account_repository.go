package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

type accountRepository struct {
	db    DB
	table string
}

// NewAccountRepository returns a Postgres-backed implementation for the role's table.
func NewAccountRepository(db DB, role domain.Role) AccountRepository {
	table := "users"
	if role == domain.RoleAdmin {
		table = "admins"
	}
	return &accountRepository{db: db, table: table}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (first_name, last_name, email, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`, r.table)

	err := r.db.QueryRow(ctx, query,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	return mapError(err)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := fmt.Sprintf(`
        SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
        FROM %s WHERE email=$1`, r.table)

	var account domain.Account
	if err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}
