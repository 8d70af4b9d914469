package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// AdminRepository reads operator accounts.
type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const q = `
SELECT id, email, password_hash, full_name, role, created_at
FROM admin_users
WHERE email = $1;
`
	var a domain.AdminUser
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	const q = `
SELECT id, email, password_hash, full_name, role, created_at
FROM admin_users
WHERE id = $1;
`
	var a domain.AdminUser
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
