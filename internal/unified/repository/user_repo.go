package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// UserRepository persists canonical users. The composite unique constraint on
// (platform_id, platform_user_id) makes Upsert the identity-resolution
// primitive: concurrent calls for the same pair always converge on one row.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Upsert inserts the user on first sight and refreshes denormalized fields on
// every later sync. The canonical id assigned on insert is returned unchanged
// forever after; identity columns are never rewritten by the conflict arm, and
// an empty incoming field never blanks a populated column.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) (string, error) {
	const q = `
INSERT INTO unified_users
  (id, email, platform_id, platform_user_id, user_type, full_name, phone,
   verification_status, account_status, platform_data, last_synced_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
ON CONFLICT (platform_id, platform_user_id) DO UPDATE
  SET email = COALESCE(NULLIF(EXCLUDED.email, ''), unified_users.email),
      full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), unified_users.full_name),
      phone = COALESCE(NULLIF(EXCLUDED.phone, ''), unified_users.phone),
      verification_status = COALESCE(NULLIF(EXCLUDED.verification_status, ''), unified_users.verification_status),
      platform_data = CASE
        WHEN EXCLUDED.platform_data IN ('null'::jsonb, '{}'::jsonb) THEN unified_users.platform_data
        ELSE EXCLUDED.platform_data
      END,
      last_synced_at = now()
RETURNING id;
`
	data := []byte("{}")
	if u.PlatformData != nil {
		var err error
		data, err = json.Marshal(u.PlatformData)
		if err != nil {
			return "", fmt.Errorf("marshal platform data: %w", err)
		}
	}

	status := u.AccountStatus
	if status == "" {
		status = domain.AccountActive
	}

	var id string
	err := r.pool.QueryRow(ctx, q,
		uuid.New().String(), u.Email, u.PlatformID, u.PlatformUserID, u.UserType,
		u.FullName, u.Phone, u.VerificationStatus, status, data,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}
	return id, nil
}

// FindIDByPlatformUser resolves the identity key to a canonical id without
// creating anything.
func (r *UserRepository) FindIDByPlatformUser(ctx context.Context, platformID, platformUserID string) (string, error) {
	const q = `
SELECT id FROM unified_users
WHERE platform_id = $1 AND platform_user_id = $2;
`
	var id string
	err := r.pool.QueryRow(ctx, q, platformID, platformUserID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id, email, platform_id, platform_user_id, user_type, full_name, phone,
       verification_status, account_status, platform_data, last_synced_at, created_at
FROM unified_users
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, q, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

// List pages through canonical users, optionally filtered by type.
func (r *UserRepository) List(ctx context.Context, userType string, limit, offset int) ([]domain.User, error) {
	const q = `
SELECT id, email, platform_id, platform_user_id, user_type, full_name, phone,
       verification_status, account_status, platform_data, last_synced_at, created_at
FROM unified_users
WHERE ($1 = '' OR user_type = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.pool.Query(ctx, q, userType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) UpdateAccountStatus(ctx context.Context, id string, status domain.AccountStatus) error {
	const q = `
UPDATE unified_users
SET account_status = $2
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM unified_users;`).Scan(&n)
	return n, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var data []byte
	err := row.Scan(
		&u.ID, &u.Email, &u.PlatformID, &u.PlatformUserID, &u.UserType,
		&u.FullName, &u.Phone, &u.VerificationStatus, &u.AccountStatus,
		&data, &u.LastSyncedAt, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &u.PlatformData); err != nil {
			return nil, fmt.Errorf("decode platform data: %w", err)
		}
	}
	return &u, nil
}
