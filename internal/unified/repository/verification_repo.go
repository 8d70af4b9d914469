package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// VerificationRepository persists the verification queue, at most one row per
// (platform_id, platform_user_id).
type VerificationRepository struct {
	pool *pgxpool.Pool
}

func NewVerificationRepository(pool *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{pool: pool}
}

// Upsert inserts a queue item on first sight and otherwise refreshes status
// and documents. The status always comes mapped from the source platform, so
// an approved or rejected row only moves back to pending when the source
// itself reports that.
func (r *VerificationRepository) Upsert(ctx context.Context, v *domain.VerificationQueueItem) (string, error) {
	const q = `
INSERT INTO verification_queue
  (id, platform_id, user_id, platform_user_id, verification_type, status,
   documents, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (platform_id, platform_user_id) DO UPDATE
  SET status = EXCLUDED.status,
      documents = EXCLUDED.documents,
      updated_at = now()
RETURNING id;
`
	docs, err := json.Marshal(v.Documents)
	if err != nil {
		return "", fmt.Errorf("marshal documents: %w", err)
	}

	var id string
	err = r.pool.QueryRow(ctx, q,
		uuid.New().String(), v.PlatformID, v.UserID, v.PlatformUserID,
		v.VerificationType, v.Status, docs,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert verification: %w", err)
	}
	return id, nil
}

// UpdateStatus records an admin decision against an existing queue item.
func (r *VerificationRepository) UpdateStatus(ctx context.Context, platformID, platformUserID string, status domain.VerificationStatus) error {
	const q = `
UPDATE verification_queue
SET status = $3, updated_at = now()
WHERE platform_id = $1 AND platform_user_id = $2;
`
	tag, err := r.pool.Exec(ctx, q, platformID, platformUserID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatusByPlatformUser is UpdateStatus addressed by platform name
// instead of the platform row id.
func (r *VerificationRepository) UpdateStatusByPlatformUser(ctx context.Context, platformName, platformUserID string, status domain.VerificationStatus) error {
	const q = `
UPDATE verification_queue
SET status = $3, updated_at = now()
WHERE platform_id = (SELECT id FROM platforms WHERE name = $1)
  AND platform_user_id = $2;
`
	tag, err := r.pool.Exec(ctx, q, platformName, platformUserID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pages through queue items, optionally filtered by status.
func (r *VerificationRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.VerificationQueueItem, error) {
	const q = `
SELECT id, platform_id, user_id, platform_user_id, verification_type, status,
       documents, created_at, updated_at
FROM verification_queue
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.pool.Query(ctx, q, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.VerificationQueueItem, 0, limit)
	for rows.Next() {
		v, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *VerificationRepository) CountByStatus(ctx context.Context, status domain.VerificationStatus) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM verification_queue WHERE status = $1;`, status).Scan(&n)
	return n, err
}

func scanVerification(row pgx.Row) (*domain.VerificationQueueItem, error) {
	var v domain.VerificationQueueItem
	var docs []byte
	err := row.Scan(
		&v.ID, &v.PlatformID, &v.UserID, &v.PlatformUserID,
		&v.VerificationType, &v.Status, &docs, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &v.Documents); err != nil {
			return nil, fmt.Errorf("decode documents: %w", err)
		}
	}
	return &v, nil
}
