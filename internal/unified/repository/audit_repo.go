package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// AuditRepository appends and lists admin action records.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit entry. The id is minted here; a collision on the
// generated id is retried.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) (string, error) {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return "", fmt.Errorf("marshal details: %w", err)
	}

	for i := 0; i < 5; i++ {
		id := uuid.New().String()

		const q = `
INSERT INTO admin_audit_log
  (id, admin_user_id, action_type, target_platform, target_entity_type, target_entity_id, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now());
`
		_, err := r.db.ExecContext(ctx, q,
			id, e.AdminUserID, e.ActionType, e.TargetPlatform,
			e.TargetEntityType, e.TargetEntityID, details,
		)
		if err == nil {
			return id, nil
		}

		// unique violation on id → retry with a fresh one
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("failed to generate unique audit id")
}

// List returns the most recent entries.
func (r *AuditRepository) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	const q = `
SELECT id, admin_user_id, action_type, target_platform, target_entity_type, target_entity_id, details, created_at
FROM admin_audit_log
ORDER BY created_at DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.AuditEntry, 0, limit)
	for rows.Next() {
		var e domain.AuditEntry
		var details []byte
		if err := rows.Scan(
			&e.ID, &e.AdminUserID, &e.ActionType, &e.TargetPlatform,
			&e.TargetEntityType, &e.TargetEntityID, &details, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("decode details: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
