package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// PlatformRepository reads and updates the configured source platforms.
type PlatformRepository struct {
	pool *pgxpool.Pool
}

func NewPlatformRepository(pool *pgxpool.Pool) *PlatformRepository {
	return &PlatformRepository{pool: pool}
}

func (r *PlatformRepository) GetByName(ctx context.Context, name string) (*domain.Platform, error) {
	const q = `
SELECT id, name, display_name, api_base_url, api_key, status, last_health_check, created_at
FROM platforms
WHERE name = $1;
`
	var p domain.Platform
	err := r.pool.QueryRow(ctx, q, name).Scan(
		&p.ID, &p.Name, &p.DisplayName, &p.APIBaseURL, &p.APIKey,
		&p.Status, &p.LastHealthCheck, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlatformRepository) List(ctx context.Context) ([]domain.Platform, error) {
	const q = `
SELECT id, name, display_name, api_base_url, api_key, status, last_health_check, created_at
FROM platforms
ORDER BY name;
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Platform, 0, 3)
	for rows.Next() {
		var p domain.Platform
		if err := rows.Scan(
			&p.ID, &p.Name, &p.DisplayName, &p.APIBaseURL, &p.APIKey,
			&p.Status, &p.LastHealthCheck, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateHealth records the outcome of the latest health probe.
func (r *PlatformRepository) UpdateHealth(ctx context.Context, id, status string, checkedAt time.Time) error {
	const q = `
UPDATE platforms
SET status = $2, last_health_check = $3
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, q, id, status, checkedAt.UTC())
	return err
}
