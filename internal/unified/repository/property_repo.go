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

// PropertyRepository persists canonical properties keyed by
// (platform_id, platform_property_id).
type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

// Upsert inserts or refreshes a property. An empty OwnerUserID is stored as
// NULL rather than dropping the row.
func (r *PropertyRepository) Upsert(ctx context.Context, p *domain.Property) (string, error) {
	const q = `
INSERT INTO unified_properties
  (id, platform_id, platform_property_id, owner_user_id, title, property_type,
   listing_type, city, price, price_currency, status, is_featured,
   platform_data, last_synced_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
ON CONFLICT (platform_id, platform_property_id) DO UPDATE
  SET owner_user_id = EXCLUDED.owner_user_id,
      title = EXCLUDED.title,
      property_type = EXCLUDED.property_type,
      listing_type = EXCLUDED.listing_type,
      city = EXCLUDED.city,
      price = EXCLUDED.price,
      price_currency = EXCLUDED.price_currency,
      status = EXCLUDED.status,
      is_featured = EXCLUDED.is_featured,
      platform_data = EXCLUDED.platform_data,
      last_synced_at = now()
RETURNING id;
`
	data, err := json.Marshal(p.PlatformData)
	if err != nil {
		return "", fmt.Errorf("marshal platform data: %w", err)
	}

	var owner *string
	if p.OwnerUserID != "" {
		owner = &p.OwnerUserID
	}

	var id string
	err = r.pool.QueryRow(ctx, q,
		uuid.New().String(), p.PlatformID, p.PlatformPropertyID, owner,
		p.Title, p.PropertyType, p.ListingType, p.City, p.Price,
		p.PriceCurrency, p.Status, p.IsFeatured, data,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert property: %w", err)
	}
	return id, nil
}

// FindIDByPlatformProperty resolves a platform-native property id to its
// canonical id.
func (r *PropertyRepository) FindIDByPlatformProperty(ctx context.Context, platformID, platformPropertyID string) (string, error) {
	const q = `
SELECT id FROM unified_properties
WHERE platform_id = $1 AND platform_property_id = $2;
`
	var id string
	err := r.pool.QueryRow(ctx, q, platformID, platformPropertyID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM unified_properties;`).Scan(&n)
	return n, err
}
