package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// BookingRepository persists canonical bookings keyed by
// (platform_id, platform_booking_id). The Synchronizer guarantees PropertyID
// references an existing row before calling Upsert.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Upsert(ctx context.Context, b *domain.Booking) (string, error) {
	const q = `
INSERT INTO unified_bookings
  (id, platform_id, platform_booking_id, property_id, guest_user_id, host_user_id,
   check_in, check_out, total_price, status, payment_status,
   platform_data, last_synced_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
ON CONFLICT (platform_id, platform_booking_id) DO UPDATE
  SET property_id = EXCLUDED.property_id,
      guest_user_id = EXCLUDED.guest_user_id,
      host_user_id = EXCLUDED.host_user_id,
      check_in = EXCLUDED.check_in,
      check_out = EXCLUDED.check_out,
      total_price = EXCLUDED.total_price,
      status = EXCLUDED.status,
      payment_status = EXCLUDED.payment_status,
      platform_data = EXCLUDED.platform_data,
      last_synced_at = now()
RETURNING id;
`
	data, err := json.Marshal(b.PlatformData)
	if err != nil {
		return "", fmt.Errorf("marshal platform data: %w", err)
	}

	var guest, host *string
	if b.GuestUserID != "" {
		guest = &b.GuestUserID
	}
	if b.HostUserID != "" {
		host = &b.HostUserID
	}

	// Dates arrive as strings from the platforms; empty means unknown.
	var checkIn, checkOut *string
	if b.CheckIn != "" {
		checkIn = &b.CheckIn
	}
	if b.CheckOut != "" {
		checkOut = &b.CheckOut
	}

	var id string
	err = r.pool.QueryRow(ctx, q,
		uuid.New().String(), b.PlatformID, b.PlatformBookingID, b.PropertyID,
		guest, host, checkIn, checkOut, b.TotalPrice, b.Status,
		b.PaymentStatus, data,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert booking: %w", err)
	}
	return id, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM unified_bookings;`).Scan(&n)
	return n, err
}

// TotalRevenue sums booking prices across all platforms for the dashboard.
func (r *BookingRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `SELECT coalesce(sum(total_price), 0) FROM unified_bookings;`).Scan(&total)
	return total, err
}
