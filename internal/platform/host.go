package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/krib-platform/super-admin-backend/internal/cache"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// HostClient talks to the Host Dashboard API (short-term rentals).
type HostClient struct {
	*Client
}

func NewHostClient(baseURL, apiKey string, store *cache.Store) *HostClient {
	return &HostClient{Client: NewClient(domain.PlatformHostDashboard, baseURL, apiKey, store)}
}

// Properties returns one page of listings. Status filters server-side when
// non-empty.
func (c *HostClient) Properties(ctx context.Context, page, limit int, status string) (*Collection, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if status != "" {
		query.Set("status", status)
	}

	key := fmt.Sprintf("host:properties:page:%d:status:%s", page, status)
	return c.GetCollection(ctx, "/api/v1/properties", query, key, 5*time.Minute)
}

func (c *HostClient) Property(ctx context.Context, propertyID string) (json.RawMessage, error) {
	return c.Get(ctx, "/api/v1/properties/"+propertyID, nil, "host:property:"+propertyID, 5*time.Minute)
}

func (c *HostClient) Bookings(ctx context.Context, page, limit int, status string) (*Collection, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if status != "" {
		query.Set("status", status)
	}

	key := fmt.Sprintf("host:bookings:page:%d:status:%s", page, status)
	return c.GetCollection(ctx, "/api/v1/bookings", query, key, time.Minute)
}

func (c *HostClient) Booking(ctx context.Context, bookingID string) (json.RawMessage, error) {
	return c.Get(ctx, "/api/v1/bookings/"+bookingID, nil, "host:booking:"+bookingID, time.Minute)
}

// CancelBooking cancels a booking on the host platform and drops every cache
// entry that could serve the stale booking afterwards.
func (c *HostClient) CancelBooking(ctx context.Context, bookingID, reason string) (json.RawMessage, error) {
	raw, err := c.Delete(ctx, "/api/v1/bookings/"+bookingID, map[string]string{"reason": reason})
	if err != nil {
		return nil, err
	}

	c.Invalidate(ctx, "host:booking:"+bookingID)
	c.InvalidateMatching(ctx, "host:bookings:*")
	return raw, nil
}

// UpdatePropertyStatus suspends or reactivates a listing, invalidating the
// single-property key and all list pages.
func (c *HostClient) UpdatePropertyStatus(ctx context.Context, propertyID, status string) (json.RawMessage, error) {
	raw, err := c.Patch(ctx, "/api/v1/properties/"+propertyID, map[string]string{"status": status})
	if err != nil {
		return nil, err
	}

	c.Invalidate(ctx, "host:property:"+propertyID)
	c.InvalidateMatching(ctx, "host:properties:*")
	return raw, nil
}

func (c *HostClient) Users(ctx context.Context) (*Collection, error) {
	return c.GetCollection(ctx, "/api/v1/users", nil, "host:users", 5*time.Minute)
}

// Analytics fetches the admin overview, or a single host's dashboard when
// hostID is set.
func (c *HostClient) Analytics(ctx context.Context, hostID string) (json.RawMessage, error) {
	endpoint := "/api/v1/analytics/admin/overview"
	key := "host:analytics:all"
	var query url.Values
	if hostID != "" {
		endpoint = "/api/v1/analytics/host/dashboard"
		query = url.Values{"host_id": []string{hostID}}
		key = "host:analytics:" + hostID
	}

	return c.Get(ctx, endpoint, query, key, 10*time.Minute)
}
