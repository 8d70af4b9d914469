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

// CustomerClient talks to the Customer AI Platform API.
type CustomerClient struct {
	*Client
}

func NewCustomerClient(baseURL, apiKey string, store *cache.Store) *CustomerClient {
	return &CustomerClient{Client: NewClient(domain.PlatformCustomerPlatform, baseURL, apiKey, store)}
}

func (c *CustomerClient) Users(ctx context.Context) (*Collection, error) {
	return c.GetCollection(ctx, "/api/users", nil, "customer:users", 5*time.Minute)
}

func (c *CustomerClient) User(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.Get(ctx, "/api/users/"+userID, nil, "customer:user:"+userID, 5*time.Minute)
}

func (c *CustomerClient) Bookings(ctx context.Context, page, limit int) (*Collection, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	key := fmt.Sprintf("customer:bookings:page:%d", page)
	return c.GetCollection(ctx, "/api/bookings", query, key, time.Minute)
}

// Conversations returns AI conversation history, optionally scoped to one
// user.
func (c *CustomerClient) Conversations(ctx context.Context, userID string) (json.RawMessage, error) {
	key := "customer:conversations"
	var query url.Values
	if userID != "" {
		query = url.Values{"user_id": []string{userID}}
		key += ":user:" + userID
	}

	return c.Get(ctx, "/api/conversations", query, key, time.Minute)
}

func (c *CustomerClient) Analytics(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "/api/analytics", nil, "customer:analytics", 10*time.Minute)
}
