package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/krib-platform/super-admin-backend/internal/cache"
)

const (
	// RequestTimeout bounds every outbound platform call.
	RequestTimeout = 30 * time.Second

	healthCacheTTL = 30 * time.Second
)

// Collection is the shape every platform uses for list endpoints:
// { "data": [...], "total": n }. Total is optional, not all platforms
// report it.
type Collection struct {
	Data  []map[string]interface{} `json:"data"`
	Total int                      `json:"total"`
}

// Client issues authenticated calls to one source platform with a
// read-through cache in front of GETs. The platform name doubles as the
// cache-key namespace.
type Client struct {
	name    string
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *cache.Store
}

func NewClient(name, baseURL, apiKey string, store *cache.Store) *Client {
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: RequestTimeout},
		cache:   store,
	}
}

func (c *Client) Name() string { return c.name }

// Request performs one call against the platform. For GETs with a non-empty
// cacheKey the cache is consulted first and populated on a 2xx response.
// Non-2xx responses yield *APIError, network failures *TransportError.
func (c *Client) Request(ctx context.Context, method, endpoint string, body interface{}, query url.Values, cacheKey string, cacheTTL time.Duration) (json.RawMessage, error) {
	if cacheKey != "" && method == http.MethodGet {
		if cached, ok := c.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Platform: c.name, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Platform: c.name, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[error] platform=%s %s %s status=%d", c.name, method, endpoint, resp.StatusCode)
		return nil, &APIError{Platform: c.name, Status: resp.StatusCode, Body: string(data)}
	}

	if cacheKey != "" && method == http.MethodGet {
		c.cache.Set(ctx, cacheKey, json.RawMessage(data), cacheTTL)
	}

	return json.RawMessage(data), nil
}

func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, cacheKey string, ttl time.Duration) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, endpoint, nil, query, cacheKey, ttl)
}

func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, endpoint, body, nil, "", 0)
}

func (c *Client) Put(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, endpoint, body, nil, "", 0)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPatch, endpoint, body, nil, "", 0)
}

func (c *Client) Delete(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, body, nil, "", 0)
}

// GetCollection fetches and decodes a { data, total } list response.
func (c *Client) GetCollection(ctx context.Context, endpoint string, query url.Values, cacheKey string, ttl time.Duration) (*Collection, error) {
	raw, err := c.Get(ctx, endpoint, query, cacheKey, ttl)
	if err != nil {
		return nil, err
	}

	var col Collection
	if err := json.Unmarshal(raw, &col); err != nil {
		return nil, fmt.Errorf("decode %s collection: %w", c.name, err)
	}
	return &col, nil
}

// HealthCheck probes the platform's health endpoint with a short-lived cache
// entry. All failures collapse to false.
func (c *Client) HealthCheck(ctx context.Context) bool {
	_, err := c.Get(ctx, "/api/health", nil, c.name+":health", healthCacheTTL)
	if err != nil {
		log.Printf("[warn] health check failed platform=%s error=%v", c.name, err)
		return false
	}
	return true
}

// Invalidate removes exact cache keys after a mutating call.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	c.cache.Delete(ctx, keys...)
}

// InvalidateMatching removes every cache key matching the glob pattern.
func (c *Client) InvalidateMatching(ctx context.Context, pattern string) {
	c.cache.DeleteMatching(ctx, pattern)
}
