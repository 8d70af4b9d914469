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

// AgentClient talks to the Real Estate Agent Dashboard API (long-term
// listings and agent verification).
type AgentClient struct {
	*Client
}

func NewAgentClient(baseURL, apiKey string, store *cache.Store) *AgentClient {
	return &AgentClient{Client: NewClient(domain.PlatformAgentDashboard, baseURL, apiKey, store)}
}

func (c *AgentClient) PendingVerifications(ctx context.Context) (*Collection, error) {
	return c.GetCollection(ctx, "/api/admin/verification/pending", nil, "agent:verification:pending", time.Minute)
}

func (c *AgentClient) VerificationDetails(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.Get(ctx, "/api/admin/verification/user/"+userID, nil, "agent:verification:user:"+userID, time.Minute)
}

// ApproveAgent approves a pending agent. The pending list, the user's detail
// entry and the statistics block all go stale, so all three are cleared.
func (c *AgentClient) ApproveAgent(ctx context.Context, userID, notes, adminID string) (json.RawMessage, error) {
	raw, err := c.Post(ctx, "/api/admin/verification/user/"+userID+"/action", map[string]string{
		"action":   "approve",
		"notes":    notes,
		"admin_id": adminID,
	})
	if err != nil {
		return nil, err
	}

	c.Invalidate(ctx,
		"agent:verification:user:"+userID,
		"agent:verification:pending",
		"agent:verification:statistics",
	)
	return raw, nil
}

func (c *AgentClient) RejectAgent(ctx context.Context, userID, reason, notes, adminID string) (json.RawMessage, error) {
	raw, err := c.Post(ctx, "/api/admin/verification/user/"+userID+"/action", map[string]string{
		"action":           "reject",
		"rejection_reason": reason,
		"notes":            notes,
		"admin_id":         adminID,
	})
	if err != nil {
		return nil, err
	}

	c.Invalidate(ctx,
		"agent:verification:user:"+userID,
		"agent:verification:pending",
		"agent:verification:statistics",
	)
	return raw, nil
}

func (c *AgentClient) RequestResubmission(ctx context.Context, userID, reason, adminID string) (json.RawMessage, error) {
	raw, err := c.Post(ctx, "/api/admin/verification/user/"+userID+"/action", map[string]string{
		"action":   "request_resubmission",
		"notes":    reason,
		"admin_id": adminID,
	})
	if err != nil {
		return nil, err
	}

	c.Invalidate(ctx,
		"agent:verification:user:"+userID,
		"agent:verification:pending",
	)
	return raw, nil
}

func (c *AgentClient) VerificationStatistics(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "/api/admin/verification/statistics", nil, "agent:verification:statistics", 5*time.Minute)
}

func (c *AgentClient) AuditLog(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.Get(ctx, "/api/admin/verification/audit-log/"+userID, nil, "agent:audit:"+userID, 5*time.Minute)
}

func (c *AgentClient) Properties(ctx context.Context, page, limit int) (*Collection, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	key := fmt.Sprintf("agent:properties:page:%d", page)
	return c.GetCollection(ctx, "/api/properties", query, key, 5*time.Minute)
}

func (c *AgentClient) Agents(ctx context.Context) (*Collection, error) {
	return c.GetCollection(ctx, "/api/admin/agents", nil, "agent:agents:all", 5*time.Minute)
}
