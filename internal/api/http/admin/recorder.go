package admin

import (
	"context"
	"log"

	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

// recorder writes audit entries for mutating admin actions. Audit failures
// are logged and never fail the action itself.
type recorder struct {
	audit *repository.AuditRepository
}

func (r recorder) record(ctx context.Context, adminID, action, platform, entityType, entityID string, details domain.JSONMap) {
	if r.audit == nil {
		return
	}
	_, err := r.audit.Insert(ctx, &domain.AuditEntry{
		AdminUserID:      adminID,
		ActionType:       action,
		TargetPlatform:   platform,
		TargetEntityType: entityType,
		TargetEntityID:   entityID,
		Details:          details,
	})
	if err != nil {
		log.Printf("[warn] operation=audit_record action=%s error=%v", action, err)
	}
}
