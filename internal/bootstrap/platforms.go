package bootstrap

import (
	"context"
	"errors"
	"log"

	"github.com/krib-platform/super-admin-backend/internal/cache"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
	"github.com/krib-platform/super-admin-backend/internal/unified/repository"
)

// PlatformClients holds one client per configured source platform. A nil
// client means that platform row is absent; handlers degrade to 503 for it.
type PlatformClients struct {
	Host     *platform.HostClient
	Agent    *platform.AgentClient
	Customer *platform.CustomerClient
}

// LoadPlatformClients builds clients from the platforms table. Platform
// credentials live in the database, not the environment, so new keys only
// need a row update and a restart.
func LoadPlatformClients(ctx context.Context, platforms *repository.PlatformRepository, store *cache.Store) PlatformClients {
	var out PlatformClients

	if p := loadPlatform(ctx, platforms, domain.PlatformHostDashboard); p != nil {
		out.Host = platform.NewHostClient(p.APIBaseURL, p.APIKey, store)
	}
	if p := loadPlatform(ctx, platforms, domain.PlatformAgentDashboard); p != nil {
		out.Agent = platform.NewAgentClient(p.APIBaseURL, p.APIKey, store)
	}
	if p := loadPlatform(ctx, platforms, domain.PlatformCustomerPlatform); p != nil {
		out.Customer = platform.NewCustomerClient(p.APIBaseURL, p.APIKey, store)
	}
	return out
}

func loadPlatform(ctx context.Context, platforms *repository.PlatformRepository, name string) *domain.Platform {
	p, err := platforms.GetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("[warn] operation=load_platforms platform=%s message=not configured", name)
		return nil
	}
	if err != nil {
		log.Printf("[error] operation=load_platforms platform=%s error=%v", name, err)
		return nil
	}
	return p
}
