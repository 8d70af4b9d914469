package sync

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/krib-platform/super-admin-backend/internal/cache"
	"github.com/krib-platform/super-admin-backend/internal/platform"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// pageSize is the fixed page size for paginated pulls. Pagination terminates
// on the first empty page, not on a total count, because not every platform
// reports totals.
const pageSize = 100

// PlatformStore looks up platform configuration and records health probes.
type PlatformStore interface {
	GetByName(ctx context.Context, name string) (*domain.Platform, error)
	UpdateHealth(ctx context.Context, id, status string, checkedAt time.Time) error
}

// PropertyStore is the slice of the canonical store the property sync needs.
type PropertyStore interface {
	Upsert(ctx context.Context, p *domain.Property) (string, error)
	FindIDByPlatformProperty(ctx context.Context, platformID, platformPropertyID string) (string, error)
}

type BookingStore interface {
	Upsert(ctx context.Context, b *domain.Booking) (string, error)
}

type VerificationStore interface {
	Upsert(ctx context.Context, v *domain.VerificationQueueItem) (string, error)
}

// HostAPI, AgentAPI and CustomerAPI are the platform-client surfaces the
// Synchronizer consumes. The concrete clients in internal/platform satisfy
// them; tests substitute fakes.
type HostAPI interface {
	Users(ctx context.Context) (*platform.Collection, error)
	Properties(ctx context.Context, page, limit int, status string) (*platform.Collection, error)
	Bookings(ctx context.Context, page, limit int, status string) (*platform.Collection, error)
	HealthCheck(ctx context.Context) bool
}

type AgentAPI interface {
	Agents(ctx context.Context) (*platform.Collection, error)
	Properties(ctx context.Context, page, limit int) (*platform.Collection, error)
	PendingVerifications(ctx context.Context) (*platform.Collection, error)
	HealthCheck(ctx context.Context) bool
}

type CustomerAPI interface {
	Users(ctx context.Context) (*platform.Collection, error)
	Bookings(ctx context.Context, page, limit int) (*platform.Collection, error)
	HealthCheck(ctx context.Context) bool
}

// Deps wires the Synchronizer. The client factories default to the real
// platform clients when left nil.
type Deps struct {
	Platforms     PlatformStore
	Users         UserStore
	Properties    PropertyStore
	Bookings      BookingStore
	Verifications VerificationStore
	Cache         *cache.Store

	NewHostClient     func(baseURL, apiKey string) HostAPI
	NewAgentClient    func(baseURL, apiKey string) AgentAPI
	NewCustomerClient func(baseURL, apiKey string) CustomerAPI
}

// Service reconciles all three source platforms into the canonical store.
// Platforms are synced strictly one after another so a single platform's
// failure stays contained in its own branch.
type Service struct {
	platforms     PlatformStore
	resolver      *Resolver
	properties    PropertyStore
	bookings      BookingStore
	verifications VerificationStore
	limiter       *rate.Limiter

	newHost     func(baseURL, apiKey string) HostAPI
	newAgent    func(baseURL, apiKey string) AgentAPI
	newCustomer func(baseURL, apiKey string) CustomerAPI
}

func NewService(d Deps) *Service {
	s := &Service{
		platforms:     d.Platforms,
		resolver:      NewResolver(d.Users),
		properties:    d.Properties,
		bookings:      d.Bookings,
		verifications: d.Verifications,
		// paces page fetches so a full backfill does not hammer a platform
		limiter:     rate.NewLimiter(rate.Limit(10), 10),
		newHost:     d.NewHostClient,
		newAgent:    d.NewAgentClient,
		newCustomer: d.NewCustomerClient,
	}

	if s.newHost == nil {
		s.newHost = func(baseURL, apiKey string) HostAPI {
			return platform.NewHostClient(baseURL, apiKey, d.Cache)
		}
	}
	if s.newAgent == nil {
		s.newAgent = func(baseURL, apiKey string) AgentAPI {
			return platform.NewAgentClient(baseURL, apiKey, d.Cache)
		}
	}
	if s.newCustomer == nil {
		s.newCustomer = func(baseURL, apiKey string) CustomerAPI {
			return platform.NewCustomerClient(baseURL, apiKey, d.Cache)
		}
	}

	return s
}

// SyncAll runs one full pass over every platform. It never returns an error;
// failures are contained per resource branch and surfaced in the report.
func (s *Service) SyncAll(ctx context.Context) *RunReport {
	log.Printf("[info] operation=sync_all message=starting full platform sync")
	report := &RunReport{StartedAt: time.Now().UTC()}

	for _, name := range []string{
		domain.PlatformHostDashboard,
		domain.PlatformAgentDashboard,
		domain.PlatformCustomerPlatform,
	} {
		if err := ctx.Err(); err != nil {
			report.Platforms = append(report.Platforms, PlatformReport{Platform: name, Error: err.Error()})
			continue
		}
		report.Platforms = append(report.Platforms, s.syncPlatform(ctx, name))
	}

	report.FinishedAt = time.Now().UTC()
	log.Printf("[info] operation=sync_all message=full platform sync completed")
	return report
}

func (s *Service) syncPlatform(ctx context.Context, name string) PlatformReport {
	pr := PlatformReport{Platform: name}

	p, err := s.platforms.GetByName(ctx, name)
	if err != nil {
		// a missing platform record aborts only this branch
		log.Printf("[warn] operation=sync platform=%s error=%v", name, err)
		pr.Error = err.Error()
		return pr
	}

	switch name {
	case domain.PlatformHostDashboard:
		s.syncHostPlatform(ctx, p, &pr)
	case domain.PlatformAgentDashboard:
		s.syncAgentPlatform(ctx, p, &pr)
	case domain.PlatformCustomerPlatform:
		s.syncCustomerPlatform(ctx, p, &pr)
	}

	log.Printf("[info] operation=sync platform=%s message=branch completed", name)
	return pr
}

func (s *Service) syncHostPlatform(ctx context.Context, p *domain.Platform, pr *PlatformReport) {
	client := s.newHost(p.APIBaseURL, p.APIKey)
	pr.Healthy = s.recordHealth(ctx, p, client.HealthCheck(ctx))

	if col, err := client.Users(ctx); err != nil {
		log.Printf("[error] operation=sync_users platform=%s error=%v", p.Name, err)
		pr.Users.Error = err.Error()
	} else {
		s.syncUsers(ctx, p.ID, col.Data, domain.UserTypeHost, &pr.Users)
	}

	s.syncPropertyPages(ctx, p.ID, domain.ListingShortTerm, &pr.Properties, func(page int) (*platform.Collection, error) {
		return client.Properties(ctx, page, pageSize, "")
	})

	if col, err := client.Bookings(ctx, 1, pageSize, ""); err != nil {
		log.Printf("[error] operation=sync_bookings platform=%s error=%v", p.Name, err)
		pr.Bookings.Error = err.Error()
	} else {
		s.syncBookings(ctx, p.ID, col.Data, &pr.Bookings)
	}
}

func (s *Service) syncAgentPlatform(ctx context.Context, p *domain.Platform, pr *PlatformReport) {
	client := s.newAgent(p.APIBaseURL, p.APIKey)
	pr.Healthy = s.recordHealth(ctx, p, client.HealthCheck(ctx))

	if col, err := client.Agents(ctx); err != nil {
		log.Printf("[error] operation=sync_agents platform=%s error=%v", p.Name, err)
		pr.Users.Error = err.Error()
	} else {
		s.syncUsers(ctx, p.ID, col.Data, domain.UserTypeAgent, &pr.Users)
	}

	s.syncPropertyPages(ctx, p.ID, domain.ListingLongTerm, &pr.Properties, func(page int) (*platform.Collection, error) {
		return client.Properties(ctx, page, pageSize)
	})

	if col, err := client.PendingVerifications(ctx); err != nil {
		log.Printf("[error] operation=sync_verifications platform=%s error=%v", p.Name, err)
		pr.Verifications.Error = err.Error()
	} else {
		s.syncVerifications(ctx, p.ID, col.Data, &pr.Verifications)
	}
}

func (s *Service) syncCustomerPlatform(ctx context.Context, p *domain.Platform, pr *PlatformReport) {
	client := s.newCustomer(p.APIBaseURL, p.APIKey)
	pr.Healthy = s.recordHealth(ctx, p, client.HealthCheck(ctx))

	if col, err := client.Users(ctx); err != nil {
		log.Printf("[error] operation=sync_customers platform=%s error=%v", p.Name, err)
		pr.Users.Error = err.Error()
	} else {
		s.syncUsers(ctx, p.ID, col.Data, domain.UserTypeCustomer, &pr.Users)
	}

	if col, err := client.Bookings(ctx, 1, pageSize); err != nil {
		log.Printf("[error] operation=sync_bookings platform=%s error=%v", p.Name, err)
		pr.Bookings.Error = err.Error()
	} else {
		s.syncBookings(ctx, p.ID, col.Data, &pr.Bookings)
	}
}

func (s *Service) recordHealth(ctx context.Context, p *domain.Platform, healthy bool) bool {
	status := "active"
	if !healthy {
		status = "offline"
	}
	if err := s.platforms.UpdateHealth(ctx, p.ID, status, time.Now().UTC()); err != nil {
		log.Printf("[warn] operation=record_health platform=%s error=%v", p.Name, err)
	}
	return healthy
}

func (s *Service) syncUsers(ctx context.Context, platformID string, items []map[string]interface{}, userType domain.UserType, rep *ResourceReport) {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			rep.Error = err.Error()
			return
		}

		nativeID := getString(item, "id")
		if nativeID == "" {
			log.Printf("[warn] operation=sync_users platform_id=%s message=user without id skipped", platformID)
			rep.Skipped++
			continue
		}

		_, err := s.resolver.ResolveOrCreate(ctx, platformID, nativeID, getString(item, "email"), userType, item)
		if err != nil {
			log.Printf("[error] operation=sync_users platform_id=%s user=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}
		rep.Synced++
	}
}

// syncPropertyPages pulls pages of size 100 until the platform returns an
// empty one. Page N+1 is never requested before page N finished.
func (s *Service) syncPropertyPages(ctx context.Context, platformID string, listing domain.ListingType, rep *ResourceReport, fetch func(page int) (*platform.Collection, error)) {
	for page := 1; ; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			rep.Error = err.Error()
			return
		}

		col, err := fetch(page)
		if err != nil {
			log.Printf("[error] operation=sync_properties platform_id=%s page=%d error=%v", platformID, page, err)
			rep.Error = err.Error()
			return
		}
		if len(col.Data) == 0 {
			return
		}

		s.syncProperties(ctx, platformID, col.Data, listing, rep)
		if rep.Error != "" {
			return
		}
	}
}

func (s *Service) syncProperties(ctx context.Context, platformID string, items []map[string]interface{}, listing domain.ListingType, rep *ResourceReport) {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			rep.Error = err.Error()
			return
		}

		nativeID := getString(item, "id")
		if nativeID == "" {
			log.Printf("[warn] operation=sync_properties platform_id=%s message=property without id skipped", platformID)
			rep.Skipped++
			continue
		}

		// an unresolved owner is stored as null, never a reason to drop
		ownerID, err := s.resolver.Lookup(ctx, platformID, getString(item, "user_id"))
		if err != nil {
			log.Printf("[error] operation=sync_properties platform_id=%s property=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}

		prop := &domain.Property{
			PlatformID:         platformID,
			PlatformPropertyID: nativeID,
			OwnerUserID:        ownerID,
			Title:              getString(item, "title"),
			PropertyType:       getString(item, "property_type"),
			ListingType:        listing,
			City:               propertyCity(item),
			Price:              getFloat(item, "base_price_per_night", "price"),
			PriceCurrency:      priceCurrency(item),
			Status:             stringOr(item, "status", "active"),
			IsFeatured:         getBool(item, "is_featured"),
			PlatformData:       item,
		}

		if _, err := s.properties.Upsert(ctx, prop); err != nil {
			log.Printf("[error] operation=sync_properties platform_id=%s property=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}
		rep.Synced++
	}
}

func (s *Service) syncBookings(ctx context.Context, platformID string, items []map[string]interface{}, rep *ResourceReport) {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			rep.Error = err.Error()
			return
		}

		nativeID := getString(item, "id")
		if nativeID == "" {
			log.Printf("[warn] operation=sync_bookings platform_id=%s message=booking without id skipped", platformID)
			rep.Skipped++
			continue
		}

		// a booking is only stored once its property is known; it becomes
		// insertable on a later run after the property sync catches up
		propertyID, err := s.properties.FindIDByPlatformProperty(ctx, platformID, getString(item, "property_id"))
		if err != nil {
			log.Printf("[warn] operation=sync_bookings platform_id=%s booking=%s message=property not found, skipped", platformID, nativeID)
			rep.Skipped++
			continue
		}

		guestID, err := s.resolveBookingParty(ctx, platformID, getString(item, "guest_id"), domain.UserTypeGuest)
		if err != nil {
			log.Printf("[error] operation=sync_bookings platform_id=%s booking=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}
		hostID, err := s.resolveBookingParty(ctx, platformID, getString(item, "host_id"), domain.UserTypeHost)
		if err != nil {
			log.Printf("[error] operation=sync_bookings platform_id=%s booking=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}

		booking := &domain.Booking{
			PlatformID:        platformID,
			PlatformBookingID: nativeID,
			PropertyID:        propertyID,
			GuestUserID:       guestID,
			HostUserID:        hostID,
			CheckIn:           getString(item, "check_in"),
			CheckOut:          getString(item, "check_out"),
			TotalPrice:        getFloat(item, "total_price"),
			Status:            stringOr(item, "status", "pending"),
			PaymentStatus:     stringOr(item, "payment_status", "pending"),
			PlatformData:      item,
		}

		if _, err := s.bookings.Upsert(ctx, booking); err != nil {
			log.Printf("[error] operation=sync_bookings platform_id=%s booking=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}
		rep.Synced++
	}
}

// resolveBookingParty creates the referenced user when the booking mentions
// someone the user sync has not seen yet. A booking carries no profile data,
// so an already-known party is returned as-is; rewriting the row here would
// wipe the fields the user sync filled in.
func (s *Service) resolveBookingParty(ctx context.Context, platformID, nativeID string, userType domain.UserType) (string, error) {
	if nativeID == "" {
		return "", nil
	}

	id, err := s.resolver.Lookup(ctx, platformID, nativeID)
	if err != nil || id != "" {
		return id, err
	}
	return s.resolver.ResolveOrCreate(ctx, platformID, nativeID, "", userType, nil)
}

func (s *Service) syncVerifications(ctx context.Context, platformID string, items []map[string]interface{}, rep *ResourceReport) {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			rep.Error = err.Error()
			return
		}

		nativeID := getString(item, "id")
		if nativeID == "" {
			log.Printf("[warn] operation=sync_verifications platform_id=%s message=item without id skipped", platformID)
			rep.Skipped++
			continue
		}

		// The agent sync owns the full profile; a verification item carries
		// only a slice of it, so an agent that already resolved keeps its row.
		userID, err := s.resolver.Lookup(ctx, platformID, nativeID)
		if err == nil && userID == "" {
			userID, err = s.resolver.ResolveOrCreate(ctx, platformID, nativeID, getString(item, "email"), domain.UserTypeAgent, map[string]interface{}{
				"first_name":          item["first_name"],
				"last_name":           item["last_name"],
				"phone":               item["phone"],
				"verification_status": item["verification_status"],
			})
		}
		if err != nil {
			log.Printf("[error] operation=sync_verifications platform_id=%s user=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}

		v := &domain.VerificationQueueItem{
			PlatformID:       platformID,
			UserID:           userID,
			PlatformUserID:   nativeID,
			VerificationType: "agent_registration",
			Status:           domain.MapVerificationStatus(getString(item, "verification_status")),
			Documents:        asMap(item["documents"]),
		}

		if _, err := s.verifications.Upsert(ctx, v); err != nil {
			log.Printf("[error] operation=sync_verifications platform_id=%s user=%s error=%v", platformID, nativeID, err)
			rep.Skipped++
			continue
		}
		rep.Synced++
	}
}
