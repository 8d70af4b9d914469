package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krib-platform/super-admin-backend/internal/platform"
	"github.com/krib-platform/super-admin-backend/internal/unified/domain"
)

// --- in-memory stores ---

type fakePlatforms struct {
	rows   map[string]*domain.Platform
	health map[string]string
}

func newFakePlatforms(names ...string) *fakePlatforms {
	f := &fakePlatforms{rows: map[string]*domain.Platform{}, health: map[string]string{}}
	for i, name := range names {
		f.rows[name] = &domain.Platform{
			ID:         fmt.Sprintf("pf-%d", i+1),
			Name:       name,
			APIBaseURL: "http://" + name,
			APIKey:     "key",
		}
	}
	return f
}

func (f *fakePlatforms) GetByName(_ context.Context, name string) (*domain.Platform, error) {
	p, ok := f.rows[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePlatforms) UpdateHealth(_ context.Context, id, status string, _ time.Time) error {
	f.health[id] = status
	return nil
}

type fakeUsers struct {
	ids     map[string]string
	byID    map[string]*domain.User
	upserts int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{ids: map[string]string{}, byID: map[string]*domain.User{}}
}

func userKey(platformID, platformUserID string) string {
	return platformID + "/" + platformUserID
}

func (f *fakeUsers) Upsert(_ context.Context, u *domain.User) (string, error) {
	f.upserts++
	key := userKey(u.PlatformID, u.PlatformUserID)
	id, ok := f.ids[key]
	if !ok {
		id = fmt.Sprintf("user-%d", len(f.ids)+1)
		f.ids[key] = id
	}
	copied := *u
	copied.ID = id
	f.byID[id] = &copied
	return id, nil
}

func (f *fakeUsers) FindIDByPlatformUser(_ context.Context, platformID, platformUserID string) (string, error) {
	id, ok := f.ids[userKey(platformID, platformUserID)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return id, nil
}

type fakeProperties struct {
	ids  map[string]string
	rows map[string]*domain.Property
}

func newFakeProperties() *fakeProperties {
	return &fakeProperties{ids: map[string]string{}, rows: map[string]*domain.Property{}}
}

func (f *fakeProperties) Upsert(_ context.Context, p *domain.Property) (string, error) {
	key := p.PlatformID + "/" + p.PlatformPropertyID
	id, ok := f.ids[key]
	if !ok {
		id = fmt.Sprintf("prop-%d", len(f.ids)+1)
		f.ids[key] = id
	}
	copied := *p
	copied.ID = id
	f.rows[id] = &copied
	return id, nil
}

func (f *fakeProperties) FindIDByPlatformProperty(_ context.Context, platformID, platformPropertyID string) (string, error) {
	id, ok := f.ids[platformID+"/"+platformPropertyID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return id, nil
}

type fakeBookings struct {
	ids  map[string]string
	rows map[string]*domain.Booking
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{ids: map[string]string{}, rows: map[string]*domain.Booking{}}
}

func (f *fakeBookings) Upsert(_ context.Context, b *domain.Booking) (string, error) {
	key := b.PlatformID + "/" + b.PlatformBookingID
	id, ok := f.ids[key]
	if !ok {
		id = fmt.Sprintf("bk-%d", len(f.ids)+1)
		f.ids[key] = id
	}
	copied := *b
	copied.ID = id
	f.rows[id] = &copied
	return id, nil
}

type fakeVerifications struct {
	ids  map[string]string
	rows map[string]*domain.VerificationQueueItem
}

func newFakeVerifications() *fakeVerifications {
	return &fakeVerifications{ids: map[string]string{}, rows: map[string]*domain.VerificationQueueItem{}}
}

func (f *fakeVerifications) Upsert(_ context.Context, v *domain.VerificationQueueItem) (string, error) {
	key := v.PlatformID + "/" + v.PlatformUserID
	id, ok := f.ids[key]
	if !ok {
		id = fmt.Sprintf("vq-%d", len(f.ids)+1)
		f.ids[key] = id
	}
	copied := *v
	copied.ID = id
	f.rows[id] = &copied
	return id, nil
}

// --- fake platform clients ---

func page(items ...map[string]interface{}) *platform.Collection {
	return &platform.Collection{Data: items, Total: len(items)}
}

type fakeHost struct {
	users         *platform.Collection
	usersErr      error
	propertyPages []*platform.Collection
	propertyCalls int
	bookings      *platform.Collection
	bookingsErr   error
	healthy       bool
}

func (f *fakeHost) Users(context.Context) (*platform.Collection, error) {
	return f.users, f.usersErr
}

func (f *fakeHost) Properties(_ context.Context, pageNum, limit int, _ string) (*platform.Collection, error) {
	f.propertyCalls++
	if pageNum <= len(f.propertyPages) {
		return f.propertyPages[pageNum-1], nil
	}
	return page(), nil
}

func (f *fakeHost) Bookings(context.Context, int, int, string) (*platform.Collection, error) {
	return f.bookings, f.bookingsErr
}

func (f *fakeHost) HealthCheck(context.Context) bool { return f.healthy }

type fakeAgent struct {
	agents        *platform.Collection
	propertyPages []*platform.Collection
	pending       *platform.Collection
	healthy       bool
}

func (f *fakeAgent) Agents(context.Context) (*platform.Collection, error) {
	return f.agents, nil
}

func (f *fakeAgent) Properties(_ context.Context, pageNum, limit int) (*platform.Collection, error) {
	if pageNum <= len(f.propertyPages) {
		return f.propertyPages[pageNum-1], nil
	}
	return page(), nil
}

func (f *fakeAgent) PendingVerifications(context.Context) (*platform.Collection, error) {
	return f.pending, nil
}

func (f *fakeAgent) HealthCheck(context.Context) bool { return f.healthy }

type fakeCustomer struct {
	users    *platform.Collection
	bookings *platform.Collection
	healthy  bool
}

func (f *fakeCustomer) Users(context.Context) (*platform.Collection, error) {
	return f.users, nil
}

func (f *fakeCustomer) Bookings(context.Context, int, int) (*platform.Collection, error) {
	return f.bookings, nil
}

func (f *fakeCustomer) HealthCheck(context.Context) bool { return f.healthy }

type fixture struct {
	platforms     *fakePlatforms
	users         *fakeUsers
	properties    *fakeProperties
	bookings      *fakeBookings
	verifications *fakeVerifications

	host     *fakeHost
	agent    *fakeAgent
	customer *fakeCustomer

	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		platforms: newFakePlatforms(
			domain.PlatformHostDashboard,
			domain.PlatformAgentDashboard,
			domain.PlatformCustomerPlatform,
		),
		users:         newFakeUsers(),
		properties:    newFakeProperties(),
		bookings:      newFakeBookings(),
		verifications: newFakeVerifications(),
		host:          &fakeHost{users: page(), bookings: page(), healthy: true},
		agent:         &fakeAgent{agents: page(), pending: page(), healthy: true},
		customer:      &fakeCustomer{users: page(), bookings: page(), healthy: true},
	}

	f.service = NewService(Deps{
		Platforms:         f.platforms,
		Users:             f.users,
		Properties:        f.properties,
		Bookings:          f.bookings,
		Verifications:     f.verifications,
		NewHostClient:     func(string, string) HostAPI { return f.host },
		NewAgentClient:    func(string, string) AgentAPI { return f.agent },
		NewCustomerClient: func(string, string) CustomerAPI { return f.customer },
	})
	return f
}

func reportFor(t *testing.T, report *RunReport, name string) PlatformReport {
	t.Helper()
	for _, pr := range report.Platforms {
		if pr.Platform == name {
			return pr
		}
	}
	t.Fatalf("no report for platform %s", name)
	return PlatformReport{}
}

func TestSyncAll_FullPass(t *testing.T) {
	f := newFixture(t)

	f.host.users = page(
		map[string]interface{}{"id": "h1", "email": "h1@example.com", "first_name": "Hana", "last_name": "Said"},
		map[string]interface{}{"id": "h2", "email": "h2@example.com"},
	)
	f.host.propertyPages = []*platform.Collection{page(
		map[string]interface{}{"id": "p1", "user_id": "h1", "title": "Marina Loft", "base_price_per_night": 420.0},
	)}
	f.host.bookings = page(
		map[string]interface{}{"id": "b1", "property_id": "p1", "guest_id": "g1", "host_id": "h1", "total_price": 840.0, "status": "confirmed"},
	)
	f.agent.agents = page(
		map[string]interface{}{"id": "a1", "email": "a1@example.com"},
	)
	f.agent.pending = page(
		map[string]interface{}{"id": "a1", "email": "a1@example.com", "verification_status": "under_review"},
	)
	f.customer.users = page(
		map[string]interface{}{"id": "c1", "email": "c1@example.com"},
	)

	report := f.service.SyncAll(context.Background())

	require.Len(t, report.Platforms, 3)

	host := reportFor(t, report, domain.PlatformHostDashboard)
	assert.True(t, host.Healthy)
	assert.Equal(t, 2, host.Users.Synced)
	assert.Equal(t, 1, host.Properties.Synced)
	assert.Equal(t, 1, host.Bookings.Synced)

	agent := reportFor(t, report, domain.PlatformAgentDashboard)
	assert.Equal(t, 1, agent.Users.Synced)
	assert.Equal(t, 1, agent.Verifications.Synced)

	customer := reportFor(t, report, domain.PlatformCustomerPlatform)
	assert.Equal(t, 1, customer.Users.Synced)

	// booking parties created on demand: h1, h2, g1, a1, c1
	assert.Len(t, f.users.ids, 5)
	assert.Equal(t, "active", f.platforms.health["pf-1"])

	// the agent verification arrives mapped to the canonical status
	require.Len(t, f.verifications.rows, 1)
	for _, v := range f.verifications.rows {
		assert.Equal(t, domain.VerificationInReview, v.Status)
		assert.Equal(t, "agent_registration", v.VerificationType)
	}
}

func TestSyncAll_RepeatRunsAreIdempotent(t *testing.T) {
	f := newFixture(t)

	f.host.users = page(map[string]interface{}{"id": "h1", "email": "h1@example.com"})
	f.host.propertyPages = []*platform.Collection{page(
		map[string]interface{}{"id": "p1", "user_id": "h1"},
	)}

	first := f.service.SyncAll(context.Background())
	second := f.service.SyncAll(context.Background())

	assert.Equal(t, 1, reportFor(t, first, domain.PlatformHostDashboard).Users.Synced)
	assert.Equal(t, 1, reportFor(t, second, domain.PlatformHostDashboard).Users.Synced)

	// no duplicate canonical rows on the second pass
	assert.Len(t, f.users.ids, 1)
	assert.Len(t, f.properties.ids, 1)
}

func TestSyncAll_MissingPlatformRowIsolated(t *testing.T) {
	f := newFixture(t)
	delete(f.platforms.rows, domain.PlatformAgentDashboard)

	f.host.users = page(map[string]interface{}{"id": "h1", "email": "h1@example.com"})
	f.customer.users = page(map[string]interface{}{"id": "c1", "email": "c1@example.com"})

	report := f.service.SyncAll(context.Background())

	agent := reportFor(t, report, domain.PlatformAgentDashboard)
	assert.NotEmpty(t, agent.Error)

	assert.Equal(t, 1, reportFor(t, report, domain.PlatformHostDashboard).Users.Synced)
	assert.Equal(t, 1, reportFor(t, report, domain.PlatformCustomerPlatform).Users.Synced)
}

func TestSyncAll_ResourceFailureDoesNotStopSiblings(t *testing.T) {
	f := newFixture(t)

	f.host.usersErr = errors.New("upstream 500")
	f.host.propertyPages = []*platform.Collection{page(
		map[string]interface{}{"id": "p1"},
	)}

	report := f.service.SyncAll(context.Background())

	host := reportFor(t, report, domain.PlatformHostDashboard)
	assert.Contains(t, host.Users.Error, "upstream 500")
	assert.Equal(t, 1, host.Properties.Synced)
}

func TestSyncPropertyPages_TerminatesOnEmptyPage(t *testing.T) {
	f := newFixture(t)

	full := func(prefix string, n int) *platform.Collection {
		items := make([]map[string]interface{}, n)
		for i := range items {
			items[i] = map[string]interface{}{"id": fmt.Sprintf("%s-%d", prefix, i)}
		}
		return page(items...)
	}
	f.host.propertyPages = []*platform.Collection{
		full("a", pageSize),
		full("b", pageSize),
		full("c", 37),
	}

	report := f.service.SyncAll(context.Background())

	host := reportFor(t, report, domain.PlatformHostDashboard)
	assert.Equal(t, 2*pageSize+37, host.Properties.Synced)
	// three data pages plus the terminating empty one
	assert.Equal(t, 4, f.host.propertyCalls)
}

func TestSyncBookings_SkipsUntilPropertyKnown(t *testing.T) {
	f := newFixture(t)

	f.host.bookings = page(
		map[string]interface{}{"id": "b1", "property_id": "p-unknown", "guest_id": "g1"},
	)

	report := f.service.SyncAll(context.Background())
	host := reportFor(t, report, domain.PlatformHostDashboard)
	assert.Equal(t, 0, host.Bookings.Synced)
	assert.Equal(t, 1, host.Bookings.Skipped)
	assert.Empty(t, host.Bookings.Error)

	// the property shows up on the next run and the booking becomes insertable
	f.host.propertyPages = []*platform.Collection{page(
		map[string]interface{}{"id": "p-unknown", "user_id": "h1"},
	)}

	report = f.service.SyncAll(context.Background())
	host = reportFor(t, report, domain.PlatformHostDashboard)
	assert.Equal(t, 1, host.Bookings.Synced)
	require.Len(t, f.bookings.rows, 1)
}

func TestSyncBookings_CreatesUnknownParties(t *testing.T) {
	f := newFixture(t)

	f.host.propertyPages = []*platform.Collection{page(
		map[string]interface{}{"id": "p1", "user_id": "h1"},
	)}
	f.host.bookings = page(
		map[string]interface{}{"id": "b1", "property_id": "p1", "guest_id": "g-new", "host_id": "h1"},
	)

	f.service.SyncAll(context.Background())

	_, err := f.users.FindIDByPlatformUser(context.Background(), "pf-1", "g-new")
	assert.NoError(t, err)

	require.Len(t, f.bookings.rows, 1)
	for _, b := range f.bookings.rows {
		assert.NotEmpty(t, b.GuestUserID)
		assert.NotEmpty(t, b.HostUserID)
		assert.Equal(t, "pending", b.Status)
	}
}

func TestSyncBookings_PartyProfileSurvivesSync(t *testing.T) {
	f := newFixture(t)

	f.host.users = page(
		map[string]interface{}{"id": "h1", "email": "h1@example.com", "first_name": "Hana", "last_name": "Said", "phone": "+971500000001"},
	)
	f.host.propertyPages = []*platform.Collection{page(
		map[string]interface{}{"id": "p1", "user_id": "h1"},
	)}
	f.host.bookings = page(
		map[string]interface{}{"id": "b1", "property_id": "p1", "guest_id": "g1", "host_id": "h1"},
	)

	f.service.SyncAll(context.Background())
	f.service.SyncAll(context.Background())

	hostID, err := f.users.FindIDByPlatformUser(context.Background(), "pf-1", "h1")
	require.NoError(t, err)

	// the booking references h1 with no profile data; the row the user sync
	// wrote must come through untouched
	h1 := f.users.byID[hostID]
	require.NotNil(t, h1)
	assert.Equal(t, "h1@example.com", h1.Email)
	assert.Equal(t, "Hana Said", h1.FullName)
	assert.Equal(t, "+971500000001", h1.Phone)
	assert.NotEmpty(t, h1.PlatformData)

	// the guest really was unknown and gets a placeholder row
	guestID, err := f.users.FindIDByPlatformUser(context.Background(), "pf-1", "g1")
	require.NoError(t, err)
	assert.Empty(t, f.users.byID[guestID].Email)
}

func TestSyncVerifications_KeepExistingAgentProfile(t *testing.T) {
	f := newFixture(t)

	f.agent.agents = page(
		map[string]interface{}{"id": "a1", "email": "a1@example.com", "first_name": "Amal", "last_name": "Haddad", "license_number": "RERA-1234"},
	)
	f.agent.pending = page(
		map[string]interface{}{"id": "a1", "email": "a1@example.com", "verification_status": "under_review"},
	)

	f.service.SyncAll(context.Background())

	agentID, err := f.users.FindIDByPlatformUser(context.Background(), "pf-2", "a1")
	require.NoError(t, err)

	// the verification item carries a partial profile; the full record from
	// the agent sync stays in place
	a1 := f.users.byID[agentID]
	require.NotNil(t, a1)
	assert.Equal(t, "Amal Haddad", a1.FullName)
	assert.Equal(t, "RERA-1234", a1.PlatformData["license_number"])

	require.Len(t, f.verifications.rows, 1)
}

func TestSyncProperties_UnresolvedOwnerStoredWithoutOwner(t *testing.T) {
	f := newFixture(t)

	f.host.propertyPages = []*platform.Collection{page(
		map[string]interface{}{"id": "p1", "user_id": "nobody", "title": "Orphan Villa"},
	)}

	report := f.service.SyncAll(context.Background())
	host := reportFor(t, report, domain.PlatformHostDashboard)
	assert.Equal(t, 1, host.Properties.Synced)

	require.Len(t, f.properties.rows, 1)
	for _, p := range f.properties.rows {
		assert.Empty(t, p.OwnerUserID)
		assert.Equal(t, domain.DefaultCurrency, p.PriceCurrency)
	}
}

func TestSyncAll_OfflinePlatformRecorded(t *testing.T) {
	f := newFixture(t)
	f.customer.healthy = false

	report := f.service.SyncAll(context.Background())

	customer := reportFor(t, report, domain.PlatformCustomerPlatform)
	assert.False(t, customer.Healthy)
	assert.Equal(t, "offline", f.platforms.health["pf-3"])
}

func TestSyncAll_CancelledContext(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := f.service.SyncAll(ctx)

	require.Len(t, report.Platforms, 3)
	for _, pr := range report.Platforms {
		assert.NotEmpty(t, pr.Error)
	}
}
