package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

const (
	adminID  = "a0000000-0000-4000-8000-000000000001"
	memberID = "b0000000-0000-4000-8000-000000000002"
	ownerID  = "c0000000-0000-4000-8000-000000000003"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, s.Organizations().UpsertOrganization(ctx, domain.Organization{
		ID: "org-1", Name: "Iron Temple", Slug: "iron-temple", CreatedAt: now, UpdatedAt: now,
	}))
	for id, role := range map[string]string{
		adminID:  domain.RoleAdmin,
		memberID: domain.RoleMember,
		ownerID:  domain.RoleOwner,
	} {
		org := "org-1"
		if role == domain.RoleAdmin {
			org = ""
		}
		require.NoError(t, s.Users().UpsertUser(ctx, domain.User{
			ID:             id,
			Email:          role + "@example.com",
			Role:           role,
			OrganizationID: org,
			CreatedAt:      now,
			UpdatedAt:      now,
		}))
	}
	return s
}

// fakeClock is advanced by hand.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newImpersonationService(t *testing.T, s store.Store, clk *fakeClock) *ImpersonationService {
	t.Helper()
	return &ImpersonationService{
		Store:    s,
		Sessions: s.ImpersonationSessions(),
		Audit:    &AuditService{Store: s, Now: clk.Now},
		TTL:      DefaultImpersonationTTL,
		Now:      clk.Now,
	}
}

var errBackendDown = errors.New("backend down")

// brokenSessions fails every call.
type brokenSessions struct{}

func (brokenSessions) CreateSession(context.Context, domain.ImpersonationSession) error {
	return errBackendDown
}

func (brokenSessions) GetActiveSession(context.Context, string, time.Time) (domain.ImpersonationSession, error) {
	return domain.ImpersonationSession{}, errBackendDown
}

func (brokenSessions) EndSession(context.Context, string, domain.EndReason, time.Time) (domain.ImpersonationSession, error) {
	return domain.ImpersonationSession{}, errBackendDown
}

func (brokenSessions) EndExpiredSessions(context.Context, time.Time) ([]domain.ImpersonationSession, error) {
	return nil, errBackendDown
}

func (brokenSessions) CountActiveSessions(context.Context, time.Time) (int64, error) {
	return 0, errBackendDown
}

type fakeDirectory map[string]domain.User

func (d fakeDirectory) GetUser(_ context.Context, id string) (domain.User, error) {
	u, ok := d[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}
