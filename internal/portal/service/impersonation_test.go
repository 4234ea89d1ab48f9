package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func start(t *testing.T, svc *ImpersonationService, target string) domain.ImpersonationSession {
	t.Helper()
	sess, err := svc.Start(context.Background(), StartRequest{
		AdminID:      adminID,
		TargetUserID: target,
		Reason:       "support ticket #42",
	})
	require.NoError(t, err)
	return sess
}

func TestStatusWithoutSession(t *testing.T) {
	s := newTestStore(t)
	svc := newImpersonationService(t, s, newFakeClock())

	st := svc.Status(context.Background(), adminID)
	require.False(t, st.Active())
	require.Nil(t, st.Session)

	require.False(t, svc.Status(context.Background(), "").Active())
}

func TestImpersonationLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	clk := newFakeClock()
	svc := newImpersonationService(t, s, clk)

	sess := start(t, svc, memberID)
	require.Equal(t, adminID, sess.AdminID)
	require.Equal(t, memberID, sess.TargetUserID)
	require.Equal(t, "org-1", sess.OrganizationID)
	require.NotNil(t, sess.ExpiresAt)
	require.True(t, sess.ExpiresAt.Equal(clk.Now().Add(DefaultImpersonationTTL)))

	st := svc.Status(ctx, adminID)
	require.True(t, st.Active())
	require.Equal(t, sess.ID, st.Session.ID)

	target, ok := svc.ActingAs(ctx, adminID)
	require.True(t, ok)
	require.Equal(t, memberID, target)

	t.Run("second start conflicts", func(t *testing.T) {
		_, err := svc.Start(ctx, StartRequest{AdminID: adminID, TargetUserID: ownerID, Reason: "again"})
		require.ErrorIs(t, err, ErrImpersonationActive)
	})

	res, err := svc.Stop(ctx, adminID)
	require.NoError(t, err)
	require.NotNil(t, res.Ended)
	require.Equal(t, sess.ID, res.Ended.ID)
	require.Equal(t, domain.EndReasonStopped, res.Ended.EndReason)

	require.False(t, svc.Status(ctx, adminID).Active())
	_, ok = svc.ActingAs(ctx, adminID)
	require.False(t, ok)

	t.Run("stop with nothing active succeeds", func(t *testing.T) {
		res, err := svc.Stop(ctx, adminID)
		require.NoError(t, err)
		require.Nil(t, res.Ended)
	})

	events, err := svc.Audit.List(ctx, domain.AuditFilter{ActorID: adminID})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, domain.AuditImpersonationStop, events[0].Action)
	require.Equal(t, domain.AuditImpersonationStart, events[1].Action)
	require.Equal(t, "support ticket #42", events[1].Metadata["reason"])
	require.Equal(t, sess.ID.String(), events[0].Metadata["session_id"])
}

func TestStartValidation(t *testing.T) {
	s := newTestStore(t)
	svc := newImpersonationService(t, s, newFakeClock())

	cases := []struct {
		name string
		req  StartRequest
		want error
	}{
		{"missing admin", StartRequest{TargetUserID: memberID, Reason: "x"}, ErrAdminRequired},
		{"self", StartRequest{AdminID: adminID, TargetUserID: adminID, Reason: "x"}, ErrInvalidTarget},
		{"blank reason", StartRequest{AdminID: adminID, TargetUserID: memberID, Reason: "   "}, ErrReasonRequired},
		{"unknown target", StartRequest{AdminID: adminID, TargetUserID: "nobody", Reason: "x"}, ErrTargetNotFound},
		{"empty target", StartRequest{AdminID: adminID, Reason: "x"}, ErrTargetNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Start(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("admin target", func(t *testing.T) {
		ctx := context.Background()
		other := "d0000000-0000-4000-8000-000000000004"
		require.NoError(t, s.Users().UpsertUser(ctx, domain.User{
			ID: other, Email: "other-admin@example.com", Role: domain.RoleAdmin,
		}))
		_, err := svc.Start(ctx, StartRequest{AdminID: adminID, TargetUserID: other, Reason: "x"})
		require.ErrorIs(t, err, ErrInvalidTarget)
	})

	require.False(t, svc.Status(context.Background(), adminID).Active())
}

func TestExpiredSessionIsInactiveAndSwept(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	clk := newFakeClock()
	svc := newImpersonationService(t, s, clk)
	svc.TTL = time.Hour

	first := start(t, svc, memberID)

	clk.Advance(time.Hour)
	require.False(t, svc.Status(ctx, adminID).Active())

	// Start sweeps the expired session out of the way.
	second := start(t, svc, ownerID)
	require.NotEqual(t, first.ID, second.ID)

	expired, err := svc.Audit.List(ctx, domain.AuditFilter{Action: domain.AuditImpersonationExpire})
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, first.ID.String(), expired[0].Metadata["session_id"])

	clk.Advance(2 * time.Hour)
	n, err := svc.ExpireSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = svc.ExpireSessions(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestStopAfterExpiryRecordsExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	clk := newFakeClock()
	svc := newImpersonationService(t, s, clk)
	svc.TTL = time.Hour

	sess := start(t, svc, memberID)
	clk.Advance(time.Hour + time.Minute)

	res, err := svc.Stop(ctx, adminID)
	require.NoError(t, err)
	require.Nil(t, res.Ended)

	stops, err := svc.Audit.List(ctx, domain.AuditFilter{Action: domain.AuditImpersonationStop})
	require.NoError(t, err)
	require.Empty(t, stops)

	expired, err := svc.Audit.List(ctx, domain.AuditFilter{Action: domain.AuditImpersonationExpire})
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, sess.ID.String(), expired[0].Metadata["session_id"])
}

func TestNoExpiryWhenTTLDisabled(t *testing.T) {
	s := newTestStore(t)
	clk := newFakeClock()
	svc := newImpersonationService(t, s, clk)
	svc.TTL = 0

	sess := start(t, svc, memberID)
	require.Nil(t, sess.ExpiresAt)

	clk.Advance(30 * 24 * time.Hour)
	require.True(t, svc.Status(context.Background(), adminID).Active())
}

func TestConcurrentStops(t *testing.T) {
	s := newTestStore(t)
	svc := newImpersonationService(t, s, newFakeClock())
	start(t, svc, memberID)

	const n = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ended int
		errs  []error
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Stop(context.Background(), adminID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if res.Ended != nil {
				ended++
			}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Equal(t, 1, ended)
	require.False(t, svc.Status(context.Background(), adminID).Active())
}

func TestFailingSessionBackend(t *testing.T) {
	s := newTestStore(t)
	svc := newImpersonationService(t, s, newFakeClock())
	svc.Sessions = brokenSessions{}

	st := svc.Status(context.Background(), adminID)
	require.False(t, st.Active())

	_, ok := svc.ActingAs(context.Background(), adminID)
	require.False(t, ok)

	_, err := svc.Stop(context.Background(), adminID)
	require.ErrorIs(t, err, errBackendDown)

	_, err = svc.Start(context.Background(), StartRequest{AdminID: adminID, TargetUserID: memberID, Reason: "x"})
	require.ErrorIs(t, err, errBackendDown)
}

func TestStartRequiresTOTPWhenEnrolled(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newImpersonationService(t, s, newFakeClock())

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "Spotter", AccountName: "admin@example.com"})
	require.NoError(t, err)
	secret := key.Secret()
	require.NoError(t, s.Users().UpdateMFASecret(ctx, adminID, &secret))

	req := StartRequest{AdminID: adminID, TargetUserID: memberID, Reason: "billing question"}

	_, err = svc.Start(ctx, req)
	require.ErrorIs(t, err, ErrOTPRequired)

	req.OTP = "000000"
	if totp.Validate(req.OTP, secret) {
		req.OTP = "999999"
	}
	_, err = svc.Start(ctx, req)
	require.ErrorIs(t, err, ErrInvalidTOTPCode)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	req.OTP = code
	_, err = svc.Start(ctx, req)
	require.NoError(t, err)
}

func TestStartFallsBackToDirectory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newImpersonationService(t, s, newFakeClock())

	remote := "e0000000-0000-4000-8000-000000000005"
	svc.Directory = fakeDirectory{
		remote: {ID: remote, Email: "remote@example.com", Role: domain.RoleStaff, OrganizationID: "org-1"},
	}

	sess := start(t, svc, remote)
	require.Equal(t, "org-1", sess.OrganizationID)

	mirrored, err := s.Users().GetUserByID(ctx, remote)
	require.NoError(t, err)
	require.Equal(t, "remote@example.com", mirrored.Email)

	_, err = svc.Stop(ctx, adminID)
	require.NoError(t, err)

	_, err = svc.Start(ctx, StartRequest{AdminID: adminID, TargetUserID: "f0000000-0000-4000-8000-000000000006", Reason: "x"})
	require.ErrorIs(t, err, ErrTargetNotFound)
}
