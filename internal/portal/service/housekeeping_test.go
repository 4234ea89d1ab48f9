package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/metrics"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHousekeepingSweepsAndStopsCleanly(t *testing.T) {
	s := newTestStore(t)
	clk := newFakeClock()
	imp := newImpersonationService(t, s, clk)
	imp.TTL = time.Minute
	m := metrics.New()
	imp.Metrics = m

	start(t, imp, memberID)
	clk.Advance(time.Minute)

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hk, err := NewHousekeepingService(imp, &CalendarService{Store: s, Now: clk.Now}, m, slogx.Discard(), "@every 1h")
	require.NoError(t, err)
	hk.Start()
	hk.Stop()

	events, err := imp.Audit.List(context.Background(), domain.AuditFilter{Action: domain.AuditImpersonationExpire})
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.Equal(t, 1.0, testutil.ToFloat64(m.ImpersonationEventsTotal.WithLabelValues(metrics.EventExpire)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.HousekeepingRunsTotal.WithLabelValues("impersonation_sessions", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.HousekeepingRunsTotal.WithLabelValues("oauth_states", "ok")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.ImpersonationActive))
}

func TestHousekeepingRecordsFailures(t *testing.T) {
	s := newTestStore(t)
	imp := newImpersonationService(t, s, newFakeClock())
	imp.Sessions = brokenSessions{}
	m := metrics.New()

	hk, err := NewHousekeepingService(imp, nil, m, slogx.Discard(), "")
	require.NoError(t, err)
	require.Equal(t, DefaultHousekeepingSchedule, hk.Schedule)

	hk.Cleanup(context.Background())
	require.Equal(t, 1.0, testutil.ToFloat64(m.HousekeepingRunsTotal.WithLabelValues("impersonation_sessions", "error")))
}

func TestHousekeepingSchedule(t *testing.T) {
	for _, spec := range []string{"*/5 * * * *", "@hourly", "@every 30s"} {
		_, err := NewHousekeepingService(nil, nil, nil, slogx.Discard(), spec)
		require.NoError(t, err, spec)
	}

	_, err := NewHousekeepingService(nil, nil, nil, slogx.Discard(), "every minute please")
	require.Error(t, err)
}
