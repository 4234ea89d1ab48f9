package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/spotter/internal/portal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := m.Middleware(mux)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /api/users/{id}", "418"))
	require.Equal(t, 3.0, got)
	require.Equal(t, 0.0, testutil.ToFloat64(m.HTTPInFlight))
}

func TestRecordersOnNil(t *testing.T) {
	var m *metrics.Metrics

	require.NotPanics(t, func() {
		m.ImpersonationEvent(metrics.EventStart)
		m.ImpersonationEvents(metrics.EventExpire, 3)
		m.SetActiveImpersonations(2)
		m.HousekeepingRun("sessions", nil)
		m.CalendarConnect("google", errors.New("x"))
		m.RateLimited("strict")(httptest.NewRequest(http.MethodGet, "/", nil))
	})

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	require.NotNil(t, m.Middleware(next))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := metrics.New()
	m.ImpersonationEvent(metrics.EventStop)
	m.HousekeepingRun("oauth_states", errors.New("boom"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `spotter_impersonation_events_total{event="stop"} 1`)
	require.Contains(t, string(body), `spotter_housekeeping_runs_total{result="error",task="oauth_states"} 1`)
	require.Contains(t, string(body), "go_goroutines")
}
