package portalsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/impersonation/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-token" {
			_ = json.NewEncoder(w).Encode(ImpersonationStatusResponse{})
			return
		}
		_ = json.NewEncoder(w).Encode(ImpersonationStatusResponse{Session: &ImpersonationSession{
			ID: "01J00000000000000000000000", AdminID: "admin", TargetUserID: "member",
		}})
	})
	mux.HandleFunc("POST /api/admin/impersonation/start", func(w http.ResponseWriter, r *http.Request) {
		var req StartImpersonationRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req.TargetUserID == "busy" {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(ImpersonationResponse{Error: "an impersonation session is already active"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ImpersonationResponse{Success: true, Session: &ImpersonationSession{
			TargetUserID: req.TargetUserID, Reason: req.Reason,
		}})
	})
	mux.HandleFunc("POST /api/admin/impersonation/stop", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ImpersonationResponse{Success: true})
	})
	mux.HandleFunc("GET /api/admin/audit", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_ = json.NewEncoder(w).Encode(AuditListResponse{
			Events:     []AuditEvent{{ID: "e1", ActorID: q.Get("actor_id"), Action: q.Get("action")}},
			NextCursor: q.Get("limit"),
		})
	})
	mux.HandleFunc("GET /api/admin/integrations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeForbidden, ErrorDescription: "insufficient role"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "degraded", Checks: &HealthChecks{Database: "error: gone"}})
	})
	mux.HandleFunc("GET /api/auth/google", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://app.example.com/settings/integrations?error=config", http.StatusFound)
	})
	mux.HandleFunc("GET /api/public-api/test", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(PublicAPIResponse{Message: "Public API is working", Routes: []string{"/api/public-api/test"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestImpersonationCalls(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	anon := NewClient(srv.URL + "/")
	admin := anon.WithToken("admin-token")

	st, err := anon.ImpersonationStatus(ctx)
	require.NoError(t, err)
	require.Nil(t, st.Session)

	st, err = admin.ImpersonationStatus(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.Session)
	require.Equal(t, "member", st.Session.TargetUserID)

	sess, err := admin.StartImpersonation(ctx, StartImpersonationRequest{TargetUserID: "member", Reason: "ticket"})
	require.NoError(t, err)
	require.Equal(t, "ticket", sess.Reason)

	_, err = admin.StartImpersonation(ctx, StartImpersonationRequest{TargetUserID: "busy", Reason: "ticket"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Contains(t, apiErr.Code, "already active")

	ended, err := admin.StopImpersonation(ctx)
	require.NoError(t, err)
	require.Nil(t, ended)
}

func TestAdminCalls(t *testing.T) {
	ctx := context.Background()
	c := NewClient(newTestServer(t).URL).WithToken("admin-token")

	page, err := c.ListAuditEvents(ctx, AuditQuery{ActorID: "admin", Action: "impersonation.start", Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	require.Equal(t, "admin", page.Events[0].ActorID)
	require.Equal(t, "impersonation.start", page.Events[0].Action)
	require.Equal(t, "5", page.NextCursor)

	_, err = c.Integrations(ctx)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPublicCalls(t *testing.T) {
	ctx := context.Background()
	c := NewClient(newTestServer(t).URL)

	res, err := c.PublicAPITest(ctx)
	require.NoError(t, err)
	require.Equal(t, "Public API is working", res.Message)

	loc, err := c.GoogleConsentURL(ctx)
	require.NoError(t, err)
	require.Equal(t, "https://app.example.com/settings/integrations?error=config", loc)

	health, err := c.Readyz(ctx)
	require.Error(t, err)
	require.NotNil(t, health)
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "error: gone", health.Checks.Database)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestWithTokenDoesNotMutate(t *testing.T) {
	base := NewClient("https://portal.example.com")
	authed := base.WithToken("t")
	require.Empty(t, base.token)
	require.Equal(t, "t", authed.token)
	require.Same(t, base.HTTPClient, authed.HTTPClient)
}

func TestParseErrorFallback(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusBadGateway}
	err := parseErrorResponse(resp, []byte("<html>bad gateway</html>"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Contains(t, apiErr.Description, "502")
}
