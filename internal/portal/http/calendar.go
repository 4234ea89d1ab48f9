package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
)

// Error codes passed to the settings page.
const (
	calendarErrConfig        = "config"
	calendarErrUnauthorized  = "unauthorized"
	calendarErrImpersonating = "impersonating"
	calendarErrDenied        = "access_denied"
	calendarErrState         = "invalid_state"
	calendarErrExchange      = "token_exchange"
	calendarErrServer        = "server"
)

// CalendarHandler runs the Google calendar consent flow. Every outcome of
// the two browser-facing endpoints is a redirect to the settings page or
// the consent screen.
type CalendarHandler struct {
	CalendarService *service.CalendarService
	AppURL          string
}

func (h *CalendarHandler) settingsURL() string {
	return strings.TrimSuffix(h.AppURL, "/") + "/settings/integrations"
}

func (h *CalendarHandler) fail(w http.ResponseWriter, r *http.Request, code string) {
	httpx.RedirectWithQuery(w, r, h.settingsURL(), url.Values{"error": {code}})
}

// HandleConsent handles GET /api/auth/google
//
//	@Summary		Connect Google Calendar
//	@Description	Redirects to the Google consent screen. On any failure it redirects to the integrations settings page with an error parameter instead.
//	@Tags			Calendar
//	@Security		BearerAuth
//	@Success		302	"Consent screen or settings page"
//	@Router			/api/auth/google [get].
func (h *CalendarHandler) HandleConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !h.CalendarService.Configured() {
		log.Warn("google calendar consent requested but integration is not configured")
		h.fail(w, r, calendarErrConfig)
		return
	}
	if _, acting := httpx.ImpersonatedBy(ctx); acting {
		h.fail(w, r, calendarErrImpersonating)
		return
	}

	consentURL, err := h.CalendarService.AuthURL(ctx, httpx.UserIDFromContext(ctx))
	switch {
	case errors.Is(err, service.ErrAuthenticationRequired):
		h.fail(w, r, calendarErrUnauthorized)
		return
	case errors.Is(err, domain.ErrMissingSecret):
		h.fail(w, r, calendarErrConfig)
		return
	case err != nil:
		log.Error("failed to start google consent", "error", err)
		h.fail(w, r, calendarErrServer)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, consentURL, http.StatusFound)
}

// HandleCallback handles GET /api/auth/google/callback
//
//	@Summary		Google Calendar OAuth callback
//	@Description	Completes the consent flow and redirects to the integrations settings page with connected=google or an error parameter.
//	@Tags			Calendar
//	@Param			state	query	string	true	"State issued by /api/auth/google"
//	@Param			code	query	string	false	"Authorization code"
//	@Param			error	query	string	false	"Error reported by Google"
//	@Success		302		"Settings page"
//	@Router			/api/auth/google/callback [get].
func (h *CalendarHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	if q.Get("error") != "" {
		log.Info("google consent declined", "provider_error", q.Get("error"))
		h.fail(w, r, calendarErrDenied)
		return
	}

	_, err := h.CalendarService.HandleCallback(ctx, q.Get("state"), q.Get("code"))
	switch {
	case err == nil:
		httpx.RedirectWithQuery(w, r, h.settingsURL(), url.Values{"connected": {domain.ProviderGoogle}})
	case errors.Is(err, domain.ErrMissingSecret):
		h.fail(w, r, calendarErrConfig)
	case errors.Is(err, service.ErrInvalidState):
		log.Warn("google callback with unknown or expired state")
		h.fail(w, r, calendarErrState)
	case errors.Is(err, service.ErrTokenExchange), errors.Is(err, service.ErrNoRefreshToken):
		h.fail(w, r, calendarErrExchange)
	default:
		log.Error("failed to complete google consent", "error", err)
		h.fail(w, r, calendarErrServer)
	}
}

// HandleGetConnection handles GET /api/calendar/connection
//
//	@Summary		Calendar connection
//	@Description	Returns the caller's linked Google calendar. Tokens are never included.
//	@Tags			Calendar
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.CalendarConnectionResponse	"Connection"
//	@Failure		401	{object}	portalsdk.ErrorResponse					"Missing or invalid access token"
//	@Failure		404	{object}	portalsdk.ErrorResponse					"Not connected"
//	@Router			/api/calendar/connection [get].
func (h *CalendarHandler) HandleGetConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.CalendarService.Connection(ctx, httpx.UserIDFromContext(ctx))
	if errors.Is(err, service.ErrNotConnected) {
		portalsdk.ErrNotFound.WriteError(w)
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load calendar connection", "error", err)
		portalsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.CalendarConnectionResponse{
		Provider:          conn.Provider,
		Scopes:            conn.Scopes,
		AccessTokenExpiry: conn.AccessTokenExpiry,
		ConnectedAt:       conn.UpdatedAt,
	})
}

// HandleDeleteConnection handles DELETE /api/calendar/connection
//
//	@Summary		Disconnect calendar
//	@Tags			Calendar
//	@Security		BearerAuth
//	@Success		204	"Disconnected"
//	@Failure		401	{object}	portalsdk.ErrorResponse	"Missing or invalid access token"
//	@Router			/api/calendar/connection [delete].
func (h *CalendarHandler) HandleDeleteConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CalendarService.Disconnect(ctx, httpx.UserIDFromContext(ctx)); err != nil {
		slogx.FromContext(ctx).Error("failed to delete calendar connection", "error", err)
		portalsdk.ErrServerError.WriteError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
