package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/idx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
)

type AuditHandler struct {
	AuditService *service.AuditService
}

// ServeHTTP handles GET /api/admin/audit
//
//	@Summary		List audit events
//	@Description	Returns audit events newest first. Use next_cursor as "before" for the next page.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			actor_id	query		string	false	"Only events by this actor"
//	@Param			action		query		string	false	"Only this action, e.g. impersonation.start"
//	@Param			before		query		string	false	"Cursor: events older than this ID"
//	@Param			limit		query		int		false	"Page size (1-200, default 50)"
//	@Success		200			{object}	portalsdk.AuditListResponse	"Audit events"
//	@Failure		400			{object}	portalsdk.ErrorResponse		"Invalid cursor or limit"
//	@Failure		401			{object}	portalsdk.ErrorResponse		"Missing or invalid access token"
//	@Failure		403			{object}	portalsdk.ErrorResponse		"Caller is not an administrator"
//	@Failure		500			{object}	portalsdk.ErrorResponse		"Internal server error"
//	@Router			/api/admin/audit [get].
func (h *AuditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	f := domain.AuditFilter{
		ActorID: q.Get("actor_id"),
		Action:  domain.AuditAction(q.Get("action")),
	}
	if raw := q.Get("before"); raw != "" {
		before, err := idx.Parse(raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, portalsdk.ErrorCodeInvalidRequest, "before must be an event id")
			return
		}
		f.Before = before
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.WriteError(w, http.StatusBadRequest, portalsdk.ErrorCodeInvalidRequest, "limit must be a positive integer")
			return
		}
		f.Limit = n
	}

	events, err := h.AuditService.List(ctx, f)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list audit events", "error", err)
		portalsdk.ErrServerError.WriteError(w)
		return
	}

	resp := portalsdk.AuditListResponse{Events: make([]portalsdk.AuditEvent, len(events))}
	for i, e := range events {
		resp.Events[i] = toSDKAuditEvent(e)
	}
	if len(events) > 0 && len(events) == service.AuditPageSize(f.Limit) {
		resp.NextCursor = events[len(events)-1].ID.String()
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
