package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
)

const maxStartBodyBytes = 16 << 10

// ImpersonationHandler serves the administrator acting-as surface. Errors
// use the {success:false, error} shape.
type ImpersonationHandler struct {
	Service *service.ImpersonationService
}

// HandleStatus handles GET /api/admin/impersonation/status
//
//	@Summary		Impersonation status
//	@Description	Returns the caller's active impersonation session, or null. Always 200: backend failures are reported as no session.
//	@Tags			Impersonation
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.ImpersonationStatusResponse	"Active session or null"
//	@Router			/api/admin/impersonation/status [get].
func (h *ImpersonationHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Only administrators can have sessions; anyone else gets null.
	var adminID string
	if claims, ok := httpx.ClaimsFromContext(ctx); ok && claims.IsAdmin() {
		adminID = claims.Subject
	}

	st := h.Service.Status(ctx, adminID)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.ImpersonationStatusResponse{
		Session: toSDKSession(st.Session),
	})
}

// HandleStop handles POST /api/admin/impersonation/stop
//
//	@Summary		Stop impersonating
//	@Description	Ends the caller's impersonation session. Succeeds when nothing is active.
//	@Tags			Impersonation
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.ImpersonationResponse	"success, and the ended session if there was one"
//	@Failure		401	{object}	portalsdk.ErrorResponse			"Missing or invalid access token"
//	@Failure		403	{object}	portalsdk.ErrorResponse			"Caller is not an administrator"
//	@Failure		500	{object}	portalsdk.ImpersonationResponse	"success=false"
//	@Router			/api/admin/impersonation/stop [post].
func (h *ImpersonationHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	res, err := h.Service.Stop(ctx, httpx.SubjectFromContext(ctx))
	if err != nil {
		log.Error("failed to stop impersonation", "error", err)
		writeImpersonationError(w, http.StatusInternalServerError, "Failed to stop impersonation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.ImpersonationResponse{
		Success: true,
		Session: toSDKSession(res.Ended),
	})
}

// HandleStart handles POST /api/admin/impersonation/start
//
//	@Summary		Start impersonating
//	@Description	Opens a session acting as the target user. Administrators with TOTP enrolled must pass a current code.
//	@Tags			Impersonation
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.StartImpersonationRequest	true	"Target, reason and optional one-time code"
//	@Success		201		{object}	portalsdk.ImpersonationResponse		"The new session"
//	@Failure		400		{object}	portalsdk.ImpersonationResponse		"Malformed request or missing reason"
//	@Failure		401		{object}	portalsdk.ErrorResponse				"Missing or invalid access token"
//	@Failure		403		{object}	portalsdk.ImpersonationResponse		"Target not allowed or step-up failed"
//	@Failure		404		{object}	portalsdk.ImpersonationResponse		"Target user not found"
//	@Failure		409		{object}	portalsdk.ImpersonationResponse		"A session is already active"
//	@Failure		500		{object}	portalsdk.ImpersonationResponse		"Internal error"
//	@Router			/api/admin/impersonation/start [post].
func (h *ImpersonationHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body portalsdk.StartImpersonationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxStartBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeImpersonationError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.Service.Start(ctx, service.StartRequest{
		AdminID:      httpx.SubjectFromContext(ctx),
		TargetUserID: body.TargetUserID,
		Reason:       body.Reason,
		OTP:          body.OTP,
	})
	if err != nil {
		status := startErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to start impersonation", "target_user_id", body.TargetUserID, "error", err)
			writeImpersonationError(w, status, "Failed to start impersonation")
			return
		}
		log.Info("impersonation start rejected", "target_user_id", body.TargetUserID, "reason", err.Error())
		writeImpersonationError(w, status, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.ImpersonationResponse{
		Success: true,
		Session: toSDKSession(&sess),
	})
}

func startErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrReasonTooLong),
		errors.Is(err, service.ErrAdminRequired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, service.ErrOTPRequired),
		errors.Is(err, service.ErrInvalidTOTPCode):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTargetNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrImpersonationActive):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeImpersonationError(w http.ResponseWriter, status int, msg string) {
	httpx.WriteJSON(w, status, portalsdk.ImpersonationResponse{Success: false, Error: msg})
}
