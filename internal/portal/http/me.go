package http

import (
	"net/http"

	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
)

// MeHandler godoc
//
//	@Summary		Effective identity
//	@Description	Returns the identity requests are authorized as. While an administrator is impersonating, this is the target user.
//	@Tags			Identity
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.MeResponse	"Effective identity"
//	@Failure		401	{object}	portalsdk.ErrorResponse	"Missing or invalid access token"
//	@Router			/api/me [get].
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		claims, ok := httpx.ClaimsFromContext(ctx)
		if !ok {
			portalsdk.ErrInvalidToken.WriteError(w)
			return
		}

		resp := portalsdk.MeResponse{UserID: httpx.UserIDFromContext(ctx)}
		if admin, acting := httpx.ImpersonatedBy(ctx); acting {
			resp.ActingAs = resp.UserID
			resp.ImpersonatedBy = admin
		} else {
			resp.Email = claims.Email
			resp.Role = claims.AppRole()
		}

		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}
