package http

import (
	"net/http"

	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
)

// IntegrationsHandler godoc
//
//	@Summary		Integration status
//	@Description	Reports which third-party integrations have credentials configured. Credentials are never returned.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.IntegrationsResponse	"Integration name to configured flag"
//	@Failure		401	{object}	portalsdk.ErrorResponse			"Missing or invalid access token"
//	@Failure		403	{object}	portalsdk.ErrorResponse			"Caller is not an administrator"
//	@Router			/api/admin/integrations [get].
func IntegrationsHandler(svc *service.IntegrationsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, portalsdk.IntegrationsResponse{Integrations: svc.Status()})
	}
}
