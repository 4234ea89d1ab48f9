package http

import (
	"net/http"

	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
)

// PublicAPITestHandler godoc
//
//	@Summary		Public API smoke test
//	@Description	Unauthenticated check that the API is reachable. Lists the registered routes.
//	@Tags			Public
//	@Produce		json
//	@Success		200	{object}	portalsdk.PublicAPIResponse	"message and routes"
//	@Router			/api/public-api/test [get].
func PublicAPITestHandler(routes func() []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, portalsdk.PublicAPIResponse{
			Message: "Public API is working",
			Routes:  routes(),
		})
	}
}
