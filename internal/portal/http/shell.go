package http

import (
	"net/http"

	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
)

// ShellHandler godoc
//
//	@Summary		Portal shell
//	@Description	Returns the layout, theme and chrome of the portal this deployment serves, and the base URLs of all portals. The answer depends only on configuration.
//	@Tags			Portal
//	@Produce		json
//	@Success		200	{object}	portalsdk.ShellResponse	"Shell"
//	@Failure		500	{object}	portalsdk.ErrorResponse	"Shell registry misconfigured"
//	@Router			/api/portal/shell [get].
func ShellHandler(svc *service.ShellService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cur, err := svc.Current()
		if err != nil {
			slogx.FromContext(r.Context()).Error("failed to select shell", "error", err)
			portalsdk.ErrServerError.WriteError(w)
			return
		}

		portals := make(map[string]string, len(cur.Portals))
		for p, u := range cur.Portals {
			portals[string(p)] = u
		}
		httpx.WriteJSON(w, http.StatusOK, portalsdk.ShellResponse{
			Portal: string(cur.Portal),
			Shell: portalsdk.Shell{
				Layout: cur.Shell.Layout,
				Theme:  cur.Shell.Theme,
				Chrome: cur.Shell.Chrome,
				Title:  cur.Shell.Title,
			},
			Portals: portals,
		})
	}
}
