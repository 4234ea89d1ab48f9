package portal_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicAPIAndHealth(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t, "booking", nil)
	defer cleanup()

	ctx := t.Context()
	client := adminClient(t, baseURL)

	resp, err := client.PublicAPITest(ctx)
	require.NoError(t, err)
	require.Equal(t, "Public API is working", resp.Message)
	require.Contains(t, resp.Routes, "GET /api/portal/shell")

	live, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "booking", live.Portal)

	ready, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestShellFollowsConfiguration(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t, "member", nil)
	defer cleanup()

	shell, err := adminClient(t, baseURL).Shell(t.Context())
	require.NoError(t, err)
	require.Equal(t, "member", shell.Portal)
	require.Equal(t, "member", shell.Shell.Layout)
	require.Equal(t, "member-light", shell.Shell.Theme)
	require.Equal(t, "https://member.example.com", shell.Portals["member"])
}

// TestGoogleConsentWithoutConfig expects a redirect to the settings page.
func TestGoogleConsentWithoutConfig(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t, "owner", nil)
	defer cleanup()

	loc, err := adminClient(t, baseURL).GoogleConsentURL(t.Context())
	require.NoError(t, err)
	require.Equal(t, "https://owner.example.com/settings/integrations?error=config", loc)
}
