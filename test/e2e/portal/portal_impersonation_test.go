package portal_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/spotter/pkg/jwtx"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

// TestImpersonationLifecycle drives start, status, acting-as and stop
// against a running container.
func TestImpersonationLifecycle(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t, "admin", nil)
	defer cleanup()

	ctx := t.Context()
	admin := adminClient(t, baseURL)

	st, err := admin.ImpersonationStatus(ctx)
	require.NoError(t, err)
	require.Nil(t, st.Session, "No session before start")

	sess, err := admin.StartImpersonation(ctx, portalsdk.StartImpersonationRequest{
		TargetUserID: memberID,
		Reason:       "investigating support ticket",
	})
	require.NoError(t, err)
	require.Equal(t, memberID, sess.TargetUserID)
	require.NotNil(t, sess.ExpiresAt, "Default TTL should set an expiry")

	_, err = admin.StartImpersonation(ctx, portalsdk.StartImpersonationRequest{
		TargetUserID: ownerID,
		Reason:       "second session",
	})
	var apiErr *portalsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)

	me, err := admin.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, memberID, me.UserID)
	require.Equal(t, adminID, me.ImpersonatedBy)

	ended, err := admin.StopImpersonation(ctx)
	require.NoError(t, err)
	require.NotNil(t, ended)
	require.Equal(t, sess.ID, ended.ID)

	st, err = admin.ImpersonationStatus(ctx)
	require.NoError(t, err)
	require.Nil(t, st.Session, "No session after stop")

	// Stopping again is a no-op success
	ended, err = admin.StopImpersonation(ctx)
	require.NoError(t, err)
	require.Nil(t, ended)

	audit, err := admin.ListAuditEvents(ctx, portalsdk.AuditQuery{ActorID: adminID})
	require.NoError(t, err)
	require.Len(t, audit.Events, 2)
}

// TestImpersonationRequiresAdmin checks that members cannot stop or start.
func TestImpersonationRequiresAdmin(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t, "member", nil)
	defer cleanup()

	ctx := t.Context()
	member := portalsdk.NewClient(baseURL).WithToken(mintToken(t, memberID, jwtx.RoleMember, "org-1"))

	_, err := member.StopImpersonation(ctx)
	require.ErrorIs(t, err, portalsdk.ErrForbidden)

	// Status stays 200 with no session for anyone
	st, err := member.ImpersonationStatus(ctx)
	require.NoError(t, err)
	require.Nil(t, st.Session)

	_, err = portalsdk.NewClient(baseURL).StopImpersonation(ctx)
	require.ErrorIs(t, err, portalsdk.ErrInvalidToken)
}
