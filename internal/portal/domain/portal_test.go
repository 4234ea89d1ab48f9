package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

func TestParsePortalType(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.PortalType
		wantErr bool
	}{
		{"owner", domain.PortalOwner, false},
		{" Member ", domain.PortalMember, false},
		{"ADMIN", domain.PortalAdmin, false},
		{"booking", domain.PortalBooking, false},
		{"", "", true},
		{"staff", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParsePortalType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnknownPortal)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSelectShell(t *testing.T) {
	reg := domain.ShellRegistry{
		domain.PortalOwner: {Layout: "owner-dashboard", Theme: "dark"},
	}

	s, err := domain.SelectShell(reg, domain.PortalOwner)
	require.NoError(t, err)
	require.Equal(t, "owner-dashboard", s.Layout)

	_, err = domain.SelectShell(reg, domain.PortalBooking)
	require.ErrorIs(t, err, domain.ErrUnknownPortal)
}

func TestImpersonationSessionActive(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	require.True(t, domain.ImpersonationSession{}.Active(now))
	require.True(t, domain.ImpersonationSession{ExpiresAt: &later}.Active(now))
	require.False(t, domain.ImpersonationSession{ExpiresAt: &earlier}.Active(now))
	require.False(t, domain.ImpersonationSession{ExpiresAt: &now}.Active(now))
	require.False(t, domain.ImpersonationSession{EndedAt: &earlier}.Active(now))
}
