package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestEnrollTOTP(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &MFAService{Store: s, Issuer: "Spotter"}

	_, err := svc.EnrollTOTP(ctx, memberID, false)
	require.ErrorIs(t, err, ErrMFAAdminsOnly)

	enr, err := svc.EnrollTOTP(ctx, adminID, false)
	require.NoError(t, err)
	require.Contains(t, enr.URL, "otpauth://totp/")
	require.Equal(t, "admin@example.com", enr.Account)

	code, err := totp.GenerateCode(enr.Secret, time.Now())
	require.NoError(t, err)
	u, err := s.Users().GetUserByID(ctx, adminID)
	require.NoError(t, err)
	require.True(t, totp.Validate(code, *u.MFASecret))

	_, err = svc.EnrollTOTP(ctx, adminID, false)
	require.ErrorIs(t, err, ErrMFAAlreadyEnabled)

	again, err := svc.EnrollTOTP(ctx, adminID, true)
	require.NoError(t, err)
	require.NotEqual(t, enr.Secret, again.Secret)

	require.NoError(t, svc.DisableTOTP(ctx, adminID))
	u, err = s.Users().GetUserByID(ctx, adminID)
	require.NoError(t, err)
	require.Nil(t, u.MFASecret)
}

type staticConfigurable bool

func (c staticConfigurable) Configured() bool { return bool(c) }

func TestIntegrationsStatus(t *testing.T) {
	var cal *CalendarService
	svc := &IntegrationsService{
		Directory:        staticConfigurable(true),
		Calendar:         cal,
		StripeConfigured: true,
	}

	require.Equal(t, map[string]bool{
		IntegrationSupabase:       true,
		IntegrationGoogleCalendar: false,
		IntegrationStripe:         true,
		IntegrationOpenAI:         false,
		IntegrationRedis:          false,
	}, svc.Status())
}
