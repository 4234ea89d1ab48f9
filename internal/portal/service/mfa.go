package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
	ErrMFAAdminsOnly     = errors.New("MFA step-up is only available to administrators")
)

type MFAEnrollment struct {
	Secret  string
	URL     string
	Issuer  string
	Account string
}

// MFAService enrolls administrators in TOTP step-up for impersonation.
type MFAService struct {
	Store  store.Store
	Issuer string
}

// EnrollTOTP generates and stores a TOTP secret for an administrator.
// With force set an existing secret is replaced.
func (s *MFAService) EnrollTOTP(ctx context.Context, userID string, force bool) (MFAEnrollment, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return MFAEnrollment{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u.Role != domain.RoleAdmin {
		return MFAEnrollment{}, ErrMFAAdminsOnly
	}
	if u.MFASecret != nil && *u.MFASecret != "" && !force {
		return MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	secret := key.Secret()
	if err := s.Store.Users().UpdateMFASecret(ctx, userID, &secret); err != nil {
		return MFAEnrollment{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return MFAEnrollment{
		Secret:  secret,
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: u.Email,
	}, nil
}

// DisableTOTP removes the administrator's secret.
func (s *MFAService) DisableTOTP(ctx context.Context, userID string) error {
	if err := s.Store.Users().UpdateMFASecret(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear MFA secret: %w", err)
	}
	return nil
}
