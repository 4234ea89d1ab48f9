package domain

import "errors"

var (
	// ErrMissingSecret is returned on first use of an integration whose
	// credentials were not configured.
	ErrMissingSecret = errors.New("missing secret")

	// ErrUserNotFound is returned by user directories for unknown IDs.
	ErrUserNotFound = errors.New("user not found")
)
