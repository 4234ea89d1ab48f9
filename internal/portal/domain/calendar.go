package domain

import "time"

const ProviderGoogle = "google"

// OAuthState is a pending calendar consent. The raw state value only exists
// in the redirect; the store keeps its fingerprint.
type OAuthState struct {
	StateHash string
	UserID    string
	Provider  string
	Verifier  []byte // sealed PKCE code verifier
	CreatedAt time.Time
	ExpiresAt time.Time
}

// CalendarConnection is a user's linked calendar account.
type CalendarConnection struct {
	UserID            string
	Provider          string
	RefreshToken      []byte // sealed
	AccessTokenExpiry *time.Time
	Scopes            []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
