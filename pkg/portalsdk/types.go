package portalsdk

import "time"

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Impersonation
// ============================================================================

// ImpersonationSession is an administrator's active acting-as session.
type ImpersonationSession struct {
	ID             string     `json:"id"`
	AdminID        string     `json:"admin_id"`
	TargetUserID   string     `json:"target_user_id"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Reason         string     `json:"reason"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// ImpersonationStatusResponse is returned by the status endpoint. Session is
// null when nothing is active; the endpoint never fails.
type ImpersonationStatusResponse struct {
	Session *ImpersonationSession `json:"session"`
}

// StartImpersonationRequest is the body of the start endpoint.
type StartImpersonationRequest struct {
	TargetUserID string `json:"target_user_id"`
	Reason       string `json:"reason"`
	OTP          string `json:"otp,omitempty"`
}

// ImpersonationResponse is returned by start and stop. On failure Success is
// false and Error holds a message.
type ImpersonationResponse struct {
	Success bool                  `json:"success"`
	Error   string                `json:"error,omitempty"`
	Session *ImpersonationSession `json:"session,omitempty"`
}

// MeResponse describes the effective identity of a request. While an
// administrator is acting as someone, UserID is the impersonated user and
// Email and Role are left empty.
type MeResponse struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	ActingAs       string `json:"acting_as,omitempty"`
	ImpersonatedBy string `json:"impersonated_by,omitempty"`
}

// ============================================================================
// Admin
// ============================================================================

type AuditEvent struct {
	ID        string            `json:"id"`
	ActorID   string            `json:"actor_id"`
	Action    string            `json:"action"`
	SubjectID string            `json:"subject_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// AuditListResponse lists events newest first. Pass NextCursor as "before"
// to fetch the next page.
type AuditListResponse struct {
	Events     []AuditEvent `json:"events"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// AuditQuery filters ListAuditEvents. Zero fields are omitted.
type AuditQuery struct {
	ActorID string
	Action  string
	Before  string
	Limit   int
}

// IntegrationsResponse reports which integrations have credentials.
type IntegrationsResponse struct {
	Integrations map[string]bool `json:"integrations"`
}

// ============================================================================
// Public
// ============================================================================

// PublicAPIResponse is returned by the public API smoke test.
type PublicAPIResponse struct {
	Message string   `json:"message"`
	Routes  []string `json:"routes"`
}

type Shell struct {
	Layout string `json:"layout"`
	Theme  string `json:"theme"`
	Chrome string `json:"chrome"`
	Title  string `json:"title"`
}

// ShellResponse describes the portal this deployment serves and the base
// URLs of the others.
type ShellResponse struct {
	Portal  string            `json:"portal"`
	Shell   Shell             `json:"shell"`
	Portals map[string]string `json:"portals"`
}

// CalendarConnectionResponse describes a linked calendar. Tokens are never
// returned.
type CalendarConnectionResponse struct {
	Provider          string     `json:"provider"`
	Scopes            []string   `json:"scopes"`
	AccessTokenExpiry *time.Time `json:"access_token_expiry,omitempty"`
	ConnectedAt       time.Time  `json:"connected_at"`
}

// ============================================================================
// Health
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Portal  string        `json:"portal,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
