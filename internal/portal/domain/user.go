package domain

import "time"

// User roles as issued in app_metadata.role.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// User is a tenant user mirrored from the managed auth backend. ID is the
// backend's UUID.
type User struct {
	ID             string
	Email          string
	DisplayName    string
	Role           string
	OrganizationID string
	MFASecret      *string // TOTP secret (base32), admins only
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleOwner, RoleMember, RoleStaff, RoleAdmin:
		return true
	}
	return false
}
