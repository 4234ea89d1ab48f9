// Package supabase is a small client for the managed auth backend's admin
// API. The service only needs user lookups.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/google/uuid"
)

// Both wrap domain.ErrUserNotFound.
var (
	ErrUserNotFound  = fmt.Errorf("supabase: %w", domain.ErrUserNotFound)
	ErrInvalidUserID = fmt.Errorf("supabase: user id is not a uuid: %w", domain.ErrUserNotFound)
)

// Config holds the project URL and the service role key.
type Config struct {
	URL            string
	ServiceRoleKey string
	HTTPClient     *http.Client
}

// Client talks to {URL}/auth/v1/admin.
type Client struct {
	base   string
	key    string
	client *http.Client
}

// New never fails; missing settings surface as domain.ErrMissingSecret when
// the client is first used.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		base:   strings.TrimRight(cfg.URL, "/"),
		key:    cfg.ServiceRoleKey,
		client: hc,
	}
}

// Configured reports whether both URL and key are present.
func (c *Client) Configured() bool {
	return c != nil && c.base != "" && c.key != ""
}

type adminUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AppMetadata struct {
		Role           string `json:"role"`
		OrganizationID string `json:"organization_id"`
	} `json:"app_metadata"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	} `json:"user_metadata"`
}

// GetUser fetches a user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (domain.User, error) {
	if !c.Configured() {
		return domain.User{}, fmt.Errorf("supabase admin api: %w", domain.ErrMissingSecret)
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, ErrInvalidUserID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.base+"/auth/v1/admin/users/"+url.PathEscape(uid.String()), nil)
	if err != nil {
		return domain.User{}, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("supabase admin api: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.User{}, ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.User{}, fmt.Errorf("supabase admin api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var u adminUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return domain.User{}, fmt.Errorf("supabase admin api: decode: %w", err)
	}

	role := u.AppMetadata.Role
	if role == "" {
		role = domain.RoleMember
	}
	name := u.UserMetadata.FullName
	if name == "" {
		name = u.UserMetadata.Name
	}
	return domain.User{
		ID:             u.ID,
		Email:          strings.ToLower(u.Email),
		DisplayName:    name,
		Role:           role,
		OrganizationID: u.AppMetadata.OrganizationID,
		CreatedAt:      u.CreatedAt.UTC(),
		UpdatedAt:      u.UpdatedAt.UTC(),
	}, nil
}
