package portalsdk

import (
	"context"
	"fmt"
	"net/http"
)

// PublicAPITest calls the unauthenticated smoke test endpoint.
func (c *Client) PublicAPITest(ctx context.Context) (*PublicAPIResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/public-api/test", nil)
	if err != nil {
		return nil, err
	}

	var out PublicAPIResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Shell returns the shell of the portal this deployment serves.
func (c *Client) Shell(ctx context.Context) (*ShellResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/portal/shell", nil)
	if err != nil {
		return nil, err
	}

	var out ShellResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleConsentURL starts the calendar consent flow and returns the
// redirect target without following it. The target is either the Google
// consent screen or the settings page with an error parameter.
func (c *Client) GoogleConsentURL(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/google", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", fmt.Errorf("expected redirect, got status %d", resp.StatusCode)
	}
	return resp.Header.Get("Location"), nil
}
