package portalsdk

import (
	"context"
	"net/http"
)

// ImpersonationStatus returns the caller's active session, if any.
func (c *Client) ImpersonationStatus(ctx context.Context) (*ImpersonationStatusResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/admin/impersonation/status", nil)
	if err != nil {
		return nil, err
	}

	var out ImpersonationStatusResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartImpersonation opens a session. A second start while one is active
// fails with a 409 *APIError.
func (c *Client) StartImpersonation(ctx context.Context, req StartImpersonationRequest) (*ImpersonationSession, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/admin/impersonation/start", req)
	if err != nil {
		return nil, err
	}

	var out ImpersonationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return out.Session, nil
}

// StopImpersonation ends the caller's session. It succeeds when nothing is
// active; the returned session is then nil.
func (c *Client) StopImpersonation(ctx context.Context) (*ImpersonationSession, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/admin/impersonation/stop", nil)
	if err != nil {
		return nil, err
	}

	var out ImpersonationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Session, nil
}

// Me returns the effective identity, reflecting any acting-as substitution.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/me", nil)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
