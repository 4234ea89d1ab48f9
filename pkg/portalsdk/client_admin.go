package portalsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListAuditEvents returns one page of audit events, newest first.
func (c *Client) ListAuditEvents(ctx context.Context, q AuditQuery) (*AuditListResponse, error) {
	params := url.Values{}
	if q.ActorID != "" {
		params.Set("actor_id", q.ActorID)
	}
	if q.Action != "" {
		params.Set("action", q.Action)
	}
	if q.Before != "" {
		params.Set("before", q.Before)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	path := "/api/admin/audit"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out AuditListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Integrations reports which integrations the deployment has credentials for.
func (c *Client) Integrations(ctx context.Context) (map[string]bool, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/admin/integrations", nil)
	if err != nil {
		return nil, err
	}

	var out IntegrationsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Integrations, nil
}
