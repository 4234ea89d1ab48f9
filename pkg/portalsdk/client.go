package portalsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to one portal deployment. It is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewClient creates an unauthenticated client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			// The Google consent endpoint answers with a redirect the
			// caller wants to see, not follow.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}
