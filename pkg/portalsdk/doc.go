// Package portalsdk is a Go client for the spotter portal service.
//
// Client covers the public endpoints. Calls that need a bearer token use a
// client returned by WithToken:
//
//	c := portalsdk.NewClient("https://admin.example.com").WithToken(accessToken)
//	status, err := c.ImpersonationStatus(ctx)
//
// The request and response types are shared with the server, so handlers
// and the SDK cannot drift apart.
package portalsdk
