// Package client talks to the tracker HTTP API.
//
// # Overview
//
// The package provides:
//  1. Gateway, the single outbound call path. It attaches the bearer token
//     taken from a TokenSource to every request and maps every non-2xx
//     answer or transport failure to an *APIError.
//  2. The Client interface, one method per API endpoint, and HTTPClient,
//     its implementation over a Gateway.
//
// # Error Handling
//
// *APIError carries the HTTP status (0 for transport failures) and the
// server's message. It matches the sentinel errors with errors.Is:
// ErrUnavailable (no response), ErrUnauthorized (401/403), ErrNotFound (404).
//
// Calls are single best-effort attempts: there are no retries and no
// timeouts beyond what the caller's context imposes.
package client
