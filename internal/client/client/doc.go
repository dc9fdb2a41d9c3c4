// Package client talks to the tgproxy HTTP API on behalf of the CLI.
//
// The Client interface is transport agnostic; HTTPClient implements it with
// resty. Failures are reported as:
//   - ErrUnavailable when the server could not be reached,
//   - ErrUnauthorized for 401 answers (unknown session or not logged in),
//   - *APIError for every other non-2xx answer, carrying the server message.
package client
