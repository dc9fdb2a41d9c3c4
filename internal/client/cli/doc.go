// Package cli provides the interactive tgproxy command-line client.
//
// It drives the proxy's HTTP API: the login handshake (phone, code and an
// optional cloud password), then listing dialogs and reading and sending
// messages. The REPL is started via App.Run(ctx), which blocks until the
// user exits.
package cli
