package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tgproxy/internal/client/client"
)

const maxPasswordAttempts = 3

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

func (a *App) getStatus() string {
	switch {
	case a.user != nil && a.user.Username != "":
		return "(@" + a.user.Username + ") "
	case a.user != nil:
		return "(" + strings.TrimSpace(a.user.FirstName+" "+a.user.LastName) + ") "
	case a.sessionID != "":
		return "(session) "
	}
	return ""
}

// Login runs the full handshake. The session id issued by the server is
// kept so that later commands act on the same session.
func (a *App) Login(ctx context.Context) error {
	phone, err := GetSimpleText(a.reader, "Phone number (international format, e.g. +15550100)", a.out)
	if err != nil {
		return err
	}

	callCtx, cancel := a.withTimeout(ctx)
	sent, err := a.api.SendCode(callCtx, a.sessionID, phone)
	cancel()
	if err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	a.sessionID = sent.SessionID

	code, err := GetSimpleText(a.reader, "Login code", a.out)
	if err != nil {
		return err
	}

	callCtx, cancel = a.withTimeout(ctx)
	res, err := a.api.VerifyCode(callCtx, a.sessionID, phone, code, sent.PhoneCodeHash)
	cancel()
	if err != nil {
		return fmt.Errorf("verify code: %w", err)
	}

	if res.Requires2FA {
		fmt.Fprintln(a.out, res.Message)
		res, err = a.verifyPassword(ctx)
		if err != nil {
			return err
		}
	}

	a.user = res.User
	if a.user != nil {
		fmt.Fprintf(a.out, "Logged in as %s %s (id %s)\n", a.user.FirstName, a.user.LastName, a.user.ID)
	}
	return nil
}

// verifyPassword asks for the cloud password, retrying on rejection. The
// server keeps the session intact between attempts.
func (a *App) verifyPassword(ctx context.Context) (*client.LoginResponse, error) {
	var lastErr error
	for i := 0; i < maxPasswordAttempts; i++ {
		pw, err := GetPassword("Cloud password", a.out)
		if err != nil {
			return nil, err
		}

		callCtx, cancel := a.withTimeout(ctx)
		res, err := a.api.VerifyPassword(callCtx, a.sessionID, pw)
		cancel()
		if err == nil {
			return res, nil
		}

		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			return nil, fmt.Errorf("verify password: %w", err)
		}
		fmt.Fprintln(a.out, "Password rejected:", apiErr.Message)
		lastErr = err
	}
	return nil, fmt.Errorf("verify password: %w", lastErr)
}

func (a *App) Session(ctx context.Context) error {
	if a.sessionID == "" {
		return errNotLoggedIn
	}
	fmt.Fprintln(a.out, a.sessionID)
	return nil
}

// Logout forgets the session locally. The server keeps its copy of the
// credential; logging in again with a blank id starts a new session.
func (a *App) Logout(ctx context.Context) error {
	a.sessionID = ""
	a.user = nil
	fmt.Fprintln(a.out, "Session forgotten")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	callCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.Ping(callCtx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is reachable")
	return nil
}
