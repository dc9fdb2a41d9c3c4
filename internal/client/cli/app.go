package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/tgproxy/internal/client/client"
	"github.com/dmitrijs2005/tgproxy/internal/client/config"
)

type App struct {
	config    *config.Config
	api       client.Client
	sessionID string
	user      *client.User
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		config:    c,
		api:       api,
		sessionID: c.SessionID,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// withTimeout bounds one API call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil || a.sessionID != ""
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
