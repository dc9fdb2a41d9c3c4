// Package server initializes and runs the proxy server. It opens the
// configured session store, wires the Telegram connector into the services,
// serves the HTTP API and shuts down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tgproxy/internal/logging"
	"github.com/dmitrijs2005/tgproxy/internal/server/config"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/dmitrijs2005/tgproxy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tgproxy/internal/server/rest"
	"github.com/dmitrijs2005/tgproxy/internal/server/services"
	"github.com/dmitrijs2005/tgproxy/internal/telegram"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	authService    *services.AuthService
	messageService *services.MessageService
}

// NewApp opens the session store named in c and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	rm, err := repomanager.NewRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("session store init error: %w", err)
	}

	connector := telegram.NewConnector(telegram.Options{
		AppID:       c.APIID,
		AppHash:     c.APIHash,
		MaxRetries:  c.ConnectionRetries,
		DialTimeout: c.DialTimeout,
	}, logger)

	return newApp(c, logger, rm, connector), nil
}

func newApp(c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager, connector remote.Connector) *App {
	runner := services.NewSessionRunner(rm.Sessions(), connector, c.HasAPICredentials(), logger)

	return &App{
		config:         c,
		logger:         logger,
		repomanager:    rm,
		authService:    services.NewAuthService(runner, logger),
		messageService: services.NewMessageService(runner, c, logger),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.messageService, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the session store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.SessionStore, "sealed", app.config.SessionSecret != "")
	if !app.config.HasAPICredentials() {
		app.logger.Warn(ctx, "API_ID and API_HASH are not set, remote operations will fail")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing session store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
