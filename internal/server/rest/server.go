// Package rest exposes the login and messaging services over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tgproxy/internal/logging"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AuthAPI is the login state machine used by the auth handlers.
type AuthAPI interface {
	SendCode(ctx context.Context, sessionID, phone string) (*models.CodeRequest, error)
	VerifyCode(ctx context.Context, sessionID, phone, code, phoneCodeHash string) (*models.LoginResult, error)
	VerifyPassword(ctx context.Context, sessionID, password string) (*models.LoginResult, error)
}

// MessagesAPI backs the messaging handlers.
type MessagesAPI interface {
	Dialogs(ctx context.Context, sessionID string) ([]models.Dialog, error)
	Messages(ctx context.Context, sessionID, peerID string, limit int) ([]models.Message, error)
	Send(ctx context.Context, sessionID, peerID, text string) (*models.SentMessage, error)
}

type Server struct {
	address         string
	auth            AuthAPI
	messages        MessagesAPI
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, a AuthAPI, m MessagesAPI, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		auth:            a,
		messages:        m,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

var allowedHeaders = []string{
	"X-CSRF-Token",
	"X-Requested-With",
	"Accept",
	"Accept-Version",
	"Content-Length",
	"Content-MD5",
	"Content-Type",
	"Date",
	"X-Api-Version",
}

// Router builds the gin engine with middleware and every API route.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(s.requestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		s.logger.Error(c.Request.Context(), "recovered from panic", "panic", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowCredentials:          true,
		AllowMethods:              []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"},
		AllowHeaders:              allowedHeaders,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	s.handle(authGroup, http.MethodPost, "/send-code", s.sendCode)
	s.handle(authGroup, http.MethodPost, "/verify-code", s.verifyCode)
	s.handle(authGroup, http.MethodPost, "/verify-password", s.verifyPassword)

	msgGroup := api.Group("/messages")
	s.handle(msgGroup, http.MethodGet, "/get-dialogs", s.getDialogs)
	s.handle(msgGroup, http.MethodPost, "/get-messages", s.getMessages)
	s.handle(msgGroup, http.MethodPost, "/send-message", s.sendMessage)

	s.handle(api, http.MethodGet, "/ping", s.ping)

	return router
}

// handle registers h for method and an empty 200 for OPTIONS on the same path.
func (s *Server) handle(g *gin.RouterGroup, method, path string, h gin.HandlerFunc) {
	g.Handle(method, path, h)
	g.OPTIONS(path, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
