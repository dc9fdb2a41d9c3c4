// Package services contains the proxy's business logic: the login state
// machine in AuthService and the messaging operations in MessageService.
// Both run remote calls through a SessionRunner.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/logging"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/dmitrijs2005/tgproxy/internal/server/repositories/sessions"
)

// SessionRunner binds a session id to a remote connection for one request:
// load the stored blob, connect, run the operation and persist the
// credential the client exported.
type SessionRunner struct {
	store      sessions.Repository
	connector  remote.Connector
	configured bool
	logger     logging.Logger
}

func NewSessionRunner(store sessions.Repository, connector remote.Connector, configured bool, logger logging.Logger) *SessionRunner {
	return &SessionRunner{
		store:      store,
		connector:  connector,
		configured: configured,
		logger:     logger.With("module", "session"),
	}
}

// Configured reports whether backend application credentials are present.
func (r *SessionRunner) Configured() bool {
	return r.configured
}

// Run executes fn inside a connection restored from the blob stored under id.
//
// With requireStored set a missing or empty blob yields
// common.ErrorSessionNotFound;
// otherwise the connection starts from an empty credential. The blob is
// written back only when fn succeeds and the exported credential is new or
// differs from the stored one, so a failed step leaves the store untouched.
func (r *SessionRunner) Run(ctx context.Context, id string, requireStored bool, fn func(ctx context.Context, c remote.Client) error) error {
	stored := true
	blob, err := r.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("load session: %w", err)
		}
		if requireStored {
			return common.ErrorSessionNotFound
		}
		stored, blob = false, ""
	}
	if requireStored && blob.Empty() {
		return common.ErrorSessionNotFound
	}

	if !r.configured {
		return common.ErrorNotConfigured
	}

	out, err := r.connector.Connect(ctx, blob, fn)
	if err != nil {
		return err
	}

	if out.Empty() || (stored && out == blob) {
		return nil
	}

	if err := r.store.Set(ctx, id, out); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	r.logger.Debug(ctx, "session persisted", "session", id)
	return nil
}
