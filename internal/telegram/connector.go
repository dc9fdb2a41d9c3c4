// Package telegram adapts the gotd MTProto client to the remote contract.
package telegram

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tgproxy/internal/logging"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/gotd/td/telegram"
)

// Options configures how connections to Telegram are made.
type Options struct {
	AppID         int
	AppHash       string
	MaxRetries    int
	RetryInterval time.Duration
	DialTimeout   time.Duration
}

// Connector opens one MTProto connection per Connect call.
type Connector struct {
	opts   Options
	logger logging.Logger
}

var _ remote.Connector = (*Connector)(nil)

func NewConnector(opts Options, logger logging.Logger) *Connector {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = time.Second
	}
	return &Connector{opts: opts, logger: logger.With("module", "telegram")}
}

// Connect runs fn against a client restored from blob. The connection is
// closed before Connect returns, and the returned blob reflects whatever
// the client stored during the call.
func (c *Connector) Connect(ctx context.Context, blob models.Blob, fn func(ctx context.Context, cl remote.Client) error) (models.Blob, error) {
	storage, err := newBlobStorage(blob)
	if err != nil {
		return blob, err
	}

	client := telegram.NewClient(c.opts.AppID, c.opts.AppHash, telegram.Options{
		SessionStorage: storage,
		MaxRetries:     c.opts.MaxRetries,
		RetryInterval:  c.opts.RetryInterval,
		DialTimeout:    c.opts.DialTimeout,
		NoUpdates:      true,
	})

	start := time.Now()
	c.logger.Debug(ctx, "connecting", "resumed", !blob.Empty())

	err = client.Run(ctx, func(ctx context.Context) error {
		return fn(ctx, newSession(client))
	})

	c.logger.Debug(ctx, "connection released", "duration", time.Since(start), "error", err != nil)

	out := storage.Blob()
	if out.Empty() {
		out = blob
	}
	return out, wrapErr(err)
}
