// Package sessions stores credential blobs keyed by session identifier.
//
// Every backend has last-write-wins semantics and no expiry. Get returns
// common.ErrorNotFound when nothing was stored under the id.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/tgproxy/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id string) (models.Blob, error)
	Set(ctx context.Context, id string, blob models.Blob) error
}
