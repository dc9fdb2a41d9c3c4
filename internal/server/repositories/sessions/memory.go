package sessions

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
)

// MemoryRepository keeps blobs in process memory. Contents are lost on restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	blobs map[string]models.Blob
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{blobs: make(map[string]models.Blob)}
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (models.Blob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blob, ok := r.blobs[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	return blob, nil
}

func (r *MemoryRepository) Set(ctx context.Context, id string, blob models.Blob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blobs[id] = blob
	return nil
}
