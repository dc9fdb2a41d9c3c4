package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	tdsession "github.com/gotd/td/session"
)

// blobStorage implements session.Storage over a single in-memory credential
// seeded from a Blob. The MTProto client reads it on start and writes back
// whenever the auth key or DC changes.
type blobStorage struct {
	mu   sync.Mutex
	data []byte
}

var _ tdsession.Storage = (*blobStorage)(nil)

func newBlobStorage(blob models.Blob) (*blobStorage, error) {
	s := &blobStorage{}
	if blob.Empty() {
		return s, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(string(blob))
	if err != nil {
		return nil, fmt.Errorf("decode session blob: %w", err)
	}
	s.data = data
	return s, nil
}

func (s *blobStorage) LoadSession(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) == 0 {
		return nil, tdsession.ErrNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *blobStorage) StoreSession(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// Blob exports the current credential. It is empty until the client has
// stored a session.
func (s *blobStorage) Blob() models.Blob {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) == 0 {
		return ""
	}
	return models.Blob(base64.RawURLEncoding.EncodeToString(s.data))
}
