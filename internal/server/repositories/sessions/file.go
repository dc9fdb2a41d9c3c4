package sessions

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/filex"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
)

const sessionFileExt = ".session"

// FileRepository keeps one file per session under a directory. File names
// are the base64url encoding of the id, so any id maps to a safe name.
type FileRepository struct {
	mu  sync.RWMutex
	dir string
}

func NewFileRepository(dir string) (*FileRepository, error) {
	abs, err := filex.EnsureSubdDir(dir)
	if err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}
	return &FileRepository{dir: abs}, nil
}

func (r *FileRepository) path(id string) string {
	return filepath.Join(r.dir, base64.RawURLEncoding.EncodeToString([]byte(id))+sessionFileExt)
}

func (r *FileRepository) Get(ctx context.Context, id string) (models.Blob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("read session: %w", err)
	}
	return models.Blob(data), nil
}

func (r *FileRepository) Set(ctx context.Context, id string, blob models.Blob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := filex.WriteFileAtomic(r.path(id), []byte(blob), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
