package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/cryptox"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
)

// SealedRepository encrypts blobs before handing them to the wrapped
// repository. A stored value that cannot be opened with the current secret
// is reported as not found, which sends the client back to login.
type SealedRepository struct {
	next   Repository
	sealer *cryptox.Sealer
}

func NewSealedRepository(next Repository, sealer *cryptox.Sealer) *SealedRepository {
	return &SealedRepository{next: next, sealer: sealer}
}

func (r *SealedRepository) Get(ctx context.Context, id string) (models.Blob, error) {
	sealed, err := r.next.Get(ctx, id)
	if err != nil {
		return "", err
	}

	plain, err := r.sealer.Open(string(sealed))
	if err != nil {
		if errors.Is(err, cryptox.ErrInvalidCiphertext) {
			return "", common.ErrorNotFound
		}
		return "", err
	}
	return models.Blob(plain), nil
}

func (r *SealedRepository) Set(ctx context.Context, id string, blob models.Blob) error {
	sealed, err := r.sealer.Seal(string(blob))
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return r.next.Set(ctx, id, models.Blob(sealed))
}
