package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/dbx"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (models.Blob, error) {
	query :=
		`SELECT blob FROM sessions
		 WHERE id = $1
		 `

	var blob string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return models.Blob(blob), nil
}

func (r *PostgresRepository) Set(ctx context.Context, id string, blob models.Blob) error {
	query :=
		`INSERT INTO sessions (id, blob, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (id) DO UPDATE SET blob = EXCLUDED.blob, updated_at = EXCLUDED.updated_at
		 `

	if _, err := r.db.ExecContext(ctx, query, id, string(blob)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
