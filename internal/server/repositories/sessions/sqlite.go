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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Blob, error) {
	var blob string
	err := r.db.QueryRowContext(ctx, `SELECT blob FROM sessions WHERE id = ?`, id).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return models.Blob(blob), nil
}

func (r *SQLiteRepository) Set(ctx context.Context, id string, blob models.Blob) error {
	query := `INSERT INTO sessions (id, blob, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, id, string(blob)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
