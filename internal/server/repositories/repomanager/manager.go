// Package repomanager opens the configured session store backend, applies
// schema migrations for SQL backends (via goose) and optional sealing.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tgproxy/internal/cryptox"
	"github.com/dmitrijs2005/tgproxy/internal/server/config"
	"github.com/dmitrijs2005/tgproxy/internal/server/repositories/sessions"
)

// RepositoryManager owns a session store and the resources behind it.
type RepositoryManager interface {
	Sessions() sessions.Repository
	Close() error
}

type manager struct {
	repo  sessions.Repository
	close func() error
}

func (m *manager) Sessions() sessions.Repository {
	return m.repo
}

func (m *manager) Close() error {
	if m.close == nil {
		return nil
	}
	return m.close()
}

// NewRepositoryManager opens the backend named by cfg.SessionStore. When
// cfg.SessionSecret is set the store is wrapped in a SealedRepository.
func NewRepositoryManager(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	m, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SessionSecret != "" {
		sealer, err := cryptox.NewSealer(cfg.SessionSecret)
		if err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("session sealer: %w", err)
		}
		m.repo = sessions.NewSealedRepository(m.repo, sealer)
	}

	return m, nil
}

func open(ctx context.Context, cfg *config.Config) (*manager, error) {
	switch cfg.SessionStore {
	case config.StoreMemory, "":
		return &manager{repo: sessions.NewMemoryRepository()}, nil

	case config.StoreFile:
		repo, err := sessions.NewFileRepository(cfg.SessionDir)
		if err != nil {
			return nil, err
		}
		return &manager{repo: repo}, nil

	case config.StoreSQLite:
		db, err := openDB(ctx, "sqlite", cfg.SQLitePath, "sqlite3")
		if err != nil {
			return nil, err
		}
		// a single writer avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
		return &manager{repo: sessions.NewSQLiteRepository(db), close: db.Close}, nil

	case config.StorePostgres:
		db, err := openDB(ctx, "pgx", cfg.DatabaseDSN, "pgx")
		if err != nil {
			return nil, err
		}
		return &manager{repo: sessions.NewPostgresRepository(db), close: db.Close}, nil

	case config.StoreS3:
		repo, err := sessions.NewS3Repository(ctx, sessions.S3Options{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		return &manager{repo: repo}, nil
	}

	return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func openDB(ctx context.Context, driver, dsn, dialect string) (*sql.DB, error) {
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}
