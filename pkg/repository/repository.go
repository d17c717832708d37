package repository

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/tripscope/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	Session   *SessionRepository
	Embedding *EmbeddingRepository
	Setting   *SettingRepository
	DB        *sqlx.DB
}

// NewRepositories creates all repositories with a shared database connection
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:tripscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	repos := &Repositories{
		Session:   NewSessionRepository(db),
		Embedding: NewEmbeddingRepository(db),
		Setting:   NewSettingRepository(db),
		DB:        db,
	}

	return repos, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// SyncEmbeddingModel drops stored anchor vectors made by a model other than the given one
// and records the model. The model is a store key and may include the vector size,
// vectors of different models or sizes are not comparable.
func (r *Repositories) SyncEmbeddingModel(ctx context.Context, model string) (purged int64, err error) {
	stored, err := r.Setting.GetSetting(ctx, domain.SettingEmbeddingModel)
	if err != nil {
		return 0, fmt.Errorf("get embedding model: %w", err)
	}
	if stored == model {
		return 0, nil
	}

	purged, err = r.Embedding.DeleteOtherModels(ctx, model)
	if err != nil {
		return 0, fmt.Errorf("purge embeddings: %w", err)
	}
	if stored != "" {
		lgr.Printf("[INFO] embedding model changed from %q to %q, removed %d stored vectors", stored, model, purged)
	}

	if err := r.Setting.SetSetting(ctx, domain.SettingEmbeddingModel, model); err != nil {
		return purged, fmt.Errorf("save embedding model: %w", err)
	}
	return purged, nil
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}
