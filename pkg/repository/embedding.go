package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// EmbeddingRepository stores vectors of preference example phrases per embedding model
type EmbeddingRepository struct {
	db *sqlx.DB
}

// NewEmbeddingRepository creates a new embedding repository
func NewEmbeddingRepository(db *sqlx.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db: db}
}

// GetEmbedding returns the stored vector, nil without error if there is none
func (r *EmbeddingRepository) GetEmbedding(ctx context.Context, model, text string) ([]float32, error) {
	var data string
	err := r.db.GetContext(ctx, &data, "SELECT vector FROM anchor_embeddings WHERE model = ? AND text = ?", model, text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get embedding: %w", err)
	}

	var vec []float32
	if err := json.Unmarshal([]byte(data), &vec); err != nil {
		return nil, fmt.Errorf("unmarshal embedding of %q: %w", text, err)
	}
	return vec, nil
}

// SaveEmbedding stores or replaces the vector of text for model
func (r *EmbeddingRepository) SaveEmbedding(ctx context.Context, model, text string, vec []float32) error {
	if len(vec) == 0 {
		return fmt.Errorf("save embedding of %q: empty vector", text)
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}

	query := `
		INSERT INTO anchor_embeddings (model, text, vector, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(model, text) DO UPDATE SET vector = excluded.vector, created_at = excluded.created_at
	`
	err = withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, model, text, string(data), dbTime(time.Now()))
		return err
	})
	if err != nil {
		return fmt.Errorf("save embedding: %w", err)
	}
	return nil
}

// DeleteOtherModels removes vectors of every model except the given one
func (r *EmbeddingRepository) DeleteOtherModels(ctx context.Context, model string) (int64, error) {
	var affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM anchor_embeddings WHERE model != ?", model)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete embeddings: %w", err)
	}
	return affected, nil
}

// CountEmbeddings returns the number of vectors stored for model
func (r *EmbeddingRepository) CountEmbeddings(ctx context.Context, model string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM anchor_embeddings WHERE model = ?", model); err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return count, nil
}
