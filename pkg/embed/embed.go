// Package embed provides text embedding clients for OpenAI-compatible services
// and a memoizing cache for phrases embedded over and over, like preference examples.
package embed

import (
	"context"
	"errors"
)

// ErrEmptyInput is returned when there is nothing to embed
var ErrEmptyInput = errors.New("embed: empty input")

// Embedder converts text into a dense vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BatchEmbedder embeds many texts in as few requests as possible.
// Vectors are returned in the order of texts.
type BatchEmbedder interface {
	Embedder
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
