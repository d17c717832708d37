package embed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/tripscope/pkg/config"
)

// OpenAI embeds text with an OpenAI-compatible /embeddings endpoint.
// Works with OpenAI itself and with local servers like ollama or llama.cpp.
type OpenAI struct {
	client     *openai.Client
	model      string
	dimensions int
	batchSize  int
	retries    int
	retryDelay time.Duration
	dim        atomic.Int64 // vector size seen in the last response
}

// NewOpenAI creates an embedding client from config
func NewOpenAI(cfg config.EmbeddingConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	res := &OpenAI{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		batchSize:  cfg.BatchSize,
		retries:    cfg.Retries,
		retryDelay: 100 * time.Millisecond,
	}
	if res.batchSize < 1 {
		res.batchSize = 32
	}
	if res.retries < 1 {
		res.retries = 1
	}
	if res.dimensions > 0 {
		res.dim.Store(int64(res.dimensions))
	}
	return res
}

// Model returns the embedding model name
func (o *OpenAI) Model() string {
	return o.model
}

// StoreKey identifies vectors of this client in a persistent store.
// Vectors of another model or another configured size are not comparable, so both are part of the key.
func (o *OpenAI) StoreKey() string {
	if o.dimensions > 0 {
		return fmt.Sprintf("%s:%d", o.model, o.dimensions)
	}
	return o.model
}

// Dimension returns the configured vector size, or the size of the last response if not configured
func (o *OpenAI) Dimension() int {
	return int(o.dim.Load())
}

// Embed returns the vector for a single text
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	vecs, err := o.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch returns vectors for texts, split into requests of at most batch size texts
func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	result := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += o.batchSize {
		end := min(i+o.batchSize, len(texts))
		vecs, err := o.request(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch [%d:%d]: %w", i, end, err)
		}
		result = append(result, vecs...)
	}
	return result, nil
}

// request sends one embeddings call, retrying rate limits, server and network errors
func (o *OpenAI) request(ctx context.Context, texts []string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(o.model),
		Dimensions: o.dimensions,
	}

	var resp openai.EmbeddingResponse
	var permanent error
	retrier := repeater.NewBackoff(o.retries, o.retryDelay, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		var err error
		resp, err = o.client.CreateEmbeddings(ctx, req)
		if err == nil {
			return nil
		}
		if !isTransient(ctx, err) {
			permanent = err
			return nil // stop retrying
		}
		return err
	})
	if permanent != nil {
		return nil, fmt.Errorf("embeddings request: %w", permanent)
	}
	if err != nil {
		return nil, fmt.Errorf("embeddings request after %d attempts: %w", o.retries, err)
	}

	return o.vectors(resp, len(texts))
}

// vectors puts response items in input order and checks they are complete and of equal size
func (o *OpenAI) vectors(resp openai.EmbeddingResponse, n int) ([][]float32, error) {
	vecs := make([][]float32, n)
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= n {
			return nil, fmt.Errorf("unexpected embedding index %d for batch size %d", item.Index, n)
		}
		vecs[item.Index] = item.Embedding
	}

	size := len(vecs[0])
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, fmt.Errorf("missing embedding for index %d", i)
		}
		if len(v) != size {
			return nil, fmt.Errorf("inconsistent embedding size %d at index %d, expected %d", len(v), i, size)
		}
	}
	if o.dimensions > 0 && size != o.dimensions {
		return nil, fmt.Errorf("embedding size %d, expected %d", size, o.dimensions)
	}
	o.dim.Store(int64(size))
	return vecs, nil
}

// isTransient checks if a failed request is worth repeating
func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	return true // network errors
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
