package embed

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store persists vectors between restarts, keyed by model and text
type Store interface {
	// GetEmbedding returns nil vector without error if nothing is stored
	GetEmbedding(ctx context.Context, model, text string) ([]float32, error)
	SaveEmbedding(ctx context.Context, model, text string, vec []float32) error
}

// Cache memoizes vectors of an embedder by exact text.
// Meant for a bounded set of phrases, entries are never evicted.
// Concurrent requests for the same text share a single upstream call.
type Cache struct {
	embedder    Embedder
	model       string
	store       Store
	concurrency int

	mu      sync.RWMutex
	vectors map[string][]float32
	group   singleflight.Group
}

// CacheOpts holds optional cache settings
type CacheOpts struct {
	Model       string // key for persistent store, vectors of different models or sizes never mix
	Store       Store  // optional, memory only if nil
	Concurrency int    // parallel calls during warmup for embedders without batching
}

// NewCache makes a memoizing wrapper around embedder
func NewCache(embedder Embedder, opts CacheOpts) *Cache {
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	return &Cache{
		embedder:    embedder,
		model:       opts.Model,
		store:       opts.Store,
		concurrency: opts.Concurrency,
		vectors:     make(map[string][]float32),
	}
}

// Embed returns the memoized vector for text, embedding it on first use
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.get(text); ok {
		return vec, nil
	}

	// the call is shared by every waiter, so it is not bound to the cancellation of the first one
	ch := c.group.DoChan(text, func() (any, error) {
		sctx := context.WithoutCancel(ctx)
		if vec, ok := c.get(text); ok {
			return vec, nil
		}
		if vec := c.load(sctx, text); vec != nil {
			c.put(text, vec)
			return vec, nil
		}
		vec, err := c.embedder.Embed(sctx, text)
		if err != nil {
			return nil, err
		}
		c.put(text, vec)
		c.save(sctx, text, vec)
		return vec, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]float32), nil
	}
}

// Warm embeds all texts not cached yet and returns how many were requested from the embedder.
// Batching embedders get a single batch call, others are called in parallel.
func (c *Cache) Warm(ctx context.Context, texts []string) (int, error) {
	var missing []string
	seen := make(map[string]bool, len(texts))
	for _, text := range texts {
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		if _, ok := c.get(text); ok {
			continue
		}
		if vec := c.load(ctx, text); vec != nil {
			c.put(text, vec)
			continue
		}
		missing = append(missing, text)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	if be, ok := c.embedder.(BatchEmbedder); ok {
		vecs, err := be.EmbedBatch(ctx, missing)
		if err != nil {
			return 0, fmt.Errorf("warm %d texts: %w", len(missing), err)
		}
		if len(vecs) != len(missing) {
			return 0, fmt.Errorf("warm: got %d vectors for %d texts", len(vecs), len(missing))
		}
		for i, text := range missing {
			c.put(text, vecs[i])
			c.save(ctx, text, vecs[i])
		}
		return len(missing), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, text := range missing {
		g.Go(func() error {
			if _, err := c.Embed(gctx, text); err != nil {
				return fmt.Errorf("warm %q: %w", text, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(missing), nil
}

// Len returns the number of cached vectors
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

func (c *Cache) get(text string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.vectors[text]
	return vec, ok
}

func (c *Cache) put(text string, vec []float32) {
	c.mu.Lock()
	c.vectors[text] = vec
	c.mu.Unlock()
}

// load reads a stored vector, store failures are logged and treated as a miss
func (c *Cache) load(ctx context.Context, text string) []float32 {
	if c.store == nil {
		return nil
	}
	vec, err := c.store.GetEmbedding(ctx, c.model, text)
	if err != nil {
		lgr.Printf("[WARN] failed to load embedding for %q: %v", text, err)
		return nil
	}
	return vec
}

func (c *Cache) save(ctx context.Context, text string, vec []float32) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveEmbedding(ctx, c.model, text, vec); err != nil {
		lgr.Printf("[WARN] failed to save embedding for %q: %v", text, err)
	}
}
