package embed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tripscope/pkg/embed/mocks"
)

// countingEmbedder returns a vector made of the text length and counts calls per text
type countingEmbedder struct {
	mu     sync.Mutex
	calls  map[string]int
	delay  time.Duration
	failOn string
}

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	time.Sleep(e.delay)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.calls == nil {
		e.calls = map[string]int{}
	}
	e.calls[text]++
	if text == e.failOn {
		return nil, errors.New("embedding failed")
	}
	return []float32{float32(len(text)), 1}, nil
}

func (e *countingEmbedder) count(text string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[text]
}

// batchEmbedder records batch calls on top of countingEmbedder
type batchEmbedder struct {
	countingEmbedder
	batches [][]string
}

func (e *batchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.batches = append(e.batches, texts)
	res := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		res = append(res, vec)
	}
	return res, nil
}

func TestCache_Embed(t *testing.T) {
	emb := &countingEmbedder{}
	c := NewCache(emb, CacheOpts{})

	for range 3 {
		vec, err := c.Embed(context.Background(), "take it slow")
		require.NoError(t, err)
		assert.Equal(t, []float32{12, 1}, vec)
	}
	assert.Equal(t, 1, emb.count("take it slow"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_Embed_Concurrent(t *testing.T) {
	emb := &countingEmbedder{delay: 20 * time.Millisecond}
	c := NewCache(emb, CacheOpts{})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Embed(context.Background(), "pack the schedule")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, emb.count("pack the schedule"))
}

func TestCache_Embed_ErrorNotCached(t *testing.T) {
	emb := &countingEmbedder{failOn: "broken"}
	c := NewCache(emb, CacheOpts{})

	_, err := c.Embed(context.Background(), "broken")
	require.Error(t, err)
	_, err = c.Embed(context.Background(), "broken")
	require.Error(t, err)
	assert.Equal(t, 2, emb.count("broken"))
	assert.Equal(t, 0, c.Len())
}

func TestCache_Store(t *testing.T) {
	t.Run("stored vector used without embedding", func(t *testing.T) {
		store := &mocks.StoreMock{
			GetEmbeddingFunc: func(_ context.Context, model, text string) ([]float32, error) {
				if text == "stored" {
					return []float32{9, 9}, nil
				}
				return nil, nil
			},
			SaveEmbeddingFunc: func(context.Context, string, string, []float32) error { return nil },
		}
		emb := &countingEmbedder{}
		c := NewCache(emb, CacheOpts{Model: "m1", Store: store})

		vec, err := c.Embed(context.Background(), "stored")
		require.NoError(t, err)
		assert.Equal(t, []float32{9, 9}, vec)
		assert.Equal(t, 0, emb.count("stored"))

		vec, err = c.Embed(context.Background(), "fresh")
		require.NoError(t, err)
		assert.Equal(t, []float32{5, 1}, vec)

		saves := store.SaveEmbeddingCalls()
		require.Len(t, saves, 1)
		assert.Equal(t, "m1", saves[0].Model)
		assert.Equal(t, "fresh", saves[0].Text)
		assert.Equal(t, []float32{5, 1}, saves[0].Vec)
		assert.Equal(t, "m1", store.GetEmbeddingCalls()[0].Model)
	})

	t.Run("store failures don't break embedding", func(t *testing.T) {
		store := &mocks.StoreMock{
			GetEmbeddingFunc: func(context.Context, string, string) ([]float32, error) {
				return nil, errors.New("db is down")
			},
			SaveEmbeddingFunc: func(context.Context, string, string, []float32) error {
				return errors.New("db is down")
			},
		}
		emb := &countingEmbedder{}
		c := NewCache(emb, CacheOpts{Model: "m1", Store: store})

		vec, err := c.Embed(context.Background(), "text")
		require.NoError(t, err)
		assert.Equal(t, []float32{4, 1}, vec)
		assert.Len(t, store.SaveEmbeddingCalls(), 1)

		_, err = c.Embed(context.Background(), "text")
		require.NoError(t, err)
		assert.Equal(t, 1, emb.count("text"), "memory cache used after store failure")
	})
}

func TestCache_Warm(t *testing.T) {
	t.Run("batch embedder gets one call for missing texts", func(t *testing.T) {
		emb := &batchEmbedder{}
		c := NewCache(emb, CacheOpts{})
		_, err := c.Embed(context.Background(), "known")
		require.NoError(t, err)

		n, err := c.Warm(context.Background(), []string{"known", "a", "b", "a", ""})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, emb.batches, 1)
		assert.Equal(t, []string{"a", "b"}, emb.batches[0])
		assert.Equal(t, 3, c.Len())

		n, err = c.Warm(context.Background(), []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Len(t, emb.batches, 1)
	})

	t.Run("plain embedder called in parallel", func(t *testing.T) {
		emb := &countingEmbedder{delay: 5 * time.Millisecond}
		c := NewCache(emb, CacheOpts{Concurrency: 3})
		texts := []string{"one", "two", "three", "four", "five", "six"}

		n, err := c.Warm(context.Background(), texts)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		for _, text := range texts {
			assert.Equal(t, 1, emb.count(text))
		}
	})

	t.Run("stored vectors are loaded, not embedded", func(t *testing.T) {
		var saved atomic.Int32
		store := &mocks.StoreMock{
			GetEmbeddingFunc: func(_ context.Context, _, text string) ([]float32, error) {
				if text == "stored" {
					return []float32{1}, nil
				}
				return nil, nil
			},
			SaveEmbeddingFunc: func(context.Context, string, string, []float32) error {
				saved.Add(1)
				return nil
			},
		}
		emb := &batchEmbedder{}
		c := NewCache(emb, CacheOpts{Model: "m", Store: store})

		n, err := c.Warm(context.Background(), []string{"stored", "new"})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, [][]string{{"new"}}, emb.batches)
		assert.Equal(t, int32(1), saved.Load())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("failure", func(t *testing.T) {
		emb := &batchEmbedder{countingEmbedder: countingEmbedder{failOn: "bad"}}
		c := NewCache(emb, CacheOpts{})
		_, err := c.Warm(context.Background(), []string{"good", "bad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "warm 2 texts")
		assert.Equal(t, 0, c.Len())

		plain := &countingEmbedder{failOn: "bad"}
		_, err = NewCache(plain, CacheOpts{}).Warm(context.Background(), []string{"bad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `warm "bad"`)
	})
}

// blockingEmbedder holds every call until released, a cancelled context ends the call early
type blockingEmbedder struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (e *blockingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.calls.Add(1) == 1 {
		close(e.started)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.release:
		return []float32{float32(len(text)), 1}, nil
	}
}

func TestCache_Embed_CallerCancelled(t *testing.T) {
	emb := &blockingEmbedder{started: make(chan struct{}), release: make(chan struct{})}
	c := NewCache(emb, CacheOpts{})

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Embed(ctx, "take it slow")
		firstErr <- err
	}()
	<-emb.started

	type result struct {
		vec []float32
		err error
	}
	second := make(chan result, 1)
	go func() {
		vec, err := c.Embed(context.Background(), "take it slow")
		second <- result{vec: vec, err: err}
	}()
	time.Sleep(50 * time.Millisecond) // let the second caller join the call in flight

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(emb.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, []float32{12, 1}, res.vec)
	assert.Equal(t, int32(1), emb.calls.Load())
	assert.Equal(t, 1, c.Len())
}
