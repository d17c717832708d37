package preference

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the minimum similarity accepted as a match when nothing else is configured
const DefaultThreshold = 0.6

// Embedder converts text to a fixed-length vector.
// The resolver assumes identical text always produces the same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ResolverConfig holds optional resolver settings
type ResolverConfig struct {
	// Threshold used when a request doesn't set one, DefaultThreshold if zero.
	// Thresholds <= 0 would let every field match its first example and are rejected.
	Threshold float64
	// Concurrency limits parallel example embeddings of a single field, 1 (sequential) if zero
	Concurrency int
	// AnchorEmbedder embeds example phrases, usually a memoizing cache; the primary embedder if nil
	AnchorEmbedder Embedder
	// Similarity scores query and example vectors, Cosine if nil
	Similarity SimilarityFunc
}

// ResolveRequest contains the parameters of a single resolve call
type ResolveRequest struct {
	Text      string
	Existing  *Record // nil starts from an empty record
	Threshold float64 // zero uses the resolver's threshold
}

// Resolver fills unset preference fields from free text by semantic similarity.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	schema      *Schema
	embedder    Embedder
	anchors     Embedder
	similarity  SimilarityFunc
	threshold   float64
	concurrency int
}

// NewResolver creates a resolver for the schema using embedder for query text
func NewResolver(schema *Schema, embedder Embedder, cfg ResolverConfig) *Resolver {
	r := &Resolver{
		schema:      schema,
		embedder:    embedder,
		anchors:     cfg.AnchorEmbedder,
		similarity:  cfg.Similarity,
		threshold:   cfg.Threshold,
		concurrency: cfg.Concurrency,
	}
	if r.anchors == nil {
		r.anchors = embedder
	}
	if r.similarity == nil {
		r.similarity = Cosine
	}
	if r.threshold == 0 {
		r.threshold = DefaultThreshold
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	return r
}

// Schema returns the schema the resolver matches against
func (r *Resolver) Schema() *Schema {
	return r.schema
}

// Resolve returns a copy of the existing record with unset fields filled where the text matches.
// For every unset field, in canonical order, each example of each value is compared with the
// text; the first value reaching the highest score wins, and it is assigned only if that score
// is at least the threshold. Set fields are never recomputed or overwritten.
// Any embedding failure aborts the whole call, no partial record is returned.
// Blank text (empty after trimming spaces) and complete records are returned as a copy of the
// existing record without calling the embedder.
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (Record, error) {
	threshold := req.Threshold
	if threshold == 0 {
		threshold = r.threshold
	}
	if math.IsNaN(threshold) || threshold <= 0 || threshold > 1 {
		return Record{}, fmt.Errorf("%w: threshold %v is outside (0, 1]", ErrInvalidInput, threshold)
	}

	rec := r.schema.EmptyRecord()
	if req.Existing != nil {
		if err := r.schema.validate(*req.Existing); err != nil {
			return Record{}, err
		}
		for id, v := range req.Existing.values {
			rec.set(id, strings.TrimSpace(v))
		}
	}

	if strings.TrimSpace(req.Text) == "" || rec.Complete() {
		return rec, nil
	}

	query, err := r.embedder.Embed(ctx, req.Text)
	if err != nil {
		return Record{}, fmt.Errorf("%w: embed text: %w", ErrEmbedding, err)
	}

	for _, f := range r.schema.fields {
		if rec.IsSet(f.ID) {
			continue
		}
		value, score, err := r.bestValue(ctx, query, f)
		if err != nil {
			return Record{}, fmt.Errorf("resolve field %s: %w", f.ID, err)
		}
		if score >= threshold {
			rec.set(f.ID, value)
		}
	}

	return rec, nil
}

// anchor is a single example phrase of a field value
type anchor struct {
	value   string
	example string
}

// bestValue scores every example of the field and picks the best value.
// Best score starts at 0 with no value and is replaced only by a strictly greater score,
// so the first value in declaration order wins ties and non-positive scores never match.
func (r *Resolver) bestValue(ctx context.Context, query []float32, f Field) (value string, score float64, err error) {
	var anchors []anchor
	for _, v := range f.Values {
		for _, ex := range v.Examples {
			anchors = append(anchors, anchor{value: v.Name, example: ex})
		}
	}
	if len(anchors) == 0 {
		return "", 0, nil
	}

	scores, err := r.scoreAnchors(ctx, query, anchors)
	if err != nil {
		return "", 0, err
	}

	for i, s := range scores {
		if s > score {
			score = s
			value = anchors[i].value
		}
	}
	return value, score, nil
}

// scoreAnchors returns similarity scores in the same order as anchors.
// With concurrency > 1 the examples are embedded in parallel, the order of scores is unchanged.
func (r *Resolver) scoreAnchors(ctx context.Context, query []float32, anchors []anchor) ([]float64, error) {
	scores := make([]float64, len(anchors))

	scoreOne := func(ctx context.Context, i int) error {
		vec, err := r.anchors.Embed(ctx, anchors[i].example)
		if err != nil {
			return fmt.Errorf("%w: embed example %q: %w", ErrEmbedding, anchors[i].example, err)
		}
		s, err := r.similarity(query, vec)
		if err != nil {
			return fmt.Errorf("%w: similarity for %q: %w", ErrEmbedding, anchors[i].example, err)
		}
		scores[i] = s
		return nil
	}

	if r.concurrency == 1 {
		for i := range anchors {
			if err := scoreOne(ctx, i); err != nil {
				return nil, err
			}
		}
		return scores, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range anchors {
		g.Go(func() error { return scoreOne(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
