package internal

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// QueryOptions tune a single retrieval call. Zero TopK falls back to
// the retriever's default; MinSimilarity is applied as given.
type QueryOptions struct {
	TopK          int
	MinSimilarity float64
	Filters       map[string]any
}

// Statistics summarizes the loaded corpus.
type Statistics struct {
	TotalTemplates   int            `json:"total_templates"`
	UseCases         map[string]int `json:"use_cases"`
	Tones            map[string]int `json:"tones"`
	Industries       map[string]int `json:"industries"`
	AverageWordCount float64        `json:"average_word_count"`
}

// Retriever owns the corpus and the fitted embedding transforms. After
// the one-time build it is read-only shared state: concurrent queries
// need no coordination beyond the internal lock taken during the lazy
// first build.
type Retriever struct {
	mu       sync.RWMutex
	loader   *Loader
	encoder  Encoder
	topK     int
	records  []*TemplateRecord
	lastLoad LoadResult
	loaded   bool
	built    bool
}

// NewRetriever builds a retriever over the corpus root using the
// default TF-IDF/SVD encoder configured by cfg.
func NewRetriever(root string, cfg RetrievalConfig) *Retriever {
	normalizer := DefaultNormalizer()
	return NewRetrieverWithEncoder(root,
		NewSemanticEncoder(normalizer, cfg.Dimension, cfg.MaxFeatures), cfg)
}

// NewRetrieverWithEncoder swaps in an alternative embedding backend,
// such as a pretrained sentence-embedding model, behind the same
// build/embed-query contract.
func NewRetrieverWithEncoder(root string, encoder Encoder, cfg RetrievalConfig) *Retriever {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	return &Retriever{
		loader:  NewLoader(root, DefaultNormalizer(), cfg.MaxTemplates),
		encoder: encoder,
		topK:    topK,
	}
}

// LoadCorpus populates the corpus from disk. Safe to call once at
// startup; calling it again without corpus changes reproduces the same
// accepted set and order. A missing root degrades to an empty corpus.
func (r *Retriever) LoadCorpus(ctx context.Context) LoadResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records, r.lastLoad = r.loader.Load()
	r.loaded = true
	r.built = false
	return r.lastLoad
}

// Reload drops the corpus and index so the next query rebuilds from
// disk. Used by the corpus watcher.
func (r *Retriever) Reload(ctx context.Context) LoadResult {
	return r.LoadCorpus(ctx)
}

// ensureBuilt lazily loads the corpus and fits the encoder. Idempotent:
// once built it is a cheap flag check.
func (r *Retriever) ensureBuilt(ctx context.Context) error {
	r.mu.RLock()
	ready := r.built
	r.mu.RUnlock()
	if ready {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.built {
		return nil
	}

	if !r.loaded {
		r.records, r.lastLoad = r.loader.Load()
		r.loaded = true
	}

	texts := make([]string, len(r.records))
	for i, rec := range r.records {
		texts[i] = rec.MatchText
	}

	embeddings, err := r.encoder.Build(ctx, texts)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	for i, rec := range r.records {
		if i < len(embeddings) {
			rec.Embedding = embeddings[i]
		}
	}

	r.built = true
	return nil
}

// Query runs similarity search over the corpus. Results are ordered by
// descending score with corpus order breaking ties, every score clears
// opts.MinSimilarity, and at most TopK results come back. Any internal
// failure surfaces as an empty result set, never an error: retrieval
// must not block draft generation.
func (r *Retriever) Query(ctx context.Context, text string, opts QueryOptions) []QueryResult {
	if err := r.ensureBuilt(ctx); err != nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.records) == 0 {
		return nil
	}

	query, err := r.encoder.EmbedQuery(ctx, text)
	if err != nil {
		return nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = r.topK
	}

	candidates := make([]QueryResult, 0, len(r.records))
	for _, rec := range r.records {
		score := Cosine(query, rec.Embedding)
		if score < opts.MinSimilarity {
			continue
		}
		if !matchesFilters(rec, opts.Filters) {
			continue
		}
		candidates = append(candidates, QueryResult{Record: rec, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// ByCategory returns all records with the given use case, in corpus order.
func (r *Retriever) ByCategory(useCase string) []*TemplateRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*TemplateRecord
	for _, rec := range r.records {
		if rec.UseCase == useCase {
			out = append(out, rec)
		}
	}
	return out
}

// ByID returns the record with the given id, or nil.
func (r *Retriever) ByID(id string) *TemplateRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

// Statistics reports per-field counts and the average word count.
func (r *Retriever) Statistics() Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Statistics{
		TotalTemplates: len(r.records),
		UseCases:       make(map[string]int),
		Tones:          make(map[string]int),
		Industries:     make(map[string]int),
	}

	totalWords := 0
	for _, rec := range r.records {
		stats.UseCases[rec.UseCase]++
		stats.Tones[rec.Tone]++
		stats.Industries[rec.Industry]++
		totalWords += rec.WordCount
	}
	if len(r.records) > 0 {
		stats.AverageWordCount = float64(totalWords) / float64(len(r.records))
	}
	return stats
}

// LastLoad reports the accepted/skipped counts from the most recent load.
func (r *Retriever) LastLoad() LoadResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastLoad
}

// matchesFilters applies metadata filters: equality on scalar fields,
// any-overlap on list fields. An unknown field or a malformed filter
// value counts as no match for that key.
func matchesFilters(rec *TemplateRecord, filters map[string]any) bool {
	for key, want := range filters {
		got, ok := rec.Field(key)
		if !ok {
			return false
		}
		if !fieldMatches(got, want) {
			return false
		}
	}
	return true
}

func fieldMatches(got, want any) bool {
	switch field := got.(type) {
	case []string:
		for _, w := range filterValues(want) {
			for _, f := range field {
				if f == w {
					return true
				}
			}
		}
		return false
	case string:
		values := filterValues(want)
		if len(values) == 0 {
			return false
		}
		for _, w := range values {
			if field == w {
				return true
			}
		}
		return false
	case float64:
		switch w := want.(type) {
		case float64:
			return field == w
		case int:
			return field == float64(w)
		}
		return false
	default:
		return false
	}
}

// filterValues coerces a filter value into the set of acceptable
// strings. Non-string content yields nil, which never matches.
func filterValues(want any) []string {
	switch w := want.(type) {
	case string:
		return []string{w}
	case []string:
		return w
	case []any:
		out := make([]string, 0, len(w))
		for _, v := range w {
			s, ok := v.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}
