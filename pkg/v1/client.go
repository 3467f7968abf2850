package v1

import (
	"context"
	"errors"

	"github.com/4thel00z/hedwig/internal"
)

// ErrNotFound is returned when a template ID does not exist.
var ErrNotFound = errors.New("template not found")

// Client provides programmatic access to template retrieval.
type Client struct {
	retriever *internal.Retriever
	opts      internal.QueryOptions
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		corpusDir:     "scrolls",
		dimension:     128,
		maxFeatures:   2000,
		maxTemplates:  1000,
		topK:          3,
		minSimilarity: 0.3,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	retriever := internal.NewRetriever(cfg.corpusDir, internal.RetrievalConfig{
		Dimension:     cfg.dimension,
		MaxFeatures:   cfg.maxFeatures,
		MaxTemplates:  cfg.maxTemplates,
		TopK:          cfg.topK,
		MinSimilarity: cfg.minSimilarity,
	})

	return &Client{
		retriever: retriever,
		opts: internal.QueryOptions{
			TopK:          cfg.topK,
			MinSimilarity: cfg.minSimilarity,
		},
	}, nil
}

// Load reads the corpus and returns how many templates were accepted.
func (c *Client) Load(ctx context.Context) (int, error) {
	result := c.retriever.LoadCorpus(ctx)
	return result.Accepted, nil
}

// Query returns the templates most similar to text, best first. Filters
// restrict results by metadata field equality; a nil map matches
// everything. Query never fails: internal errors yield an empty slice.
func (c *Client) Query(ctx context.Context, text string, filters map[string]any) []QueryResult {
	opts := c.opts
	opts.Filters = filters

	results := c.retriever.Query(ctx, text, opts)
	out := make([]QueryResult, 0, len(results))
	for _, r := range results {
		out = append(out, QueryResult{
			Template: toTemplate(r.Record),
			Score:    r.Score,
		})
	}
	return out
}

// ByCategory returns all templates with the given use case.
func (c *Client) ByCategory(useCase string) []Template {
	records := c.retriever.ByCategory(useCase)
	out := make([]Template, 0, len(records))
	for _, rec := range records {
		out = append(out, toTemplate(rec))
	}
	return out
}

// ByID returns the template with the given ID.
func (c *Client) ByID(id string) (*Template, error) {
	rec := c.retriever.ByID(id)
	if rec == nil {
		return nil, ErrNotFound
	}
	t := toTemplate(rec)
	return &t, nil
}

// Statistics returns aggregate statistics over the loaded corpus.
func (c *Client) Statistics() Statistics {
	s := c.retriever.Statistics()
	return Statistics{
		TotalTemplates:   s.TotalTemplates,
		UseCases:         s.UseCases,
		Tones:            s.Tones,
		Industries:       s.Industries,
		AverageWordCount: s.AverageWordCount,
	}
}

// NewConversation starts a conversation whose retrievals stay anchored
// to the first strong match.
func (c *Client) NewConversation() *Conversation {
	return &Conversation{inner: internal.NewConversation(c.retriever, c.opts)}
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}

// Conversation tracks drafting context across retrievals.
type Conversation struct {
	inner *internal.Conversation
}

// Retrieve records message as a conversation turn and returns reference
// templates for it, keeping the conversation's anchor template in the
// results.
func (c *Conversation) Retrieve(ctx context.Context, message string) []QueryResult {
	if len(c.inner.History.UserMessages()) == 0 {
		c.inner.History.AddInitialPrompt(message)
	} else {
		c.inner.History.AddFeedback(message)
	}

	results := c.inner.Retrieve(ctx, message)
	out := make([]QueryResult, 0, len(results))
	for _, r := range results {
		out = append(out, QueryResult{
			Template: toTemplate(r.Record),
			Score:    r.Score,
		})
	}
	return out
}

// Anchor returns the currently anchored result, or nil.
func (c *Conversation) Anchor() *QueryResult {
	a := c.inner.Anchor()
	if a == nil {
		return nil
	}
	return &QueryResult{Template: toTemplate(a.Record), Score: a.Score}
}

// Reset clears the conversation history and drops the anchor.
func (c *Conversation) Reset() {
	c.inner.Reset()
}

func toTemplate(rec *internal.TemplateRecord) Template {
	return Template{
		ID:          rec.ID,
		Subject:     rec.Subject,
		Content:     rec.Content,
		UseCase:     rec.UseCase,
		Tone:        rec.Tone,
		Industry:    rec.Industry,
		Tags:        rec.Tags,
		SuccessRate: rec.SuccessRate,
		WordCount:   rec.WordCount,
	}
}
