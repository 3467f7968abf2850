package internal

import "context"

// Embedder produces pretrained sentence embeddings. It backs the
// alternative encoder; the default TF-IDF pipeline needs no Embedder.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	Dimension() int
}

// Provider is a language model used for draft generation and review.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) (<-chan string, error)
}
