package internal

import (
	"context"

	"gonum.org/v1/gonum/floats"
)

// Encoder turns corpus texts into fixed-dimension embeddings and applies
// the same, already-fitted transform to query text. Build is called once
// per corpus; EmbedQuery must never refit. Dimension is fixed per
// instance once Build has run.
type Encoder interface {
	Build(ctx context.Context, texts []string) ([][]float64, error)
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// A zero vector on either side scores 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
