package internal

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var _ Encoder = (*SemanticEncoder)(nil)

// svdMinDocs guards the projection: with fewer documents the SVD basis
// spans the documents themselves, so any query with term overlap scores
// near 1 and similarity thresholds stop discriminating. Below the floor
// records are scored in the term-weight space directly.
const svdMinDocs = 3

// SemanticEncoder is the default embedding backend: TF-IDF weighting
// followed by a truncated SVD projection into a dense space. Both
// transforms are fitted once by Build; EmbedQuery only applies them.
type SemanticEncoder struct {
	normalizer *Normalizer
	tfidf      *tfidfModel
	components *mat.Dense // vocab x outDim projection
	targetDim  int
	outDim     int
	built      bool
}

func NewSemanticEncoder(normalizer *Normalizer, dimension, maxFeatures int) *SemanticEncoder {
	if normalizer == nil {
		normalizer = DefaultNormalizer()
	}
	if dimension <= 0 {
		dimension = 128
	}
	return &SemanticEncoder{
		normalizer: normalizer,
		tfidf:      newTFIDFModel(maxFeatures),
		targetDim:  dimension,
	}
}

// Build fits the term weighting and the projection on the corpus and
// returns one embedding per input text, in order. An empty corpus is a
// no-op. Calling Build again refits from scratch.
func (e *SemanticEncoder) Build(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		e.built = true
		e.outDim = 0
		return nil, nil
	}

	normalized := make([]string, len(texts))
	for i, t := range texts {
		normalized[i] = e.normalizer.Normalize(t)
	}

	weights := e.tfidf.fit(normalized)
	if weights == nil {
		// Vocabulary collapsed to nothing; no record can be indexed and
		// every similarity scores zero.
		e.components = nil
		e.outDim = 0
		e.built = true
		return nil, nil
	}

	n := len(texts)
	vocab := e.tfidf.vocabSize()

	if n < svdMinDocs {
		e.components = nil
		e.outDim = vocab
		e.built = true

		embeddings := make([][]float64, n)
		for i := range embeddings {
			embeddings[i] = mat.Row(nil, i, weights)
		}
		return embeddings, nil
	}

	k := e.targetDim
	if vocab < k {
		k = vocab
	}
	if n < k {
		k = n
	}

	var svd mat.SVD
	if ok := svd.Factorize(weights, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd factorization failed")
	}

	var v mat.Dense
	svd.VTo(&v)

	e.components = mat.DenseCopyOf(v.Slice(0, vocab, 0, k))
	e.outDim = k
	e.built = true

	var projected mat.Dense
	projected.Mul(weights, e.components)

	embeddings := make([][]float64, n)
	for i := range embeddings {
		embeddings[i] = mat.Row(nil, i, &projected)
	}
	return embeddings, nil
}

// EmbedQuery projects query text with the already-fitted transforms.
func (e *SemanticEncoder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	if !e.built {
		return nil, ErrNotBuilt
	}
	if e.outDim == 0 {
		return nil, nil
	}

	row := e.tfidf.transform(e.normalizer.Normalize(text))
	if row == nil {
		return make([]float64, e.outDim), nil
	}
	if e.components == nil {
		return row, nil
	}

	q := mat.NewDense(1, len(row), row)
	var projected mat.Dense
	projected.Mul(q, e.components)

	return mat.Row(nil, 0, &projected), nil
}

// Dimension reports the embedding width after Build; before Build it is
// the configured target.
func (e *SemanticEncoder) Dimension() int {
	if e.built {
		return e.outDim
	}
	return e.targetDim
}
