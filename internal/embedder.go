package internal

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

var _ Encoder = (*PretrainedEncoder)(nil)

// PretrainedEncoder backs the index with a pretrained sentence-embedding
// model instead of the corpus-fitted TF-IDF pipeline. Drop-in behind the
// same Encoder contract: Build embeds the corpus, EmbedQuery embeds
// query text, and the output dimensionality is fixed by the model.
type PretrainedEncoder struct {
	embedder Embedder
	built    bool
}

func NewPretrainedEncoder(embedder Embedder) *PretrainedEncoder {
	return &PretrainedEncoder{embedder: embedder}
}

func (e *PretrainedEncoder) Build(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		e.built = true
		return nil, nil
	}

	embeddings, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}

	e.built = true
	return embeddings, nil
}

func (e *PretrainedEncoder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	if !e.built {
		return nil, ErrNotBuilt
	}
	return e.embedder.Embed(ctx, text)
}

func (e *PretrainedEncoder) Dimension() int {
	return e.embedder.Dimension()
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// OpenAIEmbedder calls the OpenAI embeddings endpoint. The invocation
// blocks on the network; the retriever treats it like any other encoder
// and absorbs failures into empty result sets.
type OpenAIEmbedder struct {
	client    openai.Client
	model     openai.EmbeddingModel
	dimension int
}

func NewOpenAIEmbedder(apiKey, model string, dimension int) *OpenAIEmbedder {
	if model == "" {
		model = string(openai.EmbeddingModelTextEmbedding3Small)
	}
	if dimension <= 0 {
		dimension = 1536
	}
	return &OpenAIEmbedder{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     openai.EmbeddingModel(model),
		dimension: dimension,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vecs[0], nil
}

func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      e.model,
		Dimensions: openai.Int(int64(e.dimension)),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(texts), len(resp.Data))
	}

	out := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		if len(d.Embedding) != e.dimension {
			return nil, fmt.Errorf("dimension mismatch: want %d, got %d", e.dimension, len(d.Embedding))
		}
		out[i] = d.Embedding
	}
	return out, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}
