package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	ErrNotConfigured = errors.New("embeddings: OPENAI_API_KEY is not set")
	ErrEmptyText     = errors.New("embeddings: text cannot be empty")
)

// Generator turns free text into kernel.EmbeddingDim wide vectors.
// The API client is built on first use and shared by all callers.
type Generator struct {
	apiKey string
	model  string
	opts   []option.RequestOption

	once   sync.Once
	client *openai.Client
}

// NewGenerator creates a generator for the given embedding model.
// Extra request options are passed to the client (base URL, retries).
func NewGenerator(apiKey, model string, opts ...option.RequestOption) *Generator {
	if model == "" {
		model = string(openai.EmbeddingModelTextEmbedding3Small)
	}
	return &Generator{apiKey: apiKey, model: model, opts: opts}
}

func (g *Generator) init() {
	g.once.Do(func() {
		if g.apiKey == "" {
			return
		}
		opts := append([]option.RequestOption{option.WithAPIKey(g.apiKey)}, g.opts...)
		client := openai.NewClient(opts...)
		g.client = &client
	})
}

// Embed creates an embedding vector for text
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	g.init()
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model:      openai.EmbeddingModel(g.model),
		Dimensions: openai.Int(kernel.EmbeddingDim),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	vec := toFloat32(resp.Data[0].Embedding)
	if len(vec) != kernel.EmbeddingDim {
		return nil, fmt.Errorf("embedding has %d dimensions, want %d", len(vec), kernel.EmbeddingDim)
	}
	return vec, nil
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
