package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"rfp-assist/internal/config"
)

// NewEmbedder builds the configured embedding backend.
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIEmbedder(cfg)
	case "ollama", "":
		return newOllamaEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedder provider: %s", cfg.Provider)
	}
}

func newOpenAIEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing openai LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

func newOllamaEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing ollama LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedDocument encodes one text into a fixed-length vector. The call is
// synchronous and model-bound; it goes through EmbedDocuments so backends
// that batch can do so when more texts are added.
func EmbedDocument(ctx context.Context, embedder embeddings.Embedder, text string) ([]float32, error) {
	vecs, err := EmbedDocuments(ctx, embedder, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedDocuments encodes a batch of texts.
func EmbedDocuments(ctx context.Context, embedder embeddings.Embedder, texts []string) ([][]float32, error) {
	vecs, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("generating embeddings: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding backend returned %d vectors for %d texts", len(vecs), len(texts))
	}
	log.Debug().Int("texts", len(texts)).Msg("generated embeddings")
	return vecs, nil
}
