package ai

import (
	"context"
	"errors"
	"fmt"
	"portrait-backend/internal/pkg/logger"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrNotInitialized = errors.New("gemini client is not initialized")

// EmbedResult is the outcome for one input of EmbedTexts.
type EmbedResult struct {
	Vector       []float32
	ResponseTime int // in milliseconds
	Err          error
}

// Embedder is implemented by AiClient; cmd/embed depends on it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) []EmbedResult
}

type AiClient struct {
	geminiClient *genai.Client
	geminiModel  string
}

type Config struct {
	GeminiAPIKey string
	GeminiModel  string
}

// NewAiClient returns a client without a Gemini backend when no API key is
// configured; every call then fails with ErrNotInitialized.
func NewAiClient(ctx context.Context, cfg *Config) (*AiClient, error) {
	aiClient := &AiClient{}

	if cfg.GeminiAPIKey != "" && cfg.GeminiModel != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}

		aiClient.geminiClient = client
		aiClient.geminiModel = cfg.GeminiModel
	}

	return aiClient, nil
}

// Embed sends one embedContent request and returns the vector.
func (a *AiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if a.geminiClient == nil {
		return nil, ErrNotInitialized
	}

	em := a.geminiClient.EmbeddingModel(a.geminiModel)
	em.TaskType = genai.TaskTypeRetrievalDocument

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini embedding API: %w", err)
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("received empty embedding from Gemini")
	}

	return resp.Embedding.Values, nil
}

// EmbedTexts embeds each input in order, one round trip per input. A failed
// input does not stop the remaining ones.
func (a *AiClient) EmbedTexts(ctx context.Context, texts []string) []EmbedResult {
	results := make([]EmbedResult, len(texts))

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		startTime := time.Now()
		vector, err := a.Embed(ctx, text)
		results[i] = EmbedResult{
			Vector:       vector,
			ResponseTime: int(time.Since(startTime).Milliseconds()),
			Err:          err,
		}
		if err != nil {
			logger.Warning.Printf("embedding input %d failed: %v", i, err)
		}
	}

	return results
}

func (a *AiClient) Close() error {
	if a.geminiClient == nil {
		return nil
	}
	return a.geminiClient.Close()
}
