package embedding

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"google.golang.org/genai"
)

// GeminiEmbedder uses the Gemini embedding API. The API returns a single
// already-pooled vector per content, so only normalization happens here.
type GeminiEmbedder struct {
	client    *genai.Client
	logger    *Logger.Logger
	modelName string
	timeout   time.Duration
}

func NewGeminiEmbedder(apiKey, modelName string, timeout time.Duration, logger *Logger.Logger) (*GeminiEmbedder, error) {
	ctx := context.Background()

	// The genai client reads its key from the environment.
	os.Setenv("GOOGLE_API_KEY", apiKey)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "text-embedding-004"
	}
	if timeout == 0 {
		timeout = 8 * time.Second
	}

	return &GeminiEmbedder{
		client:    client,
		logger:    logger,
		modelName: modelName,
		timeout:   timeout,
	}, nil
}

// Embed implements Embedder.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) (dbtypes.Vector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyEmbedding
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	result, err := e.client.Models.EmbedContent(ctx, e.modelName, contents, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, ErrEmbedTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, ErrEmptyEmbedding
	}

	vec := dbtypes.Vector(result.Embeddings[0].Values)
	if vec.IsZero() {
		return nil, ErrEmptyEmbedding
	}

	e.logger.Debugf("generated %d-dim embedding with %s", len(vec), e.modelName)
	return vec.Normalized(), nil
}
