package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
)

// TEIEmbedder talks to a text-embeddings-inference style HTTP service.
// The service returns token-level vectors; pooling and normalization
// happen here so every stored vector is directly dot-product comparable.
type TEIEmbedder struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger.Logger
	timeout    time.Duration
}

type teiRequest struct {
	Inputs []string `json:"inputs"`
}

// One matrix of token vectors per input.
type teiResponse [][][]float32

func NewTEIEmbedder(baseURL string, timeout time.Duration, logger *Logger.Logger) *TEIEmbedder {
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &TEIEmbedder{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
		timeout:    timeout,
	}
}

// Embed implements Embedder.
func (e *TEIEmbedder) Embed(ctx context.Context, text string) (dbtypes.Vector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyEmbedding
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	jsonData, err := json.Marshal(teiRequest{Inputs: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embed_all", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, ErrEmbedTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
	}

	var teiResp teiResponse
	if err := json.NewDecoder(resp.Body).Decode(&teiResp); err != nil {
		if ctx.Err() != nil {
			return nil, ErrEmbedTimeout
		}
		return nil, fmt.Errorf("%w: decoding response: %v", ErrModelUnavailable, err)
	}

	if len(teiResp) == 0 || len(teiResp[0]) == 0 {
		return nil, ErrEmptyEmbedding
	}

	pooled := MeanPool(teiResp[0])
	if pooled == nil || pooled.IsZero() {
		return nil, ErrEmptyEmbedding
	}

	return pooled.Normalized(), nil
}
