package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/docuchat-ai/docuchat/internal/config"
)

// Extractor turns raw PDF bytes into pre-split text sections. Section
// boundary detection happens inside the remote service; callers accept
// the returned list verbatim.
type Extractor interface {
	Extract(ctx context.Context, pdfData []byte) ([]string, error)
}

type Section struct {
	Content string `json:"content"`
}

type parseResponse struct {
	Sections []Section `json:"sections"`
}

type httpExtractor struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewExtractor(cfg config.ExtractorConfig) Extractor {
	return &httpExtractor{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
	}
}

// Extract implements Extractor.
func (e *httpExtractor) Extract(ctx context.Context, pdfData []byte) ([]string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "document.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(pdfData); err != nil {
		return nil, fmt.Errorf("failed to write pdf payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/parse", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call pdf extractor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pdf extractor returned status %d", resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode extractor response: %w", err)
	}

	sections := make([]string, 0, len(parsed.Sections))
	for _, s := range parsed.Sections {
		sections = append(sections, s.Content)
	}
	return sections, nil
}
