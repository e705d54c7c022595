package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/docuchat-ai/docuchat/internal/config"
)

// ObjectStore fetches raw uploaded file bytes. Bucket lifecycle and
// uploads are managed elsewhere; this client only downloads.
type ObjectStore interface {
	Download(ctx context.Context, objectPath string) ([]byte, error)
}

type httpObjectStore struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewObjectStore(cfg config.StorageConfig) ObjectStore {
	return &httpObjectStore{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		bucket:     cfg.Bucket,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{},
	}
}

// Download implements ObjectStore.
func (s *httpObjectStore) Download(ctx context.Context, objectPath string) ([]byte, error) {
	url := fmt.Sprintf("%s/object/%s/%s", s.baseURL, s.bucket, strings.TrimPrefix(objectPath, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	if s.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download storage object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage returned status %d for %s", resp.StatusCode, objectPath)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage object body: %w", err)
	}
	return data, nil
}
