package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/docuchat-ai/docuchat/pkg/Logger"
)

func testLogger() *Logger.Logger {
	return &Logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestTEIEmbedder_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed_all" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req teiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Inputs) != 1 || req.Inputs[0] != "hello world" {
			t.Errorf("Unexpected inputs: %v", req.Inputs)
		}
		// Two token vectors, mean pools to [3, 4].
		json.NewEncoder(w).Encode(teiResponse{{{2, 2}, {4, 6}}})
	}))
	defer server.Close()

	embedder := NewTEIEmbedder(server.URL, 5*time.Second, testLogger())

	vec, err := embedder.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if math.Abs(float64(vec.Norm())-1) > 1e-6 {
		t.Errorf("Expected normalized vector, norm is %f", vec.Norm())
	}
	// [3,4] normalized is [0.6, 0.8].
	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Errorf("Unexpected pooled vector: %v", vec)
	}
}

func TestTEIEmbedder_EmptyText(t *testing.T) {
	embedder := NewTEIEmbedder("http://unused", time.Second, testLogger())

	if _, err := embedder.Embed(context.Background(), "   "); !errors.Is(err, ErrEmptyEmbedding) {
		t.Errorf("Expected ErrEmptyEmbedding, got %v", err)
	}
}

func TestTEIEmbedder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	embedder := NewTEIEmbedder(server.URL, time.Second, testLogger())

	if _, err := embedder.Embed(context.Background(), "text"); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Expected ErrModelUnavailable, got %v", err)
	}
}

func TestTEIEmbedder_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	embedder := NewTEIEmbedder(server.URL, 50*time.Millisecond, testLogger())

	if _, err := embedder.Embed(context.Background(), "slow"); !errors.Is(err, ErrEmbedTimeout) {
		t.Errorf("Expected ErrEmbedTimeout, got %v", err)
	}
}

func TestTEIEmbedder_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(teiResponse{})
	}))
	defer server.Close()

	embedder := NewTEIEmbedder(server.URL, time.Second, testLogger())

	if _, err := embedder.Embed(context.Background(), "text"); !errors.Is(err, ErrEmptyEmbedding) {
		t.Errorf("Expected ErrEmptyEmbedding, got %v", err)
	}
}
