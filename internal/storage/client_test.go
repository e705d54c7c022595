package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docuchat-ai/docuchat/internal/config"
)

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/object/documents/uploads/notes.md" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer service-key" {
			t.Errorf("Missing service key header, got %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte("# Notes\nbody"))
	}))
	defer server.Close()

	store := NewObjectStore(config.StorageConfig{
		BaseURL:    server.URL,
		Bucket:     "documents",
		ServiceKey: "service-key",
	})

	data, err := store.Download(context.Background(), "uploads/notes.md")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if string(data) != "# Notes\nbody" {
		t.Errorf("Unexpected content: %q", string(data))
	}
}

func TestDownloadLeadingSlashPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/object/documents/uploads/a.md" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("x"))
	}))
	defer server.Close()

	store := NewObjectStore(config.StorageConfig{BaseURL: server.URL, Bucket: "documents"})

	if _, err := store.Download(context.Background(), "/uploads/a.md"); err != nil {
		t.Fatalf("Download failed: %v", err)
	}
}

func TestDownloadNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := NewObjectStore(config.StorageConfig{BaseURL: server.URL, Bucket: "documents"})

	if _, err := store.Download(context.Background(), "missing.md"); err == nil {
		t.Error("Expected error for missing object")
	}
}
