package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrChunkNotFound    = errors.New("chunk not found")
)

// Document represents an uploaded file. Rows are created by the upload
// flow outside this service; here they are read-only.
type Document struct {
	ID          uuid.UUID
	Name        string
	StoragePath string
	CreatedAt   time.Time
}

// Extension returns the lower-cased file extension including the dot,
// or "" when the name has none.
func (d *Document) Extension() string {
	name := strings.ToLower(d.Name)
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx:]
}

// Chunk is one retrievable section of a document. Content is immutable
// after creation; only the embedding transitions from absent to present.
type Chunk struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Content    string
	Embedding  dbtypes.Vector // nil until backfilled
	CreatedAt  time.Time
}

// Embedded reports whether the chunk is eligible for retrieval.
func (c *Chunk) Embedded() bool {
	return len(c.Embedding) > 0
}

// DocumentRepository defines read access to document metadata.
type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
}

// ChunkRepository defines the data operations on document chunks.
type ChunkRepository interface {
	// ReplaceForDocument atomically drops any existing chunks for the
	// document and inserts the given contents in order.
	ReplaceForDocument(ctx context.Context, documentID uuid.UUID, contents []string) ([]Chunk, error)

	// FindMissingEmbedding returns, among ids, only the chunks whose
	// embedding is still absent.
	FindMissingEmbedding(ctx context.Context, ids []uuid.UUID) ([]Chunk, error)

	// UpdateEmbedding sets the embedding for one chunk. Writes are
	// idempotent per chunk id.
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding dbtypes.Vector) error

	// FindEmbedded returns all chunks that currently carry an embedding.
	FindEmbedded(ctx context.Context) ([]Chunk, error)
}
