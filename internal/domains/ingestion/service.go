package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/docuchat-ai/docuchat/internal/domains/backfill"
	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/docuchat-ai/docuchat/internal/extractor"
	"github.com/docuchat-ai/docuchat/internal/storage"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnsupportedFileType = errors.New("unsupported file type, only .md and .pdf files are supported")
	ErrDownloadFailed      = errors.New("failed to download storage object")
	ErrExtractionFailed    = errors.New("failed to extract document text")
	ErrPersistenceFailed   = errors.New("failed to save document sections")
)

// IngestionService turns an uploaded document into persisted chunks.
type IngestionService interface {
	// Ingest processes the document and returns the number of chunks
	// stored. Zero is a valid outcome for documents with no extractable
	// content.
	Ingest(ctx context.Context, documentID string) (int, error)
}

type ingestionService struct {
	documents document.DocumentRepository
	chunks    document.ChunkRepository
	store     storage.ObjectStore
	extractor extractor.Extractor
	queue     backfill.Queue
	logger    *Logger.Logger
}

func NewIngestionService(
	documents document.DocumentRepository,
	chunks document.ChunkRepository,
	store storage.ObjectStore,
	ext extractor.Extractor,
	queue backfill.Queue,
	logger *Logger.Logger,
) IngestionService {
	return &ingestionService{
		documents: documents,
		chunks:    chunks,
		store:     store,
		extractor: ext,
		queue:     queue,
		logger:    logger,
	}
}

// Ingest implements IngestionService
func (s *ingestionService) Ingest(ctx context.Context, documentID string) (int, error) {
	id, err := uuid.Parse(documentID)
	if err != nil {
		return 0, ErrDocumentNotFound
	}

	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return 0, ErrDocumentNotFound
		}
		return 0, fmt.Errorf("failed to resolve document: %w", err)
	}
	if doc.StoragePath == "" || doc.Name == "" {
		return 0, ErrDocumentNotFound
	}

	// Dispatch on extension before any storage call.
	ext := doc.Extension()
	if ext != ".md" && ext != ".pdf" {
		return 0, ErrUnsupportedFileType
	}

	data, err := s.store.Download(ctx, doc.StoragePath)
	if err != nil {
		s.logger.Errorf("download failed for document %s: %v", doc.ID, err)
		return 0, ErrDownloadFailed
	}

	var sections []string
	if ext == ".md" {
		sections = SegmentMarkdown(string(data))
	} else {
		sections, err = s.extractor.Extract(ctx, data)
		if err != nil {
			s.logger.Errorf("extraction failed for document %s: %v", doc.ID, err)
			return 0, ErrExtractionFailed
		}
	}

	chunks, err := s.chunks.ReplaceForDocument(ctx, doc.ID, sections)
	if err != nil {
		s.logger.Errorf("persisting chunks failed for document %s: %v", doc.ID, err)
		return 0, ErrPersistenceFailed
	}

	// Queue the new chunks for embedding. Best effort: the backfill
	// trigger covers anything that never makes it onto the queue.
	if s.queue != nil && len(chunks) > 0 {
		ids := make([]uuid.UUID, len(chunks))
		for i, c := range chunks {
			ids[i] = c.ID
		}
		if err := s.queue.Enqueue(ids); err != nil {
			s.logger.Warnf("failed to enqueue %d chunks for embedding: %v", len(ids), err)
		}
	}

	s.logger.Infof("processed and saved %d sections from %q", len(chunks), doc.Name)
	return len(chunks), nil
}
