package backfill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/docuchat-ai/docuchat/internal/runtime/embedding"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidRequest = errors.New("invalid backfill request parameters")
	ErrStorageQuery   = errors.New("failed to query chunks for backfill")
)

// Queue hands freshly ingested chunk ids to the poller.
type Queue interface {
	Enqueue(ids []uuid.UUID) error
	Dequeue(max int) ([]uuid.UUID, error)
}

// Request identifies the chunks to embed and the schema target they live
// in. Table and column names must match a registered target.
type Request struct {
	IDs             []string `json:"ids" binding:"required"`
	Table           string   `json:"table" binding:"required"`
	ContentColumn   string   `json:"contentColumn" binding:"required"`
	EmbeddingColumn string   `json:"embeddingColumn" binding:"required"`
}

type Outcome string

const (
	OutcomeEmbedded Outcome = "embedded"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// ItemResult records how one chunk fared.
type ItemResult struct {
	ID      uuid.UUID
	Outcome Outcome
	Err     error
}

// Summary aggregates a backfill run. The run as a whole succeeds once
// every chunk has been attempted, whatever the per-item outcomes.
type Summary struct {
	Requested int
	Embedded  int
	Skipped   int
	Failed    int
	Items     []ItemResult
}

// NothingToDo reports that no chunk among the requested ids still needed
// an embedding.
func (s Summary) NothingToDo() bool {
	return s.Requested > 0 && len(s.Items) == 0
}

// BackfillService fills in missing embeddings, best effort per chunk.
type BackfillService interface {
	Run(ctx context.Context, req Request) (Summary, error)
}

type backfillService struct {
	chunks      document.ChunkRepository
	embedder    embedding.Embedder
	concurrency int
	itemTimeout time.Duration
	logger      *Logger.Logger
}

func NewBackfillService(
	chunks document.ChunkRepository,
	embedder embedding.Embedder,
	concurrency int,
	itemTimeout time.Duration,
	logger *Logger.Logger,
) BackfillService {
	if concurrency < 1 {
		concurrency = 1
	}
	if itemTimeout == 0 {
		itemTimeout = 8 * time.Second
	}
	return &backfillService{
		chunks:      chunks,
		embedder:    embedder,
		concurrency: concurrency,
		itemTimeout: itemTimeout,
		logger:      logger,
	}
}

// Run implements BackfillService. Chunks are processed under a bounded
// worker pool; a failure on one chunk never blocks the rest.
func (s *backfillService) Run(ctx context.Context, req Request) (Summary, error) {
	ids, err := validateRequest(req)
	if err != nil {
		return Summary{}, err
	}

	pending, err := s.chunks.FindMissingEmbedding(ctx, ids)
	if err != nil {
		s.logger.Errorf("backfill query failed: %v", err)
		return Summary{}, fmt.Errorf("%w: %v", ErrStorageQuery, err)
	}

	summary := Summary{Requested: len(ids)}
	if len(pending) == 0 {
		s.logger.Infof("backfill: no chunks to process among %d ids", len(ids))
		return summary, nil
	}

	s.logger.Infof("backfill: processing embeddings for %d of %d chunks", len(pending), len(ids))

	results := make([]ItemResult, len(pending))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, chunk := range pending {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, chunk document.Chunk) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.processChunk(ctx, chunk)
		}(i, chunk)
	}
	wg.Wait()

	for _, r := range results {
		switch r.Outcome {
		case OutcomeEmbedded:
			summary.Embedded++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeFailed:
			summary.Failed++
		}
	}
	summary.Items = results

	s.logger.Infof("backfill complete: %d embedded, %d skipped, %d failed",
		summary.Embedded, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *backfillService) processChunk(ctx context.Context, chunk document.Chunk) ItemResult {
	if strings.TrimSpace(chunk.Content) == "" {
		s.logger.Warnf("no content found for chunk %s, skipping", chunk.ID)
		return ItemResult{ID: chunk.ID, Outcome: OutcomeSkipped}
	}

	itemCtx, cancel := context.WithTimeout(ctx, s.itemTimeout)
	defer cancel()

	vec, err := s.embedder.Embed(itemCtx, chunk.Content)
	if err != nil {
		s.logger.Errorf("embedding generation failed for chunk %s: %v", chunk.ID, err)
		return ItemResult{ID: chunk.ID, Outcome: OutcomeFailed, Err: err}
	}

	if err := s.chunks.UpdateEmbedding(ctx, chunk.ID, vec); err != nil {
		s.logger.Errorf("failed to save embedding for chunk %s: %v", chunk.ID, err)
		return ItemResult{ID: chunk.ID, Outcome: OutcomeFailed, Err: err}
	}

	return ItemResult{ID: chunk.ID, Outcome: OutcomeEmbedded}
}

func validateRequest(req Request) ([]uuid.UUID, error) {
	if len(req.IDs) == 0 || req.Table == "" || req.ContentColumn == "" || req.EmbeddingColumn == "" {
		return nil, ErrInvalidRequest
	}
	if _, ok := ResolveTarget(req.Table, req.ContentColumn, req.EmbeddingColumn); !ok {
		return nil, ErrInvalidRequest
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		ids = append(ids, id)
	}
	return ids, nil
}
