package backfill

import (
	"context"
	"time"

	"github.com/docuchat-ai/docuchat/pkg/Logger"
)

// Poller periodically drains the pending-embeddings queue and runs the
// backfill worker over whatever ingestion produced since the last tick.
// Chunks that fail stay eligible: the next ingest or manual trigger
// covers them, since embedded rows are filtered out anyway.
type Poller struct {
	queue    Queue
	service  BackfillService
	interval time.Duration
	batch    int
	logger   *Logger.Logger
}

func NewPoller(queue Queue, service BackfillService, interval time.Duration, batch int, logger *Logger.Logger) *Poller {
	if interval == 0 {
		interval = 30 * time.Second
	}
	if batch < 1 {
		batch = 50
	}
	return &Poller{
		queue:    queue,
		service:  service,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}
}

// Start blocks until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.drain(ctx)
		}
	}
}

func (p *Poller) drain(ctx context.Context) {
	ids, err := p.queue.Dequeue(p.batch)
	if err != nil {
		p.logger.Errorf("poller: failed to dequeue pending chunks: %v", err)
	}
	if len(ids) == 0 {
		return
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	req := Request{
		IDs:             raw,
		Table:           "document_chunks",
		ContentColumn:   "content",
		EmbeddingColumn: "embedding",
	}
	if _, err := p.service.Run(ctx, req); err != nil {
		p.logger.Errorf("poller: backfill run failed: %v", err)
	}
}
