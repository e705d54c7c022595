package backfill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeQueue struct {
	pending []uuid.UUID
	err     error
}

func (f *fakeQueue) Enqueue(ids []uuid.UUID) error {
	f.pending = append(f.pending, ids...)
	return nil
}

func (f *fakeQueue) Dequeue(max int) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.pending) > max {
		out := f.pending[:max]
		f.pending = f.pending[max:]
		return out, nil
	}
	out := f.pending
	f.pending = nil
	return out, nil
}

type recordingService struct {
	requests []Request
	err      error
}

func (r *recordingService) Run(ctx context.Context, req Request) (Summary, error) {
	r.requests = append(r.requests, req)
	return Summary{}, r.err
}

func TestPollerDrain(t *testing.T) {
	queue := &fakeQueue{pending: []uuid.UUID{uuid.New(), uuid.New()}}
	service := &recordingService{}
	poller := NewPoller(queue, service, time.Minute, 10, testLogger())

	poller.drain(context.Background())

	if len(service.requests) != 1 {
		t.Fatalf("Expected one backfill run, got %d", len(service.requests))
	}
	req := service.requests[0]
	if len(req.IDs) != 2 {
		t.Errorf("Expected 2 ids in the run, got %d", len(req.IDs))
	}
	if req.Table != "document_chunks" || req.ContentColumn != "content" || req.EmbeddingColumn != "embedding" {
		t.Errorf("Poller built a request outside the registered target: %+v", req)
	}
	if len(queue.pending) != 0 {
		t.Errorf("Queue should be drained, %d left", len(queue.pending))
	}
}

func TestPollerEmptyQueue(t *testing.T) {
	service := &recordingService{}
	poller := NewPoller(&fakeQueue{}, service, time.Minute, 10, testLogger())

	poller.drain(context.Background())

	if len(service.requests) != 0 {
		t.Error("No run expected for an empty queue")
	}
}

func TestPollerBatchLimit(t *testing.T) {
	queue := &fakeQueue{}
	for i := 0; i < 5; i++ {
		queue.pending = append(queue.pending, uuid.New())
	}
	service := &recordingService{}
	poller := NewPoller(queue, service, time.Minute, 3, testLogger())

	poller.drain(context.Background())

	if len(service.requests) != 1 || len(service.requests[0].IDs) != 3 {
		t.Errorf("Expected one run over 3 ids, got %+v", service.requests)
	}
	if len(queue.pending) != 2 {
		t.Errorf("Expected 2 ids left queued, got %d", len(queue.pending))
	}
}

func TestPollerDequeueError(t *testing.T) {
	service := &recordingService{}
	poller := NewPoller(&fakeQueue{err: errors.New("redis down")}, service, time.Minute, 10, testLogger())

	poller.drain(context.Background())

	if len(service.requests) != 0 {
		t.Error("No run expected when dequeue fails")
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	poller := NewPoller(&fakeQueue{}, &recordingService{}, 10*time.Millisecond, 10, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poller did not stop after cancellation")
	}
}
