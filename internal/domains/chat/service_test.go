package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/docuchat-ai/docuchat/internal/constants/prompts"
	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/docuchat-ai/docuchat/internal/runtime/generation"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
)

func testLogger() *Logger.Logger {
	return &Logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeRetriever struct {
	matches []Match
	err     error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query dbtypes.Vector) ([]Match, error) {
	return f.matches, f.err
}

type fakeStream struct {
	fragments []string
	pos       int
	err       error
	closed    bool
}

func (s *fakeStream) Next() bool {
	if s.pos >= len(s.fragments) {
		return false
	}
	s.pos++
	return true
}

func (s *fakeStream) Current() string { return s.fragments[s.pos-1] }
func (s *fakeStream) Err() error      { return s.err }
func (s *fakeStream) Close() error    { s.closed = true; return nil }

type fakeGenerator struct {
	stream   generation.Stream
	err      error
	received []generation.Message
}

func (f *fakeGenerator) Complete(ctx context.Context, msgs []generation.Message) (generation.Stream, error) {
	f.received = msgs
	if f.err != nil {
		return nil, f.err
	}
	return f.stream, nil
}

func TestChatServicePrependsGroundingInstruction(t *testing.T) {
	retriever := &fakeRetriever{
		matches: []Match{
			{Chunk: document.Chunk{Content: "Paris is the capital of France."}, Similarity: 0.92},
		},
	}
	gen := &fakeGenerator{stream: &fakeStream{fragments: []string{"Paris."}}}
	service := NewChatService(retriever, gen, time.Second, testLogger())

	history := []generation.Message{
		{Role: generation.USER, Content: "What is the capital of France?"},
	}

	stream, cancel, err := service.Answer(context.Background(), history, dbtypes.Vector{1, 0})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	defer cancel()
	defer stream.Close()

	if len(gen.received) != 2 {
		t.Fatalf("Expected instruction + 1 history message, got %d messages", len(gen.received))
	}
	instruction := gen.received[0]
	if instruction.Role != generation.USER {
		t.Errorf("Expected instruction with USER role, got %s", instruction.Role)
	}
	if !strings.Contains(instruction.Content, "Paris is the capital of France.") {
		t.Error("Instruction missing retrieved chunk text")
	}
	if gen.received[1].Content != history[0].Content {
		t.Errorf("History message not preserved, got %q", gen.received[1].Content)
	}
}

func TestChatServiceNoMatchesStillGenerates(t *testing.T) {
	retriever := &fakeRetriever{}
	gen := &fakeGenerator{stream: &fakeStream{fragments: []string{"Sorry."}}}
	service := NewChatService(retriever, gen, time.Second, testLogger())

	stream, cancel, err := service.Answer(context.Background(), nil, dbtypes.Vector{1, 0})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	defer cancel()
	defer stream.Close()

	if len(gen.received) == 0 {
		t.Fatal("Generator was not invoked")
	}
	if !strings.Contains(gen.received[0].Content, prompts.NoDocumentsMarker) {
		t.Errorf("Expected %q in the instruction when nothing matched", prompts.NoDocumentsMarker)
	}
}

func TestChatServiceRetrievalFailure(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("db down")}
	gen := &fakeGenerator{}
	service := NewChatService(retriever, gen, time.Second, testLogger())

	_, _, err := service.Answer(context.Background(), nil, dbtypes.Vector{1, 0})

	if !errors.Is(err, ErrRetrieval) {
		t.Errorf("Expected ErrRetrieval, got %v", err)
	}
	if gen.received != nil {
		t.Error("Generator must not run when retrieval fails")
	}
}

func TestChatServiceGenerationTimeoutBeforeFirstToken(t *testing.T) {
	retriever := &fakeRetriever{}
	gen := &fakeGenerator{err: context.DeadlineExceeded}
	service := NewChatService(retriever, gen, time.Second, testLogger())

	_, _, err := service.Answer(context.Background(), nil, dbtypes.Vector{1, 0})

	if !errors.Is(err, ErrGenerationTimeout) {
		t.Errorf("Expected ErrGenerationTimeout, got %v", err)
	}
}

func TestChatServiceStreamTimeoutMapped(t *testing.T) {
	retriever := &fakeRetriever{}
	inner := &fakeStream{err: context.DeadlineExceeded}
	gen := &fakeGenerator{stream: inner}
	service := NewChatService(retriever, gen, time.Second, testLogger())

	stream, cancel, err := service.Answer(context.Background(), nil, dbtypes.Vector{1, 0})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	defer cancel()

	for stream.Next() {
	}
	if !errors.Is(stream.Err(), ErrGenerationTimeout) {
		t.Errorf("Expected ErrGenerationTimeout from stream, got %v", stream.Err())
	}

	stream.Close()
	if !inner.closed {
		t.Error("Close must propagate to the inner stream")
	}
}

func TestChatServiceStreamDelivery(t *testing.T) {
	retriever := &fakeRetriever{}
	gen := &fakeGenerator{stream: &fakeStream{fragments: []string{"Hel", "lo", "!"}}}
	service := NewChatService(retriever, gen, time.Second, testLogger())

	stream, cancel, err := service.Answer(context.Background(), nil, dbtypes.Vector{1, 0})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	defer cancel()
	defer stream.Close()

	var reply strings.Builder
	for stream.Next() {
		reply.WriteString(stream.Current())
	}
	if stream.Err() != nil {
		t.Fatalf("Unexpected stream error: %v", stream.Err())
	}
	if reply.String() != "Hello!" {
		t.Errorf("Expected full reply %q, got %q", "Hello!", reply.String())
	}
}
