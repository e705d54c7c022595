package chat

import (
	"context"
	"errors"
	"time"

	"github.com/docuchat-ai/docuchat/internal/constants/prompts"
	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/internal/runtime/generation"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
)

// Common errors
var (
	ErrRetrieval         = errors.New("document retrieval failed")
	ErrGenerationTimeout = errors.New("generation exceeded its time limit")
	ErrGeneration        = errors.New("generation failed")
)

// ChatService answers questions grounded on retrieved document chunks.
type ChatService interface {
	// Answer retrieves grounding context for the query embedding,
	// assembles the instruction, and streams the model's reply. The
	// returned CancelFunc releases the generation deadline and must be
	// called once the stream is drained or abandoned.
	Answer(ctx context.Context, history []generation.Message, queryEmbedding dbtypes.Vector) (generation.Stream, context.CancelFunc, error)
}

type chatService struct {
	retriever         Retriever
	generator         generation.Generator
	generationTimeout time.Duration
	logger            *Logger.Logger
}

func NewChatService(
	retriever Retriever,
	generator generation.Generator,
	generationTimeout time.Duration,
	logger *Logger.Logger,
) ChatService {
	if generationTimeout == 0 {
		generationTimeout = 15 * time.Second
	}
	return &chatService{
		retriever:         retriever,
		generator:         generator,
		generationTimeout: generationTimeout,
		logger:            logger,
	}
}

// Answer implements ChatService
func (s *chatService) Answer(ctx context.Context, history []generation.Message, queryEmbedding dbtypes.Vector) (generation.Stream, context.CancelFunc, error) {
	matches, err := s.retriever.Retrieve(ctx, queryEmbedding)
	if err != nil {
		s.logger.Errorf("retrieval failed: %v", err)
		return nil, nil, ErrRetrieval
	}

	docs := make([]string, len(matches))
	for i, m := range matches {
		docs[i] = m.Chunk.Content
	}
	s.logger.Debugf("retrieved %d grounding chunks", len(docs))

	msgs := make([]generation.Message, 0, len(history)+1)
	msgs = append(msgs, prompts.GroundingInstruction(docs))
	msgs = append(msgs, history...)

	// The wall-clock bound covers the whole generation, not just the
	// first token. Cancelling unwinds the in-flight model call.
	genCtx, cancel := context.WithTimeout(ctx, s.generationTimeout)

	stream, err := s.generator.Complete(genCtx, msgs)
	if err != nil {
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, ErrGenerationTimeout
		}
		s.logger.Errorf("generation failed: %v", err)
		return nil, nil, ErrGeneration
	}

	return &timeoutStream{inner: stream, ctx: genCtx}, cancel, nil
}

// timeoutStream maps a deadline hit during streaming onto the timeout
// sentinel so callers can distinguish it from other generation errors.
type timeoutStream struct {
	inner generation.Stream
	ctx   context.Context
}

func (s *timeoutStream) Next() bool {
	return s.inner.Next()
}

func (s *timeoutStream) Current() string {
	return s.inner.Current()
}

func (s *timeoutStream) Err() error {
	err := s.inner.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(s.ctx.Err(), context.DeadlineExceeded) {
		return ErrGenerationTimeout
	}
	return err
}

func (s *timeoutStream) Close() error {
	return s.inner.Close()
}
