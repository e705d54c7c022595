package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

type ollamaGenerator struct {
	client    *api.Client
	model     string
	maxTokens int
}

// NewOllamaGenerator builds a Generator backed by a local ollama server.
func NewOllamaGenerator(baseURL, model string, maxTokens int) (Generator, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}
	return &ollamaGenerator{
		client:    api.NewClient(parsed, http.DefaultClient),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete implements Generator. The ollama API pushes responses through
// a callback; a goroutine pumps those into a channel the returned Stream
// pulls from, so callers keep the same pull contract as other providers.
func (o *ollamaGenerator) Complete(ctx context.Context, msgs []Message) (Stream, error) {
	convertedMsgs := make([]api.Message, 0, len(msgs))
	for _, msg := range msgs {
		convertedMsgs = append(convertedMsgs, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	stream := true
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: convertedMsgs,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": 0.0,
			"num_predict": o.maxTokens,
		},
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &ollamaStream{
		fragments: make(chan string, 8),
		done:      make(chan error, 1),
		cancel:    cancel,
	}

	go func() {
		err := o.client.Chat(ctx, req, func(cr api.ChatResponse) error {
			if cr.Message.Content != "" {
				select {
				case s.fragments <- cr.Message.Content:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
		s.done <- err
		close(s.fragments)
	}()

	return s, nil
}

type ollamaStream struct {
	fragments chan string
	done      chan error
	cancel    context.CancelFunc
	current   string
	err       error
}

func (s *ollamaStream) Next() bool {
	frag, ok := <-s.fragments
	if !ok {
		if err := <-s.done; err != nil && s.err == nil {
			s.err = err
		}
		return false
	}
	s.current = frag
	return true
}

func (s *ollamaStream) Current() string {
	return s.current
}

func (s *ollamaStream) Err() error {
	return s.err
}

func (s *ollamaStream) Close() error {
	s.cancel()
	return nil
}
