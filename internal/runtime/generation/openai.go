package generation

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

type openAIGenerator struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAIGenerator builds a Generator backed by the OpenAI chat
// completions API with deterministic decoding.
func NewOpenAIGenerator(apiKey, model string, maxTokens int) Generator {
	if model == "" {
		model = openai.ChatModelGPT3_5Turbo
	}
	return &openAIGenerator{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete implements Generator.
func (o *openAIGenerator) Complete(ctx context.Context, msgs []Message) (Stream, error) {
	convertedMsgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		convertedMsgs = append(convertedMsgs, convertToOpenaiMsg(msg))
	}

	stream := o.client.Chat.Completions.NewStreaming(
		ctx,
		openai.ChatCompletionNewParams{
			Messages:    convertedMsgs,
			Model:       openai.ChatModel(o.model),
			MaxTokens:   openai.Int(int64(o.maxTokens)),
			Temperature: openai.Float(0),
		},
	)

	return &openAIStream{inner: stream}, nil
}

func convertToOpenaiMsg(msg Message) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case ASSISTANT:
		return openai.AssistantMessage(msg.Content)
	case SYSTEM:
		return openai.SystemMessage(msg.Content)
	}
	return openai.UserMessage(msg.Content)
}

// openAIStream adapts the SSE stream to the fragment Stream contract,
// skipping chunks that carry no content delta.
type openAIStream struct {
	inner   *ssestream.Stream[openai.ChatCompletionChunk]
	current string
}

func (s *openAIStream) Next() bool {
	for s.inner.Next() {
		chunk := s.inner.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		s.current = delta
		return true
	}
	return false
}

func (s *openAIStream) Current() string {
	return s.current
}

func (s *openAIStream) Err() error {
	return s.inner.Err()
}

func (s *openAIStream) Close() error {
	return s.inner.Close()
}
