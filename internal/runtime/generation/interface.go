package generation

import (
	"context"
)

type MsgRole string

const (
	SYSTEM    MsgRole = "system"
	USER      MsgRole = "user"
	ASSISTANT MsgRole = "assistant"
)

// Message is one turn of a conversation passed to the model.
type Message struct {
	Role    MsgRole `json:"role"`
	Content string  `json:"content"`
}

// Stream is a single-pass, non-restartable sequence of answer fragments.
// Fragments arrive as the model produces them; cancelling the context
// that created the stream stops token production.
type Stream interface {
	// Next advances to the next fragment, blocking until one arrives.
	// Returns false when the stream is exhausted or failed.
	Next() bool
	// Current returns the fragment produced by the last Next call.
	Current() string
	// Err returns the terminal error, if any, once Next returned false.
	Err() error
	// Close releases the underlying generation resource.
	Close() error
}

// Generator produces a streamed completion for a prompt.
type Generator interface {
	Complete(ctx context.Context, msgs []Message) (Stream, error)
}
