package embedding

import (
	"context"
	"errors"

	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
)

var (
	// ErrEmbedTimeout means the model call exceeded its hard time bound.
	ErrEmbedTimeout = errors.New("embedding generation timed out")
	// ErrEmptyEmbedding means the model returned no usable vector.
	ErrEmptyEmbedding = errors.New("model returned empty embedding")
	// ErrModelUnavailable covers transport failures and non-2xx replies.
	ErrModelUnavailable = errors.New("embedding model unavailable")
)

type Embedder interface {
	// Embed turns text into a single mean-pooled, L2-normalized vector.
	// Deterministic for a given text and model version.
	Embed(ctx context.Context, text string) (dbtypes.Vector, error)
}
