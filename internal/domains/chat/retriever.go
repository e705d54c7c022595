package chat

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/internal/domains/document"
)

// Retriever finds the chunks most similar to a query embedding.
type Retriever interface {
	Retrieve(ctx context.Context, query dbtypes.Vector) ([]Match, error)
}

// Match pairs a chunk with its similarity to the query.
type Match struct {
	Chunk      document.Chunk
	Similarity float32
}

type chunkRetriever struct {
	chunks    document.ChunkRepository
	threshold float32
	limit     int
	timeout   time.Duration
}

func NewRetriever(chunks document.ChunkRepository, threshold float32, limit int, timeout time.Duration) Retriever {
	if limit < 1 {
		limit = 3
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &chunkRetriever{
		chunks:    chunks,
		threshold: threshold,
		limit:     limit,
		timeout:   timeout,
	}
}

// Retrieve implements Retriever. Stored vectors and the query are both
// normalized, so cosine similarity reduces to a dot product. Matches
// below the threshold are discarded, the rest sorted descending and
// capped at the configured count.
func (r *chunkRetriever) Retrieve(ctx context.Context, query dbtypes.Vector) ([]Match, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query = query.Normalized()

	embedded, err := r.chunks.FindEmbedded(ctx)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	matches := make([]Match, 0, r.limit)
	for _, chunk := range embedded {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sim := query.Dot(chunk.Embedding)
		if sim > r.threshold {
			matches = append(matches, Match{Chunk: chunk, Similarity: sim})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > r.limit {
		matches = matches[:r.limit]
	}
	return matches, nil
}
