package embedqueue

import (
	"github.com/docuchat-ai/docuchat/internal/domains/backfill"
	"github.com/go-redis/redis"
	"github.com/google/uuid"
)

const pendingKey = "docuchat:pending_embeddings"

// RedisQueue holds chunk ids awaiting embedding. Ingestion pushes, the
// backfill poller drains. Losing an entry is harmless: a later backfill
// over the same ids is a no-op for already-embedded chunks.
type RedisQueue struct {
	rc *redis.Client
}

// Enqueue implements backfill.Queue
func (q *RedisQueue) Enqueue(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	vals := make([]interface{}, len(ids))
	for i, id := range ids {
		vals[i] = id.String()
	}
	return q.rc.RPush(pendingKey, vals...).Err()
}

// Dequeue implements backfill.Queue. Pops up to max ids; entries that do
// not parse as UUIDs are dropped.
func (q *RedisQueue) Dequeue(max int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, max)
	for len(ids) < max {
		val, err := q.rc.LPop(pendingKey).Result()
		if err == redis.Nil {
			break
		}
		if err != nil {
			return ids, err
		}
		id, err := uuid.Parse(val)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NewRedisQueue creates a Redis-backed pending-embeddings queue
func NewRedisQueue(rc *redis.Client) backfill.Queue {
	return &RedisQueue{rc: rc}
}
