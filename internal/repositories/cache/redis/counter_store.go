package redis

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
)

const defaultShardCount = 16

// CounterStore keeps each counter as a Redis hash, one field per shard.
// Increments pick a random shard so hot counters spread their write load,
// reads sum the whole hash.
type CounterStore struct {
	client *redis.Client
	shards int
}

// NewCounterStore creates a counter store with the given shard count.
// A non-positive count falls back to the default.
func NewCounterStore(client *redis.Client, shards int) *CounterStore {
	if shards <= 0 {
		shards = defaultShardCount
	}
	return &CounterStore{client: client, shards: shards}
}

var _ portsrepo.CounterStore = (*CounterStore)(nil)

func counterKey(counterID string) string {
	return "counter:" + counterID
}

// Increment adds by to one randomly chosen shard. HINCRBY creates the hash
// and the field on first touch, so unknown counters need no setup.
func (s *CounterStore) Increment(ctx context.Context, counterID string, by int64) error {
	shard := fmt.Sprintf("shard:%d", rand.Intn(s.shards))
	if err := s.client.HIncrBy(ctx, counterKey(counterID), shard, by).Err(); err != nil {
		return fmt.Errorf("%w: increment counter %s: %v", apperrors.ErrStorageUnavailable, counterID, err)
	}
	return nil
}

// Read sums every shard of the counter. A missing hash reads as zero.
func (s *CounterStore) Read(ctx context.Context, counterID string) (int64, error) {
	fields, err := s.client.HGetAll(ctx, counterKey(counterID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: read counter %s: %v", apperrors.ErrStorageUnavailable, counterID, err)
	}

	var total int64
	for field, raw := range fields {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("counter %s shard %s holds non-integer value %q", counterID, field, raw)
		}
		total += v
	}
	return total, nil
}
