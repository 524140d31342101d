package repositories

import "context"

// CounterStore is a sharded monotonic counter. Writers add to one randomly
// chosen shard so concurrent increments do not contend on a single record;
// readers sum every shard.
type CounterStore interface {
	// Increment atomically adds by to one shard of the counter, creating the
	// shard lazily for an unknown counter.
	Increment(ctx context.Context, counterID string, by int64) error

	// Read sums all shards of the counter. A counter with no shards reads 0.
	Read(ctx context.Context, counterID string) (int64, error)
}
