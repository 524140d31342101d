package services

import "context"

// CounterSvcFacade exposes sharded counter totals. Increments happen inside
// the voucher engine; the read path serves dashboards that must not contend
// with writers.
type CounterSvcFacade interface {
	// ReadCounter sums every shard of the counter; unknown counters read 0.
	ReadCounter(ctx context.Context, counterID string) (int64, error)
}
