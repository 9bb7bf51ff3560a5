package search

import "context"

// QueryRecorder bumps analytics counters for served queries. Optional; a nil
// recorder disables counting. Never consulted for ranking.
type QueryRecorder interface {
	IncrQuery(ctx context.Context, query string) error
}
