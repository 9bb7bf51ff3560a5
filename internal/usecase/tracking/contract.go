package tracking

import (
	"context"

	"github.com/propwijzer/propwijzer/internal/domain"
)

// ClickCounter persists click counts.
type ClickCounter interface {
	IncrClick(ctx context.Context, firmID string) error
	ClickCounts(ctx context.Context, firmID string, days int) ([]domain.DayCount, error)
}

// Publisher emits click events to the analytics stream. Optional; nil
// disables publishing.
type Publisher interface {
	Publish(ctx context.Context, click domain.Click) error
}
