// Package tracking resolves affiliate redirects and records outbound clicks.
// A failing counter or publisher must never break the redirect itself; the
// user always reaches the firm.
package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propwijzer/propwijzer/internal/domain"
	"github.com/propwijzer/propwijzer/internal/domain/catalog"
	"github.com/propwijzer/propwijzer/internal/logger"
)

// Service handles affiliate click resolution and recording.
type Service struct {
	cat       *catalog.Catalog
	counters  ClickCounter
	publisher Publisher
	now       func() time.Time
}

// New creates a tracking service. publisher may be nil.
func New(cat *catalog.Catalog, counters ClickCounter, publisher Publisher) *Service {
	return &Service{cat: cat, counters: counters, publisher: publisher, now: time.Now}
}

// Resolve returns the firm a redirect identifier points to. The identifier
// may be either the firm id or its slug.
func (s *Service) Resolve(firmID string) (catalog.Firm, error) {
	if f, err := s.cat.FirmByID(firmID); err == nil {
		return f, nil
	}
	return s.cat.FirmBySlug(firmID)
}

// Record registers an outbound click: bumps the day counter and publishes
// the event when a publisher is configured. Both are best-effort; failures
// are logged and the click is still returned.
func (s *Service) Record(ctx context.Context, firmID, source, referer string) domain.Click {
	click := domain.Click{
		ID:      uuid.NewString(),
		FirmID:  firmID,
		Source:  source,
		Referer: referer,
		At:      s.now().UTC(),
	}

	log := logger.FromContext(ctx)

	if err := s.counters.IncrClick(ctx, firmID); err != nil {
		log.Warn("count click", zap.String("firm", firmID), zap.Error(err))
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, click); err != nil {
			log.Warn("publish click", zap.String("firm", firmID), zap.Error(err))
		}
	}

	return click
}

// Stats returns per-day click counts for a known firm, most recent first.
func (s *Service) Stats(ctx context.Context, firmID string, days int) ([]domain.DayCount, error) {
	if _, err := s.cat.FirmByID(firmID); err != nil {
		return nil, err
	}

	counts, err := s.counters.ClickCounts(ctx, firmID, days)
	if err != nil {
		return nil, fmt.Errorf("click counts for %s: %w", firmID, err)
	}
	return counts, nil
}
