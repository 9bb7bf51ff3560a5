package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propwijzer/propwijzer/internal/domain"
	"github.com/propwijzer/propwijzer/internal/domain/catalog"
)

// --- Mocks ---

type mockCounter struct {
	incrs   []string
	counts  []domain.DayCount
	incrErr error
	getErr  error
}

func (m *mockCounter) IncrClick(_ context.Context, firmID string) error {
	m.incrs = append(m.incrs, firmID)
	return m.incrErr
}

func (m *mockCounter) ClickCounts(_ context.Context, _ string, _ int) ([]domain.DayCount, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.counts, nil
}

type mockPublisher struct {
	published []domain.Click
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, click domain.Click) error {
	m.published = append(m.published, click)
	return m.err
}

func trackingCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Firms: []catalog.Firm{
			{ID: "firm-ftmo", Name: "FTMO", Slug: "ftmo", AffiliateURL: "https://ftmo.com/?aff=1"},
		},
	}
}

// --- Tests ---

func TestResolve_ByIDAndSlug(t *testing.T) {
	svc := New(trackingCatalog(), &mockCounter{}, nil)

	byID, err := svc.Resolve("firm-ftmo")
	require.NoError(t, err)
	assert.Equal(t, "FTMO", byID.Name)

	bySlug, err := svc.Resolve("ftmo")
	require.NoError(t, err)
	assert.Equal(t, "firm-ftmo", bySlug.ID)
}

func TestResolve_UnknownFirm(t *testing.T) {
	svc := New(trackingCatalog(), &mockCounter{}, nil)

	_, err := svc.Resolve("bestaat-niet")
	assert.ErrorIs(t, err, domain.ErrFirmNotFound)
}

func TestRecord_CountsAndPublishes(t *testing.T) {
	counter := &mockCounter{}
	pub := &mockPublisher{}
	svc := New(trackingCatalog(), counter, pub)

	click := svc.Record(context.Background(), "firm-ftmo", "quiz", "https://propwijzer.nl/quiz")

	assert.NotEmpty(t, click.ID)
	assert.Equal(t, "firm-ftmo", click.FirmID)
	assert.Equal(t, "quiz", click.Source)
	assert.False(t, click.At.IsZero())

	require.Len(t, counter.incrs, 1)
	assert.Equal(t, "firm-ftmo", counter.incrs[0])

	require.Len(t, pub.published, 1)
	assert.Equal(t, click.ID, pub.published[0].ID)
}

func TestRecord_NilPublisher(t *testing.T) {
	counter := &mockCounter{}
	svc := New(trackingCatalog(), counter, nil)

	click := svc.Record(context.Background(), "firm-ftmo", "", "")

	assert.NotEmpty(t, click.ID)
	assert.Len(t, counter.incrs, 1)
}

func TestRecord_BestEffortOnFailures(t *testing.T) {
	counter := &mockCounter{incrErr: errors.New("store down")}
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := New(trackingCatalog(), counter, pub)

	// Neither failure may stop the click from being returned.
	click := svc.Record(context.Background(), "firm-ftmo", "header", "")

	assert.NotEmpty(t, click.ID)
	assert.Len(t, pub.published, 1)
}

func TestStats_KnownFirm(t *testing.T) {
	counter := &mockCounter{counts: []domain.DayCount{
		{Day: "2026-09-01", Count: 7},
		{Day: "2026-08-31", Count: 0},
	}}
	svc := New(trackingCatalog(), counter, nil)

	counts, err := svc.Stats(context.Background(), "firm-ftmo", 2)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, int64(7), counts[0].Count)
}

func TestStats_UnknownFirm(t *testing.T) {
	svc := New(trackingCatalog(), &mockCounter{}, nil)

	_, err := svc.Stats(context.Background(), "bestaat-niet", 7)
	assert.ErrorIs(t, err, domain.ErrFirmNotFound)
}

func TestStats_CounterError(t *testing.T) {
	counter := &mockCounter{getErr: errors.New("store down")}
	svc := New(trackingCatalog(), counter, nil)

	_, err := svc.Stats(context.Background(), "firm-ftmo", 7)
	assert.Error(t, err)
}
