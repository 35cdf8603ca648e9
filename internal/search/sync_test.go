package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftroute/bus-ticketing-backend/internal/route"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
)

type fakeLister struct {
	schedules []*schedule.Schedule
}

func (f *fakeLister) ListAll(ctx context.Context) ([]*schedule.Schedule, error) {
	return f.schedules, nil
}

type indexOutcome struct {
	updated bool
	err     error
}

// fakeIndexer scripts IndexSchedule outcomes per schedule id.
type fakeIndexer struct {
	outcomes map[string]indexOutcome
	calls    []string
}

func (f *fakeIndexer) IndexSchedule(ctx context.Context, scheduleID string) (bool, error) {
	f.calls = append(f.calls, scheduleID)
	out := f.outcomes[scheduleID]
	return out.updated, out.err
}

func (f *fakeIndexer) UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error {
	return nil
}

func (f *fakeIndexer) DeleteSchedule(ctx context.Context, scheduleID string) error {
	return nil
}

func (f *fakeIndexer) Search(ctx context.Context, q Query) ([]*Document, int, error) {
	return nil, 0, nil
}

func (f *fakeIndexer) DocumentCount(ctx context.Context) (int, error) {
	return 0, nil
}

func TestSynchronizer_Sweep(t *testing.T) {
	lister := &fakeLister{schedules: []*schedule.Schedule{
		{ID: "sched-1"}, {ID: "sched-2"}, {ID: "sched-3"}, {ID: "sched-4"},
	}}
	indexer := &fakeIndexer{outcomes: map[string]indexOutcome{
		"sched-1": {updated: true},
		"sched-2": {updated: false},
		"sched-3": {err: route.ErrNotFound},
		"sched-4": {err: errors.New("index store unavailable")},
	}}

	sync := NewSynchronizer(lister, indexer, 0)

	report, err := sync.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.UpToDate)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)

	// One failure must not stop the sweep.
	assert.Equal(t, []string{"sched-1", "sched-2", "sched-3", "sched-4"}, indexer.calls)
}

func TestSynchronizer_Sweep_Empty(t *testing.T) {
	sync := NewSynchronizer(&fakeLister{}, &fakeIndexer{}, 0)

	report, err := sync.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Report{}, report)
}
