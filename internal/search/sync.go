package search

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
)

// ScheduleLister enumerates every schedule for reconciliation.
// schedule.Service satisfies it.
type ScheduleLister interface {
	ListAll(ctx context.Context) ([]*schedule.Schedule, error)
}

// Report summarizes one reconciliation sweep.
type Report struct {
	Total    int `json:"total"`
	Updated  int `json:"updated"`
	UpToDate int `json:"up_to_date"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Synchronizer reconciles the search index against the schedule table.
// A failure on one schedule never stops the sweep.
type Synchronizer struct {
	schedules ScheduleLister
	indexer   Service
	interval  time.Duration
}

func NewSynchronizer(schedules ScheduleLister, indexer Service, interval time.Duration) *Synchronizer {
	return &Synchronizer{
		schedules: schedules,
		indexer:   indexer,
		interval:  interval,
	}
}

// Sweep walks every schedule and brings its document up to date. A
// schedule whose bus, route or operator no longer resolves is skipped;
// any other per-schedule error is counted as failed.
func (s *Synchronizer) Sweep(ctx context.Context) (*Report, error) {
	schedules, err := s.schedules.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(schedules)}
	for _, sched := range schedules {
		updated, err := s.indexer.IndexSchedule(ctx, sched.ID)
		switch {
		case err == nil && updated:
			report.Updated++
		case err == nil:
			report.UpToDate++
		case isMissingDependency(err):
			report.Skipped++
			log.Printf("[search] skip schedule %s: %v", sched.ID, err)
		default:
			report.Failed++
			log.Printf("[search] index schedule %s failed: %v", sched.ID, err)
		}
	}

	return report, nil
}

// Run sweeps immediately and then on every tick until ctx is cancelled.
func (s *Synchronizer) Run(ctx context.Context) {
	log.Printf("[search] synchronizer running every %s", s.interval)

	s.sweepAndLog(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[search] synchronizer stopped")
			return
		case <-ticker.C:
			s.sweepAndLog(ctx)
		}
	}
}

func (s *Synchronizer) sweepAndLog(ctx context.Context) {
	report, err := s.Sweep(ctx)
	if err != nil {
		log.Printf("[search] sweep failed: %v", err)
		return
	}
	log.Printf("[search] sweep done: total=%d updated=%d up_to_date=%d skipped=%d failed=%d",
		report.Total, report.Updated, report.UpToDate, report.Skipped, report.Failed)
}

func isMissingDependency(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}
