package booking

import (
	"context"
	"sort"
	"time"
)

// SeatLedger is the single authority on which seats are taken for a
// schedule on a travel date. Reserve is all-or-nothing: it checks the
// requested seats against live holds and then inserts them, relying on
// the live-hold unique index to settle races between concurrent callers.
type SeatLedger struct {
	repo Repository
}

func NewSeatLedger(repo Repository) *SeatLedger {
	return &SeatLedger{repo: repo}
}

// BookedSeats returns the live seat numbers for a schedule and travel
// date in ascending order.
func (l *SeatLedger) BookedSeats(ctx context.Context, scheduleID string, travelDate time.Time) ([]int, error) {
	return l.repo.LiveSeatNumbers(ctx, scheduleID, travelDate)
}

// Reserve claims every hold or none. When any requested seat is already
// taken it reports the lowest-numbered conflict without writing anything.
// A unique violation on insert means another transaction won the race;
// that surfaces as ErrSeatUnavailable and the caller may retry.
func (l *SeatLedger) Reserve(ctx context.Context, scheduleID string, travelDate time.Time, holds []*SeatHold) error {
	booked, err := l.repo.LiveSeatNumbers(ctx, scheduleID, travelDate)
	if err != nil {
		return err
	}

	taken := make(map[int]bool, len(booked))
	for _, n := range booked {
		taken[n] = true
	}

	requested := make([]int, 0, len(holds))
	for _, h := range holds {
		requested = append(requested, h.SeatNumber)
	}
	sort.Ints(requested)

	for _, n := range requested {
		if taken[n] {
			return NewSeatConflict(n)
		}
	}

	return l.repo.CreateSeatHolds(ctx, holds)
}
