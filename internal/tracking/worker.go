package tracking

import (
	"context"
	"log"
)

// Worker decouples position ingestion from storage. Updates are queued
// on a buffered channel and written by a single background goroutine;
// when the queue is full the update is dropped rather than blocking the
// reporting device.
type Worker struct {
	service Service
	queue   chan RecordInput
}

func NewWorker(service Service, queueSize int) *Worker {
	return &Worker{
		service: service,
		queue:   make(chan RecordInput, queueSize),
	}
}

// Enqueue hands an update to the background writer. It reports false
// when the queue is full and the update was dropped.
func (w *Worker) Enqueue(in RecordInput) bool {
	select {
	case w.queue <- in:
		return true
	default:
		log.Printf("[tracking] queue full, dropping update for bus %s", in.BusID)
		return false
	}
}

// Run consumes the queue until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log.Printf("[tracking] worker running, queue size %d", cap(w.queue))

	for {
		select {
		case <-ctx.Done():
			log.Printf("[tracking] worker stopped")
			return
		case in := <-w.queue:
			if _, err := w.service.Record(ctx, in); err != nil {
				log.Printf("[tracking] record update for bus %s failed: %v", in.BusID, err)
			}
		}
	}
}
