// Package housekeeper runs periodic maintenance over the bookings table.
package housekeeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/beiramar/pousada/internal/booking"
)

// ExpiryRecorder receives the count of bookings expired per sweep.
type ExpiryRecorder interface {
	RecordBookingsExpired(count int)
}

// Housekeeper cancels booking requests that stayed pending past their TTL,
// so the back office list does not accumulate requests nobody answered.
type Housekeeper struct {
	repo       booking.Repository
	recorder   ExpiryRecorder
	interval   time.Duration
	pendingTTL time.Duration
}

// New creates a Housekeeper.
func New(repo booking.Repository, recorder ExpiryRecorder, interval, pendingTTL time.Duration) *Housekeeper {
	return &Housekeeper{
		repo:       repo,
		recorder:   recorder,
		interval:   interval,
		pendingTTL: pendingTTL,
	}
}

// Start begins the sweep loop. It blocks until ctx is cancelled.
func (h *Housekeeper) Start(ctx context.Context) {
	slog.Info("housekeeper started", "interval", h.interval.String(), "pendingTTL", h.pendingTTL.String())
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("housekeeper stopped")
			return
		case <-ticker.C:
			h.sweep(ctx)
		}
	}
}

func (h *Housekeeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-h.pendingTTL)

	count, err := h.repo.CancelPendingBefore(ctx, cutoff)
	if err != nil {
		slog.Error("housekeeper: failed to cancel stale bookings", "error", err)
		return
	}

	if count > 0 {
		h.recorder.RecordBookingsExpired(count)
		slog.Info("housekeeper: cancelled stale pending bookings", "count", count)
	}
}
