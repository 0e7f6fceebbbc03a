package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
)

// OverdueSweeper periodically moves scheduled payments past their due date to overdue.
type OverdueSweeper struct {
	BaseService
	marker   portssvc.OverdueMarkerSvc
	interval time.Duration
	now      func() time.Time
}

// NewOverdueSweeper creates a sweeper. A non-positive interval makes Run return immediately.
func NewOverdueSweeper(marker portssvc.OverdueMarkerSvc, interval time.Duration) *OverdueSweeper {
	return &OverdueSweeper{
		marker:   marker,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RunOnce performs a single sweep.
func (s *OverdueSweeper) RunOnce(ctx context.Context) (int, error) {
	return s.marker.MarkOverdue(ctx, s.now())
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *OverdueSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.LogInfo(ctx, "Overdue sweeper disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if n, err := s.RunOnce(ctx); err != nil {
			s.LogError(ctx, err, "Overdue sweep finished with errors", slog.Int("payments_marked", n))
		}
		select {
		case <-ctx.Done():
			s.LogInfo(ctx, "Overdue sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}
