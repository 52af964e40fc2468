package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// OverdueMarker moves pending invoices whose due date has passed to overdue.
type OverdueMarker interface {
	MarkOverdueInvoices(ctx context.Context) (int64, error)
}

// OverdueSweeper periodically runs an OverdueMarker until its context is cancelled.
type OverdueSweeper struct {
	marker   OverdueMarker
	interval time.Duration
	logger   *slog.Logger
}

// NewOverdueSweeper builds a sweeper. A non-positive interval falls back to one hour.
func NewOverdueSweeper(marker OverdueMarker, interval time.Duration, logger *slog.Logger) *OverdueSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OverdueSweeper{marker: marker, interval: interval, logger: logger.With(slog.String("component", "overdue_sweeper"))}
}

// Run sweeps once immediately and then on every tick. It blocks until ctx is done.
func (s *OverdueSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Overdue sweeper started", slog.Duration("interval", s.interval))
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Overdue sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *OverdueSweeper) sweep(ctx context.Context) {
	marked, err := s.marker.MarkOverdueInvoices(ctx)
	if err != nil {
		s.logger.Warn("Overdue sweep failed", slog.String("error", err.Error()))
		return
	}
	if marked > 0 {
		s.logger.Info("Invoices marked overdue", slog.Int64("count", marked))
	} else {
		s.logger.Debug("Overdue sweep found nothing to mark")
	}
}
