package service

import (
	"context"
	"time"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) OrdersOverview(ctx context.Context) (*domain.Overview, error) {
	overview, err := s.repo.OrdersOverview(ctx)
	if err != nil {
		s.logger.Error("Orders overview", zap.Error(err))
		return nil, err
	}
	return overview, nil
}

// SalesReport aggregates orders, items and ledger entries over [from, to).
// A zero range defaults to the current calendar day. Read-only: the report
// may serve a slightly stale snapshot under concurrent writes.
func (s *Service) SalesReport(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	if from.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() || !to.After(from) {
		to = from.AddDate(0, 0, 1)
	}

	report, err := s.repo.SalesReport(ctx, from, to)
	if err != nil {
		s.logger.Error("Sales report", zap.Error(err))
		return nil, err
	}
	return report, nil
}
