package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
)

type dashboardService struct {
	recordStore
}

// NewDashboardService creates the dashboard aggregator.
func NewDashboardService(repo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.DashboardSvc {
	return &dashboardService{recordStore: newRecordStore(repo, options)}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) BuildDashboard(ctx context.Context, transactionID string, userID string) (*domain.Dashboard, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	activity, err := s.repo.ListActivity(ctx, transactionID, s.cfg.dashboard.RecentActivity)
	if err != nil {
		s.LogError(ctx, err, "Failed to load activity for dashboard", slog.String("transaction_id", transactionID))
		return nil, err
	}
	dashboard := domain.BuildDashboard(*txn, activity, s.cfg.now(), s.cfg.dashboard)
	return &dashboard, nil
}
