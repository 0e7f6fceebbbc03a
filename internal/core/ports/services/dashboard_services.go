package services

import (
	"context"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
)

// DashboardSvc aggregates the tracker views of one transaction.
type DashboardSvc interface {
	BuildDashboard(ctx context.Context, transactionID string, userID string) (*domain.Dashboard, error)
}
