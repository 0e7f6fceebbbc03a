package services

import (
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Options are applied after the ones derived from cfg, so tests can override the clock.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	opts := append(OptionsFromConfig(cfg), options...)

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo, opts...),
		Checklist:   NewChecklistService(repos.TransactionRepo, opts...),
		Document:    NewDocumentService(repos.TransactionRepo, repos.DocumentStorage, opts...),
		Payment:     NewPaymentService(repos.TransactionRepo, opts...),
		Timeline:    NewTimelineService(repos.TransactionRepo, opts...),
		PostClosing: NewPostClosingService(repos.TransactionRepo, opts...),
		Dashboard:   NewDashboardService(repos.TransactionRepo, opts...),
	}
}

// OptionsFromConfig maps configuration onto service options.
func OptionsFromConfig(cfg *config.Config) []ServiceOption {
	if cfg == nil {
		return nil
	}
	policy := DefaultUploadPolicy()
	if cfg.DocumentMaxSizeBytes > 0 {
		policy.MaxSizeBytes = cfg.DocumentMaxSizeBytes
	}
	if len(cfg.DocumentAllowedTypes) > 0 {
		policy.AllowedContentTypes = cfg.DocumentAllowedTypes
	}
	if cfg.UploadTimeout > 0 {
		policy.Timeout = cfg.UploadTimeout
	}

	dashboard := domain.DefaultDashboardOptions()
	if cfg.RiskDueSoonDays > 0 {
		dashboard.DueSoonDays = cfg.RiskDueSoonDays
	}
	if cfg.UpcomingDeadlineDays > 0 {
		dashboard.UpcomingWindowDays = cfg.UpcomingDeadlineDays
	}
	if cfg.RecentActivityEntries > 0 {
		dashboard.RecentActivity = cfg.RecentActivityEntries
	}

	return []ServiceOption{
		WithUploadPolicy(policy),
		WithPaymentTimeout(cfg.PaymentTimeout),
		WithDashboardOptions(dashboard),
	}
}
