package services

import (
	"context"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
)

// ChecklistReaderSvc defines read operations on the closing checklist.
type ChecklistReaderSvc interface {
	ListByCategory(ctx context.Context, transactionID string, userID string) (*dto.ChecklistResponse, error)
	Progress(ctx context.Context, transactionID string, userID string) (*domain.CategoryProgress[domain.ChecklistCategory], error)

	// Readiness lists open items whose dependencies are all completed.
	Readiness(ctx context.Context, transactionID string, userID string) ([]domain.ClosingChecklistItem, error)
}

// ChecklistWriterSvc defines checklist mutations.
type ChecklistWriterSvc interface {
	AddItem(ctx context.Context, transactionID string, req dto.AddChecklistItemRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error)
	SetStatus(ctx context.Context, transactionID, itemID string, req dto.SetChecklistStatusRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error)
	UpdateDependencies(ctx context.Context, transactionID, itemID string, req dto.UpdateDependenciesRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error)
	AddComment(ctx context.Context, transactionID, itemID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error)
	ResolveComment(ctx context.Context, transactionID, itemID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error)
}

// ChecklistSvcFacade combines all checklist operations.
type ChecklistSvcFacade interface {
	ChecklistReaderSvc
	ChecklistWriterSvc
}
