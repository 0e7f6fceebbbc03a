package services

import (
	"context"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
)

// PostClosingReaderSvc defines read operations on post-closing work.
type PostClosingReaderSvc interface {
	ListByType(ctx context.Context, transactionID string, userID string) (*dto.PostClosingResponse, error)
	Progress(ctx context.Context, transactionID string, userID string) (*domain.CategoryProgress[domain.PostClosingType], error)
	SuggestedCompletionDates(ctx context.Context, transactionID string, userID string) ([]domain.SuggestedCompletion, error)
	Readiness(ctx context.Context, transactionID string, userID string) ([]domain.PostClosingItem, error)
}

// PostClosingWriterSvc defines post-closing mutations.
type PostClosingWriterSvc interface {
	AddItem(ctx context.Context, transactionID string, req dto.AddPostClosingItemRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error)
	SetStatus(ctx context.Context, transactionID, itemID string, req dto.SetPostClosingStatusRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error)
	UpdateDependencies(ctx context.Context, transactionID, itemID string, req dto.UpdateDependenciesRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error)
	AddComment(ctx context.Context, transactionID, itemID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error)
	ResolveComment(ctx context.Context, transactionID, itemID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error)
}

// PostClosingSvcFacade combines all post-closing operations.
type PostClosingSvcFacade interface {
	PostClosingReaderSvc
	PostClosingWriterSvc
}
