package services

import (
	"context"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
)

// TimelineSvcFacade defines key date and countdown operations.
type TimelineSvcFacade interface {
	AddKeyDate(ctx context.Context, transactionID string, req dto.AddKeyDateRequest, userID string) (*dto.Versioned[domain.KeyDate], error)

	// ListKeyDates returns key dates in ascending order with their derived status, plus the countdown.
	ListKeyDates(ctx context.Context, transactionID string, userID string) (*dto.TimelineResponse, error)
	CompleteKeyDate(ctx context.Context, transactionID, keyDateID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.KeyDate], error)
	CancelKeyDate(ctx context.Context, transactionID, keyDateID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.KeyDate], error)
	ClosingCountdown(ctx context.Context, transactionID string, userID string) (*domain.ClosingCountdown, error)
}
