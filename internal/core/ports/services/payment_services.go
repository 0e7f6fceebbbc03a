package services

import (
	"context"
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
)

// PaymentReaderSvc defines read operations on payments and escrow.
type PaymentReaderSvc interface {
	ListPayments(ctx context.Context, transactionID string, userID string) ([]domain.TransactionPayment, error)
	CheckReleaseConditions(ctx context.Context, transactionID string, userID string) (*dto.ReleaseCheckResponse, error)
}

// PaymentWriterSvc defines payment mutations.
type PaymentWriterSvc interface {
	SchedulePayment(ctx context.Context, transactionID string, req dto.SchedulePaymentRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error)

	// ProcessPayment settles a payment. Settling a paid payment again returns it unchanged.
	ProcessPayment(ctx context.Context, transactionID, paymentID string, req dto.ProcessPaymentRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error)
	CancelPayment(ctx context.Context, transactionID, paymentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error)
}

// EscrowSvc defines escrow mutations.
type EscrowSvc interface {
	SetEscrow(ctx context.Context, transactionID string, req dto.SetEscrowRequest, userID string) (*dto.Versioned[domain.Escrow], error)
	UpdateReleaseCondition(ctx context.Context, transactionID, conditionID string, req dto.UpdateReleaseConditionRequest, userID string) (*dto.Versioned[domain.ReleaseCondition], error)
	ReleaseEscrow(ctx context.Context, transactionID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.Escrow], error)
	DisputeEscrow(ctx context.Context, transactionID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.Escrow], error)
}

// OverdueMarkerSvc is the system sweep that persists overdue payments.
type OverdueMarkerSvc interface {
	// MarkOverdue moves every pending payment due before now to overdue and returns how many moved.
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// PaymentSvcFacade combines all payment and escrow operations.
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	EscrowSvc
	OverdueMarkerSvc
}
