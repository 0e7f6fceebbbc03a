package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type transactionService struct {
	recordStore
	validate *validator.Validate
}

// NewTransactionService creates the transaction record store.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		recordStore: newRecordStore(repo, options),
		validate:    dto.NewValidator(),
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*dto.Versioned[domain.Transaction], error) {
	now := s.cfg.now()

	parties := make([]domain.Party, 0, len(req.Parties))
	for _, p := range req.Parties {
		parties = append(parties, domain.Party{
			PartyID: s.cfg.newID(),
			UserID:  strings.TrimSpace(p.UserID),
			Name:    strings.TrimSpace(p.Name),
			Role:    domain.PartyRole(p.Role),
			Email:   p.Email,
		})
	}

	txn := domain.Transaction{
		TransactionID:    s.cfg.newID(),
		OfferID:          req.OfferID,
		ListingID:        req.ListingID,
		BuyerID:          req.BuyerID,
		SellerID:         req.SellerID,
		Status:           domain.TransactionPending,
		TransactionType:  domain.TransactionType(req.TransactionType),
		TotalValue:       req.TotalValue,
		CurrencyCode:     strings.ToUpper(req.CurrencyCode),
		ClosingDate:      req.ClosingDate.UTC(),
		KeyDates:         []domain.KeyDate{},
		Parties:          parties,
		Documents:        []domain.TransactionDocument{},
		ChecklistItems:   []domain.ClosingChecklistItem{},
		Payments:         []domain.TransactionPayment{},
		PostClosingItems: []domain.PostClosingItem{},
		Communications:   []domain.Communication{},
		RequiresApproval: req.RequiresApproval,
		Approvals:        []domain.Approval{},
		Version:          1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if ps := req.PaymentStructure; ps != nil {
		txn.PaymentStructure = &domain.PaymentStructure{
			CashAmount:     ps.CashAmount,
			FinancedAmount: ps.FinancedAmount,
			EarnoutAmount:  ps.EarnoutAmount,
		}
	}

	if err := txn.Validate(); err != nil {
		s.LogDebug(ctx, "Rejected transaction", slog.String("offer_id", req.OfferID), slog.String("error", err.Error()))
		return nil, err
	}
	if txn.PartyForUser(userID) == nil && !middleware.IsAdminFromCtx(ctx) {
		return nil, fmt.Errorf("%w: only a party of the deal can open its transaction", apperrors.ErrForbidden)
	}

	entry := domain.ActivityEntry{
		ActivityID:    s.cfg.newID(),
		TransactionID: txn.TransactionID,
		ActorID:       userID,
		Action:        "transaction.created",
		EntityKind:    domain.EntityTransaction,
		EntityID:      txn.TransactionID,
		Summary:       fmt.Sprintf("Transaction opened for offer %s", txn.OfferID),
		Version:       txn.Version,
		OccurredAt:    now,
	}
	if err := s.repo.SaveTransaction(ctx, txn, entry); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("offer_id", req.OfferID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("offer_id", txn.OfferID),
		slog.String("created_by", userID))
	return versioned(txn, &txn), nil
}

func (s *transactionService) GetTransaction(ctx context.Context, transactionID string, userID string) (*dto.Versioned[domain.Transaction], error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return versioned(*txn, txn), nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	txns, nextToken, err := s.repo.ListTransactionsForUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	now := s.cfg.now()
	for i := range txns {
		txns[i].DeriveStatuses(now)
	}
	resp := dto.ToListTransactionsResponse(txns, nextToken)
	return &resp, nil
}

func (s *transactionService) ListActivity(ctx context.Context, transactionID string, userID string, limit int) ([]domain.ActivityEntry, error) {
	if _, _, err := s.load(ctx, transactionID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	entries, err := s.repo.ListActivity(ctx, transactionID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activity", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return entries, nil
}

func (s *transactionService) UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, userID string) (*dto.Versioned[domain.Transaction], error) {
	next := domain.TransactionStatus(req.Status)
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		if !scope.IsAdmin && !scope.IsPrincipal() {
			return change{}, fmt.Errorf("%w: only the buyer or seller can change the transaction status", apperrors.ErrForbidden)
		}
		previous := txn.Status
		if previous == next {
			return change{noop: true}, nil
		}
		if err := txn.ChangeStatus(next); err != nil {
			return change{}, err
		}
		return change{
			action:   "transaction.status_changed",
			kind:     domain.EntityTransaction,
			entityID: txn.TransactionID,
			summary:  fmt.Sprintf("Status changed from %s to %s", previous, next),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(*txn, txn), nil
}

func (s *transactionService) Approve(ctx context.Context, transactionID string, req dto.ApproveTransactionRequest, userID string) (*dto.Versioned[domain.Approval], error) {
	var approval domain.Approval
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if !scope.IsPrincipal() {
			return change{}, fmt.Errorf("%w: only the buyer or seller can approve", apperrors.ErrForbidden)
		}
		a, err := txn.Approve(*txn.PartyForUser(userID), req.Comment, now)
		if err != nil {
			return change{}, err
		}
		approval = *a
		return change{
			action:   "transaction.approved",
			kind:     domain.EntityTransaction,
			entityID: txn.TransactionID,
			summary:  fmt.Sprintf("Approved by %s", a.Role),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(approval, txn), nil
}

func (s *transactionService) PostCommunication(ctx context.Context, transactionID string, req dto.PostCommunicationRequest, userID string) (*dto.Versioned[domain.Communication], error) {
	var posted domain.Communication
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		c, err := txn.PostCommunication(domain.Communication{
			CommunicationID: s.cfg.newID(),
			FromUserID:      userID,
			ToUserIDs:       req.ToUserIDs,
			Subject:         strings.TrimSpace(req.Subject),
			Body:            req.Body,
			SentAt:          now,
		})
		if err != nil {
			return change{}, err
		}
		posted = *c
		return change{
			action:   "communication.posted",
			kind:     domain.EntityCommunication,
			entityID: c.CommunicationID,
			summary:  c.Subject,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(posted, txn), nil
}

func (s *transactionService) UpdateEntity(ctx context.Context, transactionID string, kind domain.EntityKind, entityID string, req dto.EntityPatch, userID string) (*dto.Versioned[any], error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	patch := req.ToDomain()

	var updated any
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		assignee, side, err := txn.PatchTarget(kind, entityID)
		if err != nil {
			return change{}, err
		}
		if err := scope.Authorize(assignee, side); err != nil {
			return change{}, err
		}
		entity, err := txn.ApplyPatch(kind, entityID, patch)
		if err != nil {
			return change{}, err
		}
		updated = entity
		return change{
			action:   string(kind) + ".updated",
			kind:     kind,
			entityID: entityID,
			summary:  "Updated " + strings.Join(patch.Fields(), ", "),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(updated, txn), nil
}
