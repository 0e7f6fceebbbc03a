package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/utils/retry"
)

// SystemActor is the actor recorded for scheduled sweeps.
const SystemActor = "system"

type paymentService struct {
	recordStore
}

// NewPaymentService creates the payment scheduler and escrow tracker.
func NewPaymentService(repo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{recordStore: newRecordStore(repo, options)}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// canSettle reports whether scope may settle or cancel a payment between from and to.
func canSettle(scope domain.RequestScope, p domain.TransactionPayment) bool {
	return scope.IsAdmin || scope.Role.IsAdvisor() || scope.Role == domain.RoleEscrowAgent ||
		scope.UserID == p.FromParty || scope.UserID == p.ToParty
}

func (s *paymentService) SchedulePayment(ctx context.Context, transactionID string, req dto.SchedulePaymentRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error) {
	var paymentID string
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		p, err := txn.SchedulePayment(domain.TransactionPayment{
			PaymentID:   s.cfg.newID(),
			Type:        domain.PaymentType(req.Type),
			Amount:      req.Amount,
			Currency:    strings.ToUpper(req.Currency),
			DueDate:     req.DueDate.UTC(),
			FromParty:   req.FromParty,
			ToParty:     req.ToParty,
			Description: req.Description,
		})
		if err != nil {
			return change{}, err
		}
		paymentID = p.PaymentID
		return change{
			action:   "payment.scheduled",
			kind:     domain.EntityPayment,
			entityID: p.PaymentID,
			summary:  fmt.Sprintf("%s of %s %s due %s", p.Type, p.Amount.StringFixed(2), p.Currency, p.DueDate.Format(time.DateOnly)),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return s.paymentResult(txn, paymentID)
}

func (s *paymentService) ProcessPayment(ctx context.Context, transactionID, paymentID string, req dto.ProcessPaymentRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.paymentTimeout)
	defer cancel()

	settlement := domain.Settlement{
		ConfirmationNumber: strings.TrimSpace(req.ConfirmationNumber),
		Method:             domain.PaymentMethod(req.Method),
		Reference:          req.Reference,
	}
	if b := req.BankDetails; b != nil {
		settlement.BankDetails = &domain.BankDetails{
			BankName:      b.BankName,
			AccountHolder: b.AccountHolder,
			AccountNumber: b.AccountNumber,
			RoutingNumber: b.RoutingNumber,
			IBAN:          b.IBAN,
			SWIFT:         b.SWIFT,
		}
	}

	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		p, err := txn.Payment(paymentID)
		if err != nil {
			return change{}, err
		}
		if !canSettle(scope, *p) {
			return change{}, fmt.Errorf("%w: only the payer, payee, escrow agent or an advisor can settle this payment", apperrors.ErrForbidden)
		}
		p, changed, err := txn.ProcessPayment(paymentID, settlement, now)
		if err != nil {
			return change{}, err
		}
		if !changed {
			return change{noop: true}, nil
		}
		return change{
			action:   "payment.paid",
			kind:     domain.EntityPayment,
			entityID: paymentID,
			summary:  fmt.Sprintf("Paid %s %s, confirmation %s", p.Amount.StringFixed(2), p.Currency, p.ConfirmationNumber),
		}, nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.LogError(ctx, err, "Payment processing timed out", slog.String("payment_id", paymentID))
			return nil, fmt.Errorf("%w: payment processing timed out", apperrors.ErrTransient)
		}
		return nil, err
	}
	return s.paymentResult(txn, paymentID)
}

func (s *paymentService) CancelPayment(ctx context.Context, transactionID, paymentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error) {
	txn, err := s.mutate(ctx, transactionID, userID, req, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		p, err := txn.Payment(paymentID)
		if err != nil {
			return change{}, err
		}
		if !canSettle(scope, *p) {
			return change{}, fmt.Errorf("%w: only the payer, payee, escrow agent or an advisor can cancel this payment", apperrors.ErrForbidden)
		}
		if p.Status == domain.PaymentCancelled {
			return change{noop: true}, nil
		}
		if _, err := txn.CancelPayment(paymentID); err != nil {
			return change{}, err
		}
		return change{
			action:   "payment.cancelled",
			kind:     domain.EntityPayment,
			entityID: paymentID,
			summary:  fmt.Sprintf("Cancelled %s", p.Type),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return s.paymentResult(txn, paymentID)
}

func (s *paymentService) paymentResult(txn *domain.Transaction, paymentID string) (*dto.Versioned[domain.TransactionPayment], error) {
	p, err := txn.Payment(paymentID)
	if err != nil {
		return nil, err
	}
	return versioned(*p, txn), nil
}

func (s *paymentService) ListPayments(ctx context.Context, transactionID string, userID string) ([]domain.TransactionPayment, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return txn.Payments, nil
}

// MarkOverdue is the system sweep. Each transaction is written on its own and retried on
// version conflicts, so a busy transaction does not block the rest.
func (s *paymentService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.repo.ListTransactionIDsByStatus(ctx, []domain.TransactionStatus{
		domain.TransactionInProgress,
		domain.TransactionClosing,
		domain.TransactionCompleted,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for overdue sweep")
		return 0, err
	}

	total := 0
	var errs []error
	for _, id := range ids {
		moved := 0
		_, err := retry.Do(ctx, s.cfg.conflictRetry, func(ctx context.Context) error {
			n, err := s.markTransactionOverdue(ctx, id, now)
			moved = n
			return err
		})
		if err != nil {
			s.LogError(ctx, err, "Overdue sweep failed for transaction", slog.String("transaction_id", id))
			errs = append(errs, fmt.Errorf("transaction %s: %w", id, err))
			continue
		}
		total += moved
	}

	s.LogInfo(ctx, "Overdue sweep finished",
		slog.Int("transactions", len(ids)),
		slog.Int("payments_marked", total),
		slog.Int("failures", len(errs)))
	return total, errors.Join(errs...)
}

func (s *paymentService) markTransactionOverdue(ctx context.Context, transactionID string, now time.Time) (int, error) {
	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return 0, err
	}
	loadedVersion := txn.Version
	moved := txn.MarkOverduePayments(now)
	if len(moved) == 0 {
		return 0, nil
	}

	txn.Touch(SystemActor, now)
	entries := make([]domain.ActivityEntry, 0, len(moved))
	for _, paymentID := range moved {
		entries = append(entries, domain.ActivityEntry{
			ActivityID:    s.cfg.newID(),
			TransactionID: transactionID,
			ActorID:       SystemActor,
			Action:        "payment.overdue",
			EntityKind:    domain.EntityPayment,
			EntityID:      paymentID,
			Summary:       "Payment passed its due date",
			Version:       txn.Version,
			OccurredAt:    now,
		})
	}
	if err := s.repo.UpdateTransaction(ctx, *txn, loadedVersion, entries); err != nil {
		return 0, err
	}
	return len(moved), nil
}

func (s *paymentService) SetEscrow(ctx context.Context, transactionID string, req dto.SetEscrowRequest, userID string) (*dto.Versioned[domain.Escrow], error) {
	var result domain.Escrow
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		if !scope.CanManageEscrow() {
			return change{}, fmt.Errorf("%w: only the principals or the escrow agent can open escrow", apperrors.ErrForbidden)
		}
		conditions := make([]domain.ReleaseCondition, 0, len(req.ReleaseConditions))
		for _, c := range req.ReleaseConditions {
			conditions = append(conditions, domain.ReleaseCondition{
				ConditionID:      s.cfg.newID(),
				Description:      strings.TrimSpace(c.Description),
				ResponsibleParty: domain.PartySide(c.ResponsibleParty),
			})
		}
		e, err := txn.SetEscrow(domain.Escrow{
			Agent:             req.Agent,
			AccountID:         req.AccountID,
			HeldAmount:        req.HeldAmount,
			Currency:          strings.ToUpper(req.Currency),
			ReleaseConditions: conditions,
		})
		if err != nil {
			return change{}, err
		}
		result = *e
		return change{
			action:   "escrow.opened",
			kind:     domain.EntityEscrow,
			entityID: e.AccountID,
			summary:  fmt.Sprintf("Escrow of %s %s with %s, %d release conditions", e.HeldAmount.StringFixed(2), e.Currency, e.Agent, len(e.ReleaseConditions)),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *paymentService) UpdateReleaseCondition(ctx context.Context, transactionID, conditionID string, req dto.UpdateReleaseConditionRequest, userID string) (*dto.Versioned[domain.ReleaseCondition], error) {
	status := domain.ConditionStatus(req.Status)
	var result domain.ReleaseCondition
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if txn.Escrow == nil {
			return change{}, apperrors.NewNotFoundError(fmt.Sprintf("escrow for transaction %s", transactionID))
		}
		var current *domain.ReleaseCondition
		for i := range txn.Escrow.ReleaseConditions {
			if txn.Escrow.ReleaseConditions[i].ConditionID == conditionID {
				current = &txn.Escrow.ReleaseConditions[i]
			}
		}
		if current == nil {
			return change{}, fmt.Errorf("%w: release condition %s", apperrors.ErrNotFound, conditionID)
		}
		if scope.Role != domain.RoleEscrowAgent {
			if err := scope.Authorize("", current.ResponsibleParty); err != nil {
				return change{}, err
			}
		}
		if current.Status == status {
			result = *current
			return change{noop: true}, nil
		}
		c, err := txn.UpdateReleaseCondition(conditionID, status, now)
		if err != nil {
			return change{}, err
		}
		result = *c
		return change{
			action:   "escrow.condition_changed",
			kind:     domain.EntityEscrow,
			entityID: conditionID,
			summary:  fmt.Sprintf("%q is %s", c.Description, c.Status),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *paymentService) CheckReleaseConditions(ctx context.Context, transactionID string, userID string) (*dto.ReleaseCheckResponse, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if txn.Escrow == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("escrow for transaction %s", transactionID))
	}
	pending := []domain.ReleaseCondition{}
	for _, c := range txn.Escrow.ReleaseConditions {
		if c.Status != domain.ConditionSatisfied {
			pending = append(pending, c)
		}
	}
	return &dto.ReleaseCheckResponse{
		AllSatisfied: txn.Escrow.AllConditionsSatisfied(),
		Pending:      pending,
	}, nil
}

func (s *paymentService) ReleaseEscrow(ctx context.Context, transactionID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.Escrow], error) {
	return s.escrowTransition(ctx, transactionID, req, userID, "escrow.released", func(txn *domain.Transaction, now time.Time) (*domain.Escrow, error) {
		return txn.ReleaseEscrow(now)
	})
}

func (s *paymentService) DisputeEscrow(ctx context.Context, transactionID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.Escrow], error) {
	return s.escrowTransition(ctx, transactionID, req, userID, "escrow.disputed", func(txn *domain.Transaction, _ time.Time) (*domain.Escrow, error) {
		return txn.DisputeEscrow()
	})
}

func (s *paymentService) escrowTransition(ctx context.Context, transactionID string, req dto.VersionedRequest, userID, action string, apply func(*domain.Transaction, time.Time) (*domain.Escrow, error)) (*dto.Versioned[domain.Escrow], error) {
	var result domain.Escrow
	txn, err := s.mutate(ctx, transactionID, userID, req, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if !scope.CanManageEscrow() {
			return change{}, fmt.Errorf("%w: only the principals or the escrow agent can manage escrow", apperrors.ErrForbidden)
		}
		e, err := apply(txn, now)
		if err != nil {
			return change{}, err
		}
		result = *e
		return change{
			action:   action,
			kind:     domain.EntityEscrow,
			entityID: e.AccountID,
			summary:  fmt.Sprintf("Escrow %s", e.Status),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}
