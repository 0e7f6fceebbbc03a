package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentType identifies what a scheduled payment settles.
type PaymentType string

const (
	PaymentDown      PaymentType = "down_payment"
	PaymentClosing   PaymentType = "closing_payment"
	PaymentFinancing PaymentType = "financing_payment"
	PaymentEarnout   PaymentType = "earnout_payment"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentDown, PaymentClosing, PaymentFinancing, PaymentEarnout:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentOverdue, PaymentCancelled},
	PaymentOverdue: {PaymentPaid, PaymentCancelled},
}

// CanTransitionTo reports whether a payment may move from s to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentMethod is how funds were moved.
type PaymentMethod string

const (
	MethodWireTransfer PaymentMethod = "wire_transfer"
	MethodACH          PaymentMethod = "ach"
	MethodCheck        PaymentMethod = "check"
	MethodEscrow       PaymentMethod = "escrow"
)

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodWireTransfer, MethodACH, MethodCheck, MethodEscrow:
		return true
	}
	return false
}

// BankDetails describes the receiving account of a settled payment.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	SWIFT         string `json:"swift,omitempty"`
}

// TransactionPayment is one scheduled transfer between parties.
type TransactionPayment struct {
	PaymentID          string          `json:"paymentID"`
	Type               PaymentType     `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	DueDate            time.Time       `json:"dueDate"`
	PaidDate           *time.Time      `json:"paidDate,omitempty"`
	Status             PaymentStatus   `json:"status"`
	Method             PaymentMethod   `json:"method,omitempty"`
	ConfirmationNumber string          `json:"confirmationNumber,omitempty"`
	Reference          string          `json:"reference,omitempty"`
	FromParty          string          `json:"fromParty"`
	ToParty            string          `json:"toParty"`
	Description        string          `json:"description,omitempty"`
	BankDetails        *BankDetails    `json:"bankDetails,omitempty"`
}

// EffectiveStatus derives overdue for pending payments whose due date has passed.
func (p TransactionPayment) EffectiveStatus(now time.Time) PaymentStatus {
	if p.Status == PaymentPending && p.DueDate.Before(now) {
		return PaymentOverdue
	}
	return p.Status
}

// Settlement carries what a payment processor reports back.
type Settlement struct {
	ConfirmationNumber string
	Method             PaymentMethod
	Reference          string
	BankDetails        *BankDetails
}

// Payment finds a payment by id.
func (t *Transaction) Payment(paymentID string) (*TransactionPayment, error) {
	for i := range t.Payments {
		if t.Payments[i].PaymentID == paymentID {
			return &t.Payments[i], nil
		}
	}
	return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
}

// SchedulePayment adds a pending payment between two parties.
func (t *Transaction) SchedulePayment(p TransactionPayment) (*TransactionPayment, error) {
	if err := t.ensureOpenForChildren(EntityPayment); err != nil {
		return nil, err
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, p.Type)
	}
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if p.Currency != t.CurrencyCode {
		return nil, fmt.Errorf("%w: payment currency %q must match transaction currency %s", apperrors.ErrValidation, p.Currency, t.CurrencyCode)
	}
	if p.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: payment due date is required", apperrors.ErrValidation)
	}
	if t.PartyForUser(p.FromParty) == nil || t.PartyForUser(p.ToParty) == nil {
		return nil, fmt.Errorf("%w: payer and payee must be parties of the transaction", apperrors.ErrValidation)
	}
	if p.FromParty == p.ToParty {
		return nil, fmt.Errorf("%w: payer and payee must differ", apperrors.ErrValidation)
	}
	p.Status = PaymentPending
	p.PaidDate = nil
	t.Payments = append(t.Payments, p)
	return &t.Payments[len(t.Payments)-1], nil
}

// ProcessPayment settles a payment. Settling an already paid payment returns it unchanged;
// the boolean reports whether anything changed.
func (t *Transaction) ProcessPayment(paymentID string, s Settlement, now time.Time) (*TransactionPayment, bool, error) {
	p, err := t.Payment(paymentID)
	if err != nil {
		return nil, false, err
	}
	if p.Status == PaymentPaid {
		return p, false, nil
	}
	if !p.Status.CanTransitionTo(PaymentPaid) {
		return nil, false, fmt.Errorf("%w: cannot pay a %s payment", apperrors.ErrValidation, p.Status)
	}
	if strings.TrimSpace(s.ConfirmationNumber) == "" {
		return nil, false, fmt.Errorf("%w: confirmation number is required", apperrors.ErrValidation)
	}
	if !s.Method.Valid() {
		return nil, false, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, s.Method)
	}
	paidAt := now
	p.Status = PaymentPaid
	p.PaidDate = &paidAt
	p.ConfirmationNumber = s.ConfirmationNumber
	p.Method = s.Method
	p.Reference = s.Reference
	if s.BankDetails != nil {
		details := *s.BankDetails
		p.BankDetails = &details
	}
	return p, true, nil
}

// CancelPayment cancels a pending or overdue payment.
func (t *Transaction) CancelPayment(paymentID string) (*TransactionPayment, error) {
	p, err := t.Payment(paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == PaymentCancelled {
		return p, nil
	}
	if !p.Status.CanTransitionTo(PaymentCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s payment", apperrors.ErrValidation, p.Status)
	}
	p.Status = PaymentCancelled
	return p, nil
}

// MarkOverduePayments persists overdue for pending payments past due and returns the ids moved.
// Running it again at the same instant changes nothing.
func (t *Transaction) MarkOverduePayments(now time.Time) []string {
	var moved []string
	for i := range t.Payments {
		p := &t.Payments[i]
		if p.Status == PaymentPending && p.DueDate.Before(now) {
			p.Status = PaymentOverdue
			moved = append(moved, p.PaymentID)
		}
	}
	return moved
}

// EscrowStatus is the state of the escrow account.
type EscrowStatus string

const (
	EscrowActive   EscrowStatus = "active"
	EscrowReleased EscrowStatus = "released"
	EscrowDisputed EscrowStatus = "disputed"
)

// ConditionStatus is the state of a release condition.
type ConditionStatus string

const (
	ConditionPending   ConditionStatus = "pending"
	ConditionSatisfied ConditionStatus = "satisfied"
	ConditionFailed    ConditionStatus = "failed"
)

// Valid reports whether s is a known condition status.
func (s ConditionStatus) Valid() bool {
	switch s {
	case ConditionPending, ConditionSatisfied, ConditionFailed:
		return true
	}
	return false
}

// ReleaseCondition must be satisfied before escrowed funds are released.
type ReleaseCondition struct {
	ConditionID      string          `json:"conditionID"`
	Description      string          `json:"description"`
	ResponsibleParty PartySide       `json:"responsibleParty"`
	Status           ConditionStatus `json:"status"`
	SatisfiedAt      *time.Time      `json:"satisfiedAt,omitempty"`
}

// Escrow holds funds with a neutral agent.
type Escrow struct {
	Agent             string             `json:"agent"`
	AccountID         string             `json:"accountID"`
	HeldAmount        decimal.Decimal    `json:"heldAmount"`
	Currency          string             `json:"currency"`
	Status            EscrowStatus       `json:"status"`
	ReleaseConditions []ReleaseCondition `json:"releaseConditions"`
	ReleasedAt        *time.Time         `json:"releasedAt,omitempty"`
}

// AllConditionsSatisfied reports whether every release condition is satisfied.
// An escrow without conditions is releasable.
func (e Escrow) AllConditionsSatisfied() bool {
	for _, c := range e.ReleaseConditions {
		if c.Status != ConditionSatisfied {
			return false
		}
	}
	return true
}

// SetEscrow opens or replaces the escrow while it has not been released.
func (t *Transaction) SetEscrow(e Escrow) (*Escrow, error) {
	if err := t.ensureOpenForChildren(EntityEscrow); err != nil {
		return nil, err
	}
	if t.Escrow != nil && t.Escrow.Status == EscrowReleased {
		return nil, fmt.Errorf("%w: escrow already released", apperrors.ErrValidation)
	}
	if strings.TrimSpace(e.Agent) == "" || strings.TrimSpace(e.AccountID) == "" {
		return nil, fmt.Errorf("%w: escrow agent and account are required", apperrors.ErrValidation)
	}
	if !e.HeldAmount.IsPositive() {
		return nil, fmt.Errorf("%w: escrow amount must be positive", apperrors.ErrValidation)
	}
	if e.Currency != t.CurrencyCode {
		return nil, fmt.Errorf("%w: escrow currency %q must match transaction currency %s", apperrors.ErrValidation, e.Currency, t.CurrencyCode)
	}
	for i := range e.ReleaseConditions {
		c := &e.ReleaseConditions[i]
		if strings.TrimSpace(c.Description) == "" {
			return nil, fmt.Errorf("%w: release condition description is required", apperrors.ErrValidation)
		}
		if !c.ResponsibleParty.Valid() {
			return nil, fmt.Errorf("%w: unknown responsible party %q", apperrors.ErrValidation, c.ResponsibleParty)
		}
		c.Status = ConditionPending
		c.SatisfiedAt = nil
	}
	if e.ReleaseConditions == nil {
		e.ReleaseConditions = []ReleaseCondition{}
	}
	e.Status = EscrowActive
	e.ReleasedAt = nil
	t.Escrow = &e
	return t.Escrow, nil
}

func (t *Transaction) activeEscrow() (*Escrow, error) {
	if t.Escrow == nil {
		return nil, fmt.Errorf("%w: escrow for transaction %s", apperrors.ErrNotFound, t.TransactionID)
	}
	if t.Escrow.Status != EscrowActive {
		return nil, fmt.Errorf("%w: escrow is %s", apperrors.ErrValidation, t.Escrow.Status)
	}
	return t.Escrow, nil
}

// UpdateReleaseCondition sets the status of one release condition.
func (t *Transaction) UpdateReleaseCondition(conditionID string, status ConditionStatus, now time.Time) (*ReleaseCondition, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown condition status %q", apperrors.ErrValidation, status)
	}
	e, err := t.activeEscrow()
	if err != nil {
		return nil, err
	}
	for i := range e.ReleaseConditions {
		c := &e.ReleaseConditions[i]
		if c.ConditionID != conditionID {
			continue
		}
		c.Status = status
		if status == ConditionSatisfied {
			satisfiedAt := now
			c.SatisfiedAt = &satisfiedAt
		} else {
			c.SatisfiedAt = nil
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: release condition %s", apperrors.ErrNotFound, conditionID)
}

// ReleaseEscrow releases funds once every condition is satisfied.
func (t *Transaction) ReleaseEscrow(now time.Time) (*Escrow, error) {
	e, err := t.activeEscrow()
	if err != nil {
		return nil, err
	}
	if !e.AllConditionsSatisfied() {
		return nil, fmt.Errorf("%w: not every release condition is satisfied", apperrors.ErrValidation)
	}
	releasedAt := now
	e.Status = EscrowReleased
	e.ReleasedAt = &releasedAt
	return e, nil
}

// DisputeEscrow freezes an active escrow.
func (t *Transaction) DisputeEscrow() (*Escrow, error) {
	e, err := t.activeEscrow()
	if err != nil {
		return nil, err
	}
	e.Status = EscrowDisputed
	return e, nil
}
