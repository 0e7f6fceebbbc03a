package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a deal after offer acceptance.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionInProgress TransactionStatus = "in_progress"
	TransactionClosing    TransactionStatus = "closing"
	TransactionCompleted  TransactionStatus = "completed"
	TransactionCancelled  TransactionStatus = "cancelled"
)

var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionPending:    {TransactionInProgress, TransactionCancelled},
	TransactionInProgress: {TransactionClosing, TransactionCancelled},
	TransactionClosing:    {TransactionCompleted, TransactionCancelled},
}

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionInProgress, TransactionClosing, TransactionCompleted, TransactionCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is possible.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionCompleted || s == TransactionCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransactionType classifies the deal structure.
type TransactionType string

const (
	TypeAssetPurchase      TransactionType = "asset_purchase"
	TypeSharePurchase      TransactionType = "share_purchase"
	TypeMerger             TransactionType = "merger"
	TypePartialAcquisition TransactionType = "partial_acquisition"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeAssetPurchase, TypeSharePurchase, TypeMerger, TypePartialAcquisition:
		return true
	}
	return false
}

// PartyRole is the function a participant holds in the deal.
type PartyRole string

const (
	RoleBuyer         PartyRole = "buyer"
	RoleSeller        PartyRole = "seller"
	RoleBuyerAdvisor  PartyRole = "buyer_advisor"
	RoleSellerAdvisor PartyRole = "seller_advisor"
	RoleEscrowAgent   PartyRole = "escrow_agent"
	RoleLender        PartyRole = "lender"
)

// Valid reports whether r is a known role.
func (r PartyRole) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleBuyerAdvisor, RoleSellerAdvisor, RoleEscrowAgent, RoleLender:
		return true
	}
	return false
}

// Side maps a role onto the side of the deal it works for. Escrow agents are neutral.
func (r PartyRole) Side() PartySide {
	switch r {
	case RoleBuyer, RoleBuyerAdvisor, RoleLender:
		return SideBuyer
	case RoleSeller, RoleSellerAdvisor:
		return SideSeller
	}
	return ""
}

// IsAdvisor reports whether r is one of the advisor roles.
func (r PartyRole) IsAdvisor() bool {
	return r == RoleBuyerAdvisor || r == RoleSellerAdvisor
}

// Party is a participant of a transaction.
type Party struct {
	PartyID string    `json:"partyID"`
	UserID  string    `json:"userID"`
	Name    string    `json:"name"`
	Role    PartyRole `json:"role"`
	Email   string    `json:"email,omitempty"`
}

// PaymentStructure splits the total value into its funding sources.
type PaymentStructure struct {
	CashAmount     decimal.Decimal `json:"cashAmount"`
	FinancedAmount decimal.Decimal `json:"financedAmount"`
	EarnoutAmount  decimal.Decimal `json:"earnoutAmount"`
}

// Total sums the structure.
func (p PaymentStructure) Total() decimal.Decimal {
	return p.CashAmount.Add(p.FinancedAmount).Add(p.EarnoutAmount)
}

// Communication is a message posted between parties of a deal.
type Communication struct {
	CommunicationID string    `json:"communicationID"`
	FromUserID      string    `json:"fromUserID"`
	ToUserIDs       []string  `json:"toUserIDs"`
	Subject         string    `json:"subject"`
	Body            string    `json:"body"`
	SentAt          time.Time `json:"sentAt"`
}

// Approval records a party signing off the deal for completion.
type Approval struct {
	UserID     string    `json:"userID"`
	Role       PartyRole `json:"role"`
	ApprovedAt time.Time `json:"approvedAt"`
	Comment    string    `json:"comment,omitempty"`
}

// Transaction is the root aggregate of the completion tracker.
type Transaction struct {
	TransactionID    string                 `json:"transactionID"`
	OfferID          string                 `json:"offerID"`
	ListingID        string                 `json:"listingID"`
	BuyerID          string                 `json:"buyerID"`
	SellerID         string                 `json:"sellerID"`
	Status           TransactionStatus      `json:"status"`
	TransactionType  TransactionType        `json:"transactionType"`
	TotalValue       decimal.Decimal        `json:"totalValue"`
	CurrencyCode     string                 `json:"currencyCode"`
	PaymentStructure *PaymentStructure      `json:"paymentStructure,omitempty"`
	ClosingDate      time.Time              `json:"closingDate"`
	KeyDates         []KeyDate              `json:"keyDates"`
	Parties          []Party                `json:"parties"`
	Documents        []TransactionDocument  `json:"documents"`
	ChecklistItems   []ClosingChecklistItem `json:"checklistItems"`
	Payments         []TransactionPayment   `json:"payments"`
	Escrow           *Escrow                `json:"escrow,omitempty"`
	PostClosingItems []PostClosingItem      `json:"postClosingItems"`
	Communications   []Communication        `json:"communications"`
	RequiresApproval bool                   `json:"requiresApproval"`
	Approvals        []Approval             `json:"approvals"`
	Version          int64                  `json:"version"`
	AuditFields
}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidCurrencyCode reports whether code looks like an ISO 4217 code.
func ValidCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

// Validate checks the invariants a new transaction must satisfy.
func (t *Transaction) Validate() error {
	if !t.TransactionType.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.TransactionType)
	}
	if !t.TotalValue.IsPositive() {
		return fmt.Errorf("%w: total value must be positive", apperrors.ErrValidation)
	}
	if !ValidCurrencyCode(t.CurrencyCode) {
		return fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, t.CurrencyCode)
	}
	if t.ClosingDate.IsZero() {
		return fmt.Errorf("%w: closing date is required", apperrors.ErrValidation)
	}
	if t.BuyerID == "" || t.SellerID == "" {
		return fmt.Errorf("%w: buyer and seller are required", apperrors.ErrValidation)
	}
	if t.BuyerID == t.SellerID {
		return fmt.Errorf("%w: buyer and seller must differ", apperrors.ErrValidation)
	}
	if ps := t.PaymentStructure; ps != nil {
		if ps.CashAmount.IsNegative() || ps.FinancedAmount.IsNegative() || ps.EarnoutAmount.IsNegative() {
			return fmt.Errorf("%w: payment structure amounts cannot be negative", apperrors.ErrValidation)
		}
		if !ps.Total().Equal(t.TotalValue) {
			return fmt.Errorf("%w: payment structure sums to %s, expected %s", apperrors.ErrValidation, ps.Total(), t.TotalValue)
		}
	}

	seen := make(map[string]bool, len(t.Parties))
	for _, p := range t.Parties {
		if !p.Role.Valid() {
			return fmt.Errorf("%w: unknown party role %q", apperrors.ErrValidation, p.Role)
		}
		if strings.TrimSpace(p.UserID) == "" {
			return fmt.Errorf("%w: party user id is required", apperrors.ErrValidation)
		}
		if seen[p.UserID] {
			return fmt.Errorf("%w: user %s listed as party twice", apperrors.ErrValidation, p.UserID)
		}
		seen[p.UserID] = true
	}
	if buyer := t.PartyForUser(t.BuyerID); buyer == nil || buyer.Role != RoleBuyer {
		return fmt.Errorf("%w: buyer %s must be listed as a buyer party", apperrors.ErrValidation, t.BuyerID)
	}
	if seller := t.PartyForUser(t.SellerID); seller == nil || seller.Role != RoleSeller {
		return fmt.Errorf("%w: seller %s must be listed as a seller party", apperrors.ErrValidation, t.SellerID)
	}
	return nil
}

// PartyForUser finds the party entry of a user.
func (t *Transaction) PartyForUser(userID string) *Party {
	for i := range t.Parties {
		if t.Parties[i].UserID == userID {
			return &t.Parties[i]
		}
	}
	return nil
}

// PartiesOnSide lists the principal parties (buyer or seller role) for a side.
func (t *Transaction) PartiesOnSide(side PartySide) []Party {
	var out []Party
	for _, p := range t.Parties {
		switch {
		case p.Role == RoleBuyer && side.Includes(SideBuyer):
			out = append(out, p)
		case p.Role == RoleSeller && side.Includes(SideSeller):
			out = append(out, p)
		}
	}
	return out
}

// AcceptsChildEntities reports whether tracker entities may be added in the current status.
func (t *Transaction) AcceptsChildEntities() bool {
	switch t.Status {
	case TransactionInProgress, TransactionClosing, TransactionCompleted:
		return true
	}
	return false
}

func (t *Transaction) ensureOpenForChildren(kind EntityKind) error {
	if !t.AcceptsChildEntities() {
		return fmt.Errorf("%w: cannot add %s while transaction is %s", apperrors.ErrValidation, kind, t.Status)
	}
	return nil
}

// ChangeStatus moves the transaction through its lifecycle.
// Completion requires every required checklist item completed and, when approval is required,
// approvals from both buyer and seller.
func (t *Transaction) ChangeStatus(next TransactionStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, next)
	}
	if t.Status == next {
		return nil
	}
	if !t.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move transaction from %s to %s", apperrors.ErrValidation, t.Status, next)
	}
	if next == TransactionCompleted {
		var open []string
		for _, item := range t.ChecklistItems {
			if item.Required && item.Status != ChecklistCompleted {
				open = append(open, item.ItemID)
			}
		}
		if len(open) > 0 {
			return &apperrors.DependencyUnmetError{ItemID: t.TransactionID, Unmet: open}
		}
		if t.RequiresApproval && (!t.HasApprovalFrom(RoleBuyer) || !t.HasApprovalFrom(RoleSeller)) {
			return fmt.Errorf("%w: buyer and seller approvals are required before completion", apperrors.ErrValidation)
		}
	}
	t.Status = next
	return nil
}

// HasApprovalFrom reports whether a party with the given role approved.
func (t *Transaction) HasApprovalFrom(role PartyRole) bool {
	for _, a := range t.Approvals {
		if a.Role == role {
			return true
		}
	}
	return false
}

// Approve records the approval of a party. Approving twice is rejected.
func (t *Transaction) Approve(party Party, comment string, now time.Time) (*Approval, error) {
	if t.Status.Terminal() {
		return nil, fmt.Errorf("%w: transaction is %s", apperrors.ErrValidation, t.Status)
	}
	for _, a := range t.Approvals {
		if a.UserID == party.UserID {
			return nil, fmt.Errorf("%w: user %s already approved", apperrors.ErrDuplicate, party.UserID)
		}
	}
	t.Approvals = append(t.Approvals, Approval{
		UserID:     party.UserID,
		Role:       party.Role,
		ApprovedAt: now,
		Comment:    strings.TrimSpace(comment),
	})
	return &t.Approvals[len(t.Approvals)-1], nil
}

// PostCommunication appends a message. Recipients must be parties of the deal.
func (t *Transaction) PostCommunication(c Communication) (*Communication, error) {
	if strings.TrimSpace(c.Subject) == "" || strings.TrimSpace(c.Body) == "" {
		return nil, fmt.Errorf("%w: subject and body are required", apperrors.ErrValidation)
	}
	for _, to := range c.ToUserIDs {
		if t.PartyForUser(to) == nil {
			return nil, fmt.Errorf("%w: recipient %s is not a party", apperrors.ErrValidation, to)
		}
	}
	t.Communications = append(t.Communications, c)
	return &t.Communications[len(t.Communications)-1], nil
}

// DeriveStatuses replaces time-dependent statuses with their value at now.
func (t *Transaction) DeriveStatuses(now time.Time) {
	for i := range t.KeyDates {
		t.KeyDates[i].Status = t.KeyDates[i].ComputeStatus(now)
	}
	for i := range t.Payments {
		t.Payments[i].Status = t.Payments[i].EffectiveStatus(now)
	}
}

// Touch bumps the version and audit fields after a mutation.
func (t *Transaction) Touch(userID string, now time.Time) {
	t.Version++
	t.LastUpdatedAt = now
	t.LastUpdatedBy = userID
}
