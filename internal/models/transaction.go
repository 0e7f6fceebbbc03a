package models

import (
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Transaction is the persisted row of a transaction aggregate. Scalar fields are columns used
// for filtering and listing; everything else lives in the Details JSONB column.
type Transaction struct {
	TransactionID    string             `json:"transactionID" db:"transaction_id"`
	OfferID          string             `json:"offerID" db:"offer_id"`
	ListingID        string             `json:"listingID" db:"listing_id"`
	BuyerID          string             `json:"buyerID" db:"buyer_id"`
	SellerID         string             `json:"sellerID" db:"seller_id"`
	Status           string             `json:"status" db:"status"`
	TransactionType  string             `json:"transactionType" db:"transaction_type"`
	TotalValue       decimal.Decimal    `json:"totalValue" db:"total_value"`
	CurrencyCode     string             `json:"currencyCode" db:"currency_code"`
	ClosingDate      time.Time          `json:"closingDate" db:"closing_date"`
	RequiresApproval bool               `json:"requiresApproval" db:"requires_approval"`
	Details          TransactionDetails `json:"details" db:"details"`
	Version          int64              `json:"version" db:"version"`
	AuditFields
}

// TransactionDetails is the nested part of the aggregate.
type TransactionDetails struct {
	PaymentStructure *domain.PaymentStructure      `json:"paymentStructure,omitempty"`
	KeyDates         []domain.KeyDate              `json:"keyDates"`
	Parties          []domain.Party                `json:"parties"`
	Documents        []Document                    `json:"documents"`
	ChecklistItems   []domain.ClosingChecklistItem `json:"checklistItems"`
	Payments         []domain.TransactionPayment   `json:"payments"`
	Escrow           *domain.Escrow                `json:"escrow,omitempty"`
	PostClosingItems []domain.PostClosingItem      `json:"postClosingItems"`
	Communications   []domain.Communication        `json:"communications"`
	Approvals        []domain.Approval             `json:"approvals"`
}

// Document adds the storage key, which the API never exposes, to a document version.
type Document struct {
	domain.TransactionDocument
	StorageKey string `json:"storageKey"`
}

// ActivityEntry is a row of the transaction_activity table.
type ActivityEntry struct {
	ActivityID    string    `db:"activity_id"`
	TransactionID string    `db:"transaction_id"`
	ActorID       string    `db:"actor_id"`
	Action        string    `db:"action"`
	EntityKind    string    `db:"entity_kind"`
	EntityID      string    `db:"entity_id"`
	Summary       string    `db:"summary"`
	Version       int64     `db:"version"`
	OccurredAt    time.Time `db:"occurred_at"`
}
