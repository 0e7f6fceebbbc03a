package dto

import (
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyRequest defines one participant of a new transaction.
type PartyRequest struct {
	UserID string `json:"userID" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=buyer seller buyer_advisor seller_advisor escrow_agent lender"`
	Email  string `json:"email" binding:"omitempty,email"`
}

// PaymentStructureRequest splits the deal value by funding source.
type PaymentStructureRequest struct {
	CashAmount     decimal.Decimal `json:"cashAmount"`
	FinancedAmount decimal.Decimal `json:"financedAmount"`
	EarnoutAmount  decimal.Decimal `json:"earnoutAmount"`
}

// CreateTransactionRequest defines the payload to open a transaction after offer acceptance.
type CreateTransactionRequest struct {
	OfferID          string                   `json:"offerID" binding:"required"`
	ListingID        string                   `json:"listingID" binding:"required"`
	BuyerID          string                   `json:"buyerID" binding:"required"`
	SellerID         string                   `json:"sellerID" binding:"required"`
	TransactionType  string                   `json:"transactionType" binding:"required,oneof=asset_purchase share_purchase merger partial_acquisition"`
	TotalValue       decimal.Decimal          `json:"totalValue"`
	CurrencyCode     string                   `json:"currencyCode" binding:"required,iso4217"`
	PaymentStructure *PaymentStructureRequest `json:"paymentStructure,omitempty"`
	ClosingDate      time.Time                `json:"closingDate" binding:"required"`
	Parties          []PartyRequest           `json:"parties" binding:"required,min=2,dive"`
	RequiresApproval bool                     `json:"requiresApproval"`
}

// UpdateTransactionStatusRequest moves a transaction through its lifecycle.
type UpdateTransactionStatusRequest struct {
	VersionedRequest
	Status string `json:"status" binding:"required,oneof=pending in_progress closing completed cancelled"`
}

// ApproveTransactionRequest records the caller's approval.
type ApproveTransactionRequest struct {
	VersionedRequest
	Comment string `json:"comment" binding:"max=2000"`
}

// PostCommunicationRequest defines a message between parties.
type PostCommunicationRequest struct {
	VersionedRequest
	ToUserIDs []string `json:"toUserIDs" binding:"required,min=1,dive,required"`
	Subject   string   `json:"subject" binding:"required,max=200"`
	Body      string   `json:"body" binding:"required,max=20000"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionSummary `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}

// TransactionSummary is the list view of a transaction.
type TransactionSummary struct {
	TransactionID   string                   `json:"transactionID"`
	OfferID         string                   `json:"offerID"`
	ListingID       string                   `json:"listingID"`
	Status          domain.TransactionStatus `json:"status"`
	TransactionType domain.TransactionType   `json:"transactionType"`
	TotalValue      decimal.Decimal          `json:"totalValue"`
	CurrencyCode    string                   `json:"currencyCode"`
	ClosingDate     time.Time                `json:"closingDate"`
	Progress        domain.Progress          `json:"progress"`
	Version         int64                    `json:"version"`
	LastUpdatedAt   time.Time                `json:"lastUpdatedAt"`
}

// ToTransactionSummary converts a domain.Transaction into its list view.
func ToTransactionSummary(txn *domain.Transaction) TransactionSummary {
	return TransactionSummary{
		TransactionID:   txn.TransactionID,
		OfferID:         txn.OfferID,
		ListingID:       txn.ListingID,
		Status:          txn.Status,
		TransactionType: txn.TransactionType,
		TotalValue:      txn.TotalValue,
		CurrencyCode:    txn.CurrencyCode,
		ClosingDate:     txn.ClosingDate,
		Progress:        txn.ChecklistProgress().Overall,
		Version:         txn.Version,
		LastUpdatedAt:   txn.LastUpdatedAt,
	}
}

// ToListTransactionsResponse converts a page of transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	summaries := make([]TransactionSummary, len(txns))
	for i := range txns {
		summaries[i] = ToTransactionSummary(&txns[i])
	}
	return ListTransactionsResponse{Transactions: summaries, NextToken: nextToken}
}
