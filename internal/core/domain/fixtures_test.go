package domain_test

import (
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

var refNow = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

func newTestTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   "txn-1",
		OfferID:         "offer-1",
		ListingID:       "listing-1",
		BuyerID:         "buyer-user",
		SellerID:        "seller-user",
		Status:          domain.TransactionInProgress,
		TransactionType: domain.TypeAssetPurchase,
		TotalValue:      decimal.NewFromInt(500000),
		CurrencyCode:    "EUR",
		ClosingDate:     refNow.AddDate(0, 0, 20),
		Parties: []domain.Party{
			{PartyID: "p-buyer", UserID: "buyer-user", Name: "Bea Buyer", Role: domain.RoleBuyer},
			{PartyID: "p-seller", UserID: "seller-user", Name: "Sam Seller", Role: domain.RoleSeller},
			{PartyID: "p-advisor", UserID: "advisor-user", Name: "Ada Advisor", Role: domain.RoleBuyerAdvisor},
			{PartyID: "p-agent", UserID: "agent-user", Name: "Eli Escrow", Role: domain.RoleEscrowAgent},
		},
		Version: 1,
		AuditFields: domain.AuditFields{
			CreatedAt: refNow.AddDate(0, -1, 0),
			CreatedBy: "buyer-user",
		},
	}
}

func checklistItem(id string, category domain.ChecklistCategory, deps ...string) domain.ClosingChecklistItem {
	return domain.ClosingChecklistItem{
		ItemID:       id,
		Category:     category,
		Title:        "Item " + id,
		Priority:     domain.PriorityMedium,
		DueDate:      refNow.AddDate(0, 0, 5),
		Dependencies: deps,
	}
}

func postClosingItem(id string, duration int, deps ...string) domain.PostClosingItem {
	return domain.PostClosingItem{
		ItemID:            id,
		Title:             "Task " + id,
		Type:              domain.PostClosingTransition,
		Priority:          domain.PriorityMedium,
		ResponsibleParty:  domain.SideBuyer,
		DueDate:           refNow.AddDate(0, 2, 0),
		EstimatedDuration: duration,
		Dependencies:      deps,
	}
}
