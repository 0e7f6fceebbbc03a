package mapping

import (
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelTransaction converts a domain Transaction to its persisted form.
// Key date statuses other than completed and cancelled are derived on read and not stored.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	keyDates := make([]domain.KeyDate, len(d.KeyDates))
	for i, k := range d.KeyDates {
		if !k.Status.Terminal() {
			k.Status = ""
		}
		keyDates[i] = k
	}
	docs := make([]models.Document, len(d.Documents))
	for i, doc := range d.Documents {
		docs[i] = models.Document{TransactionDocument: doc, StorageKey: doc.StorageKey}
	}

	return models.Transaction{
		TransactionID:    d.TransactionID,
		OfferID:          d.OfferID,
		ListingID:        d.ListingID,
		BuyerID:          d.BuyerID,
		SellerID:         d.SellerID,
		Status:           string(d.Status),
		TransactionType:  string(d.TransactionType),
		TotalValue:       d.TotalValue,
		CurrencyCode:     d.CurrencyCode,
		ClosingDate:      d.ClosingDate,
		RequiresApproval: d.RequiresApproval,
		Details: models.TransactionDetails{
			PaymentStructure: d.PaymentStructure,
			KeyDates:         keyDates,
			Parties:          d.Parties,
			Documents:        docs,
			ChecklistItems:   d.ChecklistItems,
			Payments:         d.Payments,
			Escrow:           d.Escrow,
			PostClosingItems: d.PostClosingItems,
			Communications:   d.Communications,
			Approvals:        d.Approvals,
		},
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a persisted transaction back to the domain aggregate.
// Nil collections become empty slices so API responses never carry null arrays.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	docs := make([]domain.TransactionDocument, len(m.Details.Documents))
	for i, doc := range m.Details.Documents {
		d := doc.TransactionDocument
		d.StorageKey = doc.StorageKey
		docs[i] = d
	}

	return domain.Transaction{
		TransactionID:    m.TransactionID,
		OfferID:          m.OfferID,
		ListingID:        m.ListingID,
		BuyerID:          m.BuyerID,
		SellerID:         m.SellerID,
		Status:           domain.TransactionStatus(m.Status),
		TransactionType:  domain.TransactionType(m.TransactionType),
		TotalValue:       m.TotalValue,
		CurrencyCode:     m.CurrencyCode,
		PaymentStructure: m.Details.PaymentStructure,
		ClosingDate:      m.ClosingDate,
		KeyDates:         orEmpty(m.Details.KeyDates),
		Parties:          orEmpty(m.Details.Parties),
		Documents:        docs,
		ChecklistItems:   orEmpty(m.Details.ChecklistItems),
		Payments:         orEmpty(m.Details.Payments),
		Escrow:           m.Details.Escrow,
		PostClosingItems: orEmpty(m.Details.PostClosingItems),
		Communications:   orEmpty(m.Details.Communications),
		RequiresApproval: m.RequiresApproval,
		Approvals:        orEmpty(m.Details.Approvals),
		Version:          m.Version,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelActivity converts an activity entry to its row.
func ToModelActivity(d domain.ActivityEntry) models.ActivityEntry {
	return models.ActivityEntry{
		ActivityID:    d.ActivityID,
		TransactionID: d.TransactionID,
		ActorID:       d.ActorID,
		Action:        d.Action,
		EntityKind:    string(d.EntityKind),
		EntityID:      d.EntityID,
		Summary:       d.Summary,
		Version:       d.Version,
		OccurredAt:    d.OccurredAt,
	}
}

// ToDomainActivity converts an activity row to the domain entry.
func ToDomainActivity(m models.ActivityEntry) domain.ActivityEntry {
	return domain.ActivityEntry{
		ActivityID:    m.ActivityID,
		TransactionID: m.TransactionID,
		ActorID:       m.ActorID,
		Action:        m.Action,
		EntityKind:    domain.EntityKind(m.EntityKind),
		EntityID:      m.EntityID,
		Summary:       m.Summary,
		Version:       m.Version,
		OccurredAt:    m.OccurredAt,
	}
}

// ToDomainActivitySlice converts activity rows to domain entries.
func ToDomainActivitySlice(ms []models.ActivityEntry) []domain.ActivityEntry {
	ds := make([]domain.ActivityEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActivity(m)
	}
	return ds
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
