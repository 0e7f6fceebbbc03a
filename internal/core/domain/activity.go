package domain

import "time"

// EntityKind names the part of the aggregate a mutation touched.
type EntityKind string

const (
	EntityTransaction     EntityKind = "transaction"
	EntityChecklistItem   EntityKind = "checklist_item"
	EntityDocument        EntityKind = "document"
	EntityPayment         EntityKind = "payment"
	EntityEscrow          EntityKind = "escrow"
	EntityKeyDate         EntityKind = "key_date"
	EntityPostClosingItem EntityKind = "post_closing_item"
	EntityCommunication   EntityKind = "communication"
)

// ActivityEntry is one line of the append-only audit log of a transaction.
type ActivityEntry struct {
	ActivityID    string     `json:"activityID"`
	TransactionID string     `json:"transactionID"`
	ActorID       string     `json:"actorID"`
	Action        string     `json:"action"`
	EntityKind    EntityKind `json:"entityKind"`
	EntityID      string     `json:"entityID"`
	Summary       string     `json:"summary"`
	Version       int64      `json:"version"`
	OccurredAt    time.Time  `json:"occurredAt"`
}
