package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntityPatch is a partial update of a child entity. Nil fields are left untouched.
// Status fields are not patchable; statuses move through the tracker operations.
type EntityPatch struct {
	Title             *string
	Name              *string
	Description       *string
	Category          *string
	Priority          *Priority
	AssignedTo        *string
	ResponsibleParty  *PartySide
	DueDate           *time.Time
	Date              *time.Time
	Required          *bool
	Critical          *bool
	Amount            *decimal.Decimal
	FromParty         *string
	ToParty           *string
	EstimatedDuration *int
	Deliverables      []string
	DocumentIDs       []string
}

var patchableFields = map[EntityKind][]string{
	EntityChecklistItem:   {"title", "description", "priority", "assignedTo", "responsibleParty", "dueDate", "required", "documentIDs"},
	EntityDocument:        {"name", "category", "dueDate"},
	EntityPayment:         {"amount", "dueDate", "description", "fromParty", "toParty"},
	EntityKeyDate:         {"name", "description", "date", "critical", "responsibleParty"},
	EntityPostClosingItem: {"title", "description", "priority", "assignedTo", "responsibleParty", "dueDate", "estimatedDuration", "deliverables"},
}

// PatchableKinds lists the entity kinds accepted by ApplyPatch.
func PatchableKinds() []EntityKind {
	kinds := make([]EntityKind, 0, len(patchableFields))
	for k := range patchableFields {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Fields returns the names of the fields set on the patch.
func (p EntityPatch) Fields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.Title != nil, "title")
	add(p.Name != nil, "name")
	add(p.Description != nil, "description")
	add(p.Category != nil, "category")
	add(p.Priority != nil, "priority")
	add(p.AssignedTo != nil, "assignedTo")
	add(p.ResponsibleParty != nil, "responsibleParty")
	add(p.DueDate != nil, "dueDate")
	add(p.Date != nil, "date")
	add(p.Required != nil, "required")
	add(p.Critical != nil, "critical")
	add(p.Amount != nil, "amount")
	add(p.FromParty != nil, "fromParty")
	add(p.ToParty != nil, "toParty")
	add(p.EstimatedDuration != nil, "estimatedDuration")
	add(p.Deliverables != nil, "deliverables")
	add(p.DocumentIDs != nil, "documentIDs")
	return fields
}

func (p EntityPatch) check(kind EntityKind) error {
	allowed, ok := patchableFields[kind]
	if !ok {
		return fmt.Errorf("%w: entity kind %q cannot be patched", apperrors.ErrValidation, kind)
	}
	fields := p.Fields()
	if len(fields) == 0 {
		return fmt.Errorf("%w: patch is empty", apperrors.ErrValidation)
	}
	for _, f := range fields {
		if !containsString(allowed, f) {
			return fmt.Errorf("%w: field %s is not supported for %s", apperrors.ErrValidation, f, kind)
		}
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *p.Priority)
	}
	if p.ResponsibleParty != nil && !p.ResponsibleParty.Valid() {
		return fmt.Errorf("%w: unknown responsible party %q", apperrors.ErrValidation, *p.ResponsibleParty)
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if p.EstimatedDuration != nil && *p.EstimatedDuration < 0 {
		return fmt.Errorf("%w: estimated duration cannot be negative", apperrors.ErrValidation)
	}
	if (p.DueDate != nil && p.DueDate.IsZero()) || (p.Date != nil && p.Date.IsZero()) {
		return fmt.Errorf("%w: dates cannot be cleared", apperrors.ErrValidation)
	}
	return nil
}

// PatchTarget identifies the assignment of the entity a patch applies to, for authorization.
func (t *Transaction) PatchTarget(kind EntityKind, entityID string) (assignee string, side PartySide, err error) {
	switch kind {
	case EntityChecklistItem:
		item, err := t.ChecklistItem(entityID)
		if err != nil {
			return "", "", err
		}
		return item.AssignedTo, item.ResponsibleParty, nil
	case EntityDocument:
		doc, err := t.Document(entityID)
		if err != nil {
			return "", "", err
		}
		return doc.UploadedBy, doc.RequiredBy, nil
	case EntityPayment:
		p, err := t.Payment(entityID)
		if err != nil {
			return "", "", err
		}
		return p.FromParty, "", nil
	case EntityKeyDate:
		k, err := t.KeyDate(entityID)
		if err != nil {
			return "", "", err
		}
		return "", k.ResponsibleParty, nil
	case EntityPostClosingItem:
		item, err := t.PostClosingItem(entityID)
		if err != nil {
			return "", "", err
		}
		return item.AssignedTo, item.ResponsibleParty, nil
	}
	return "", "", fmt.Errorf("%w: entity kind %q cannot be patched", apperrors.ErrValidation, kind)
}

// ApplyPatch updates the fields of one child entity and returns the updated entity.
func (t *Transaction) ApplyPatch(kind EntityKind, entityID string, p EntityPatch) (any, error) {
	if err := p.check(kind); err != nil {
		return nil, err
	}
	switch kind {
	case EntityChecklistItem:
		return t.patchChecklistItem(entityID, p)
	case EntityDocument:
		return t.patchDocument(entityID, p)
	case EntityPayment:
		return t.patchPayment(entityID, p)
	case EntityKeyDate:
		return t.patchKeyDate(entityID, p)
	case EntityPostClosingItem:
		return t.patchPostClosingItem(entityID, p)
	}
	return nil, fmt.Errorf("%w: entity kind %q cannot be patched", apperrors.ErrValidation, kind)
}

func (t *Transaction) patchChecklistItem(id string, p EntityPatch) (*ClosingChecklistItem, error) {
	item, err := t.ChecklistItem(id)
	if err != nil {
		return nil, err
	}
	for _, docID := range p.DocumentIDs {
		if _, err := t.Document(docID); err != nil {
			return nil, fmt.Errorf("%w: attached document %s does not exist", apperrors.ErrValidation, docID)
		}
	}
	setIf(&item.Title, p.Title)
	setIf(&item.Description, p.Description)
	setIf(&item.Priority, p.Priority)
	setIf(&item.AssignedTo, p.AssignedTo)
	setIf(&item.ResponsibleParty, p.ResponsibleParty)
	setIf(&item.DueDate, p.DueDate)
	setIf(&item.Required, p.Required)
	if p.DocumentIDs != nil {
		item.DocumentIDs = append([]string{}, p.DocumentIDs...)
	}
	return item, nil
}

func (t *Transaction) patchDocument(id string, p EntityPatch) (*TransactionDocument, error) {
	doc, err := t.Document(id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil && normalizeDocumentName(*p.Name) != normalizeDocumentName(doc.Name) {
		if other := t.LatestDocumentByName(*p.Name); other != nil && other.LineageID != doc.LineageID {
			return nil, fmt.Errorf("%w: a document named %q already exists", apperrors.ErrDuplicate, *p.Name)
		}
		// rename the whole lineage so versioning keeps matching by name
		for i := range t.Documents {
			if t.Documents[i].LineageID == doc.LineageID {
				t.Documents[i].Name = strings.TrimSpace(*p.Name)
			}
		}
	}
	setIf(&doc.Category, p.Category)
	if p.DueDate != nil {
		due := *p.DueDate
		doc.DueDate = &due
	}
	return doc, nil
}

func (t *Transaction) patchPayment(id string, p EntityPatch) (*TransactionPayment, error) {
	payment, err := t.Payment(id)
	if err != nil {
		return nil, err
	}
	if payment.Status == PaymentPaid || payment.Status == PaymentCancelled {
		return nil, fmt.Errorf("%w: a %s payment cannot be edited", apperrors.ErrValidation, payment.Status)
	}
	// overdue never moves back to pending, so an overdue payment keeps its due date
	if payment.Status == PaymentOverdue && p.DueDate != nil {
		return nil, fmt.Errorf("%w: an overdue payment cannot be rescheduled; cancel it and schedule a new one", apperrors.ErrValidation)
	}
	from, to := payment.FromParty, payment.ToParty
	setIf(&from, p.FromParty)
	setIf(&to, p.ToParty)
	if t.PartyForUser(from) == nil || t.PartyForUser(to) == nil || from == to {
		return nil, fmt.Errorf("%w: payer and payee must be distinct parties", apperrors.ErrValidation)
	}
	payment.FromParty, payment.ToParty = from, to
	setIf(&payment.Amount, p.Amount)
	setIf(&payment.DueDate, p.DueDate)
	setIf(&payment.Description, p.Description)
	return payment, nil
}

func (t *Transaction) patchKeyDate(id string, p EntityPatch) (*KeyDate, error) {
	k, err := t.KeyDate(id)
	if err != nil {
		return nil, err
	}
	setIf(&k.Name, p.Name)
	setIf(&k.Description, p.Description)
	setIf(&k.Critical, p.Critical)
	setIf(&k.ResponsibleParty, p.ResponsibleParty)
	if p.Date != nil {
		k.Date = *p.Date
		t.sortKeyDates()
		return t.KeyDate(id)
	}
	return k, nil
}

func (t *Transaction) patchPostClosingItem(id string, p EntityPatch) (*PostClosingItem, error) {
	item, err := t.PostClosingItem(id)
	if err != nil {
		return nil, err
	}
	setIf(&item.Title, p.Title)
	setIf(&item.Description, p.Description)
	setIf(&item.Priority, p.Priority)
	setIf(&item.AssignedTo, p.AssignedTo)
	setIf(&item.ResponsibleParty, p.ResponsibleParty)
	setIf(&item.DueDate, p.DueDate)
	setIf(&item.EstimatedDuration, p.EstimatedDuration)
	if p.Deliverables != nil {
		item.Deliverables = append([]string{}, p.Deliverables...)
	}
	return item, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
