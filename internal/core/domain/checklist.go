package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// ChecklistCategory groups closing tasks.
type ChecklistCategory string

const (
	CategoryLegal       ChecklistCategory = "legal"
	CategoryFinancial   ChecklistCategory = "financial"
	CategoryOperational ChecklistCategory = "operational"
	CategoryRegulatory  ChecklistCategory = "regulatory"
	CategoryClosing     ChecklistCategory = "closing"
	CategoryPostClosing ChecklistCategory = "post_closing"
)

// ChecklistCategories lists categories in display order.
var ChecklistCategories = []ChecklistCategory{
	CategoryLegal, CategoryFinancial, CategoryOperational, CategoryRegulatory, CategoryClosing, CategoryPostClosing,
}

// Valid reports whether c is a known category.
func (c ChecklistCategory) Valid() bool {
	for _, known := range ChecklistCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ChecklistStatus is the state of a closing task.
type ChecklistStatus string

const (
	ChecklistPending    ChecklistStatus = "pending"
	ChecklistInProgress ChecklistStatus = "in_progress"
	ChecklistCompleted  ChecklistStatus = "completed"
	ChecklistBlocked    ChecklistStatus = "blocked"
)

// Valid reports whether s is a known status.
func (s ChecklistStatus) Valid() bool {
	switch s {
	case ChecklistPending, ChecklistInProgress, ChecklistCompleted, ChecklistBlocked:
		return true
	}
	return false
}

// ClosingChecklistItem is a discrete task that must be done before closing.
type ClosingChecklistItem struct {
	ItemID           string            `json:"itemID"`
	Category         ChecklistCategory `json:"category"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Status           ChecklistStatus   `json:"status"`
	Priority         Priority          `json:"priority"`
	AssignedTo       string            `json:"assignedTo,omitempty"`
	ResponsibleParty PartySide         `json:"responsibleParty,omitempty"`
	DueDate          time.Time         `json:"dueDate"`
	CompletedDate    *time.Time        `json:"completedDate,omitempty"`
	Dependencies     []string          `json:"dependencies"`
	DocumentIDs      []string          `json:"documentIDs"`
	Comments         []Comment         `json:"comments"`
	Required         bool              `json:"required"`
}

// IsOverdue reports whether the item is past due and not completed.
func (i ClosingChecklistItem) IsOverdue(now time.Time) bool {
	return i.Status != ChecklistCompleted && !i.DueDate.IsZero() && i.DueDate.Before(now)
}

func (i ClosingChecklistItem) validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("%w: checklist item title is required", apperrors.ErrValidation)
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: unknown checklist category %q", apperrors.ErrValidation, i.Category)
	}
	if !i.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, i.Priority)
	}
	if i.ResponsibleParty != "" && !i.ResponsibleParty.Valid() {
		return fmt.Errorf("%w: unknown responsible party %q", apperrors.ErrValidation, i.ResponsibleParty)
	}
	if i.DueDate.IsZero() {
		return fmt.Errorf("%w: checklist item due date is required", apperrors.ErrValidation)
	}
	return nil
}

// ChecklistItem finds a checklist item by id.
func (t *Transaction) ChecklistItem(itemID string) (*ClosingChecklistItem, error) {
	for i := range t.ChecklistItems {
		if t.ChecklistItems[i].ItemID == itemID {
			return &t.ChecklistItems[i], nil
		}
	}
	return nil, fmt.Errorf("%w: checklist item %s", apperrors.ErrNotFound, itemID)
}

func (t *Transaction) checklistGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for _, item := range t.ChecklistItems {
		g.AddNode(item.ItemID, item.Dependencies)
	}
	return g
}

func (t *Transaction) checklistDone(id string) bool {
	item, err := t.ChecklistItem(id)
	return err == nil && item.Status == ChecklistCompleted
}

// AddChecklistItem appends a new pending item after validating its dependencies.
func (t *Transaction) AddChecklistItem(item ClosingChecklistItem) (*ClosingChecklistItem, error) {
	if err := t.ensureOpenForChildren(EntityChecklistItem); err != nil {
		return nil, err
	}
	if err := item.validate(); err != nil {
		return nil, err
	}
	for _, docID := range item.DocumentIDs {
		if _, err := t.Document(docID); err != nil {
			return nil, fmt.Errorf("%w: attached document %s does not exist", apperrors.ErrValidation, docID)
		}
	}
	item.Status = ChecklistPending
	item.CompletedDate = nil
	if item.Dependencies == nil {
		item.Dependencies = []string{}
	}
	if item.DocumentIDs == nil {
		item.DocumentIDs = []string{}
	}
	item.Comments = []Comment{}

	g := t.checklistGraph()
	g.AddNode(item.ItemID, item.Dependencies)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	t.ChecklistItems = append(t.ChecklistItems, item)
	return &t.ChecklistItems[len(t.ChecklistItems)-1], nil
}

// SetChecklistStatus changes an item's status. Completion is refused while any dependency is
// not completed. CompletedDate is stamped on entering completed and cleared on leaving it.
func (t *Transaction) SetChecklistStatus(itemID string, status ChecklistStatus, now time.Time) (*ClosingChecklistItem, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown checklist status %q", apperrors.ErrValidation, status)
	}
	item, err := t.ChecklistItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == status {
		return item, nil
	}
	if status == ChecklistCompleted {
		if unmet := t.checklistGraph().UnmetDependencies(itemID, t.checklistDone); len(unmet) > 0 {
			return nil, &apperrors.DependencyUnmetError{ItemID: itemID, Unmet: unmet}
		}
		completedAt := now
		item.CompletedDate = &completedAt
	} else {
		item.CompletedDate = nil
	}
	item.Status = status
	return item, nil
}

// SetChecklistDependencies replaces an item's dependencies, keeping the graph acyclic.
func (t *Transaction) SetChecklistDependencies(itemID string, deps []string) (*ClosingChecklistItem, error) {
	item, err := t.ChecklistItem(itemID)
	if err != nil {
		return nil, err
	}
	if deps == nil {
		deps = []string{}
	}
	g := t.checklistGraph()
	g.AddNode(itemID, deps)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	item.Dependencies = append([]string{}, deps...)
	return item, nil
}

// AddChecklistComment appends a comment to an item.
func (t *Transaction) AddChecklistComment(itemID string, c Comment) (*ClosingChecklistItem, error) {
	item, err := t.ChecklistItem(itemID)
	if err != nil {
		return nil, err
	}
	item.Comments = append(item.Comments, c)
	return item, nil
}

// ResolveChecklistComment marks a comment on an item resolved.
func (t *Transaction) ResolveChecklistComment(itemID, commentID, userID string, now time.Time) (*ClosingChecklistItem, error) {
	item, err := t.ChecklistItem(itemID)
	if err != nil {
		return nil, err
	}
	if _, err := resolveComment(item.Comments, commentID, userID, now); err != nil {
		return nil, err
	}
	return item, nil
}

// ChecklistByCategory groups items by category keeping insertion order inside each group.
func (t *Transaction) ChecklistByCategory() map[ChecklistCategory][]ClosingChecklistItem {
	out := make(map[ChecklistCategory][]ClosingChecklistItem)
	for _, item := range t.ChecklistItems {
		out[item.Category] = append(out[item.Category], item)
	}
	return out
}

// ChecklistProgress computes overall and per-category completion.
func (t *Transaction) ChecklistProgress() CategoryProgress[ChecklistCategory] {
	return groupProgress(t.ChecklistItems,
		func(i ClosingChecklistItem) ChecklistCategory { return i.Category },
		func(i ClosingChecklistItem) bool { return i.Status == ChecklistCompleted },
	)
}

// ChecklistReadiness lists incomplete items whose dependencies are all completed.
func (t *Transaction) ChecklistReadiness() []ClosingChecklistItem {
	g := t.checklistGraph()
	ready := make([]ClosingChecklistItem, 0)
	for _, item := range t.ChecklistItems {
		if item.Status == ChecklistCompleted {
			continue
		}
		if len(g.UnmetDependencies(item.ItemID, t.checklistDone)) == 0 {
			ready = append(ready, item)
		}
	}
	return ready
}
