package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// PostClosingType groups handover work.
type PostClosingType string

const (
	PostClosingTransition  PostClosingType = "transition"
	PostClosingIntegration PostClosingType = "integration"
	PostClosingCompliance  PostClosingType = "compliance"
	PostClosingReporting   PostClosingType = "reporting"
)

// Valid reports whether t is a known post-closing type.
func (t PostClosingType) Valid() bool {
	switch t {
	case PostClosingTransition, PostClosingIntegration, PostClosingCompliance, PostClosingReporting:
		return true
	}
	return false
}

// PostClosingStatus is the state of a handover task.
type PostClosingStatus string

const (
	PostClosingPending    PostClosingStatus = "pending"
	PostClosingInProgress PostClosingStatus = "in_progress"
	PostClosingCompleted  PostClosingStatus = "completed"
	PostClosingCancelled  PostClosingStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s PostClosingStatus) Valid() bool {
	switch s {
	case PostClosingPending, PostClosingInProgress, PostClosingCompleted, PostClosingCancelled:
		return true
	}
	return false
}

// PostClosingItem is a task performed after legal closing.
type PostClosingItem struct {
	ItemID            string            `json:"itemID"`
	Title             string            `json:"title"`
	Description       string            `json:"description,omitempty"`
	Type              PostClosingType   `json:"type"`
	Status            PostClosingStatus `json:"status"`
	Priority          Priority          `json:"priority"`
	AssignedTo        string            `json:"assignedTo,omitempty"`
	DueDate           time.Time         `json:"dueDate"`
	CompletedDate     *time.Time        `json:"completedDate,omitempty"`
	ResponsibleParty  PartySide         `json:"responsibleParty"`
	EstimatedDuration int               `json:"estimatedDuration"`
	Dependencies      []string          `json:"dependencies"`
	Deliverables      []string          `json:"deliverables"`
	Comments          []Comment         `json:"comments"`
}

// IsOverdue reports whether the item is past due and still open.
func (i PostClosingItem) IsOverdue(now time.Time) bool {
	if i.Status == PostClosingCompleted || i.Status == PostClosingCancelled {
		return false
	}
	return !i.DueDate.IsZero() && i.DueDate.Before(now)
}

// PostClosingItem finds a post-closing item by id.
func (t *Transaction) PostClosingItem(itemID string) (*PostClosingItem, error) {
	for i := range t.PostClosingItems {
		if t.PostClosingItems[i].ItemID == itemID {
			return &t.PostClosingItems[i], nil
		}
	}
	return nil, fmt.Errorf("%w: post-closing item %s", apperrors.ErrNotFound, itemID)
}

func (t *Transaction) postClosingGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for _, item := range t.PostClosingItems {
		g.AddNode(item.ItemID, item.Dependencies)
	}
	return g
}

func (t *Transaction) postClosingDone(id string) bool {
	item, err := t.PostClosingItem(id)
	return err == nil && item.Status == PostClosingCompleted
}

// AddPostClosingItem appends a new pending handover task.
func (t *Transaction) AddPostClosingItem(item PostClosingItem) (*PostClosingItem, error) {
	if err := t.ensureOpenForChildren(EntityPostClosingItem); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, fmt.Errorf("%w: post-closing item title is required", apperrors.ErrValidation)
	}
	if !item.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown post-closing type %q", apperrors.ErrValidation, item.Type)
	}
	if !item.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, item.Priority)
	}
	if !item.ResponsibleParty.Valid() {
		return nil, fmt.Errorf("%w: unknown responsible party %q", apperrors.ErrValidation, item.ResponsibleParty)
	}
	if item.EstimatedDuration < 0 {
		return nil, fmt.Errorf("%w: estimated duration cannot be negative", apperrors.ErrValidation)
	}
	if item.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: post-closing item due date is required", apperrors.ErrValidation)
	}
	item.Status = PostClosingPending
	item.CompletedDate = nil
	if item.Dependencies == nil {
		item.Dependencies = []string{}
	}
	if item.Deliverables == nil {
		item.Deliverables = []string{}
	}
	item.Comments = []Comment{}

	g := t.postClosingGraph()
	g.AddNode(item.ItemID, item.Dependencies)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	t.PostClosingItems = append(t.PostClosingItems, item)
	return &t.PostClosingItems[len(t.PostClosingItems)-1], nil
}

// SetPostClosingStatus changes an item's status under the same dependency gate as the checklist.
// Cancelled items cannot be reopened.
func (t *Transaction) SetPostClosingStatus(itemID string, status PostClosingStatus, now time.Time) (*PostClosingItem, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown post-closing status %q", apperrors.ErrValidation, status)
	}
	item, err := t.PostClosingItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == status {
		return item, nil
	}
	if item.Status == PostClosingCancelled {
		return nil, fmt.Errorf("%w: item %s is cancelled", apperrors.ErrValidation, itemID)
	}
	if status == PostClosingCompleted {
		if unmet := t.postClosingGraph().UnmetDependencies(itemID, t.postClosingDone); len(unmet) > 0 {
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

// SetPostClosingDependencies replaces an item's dependencies after checking the graph stays acyclic.
func (t *Transaction) SetPostClosingDependencies(itemID string, deps []string) (*PostClosingItem, error) {
	item, err := t.PostClosingItem(itemID)
	if err != nil {
		return nil, err
	}
	if deps == nil {
		deps = []string{}
	}
	g := t.postClosingGraph()
	g.AddNode(itemID, deps)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	item.Dependencies = append([]string{}, deps...)
	return item, nil
}

// AddPostClosingComment appends a comment to an item.
func (t *Transaction) AddPostClosingComment(itemID string, c Comment) (*PostClosingItem, error) {
	item, err := t.PostClosingItem(itemID)
	if err != nil {
		return nil, err
	}
	item.Comments = append(item.Comments, c)
	return item, nil
}

// ResolvePostClosingComment marks a comment on an item resolved.
func (t *Transaction) ResolvePostClosingComment(itemID, commentID, userID string, now time.Time) (*PostClosingItem, error) {
	item, err := t.PostClosingItem(itemID)
	if err != nil {
		return nil, err
	}
	if _, err := resolveComment(item.Comments, commentID, userID, now); err != nil {
		return nil, err
	}
	return item, nil
}

// PostClosingByType groups items by type keeping insertion order.
func (t *Transaction) PostClosingByType() map[PostClosingType][]PostClosingItem {
	out := make(map[PostClosingType][]PostClosingItem)
	for _, item := range t.PostClosingItems {
		out[item.Type] = append(out[item.Type], item)
	}
	return out
}

// PostClosingProgress computes completion over items that were not cancelled.
func (t *Transaction) PostClosingProgress() CategoryProgress[PostClosingType] {
	active := make([]PostClosingItem, 0, len(t.PostClosingItems))
	for _, item := range t.PostClosingItems {
		if item.Status != PostClosingCancelled {
			active = append(active, item)
		}
	}
	return groupProgress(active,
		func(i PostClosingItem) PostClosingType { return i.Type },
		func(i PostClosingItem) bool { return i.Status == PostClosingCompleted },
	)
}

// PostClosingReadiness lists open items whose dependencies are all completed.
func (t *Transaction) PostClosingReadiness() []PostClosingItem {
	g := t.postClosingGraph()
	ready := make([]PostClosingItem, 0)
	for _, item := range t.PostClosingItems {
		if item.Status == PostClosingCompleted || item.Status == PostClosingCancelled {
			continue
		}
		if len(g.UnmetDependencies(item.ItemID, t.postClosingDone)) == 0 {
			ready = append(ready, item)
		}
	}
	return ready
}

// SuggestedCompletion is an informational finish date derived from estimated durations.
type SuggestedCompletion struct {
	ItemID        string    `json:"itemID"`
	SuggestedDate time.Time `json:"suggestedDate"`
	DueDate       time.Time `json:"dueDate"`
	BehindDueDate bool      `json:"behindDueDate"`
}

// SuggestedCompletionDates walks the items in dependency order. Each item starts at the later of
// the closing date and the finish of its dependencies (actual completion when done, otherwise
// suggested) and takes EstimatedDuration days.
func (t *Transaction) SuggestedCompletionDates() ([]SuggestedCompletion, error) {
	order, err := t.postClosingGraph().TopologicalOrder()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]PostClosingItem, len(order))
	for _, item := range t.PostClosingItems {
		byID[item.ItemID] = item
	}

	finish := make(map[string]time.Time, len(order))
	suggested := make(map[string]time.Time, len(order))
	for _, id := range order {
		item := byID[id]
		start := t.ClosingDate
		for _, dep := range item.Dependencies {
			if f := finish[dep]; f.After(start) {
				start = f
			}
		}
		suggested[id] = start.AddDate(0, 0, item.EstimatedDuration)
		finish[id] = suggested[id]
		if item.Status == PostClosingCompleted && item.CompletedDate != nil {
			finish[id] = *item.CompletedDate
		}
	}

	out := make([]SuggestedCompletion, 0, len(t.PostClosingItems))
	for _, item := range t.PostClosingItems {
		out = append(out, SuggestedCompletion{
			ItemID:        item.ItemID,
			SuggestedDate: suggested[item.ItemID],
			DueDate:       item.DueDate,
			BehindDueDate: suggested[item.ItemID].After(item.DueDate),
		})
	}
	return out, nil
}
