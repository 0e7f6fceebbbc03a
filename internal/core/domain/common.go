package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Priority ranks checklist and post-closing work.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// PartySide identifies which side of the deal owns a piece of work.
type PartySide string

const (
	SideBuyer  PartySide = "buyer"
	SideSeller PartySide = "seller"
	SideBoth   PartySide = "both"
)

// Valid reports whether s is a known side.
func (s PartySide) Valid() bool {
	switch s {
	case SideBuyer, SideSeller, SideBoth:
		return true
	}
	return false
}

// Includes reports whether work owned by s is also owned by other.
func (s PartySide) Includes(other PartySide) bool {
	if s == SideBoth {
		return other == SideBuyer || other == SideSeller || other == SideBoth
	}
	return s == other
}

// Comment is a discussion entry attached to checklist items, documents and post-closing items.
type Comment struct {
	CommentID  string     `json:"commentID"`
	AuthorID   string     `json:"authorID"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"createdAt"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
}

// NewComment validates and builds a comment.
func NewComment(id, authorID, text string, now time.Time) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, fmt.Errorf("%w: comment text is required", apperrors.ErrValidation)
	}
	return Comment{
		CommentID: id,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: now,
	}, nil
}

// resolveComment marks a comment resolved. Resolving twice is a no-op.
func resolveComment(comments []Comment, commentID, userID string, now time.Time) (*Comment, error) {
	for i := range comments {
		if comments[i].CommentID != commentID {
			continue
		}
		if !comments[i].Resolved {
			resolvedAt := now
			comments[i].Resolved = true
			comments[i].ResolvedAt = &resolvedAt
			comments[i].ResolvedBy = userID
		}
		return &comments[i], nil
	}
	return nil, fmt.Errorf("%w: comment %s", apperrors.ErrNotFound, commentID)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
