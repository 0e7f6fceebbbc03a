package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
)

type checklistService struct {
	recordStore
}

// NewChecklistService creates the closing checklist engine.
func NewChecklistService(repo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.ChecklistSvcFacade {
	return &checklistService{recordStore: newRecordStore(repo, options)}
}

var _ portssvc.ChecklistSvcFacade = (*checklistService)(nil)

func (s *checklistService) AddItem(ctx context.Context, transactionID string, req dto.AddChecklistItemRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	var added domain.ClosingChecklistItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		item, err := txn.AddChecklistItem(domain.ClosingChecklistItem{
			ItemID:           s.cfg.newID(),
			Category:         domain.ChecklistCategory(req.Category),
			Title:            strings.TrimSpace(req.Title),
			Description:      req.Description,
			Priority:         domain.Priority(req.Priority),
			AssignedTo:       req.AssignedTo,
			ResponsibleParty: domain.PartySide(req.ResponsibleParty),
			DueDate:          req.DueDate.UTC(),
			Dependencies:     req.Dependencies,
			DocumentIDs:      req.DocumentIDs,
			Required:         req.Required,
		})
		if err != nil {
			return change{}, err
		}
		added = *item
		return change{
			action:   "checklist_item.added",
			kind:     domain.EntityChecklistItem,
			entityID: item.ItemID,
			summary:  fmt.Sprintf("Added %q to %s", item.Title, item.Category),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(added, txn), nil
}

func (s *checklistService) ListByCategory(ctx context.Context, transactionID string, userID string) (*dto.ChecklistResponse, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ChecklistResponse{
		Categories: txn.ChecklistByCategory(),
		Progress:   txn.ChecklistProgress(),
		Version:    txn.Version,
	}, nil
}

func (s *checklistService) Progress(ctx context.Context, transactionID string, userID string) (*domain.CategoryProgress[domain.ChecklistCategory], error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	progress := txn.ChecklistProgress()
	return &progress, nil
}

func (s *checklistService) Readiness(ctx context.Context, transactionID string, userID string) ([]domain.ClosingChecklistItem, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return txn.ChecklistReadiness(), nil
}

func (s *checklistService) SetStatus(ctx context.Context, transactionID, itemID string, req dto.SetChecklistStatusRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	status := domain.ChecklistStatus(req.Status)
	var result domain.ClosingChecklistItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		item, err := txn.ChecklistItem(itemID)
		if err != nil {
			return change{}, err
		}
		if err := scope.Authorize(item.AssignedTo, item.ResponsibleParty); err != nil {
			return change{}, err
		}
		if item.Status == status {
			result = *item
			return change{noop: true}, nil
		}
		previous := item.Status
		item, err = txn.SetChecklistStatus(itemID, status, now)
		if err != nil {
			return change{}, err
		}
		result = *item
		return change{
			action:   "checklist_item.status_changed",
			kind:     domain.EntityChecklistItem,
			entityID: itemID,
			summary:  fmt.Sprintf("%q moved from %s to %s", item.Title, previous, status),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *checklistService) UpdateDependencies(ctx context.Context, transactionID, itemID string, req dto.UpdateDependenciesRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	var result domain.ClosingChecklistItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		item, err := txn.ChecklistItem(itemID)
		if err != nil {
			return change{}, err
		}
		if err := scope.Authorize(item.AssignedTo, item.ResponsibleParty); err != nil {
			return change{}, err
		}
		item, err = txn.SetChecklistDependencies(itemID, req.Dependencies)
		if err != nil {
			return change{}, err
		}
		result = *item
		summary := "Cleared dependencies"
		if len(item.Dependencies) > 0 {
			summary = "Depends on " + strings.Join(item.Dependencies, ", ")
		}
		return change{
			action:   "checklist_item.dependencies_changed",
			kind:     domain.EntityChecklistItem,
			entityID: itemID,
			summary:  summary,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *checklistService) AddComment(ctx context.Context, transactionID, itemID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	var result domain.ClosingChecklistItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		comment, err := s.newComment(req.Text, userID, now)
		if err != nil {
			return change{}, err
		}
		item, err := txn.AddChecklistComment(itemID, comment)
		if err != nil {
			return change{}, err
		}
		result = *item
		return change{
			action:   "checklist_item.commented",
			kind:     domain.EntityChecklistItem,
			entityID: itemID,
			summary:  fmt.Sprintf("Comment on %q", item.Title),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *checklistService) ResolveComment(ctx context.Context, transactionID, itemID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	var result domain.ClosingChecklistItem
	txn, err := s.mutate(ctx, transactionID, userID, req, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		item, err := txn.ChecklistItem(itemID)
		if err != nil {
			return change{}, err
		}
		if commentResolved(item.Comments, commentID) {
			result = *item
			return change{noop: true}, nil
		}
		item, err = txn.ResolveChecklistComment(itemID, commentID, userID, now)
		if err != nil {
			return change{}, err
		}
		result = *item
		return change{
			action:   "checklist_item.comment_resolved",
			kind:     domain.EntityChecklistItem,
			entityID: itemID,
			summary:  fmt.Sprintf("Resolved comment %s", commentID),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func commentResolved(comments []domain.Comment, commentID string) bool {
	for _, c := range comments {
		if c.CommentID == commentID {
			return c.Resolved
		}
	}
	return false
}
