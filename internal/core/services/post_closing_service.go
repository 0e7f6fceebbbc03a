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

type postClosingService struct {
	recordStore
}

// NewPostClosingService creates the post-closing tracker.
func NewPostClosingService(repo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.PostClosingSvcFacade {
	return &postClosingService{recordStore: newRecordStore(repo, options)}
}

var _ portssvc.PostClosingSvcFacade = (*postClosingService)(nil)

func (s *postClosingService) AddItem(ctx context.Context, transactionID string, req dto.AddPostClosingItemRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	var added domain.PostClosingItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		item, err := txn.AddPostClosingItem(domain.PostClosingItem{
			ItemID:            s.cfg.newID(),
			Title:             strings.TrimSpace(req.Title),
			Description:       req.Description,
			Type:              domain.PostClosingType(req.Type),
			Priority:          domain.Priority(req.Priority),
			AssignedTo:        req.AssignedTo,
			DueDate:           req.DueDate.UTC(),
			ResponsibleParty:  domain.PartySide(req.ResponsibleParty),
			EstimatedDuration: req.EstimatedDuration,
			Dependencies:      req.Dependencies,
			Deliverables:      req.Deliverables,
		})
		if err != nil {
			return change{}, err
		}
		added = *item
		return change{
			action:   "post_closing_item.added",
			kind:     domain.EntityPostClosingItem,
			entityID: item.ItemID,
			summary:  fmt.Sprintf("Added %s task %q", item.Type, item.Title),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(added, txn), nil
}

func (s *postClosingService) ListByType(ctx context.Context, transactionID string, userID string) (*dto.PostClosingResponse, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	suggested, err := txn.SuggestedCompletionDates()
	if err != nil {
		return nil, err
	}
	return &dto.PostClosingResponse{
		Types:     txn.PostClosingByType(),
		Progress:  txn.PostClosingProgress(),
		Suggested: suggested,
		Version:   txn.Version,
	}, nil
}

func (s *postClosingService) Progress(ctx context.Context, transactionID string, userID string) (*domain.CategoryProgress[domain.PostClosingType], error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	progress := txn.PostClosingProgress()
	return &progress, nil
}

func (s *postClosingService) SuggestedCompletionDates(ctx context.Context, transactionID string, userID string) ([]domain.SuggestedCompletion, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return txn.SuggestedCompletionDates()
}

func (s *postClosingService) Readiness(ctx context.Context, transactionID string, userID string) ([]domain.PostClosingItem, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return txn.PostClosingReadiness(), nil
}

func (s *postClosingService) UpdateDependencies(ctx context.Context, transactionID, itemID string, req dto.UpdateDependenciesRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	var result domain.PostClosingItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		item, err := txn.PostClosingItem(itemID)
		if err != nil {
			return change{}, err
		}
		if err := scope.Authorize(item.AssignedTo, item.ResponsibleParty); err != nil {
			return change{}, err
		}
		item, err = txn.SetPostClosingDependencies(itemID, req.Dependencies)
		if err != nil {
			return change{}, err
		}
		result = *item
		summary := "Cleared dependencies"
		if len(item.Dependencies) > 0 {
			summary = "Depends on " + strings.Join(item.Dependencies, ", ")
		}
		return change{
			action:   "post_closing_item.dependencies_changed",
			kind:     domain.EntityPostClosingItem,
			entityID: itemID,
			summary:  summary,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *postClosingService) SetStatus(ctx context.Context, transactionID, itemID string, req dto.SetPostClosingStatusRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	status := domain.PostClosingStatus(req.Status)
	var result domain.PostClosingItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		item, err := txn.PostClosingItem(itemID)
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
		item, err = txn.SetPostClosingStatus(itemID, status, now)
		if err != nil {
			return change{}, err
		}
		result = *item
		return change{
			action:   "post_closing_item.status_changed",
			kind:     domain.EntityPostClosingItem,
			entityID: itemID,
			summary:  fmt.Sprintf("%q moved from %s to %s", item.Title, previous, status),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *postClosingService) AddComment(ctx context.Context, transactionID, itemID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	var result domain.PostClosingItem
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		comment, err := s.newComment(req.Text, userID, now)
		if err != nil {
			return change{}, err
		}
		item, err := txn.AddPostClosingComment(itemID, comment)
		if err != nil {
			return change{}, err
		}
		result = *item
		return change{
			action:   "post_closing_item.commented",
			kind:     domain.EntityPostClosingItem,
			entityID: itemID,
			summary:  fmt.Sprintf("Comment on %q", item.Title),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *postClosingService) ResolveComment(ctx context.Context, transactionID, itemID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	var result domain.PostClosingItem
	txn, err := s.mutate(ctx, transactionID, userID, req, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		item, err := txn.PostClosingItem(itemID)
		if err != nil {
			return change{}, err
		}
		if commentResolved(item.Comments, commentID) {
			result = *item
			return change{noop: true}, nil
		}
		item, err = txn.ResolvePostClosingComment(itemID, commentID, userID, now)
		if err != nil {
			return change{}, err
		}
		result = *item
		return change{
			action:   "post_closing_item.comment_resolved",
			kind:     domain.EntityPostClosingItem,
			entityID: itemID,
			summary:  fmt.Sprintf("Resolved comment %s", commentID),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}
