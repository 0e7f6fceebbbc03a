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

type timelineService struct {
	recordStore
}

// NewTimelineService creates the timeline tracker.
func NewTimelineService(repo portsrepo.TransactionRepositoryFacade, options ...ServiceOption) portssvc.TimelineSvcFacade {
	return &timelineService{recordStore: newRecordStore(repo, options)}
}

var _ portssvc.TimelineSvcFacade = (*timelineService)(nil)

func (s *timelineService) AddKeyDate(ctx context.Context, transactionID string, req dto.AddKeyDateRequest, userID string) (*dto.Versioned[domain.KeyDate], error) {
	var keyDateID string
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		k, err := txn.AddKeyDate(domain.KeyDate{
			KeyDateID:        s.cfg.newID(),
			Name:             strings.TrimSpace(req.Name),
			Date:             req.Date.UTC(),
			Type:             domain.KeyDateType(req.Type),
			ResponsibleParty: domain.PartySide(req.ResponsibleParty),
			Critical:         req.Critical,
			Description:      req.Description,
		})
		if err != nil {
			return change{}, err
		}
		keyDateID = k.KeyDateID
		return change{
			action:   "key_date.added",
			kind:     domain.EntityKeyDate,
			entityID: k.KeyDateID,
			summary:  fmt.Sprintf("%s %q on %s", k.Type, k.Name, k.Date.Format(time.DateOnly)),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return keyDateResult(txn, keyDateID)
}

func (s *timelineService) ListKeyDates(ctx context.Context, transactionID string, userID string) (*dto.TimelineResponse, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	now := s.cfg.now()
	return &dto.TimelineResponse{
		KeyDates:  txn.SortedKeyDates(now),
		Countdown: txn.Countdown(now, s.cfg.dashboard.DueSoonDays),
	}, nil
}

func (s *timelineService) CompleteKeyDate(ctx context.Context, transactionID, keyDateID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.KeyDate], error) {
	return s.finish(ctx, transactionID, keyDateID, req, userID, domain.KeyDateCompleted)
}

func (s *timelineService) CancelKeyDate(ctx context.Context, transactionID, keyDateID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.KeyDate], error) {
	return s.finish(ctx, transactionID, keyDateID, req, userID, domain.KeyDateCancelled)
}

func (s *timelineService) finish(ctx context.Context, transactionID, keyDateID string, req dto.VersionedRequest, userID string, status domain.KeyDateStatus) (*dto.Versioned[domain.KeyDate], error) {
	txn, err := s.mutate(ctx, transactionID, userID, req, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		k, err := txn.KeyDate(keyDateID)
		if err != nil {
			return change{}, err
		}
		if err := scope.Authorize("", k.ResponsibleParty); err != nil {
			return change{}, err
		}
		if k.Status == status {
			return change{noop: true}, nil
		}
		k, err = txn.FinishKeyDate(keyDateID, status)
		if err != nil {
			return change{}, err
		}
		return change{
			action:   "key_date." + string(status),
			kind:     domain.EntityKeyDate,
			entityID: keyDateID,
			summary:  fmt.Sprintf("%q %s", k.Name, status),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return keyDateResult(txn, keyDateID)
}

func (s *timelineService) ClosingCountdown(ctx context.Context, transactionID string, userID string) (*domain.ClosingCountdown, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	countdown := txn.Countdown(s.cfg.now(), s.cfg.dashboard.DueSoonDays)
	return &countdown, nil
}

func keyDateResult(txn *domain.Transaction, keyDateID string) (*dto.Versioned[domain.KeyDate], error) {
	k, err := txn.KeyDate(keyDateID)
	if err != nil {
		return nil, err
	}
	return versioned(*k, txn), nil
}
