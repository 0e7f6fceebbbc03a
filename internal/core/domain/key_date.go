package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// KeyDateType classifies timeline entries.
type KeyDateType string

const (
	KeyDateMilestone   KeyDateType = "milestone"
	KeyDateDeadline    KeyDateType = "deadline"
	KeyDateDeliverable KeyDateType = "deliverable"
	KeyDatePayment     KeyDateType = "payment"
	KeyDateClosing     KeyDateType = "closing"
)

// Valid reports whether t is a known key date type.
func (t KeyDateType) Valid() bool {
	switch t {
	case KeyDateMilestone, KeyDateDeadline, KeyDateDeliverable, KeyDatePayment, KeyDateClosing:
		return true
	}
	return false
}

// KeyDateStatus is either a stored terminal state or a state derived from the clock.
type KeyDateStatus string

const (
	KeyDateUpcoming  KeyDateStatus = "upcoming"
	KeyDateOverdue   KeyDateStatus = "overdue"
	KeyDateCompleted KeyDateStatus = "completed"
	KeyDateCancelled KeyDateStatus = "cancelled"
)

// Terminal reports whether s is stored rather than derived.
func (s KeyDateStatus) Terminal() bool {
	return s == KeyDateCompleted || s == KeyDateCancelled
}

// KeyDate is a dated event on the deal timeline.
type KeyDate struct {
	KeyDateID        string        `json:"keyDateID"`
	Name             string        `json:"name"`
	Date             time.Time     `json:"date"`
	Type             KeyDateType   `json:"type"`
	Status           KeyDateStatus `json:"status"`
	ResponsibleParty PartySide     `json:"responsibleParty,omitempty"`
	Critical         bool          `json:"critical"`
	Description      string        `json:"description,omitempty"`
}

// ComputeStatus derives the status at now: terminal states stay, otherwise a past date is overdue.
func (k KeyDate) ComputeStatus(now time.Time) KeyDateStatus {
	if k.Status.Terminal() {
		return k.Status
	}
	if k.Date.Before(now) {
		return KeyDateOverdue
	}
	return KeyDateUpcoming
}

// KeyDate finds a key date by id.
func (t *Transaction) KeyDate(keyDateID string) (*KeyDate, error) {
	for i := range t.KeyDates {
		if t.KeyDates[i].KeyDateID == keyDateID {
			return &t.KeyDates[i], nil
		}
	}
	return nil, fmt.Errorf("%w: key date %s", apperrors.ErrNotFound, keyDateID)
}

// AddKeyDate inserts a key date keeping the list ordered by date.
func (t *Transaction) AddKeyDate(k KeyDate) (*KeyDate, error) {
	if err := t.ensureOpenForChildren(EntityKeyDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(k.Name) == "" {
		return nil, fmt.Errorf("%w: key date name is required", apperrors.ErrValidation)
	}
	if !k.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown key date type %q", apperrors.ErrValidation, k.Type)
	}
	if k.Date.IsZero() {
		return nil, fmt.Errorf("%w: key date is required", apperrors.ErrValidation)
	}
	if k.ResponsibleParty != "" && !k.ResponsibleParty.Valid() {
		return nil, fmt.Errorf("%w: unknown responsible party %q", apperrors.ErrValidation, k.ResponsibleParty)
	}
	k.Status = KeyDateUpcoming
	t.KeyDates = append(t.KeyDates, k)
	t.sortKeyDates()
	return t.KeyDate(k.KeyDateID)
}

func (t *Transaction) sortKeyDates() {
	sort.SliceStable(t.KeyDates, func(i, j int) bool {
		return t.KeyDates[i].Date.Before(t.KeyDates[j].Date)
	})
}

// SortedKeyDates returns key dates ascending by date with statuses derived at now.
func (t *Transaction) SortedKeyDates(now time.Time) []KeyDate {
	out := make([]KeyDate, len(t.KeyDates))
	copy(out, t.KeyDates)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	for i := range out {
		out[i].Status = out[i].ComputeStatus(now)
	}
	return out
}

// FinishKeyDate moves an open key date to a terminal status.
func (t *Transaction) FinishKeyDate(keyDateID string, status KeyDateStatus) (*KeyDate, error) {
	if !status.Terminal() {
		return nil, fmt.Errorf("%w: key date status %q cannot be set directly", apperrors.ErrValidation, status)
	}
	k, err := t.KeyDate(keyDateID)
	if err != nil {
		return nil, err
	}
	if k.Status == status {
		return k, nil
	}
	if k.Status.Terminal() {
		return nil, fmt.Errorf("%w: key date is already %s", apperrors.ErrValidation, k.Status)
	}
	k.Status = status
	return k, nil
}

// CountdownAlert flags the closing date state.
type CountdownAlert string

const (
	AlertNone        CountdownAlert = "none"
	AlertApproaching CountdownAlert = "approaching"
	AlertPastDue     CountdownAlert = "past_due"
)

// ClosingCountdown is the distance to the closing date.
type ClosingCountdown struct {
	ClosingDate   time.Time      `json:"closingDate"`
	DaysToClosing int            `json:"daysToClosing"`
	PastDue       bool           `json:"pastDue"`
	Alert         CountdownAlert `json:"alert"`
}

// DaysUntil is ceil((target - now) / 1 day) and goes negative once target has passed.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// Countdown computes the closing countdown. A negative count is never clamped; open
// transactions whose closing date has passed raise the past_due alert.
func (t *Transaction) Countdown(now time.Time, approachingDays int) ClosingCountdown {
	days := DaysUntil(t.ClosingDate, now)
	c := ClosingCountdown{
		ClosingDate:   t.ClosingDate,
		DaysToClosing: days,
		PastDue:       t.ClosingDate.Before(now),
		Alert:         AlertNone,
	}
	if t.Status.Terminal() {
		return c
	}
	switch {
	case c.PastDue:
		c.Alert = AlertPastDue
	case days <= approachingDays:
		c.Alert = AlertApproaching
	}
	return c
}
