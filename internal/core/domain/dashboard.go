package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RiskLevel summarises how likely the deal is to slip.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DashboardOptions tunes the aggregation windows.
type DashboardOptions struct {
	UpcomingWindowDays int
	DueSoonDays        int
	RecentActivity     int
}

// DefaultDashboardOptions mirrors the configuration defaults.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{UpcomingWindowDays: 30, DueSoonDays: 7, RecentActivity: 10}
}

// DashboardProgress collects progress for every tracker.
type DashboardProgress struct {
	OverallProgress Progress                       `json:"overallProgress"`
	ByCategory      map[ChecklistCategory]Progress `json:"byCategory"`
	Documents       Progress                       `json:"documents"`
	Payments        Progress                       `json:"payments"`
	KeyDates        Progress                       `json:"keyDates"`
	PostClosing     Progress                       `json:"postClosing"`
}

// Deadline is an open key date shown on the dashboard.
type Deadline struct {
	KeyDateID     string        `json:"keyDateID"`
	Name          string        `json:"name"`
	Date          time.Time     `json:"date"`
	Type          KeyDateType   `json:"type"`
	Status        KeyDateStatus `json:"status"`
	Critical      bool          `json:"critical"`
	DaysRemaining int           `json:"daysRemaining"`
}

// TeamMemberStatus is the workload of one party.
type TeamMemberStatus struct {
	PartyID           string    `json:"partyID"`
	UserID            string    `json:"userID"`
	Name              string    `json:"name"`
	Role              PartyRole `json:"role"`
	AssignedItems     int       `json:"assignedItems"`
	CompletedItems    int       `json:"completedItems"`
	OverdueItems      int       `json:"overdueItems"`
	PendingSignatures int       `json:"pendingSignatures"`
}

// FinancialSummary compares the deal value with the payment schedule.
// PendingAmount is TotalValue minus paid; ScheduledOutstanding is what open payments still cover,
// and Reconciled is true when the two agree.
type FinancialSummary struct {
	Currency             string          `json:"currency"`
	TotalValue           decimal.Decimal `json:"totalValue"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	PendingAmount        decimal.Decimal `json:"pendingAmount"`
	ScheduledOutstanding decimal.Decimal `json:"scheduledOutstanding"`
	UnscheduledAmount    decimal.Decimal `json:"unscheduledAmount"`
	OverdueAmount        decimal.Decimal `json:"overdueAmount"`
	EscrowHeld           decimal.Decimal `json:"escrowHeld"`
	Reconciled           bool            `json:"reconciled"`
}

// Dashboard is the read-only summary of one transaction.
type Dashboard struct {
	Transaction       *Transaction       `json:"transaction"`
	Progress          DashboardProgress  `json:"progress"`
	UpcomingDeadlines []Deadline         `json:"upcomingDeadlines"`
	RecentActivity    []ActivityEntry    `json:"recentActivity"`
	TeamStatus        []TeamMemberStatus `json:"teamStatus"`
	FinancialSummary  FinancialSummary   `json:"financialSummary"`
	RiskLevel         RiskLevel          `json:"riskLevel"`
	RiskFactors       []string           `json:"riskFactors"`
	Countdown         ClosingCountdown   `json:"countdown"`
}

// BuildDashboard composes the dashboard of t at now. It never mutates t; statuses in the
// embedded transaction are derived at now.
func BuildDashboard(t Transaction, activity []ActivityEntry, now time.Time, opts DashboardOptions) Dashboard {
	t.KeyDates = t.SortedKeyDates(now)
	payments := make([]TransactionPayment, len(t.Payments))
	for i, p := range t.Payments {
		p.Status = p.EffectiveStatus(now)
		payments[i] = p
	}
	t.Payments = payments

	checklist := t.ChecklistProgress()
	risk, factors := AssessRisk(&t, now, opts.DueSoonDays)

	return Dashboard{
		Transaction: &t,
		Progress: DashboardProgress{
			OverallProgress: checklist.Overall,
			ByCategory:      checklist.ByGroup,
			Documents:       documentProgress(&t),
			Payments:        paymentProgress(&t),
			KeyDates:        keyDateProgress(&t),
			PostClosing:     t.PostClosingProgress().Overall,
		},
		UpcomingDeadlines: upcomingDeadlines(&t, now, opts.UpcomingWindowDays),
		RecentActivity:    recentActivity(activity, opts.RecentActivity),
		TeamStatus:        teamStatus(&t, now),
		FinancialSummary:  Financials(&t),
		RiskLevel:         risk,
		RiskFactors:       factors,
		Countdown:         t.Countdown(now, opts.DueSoonDays),
	}
}

func documentProgress(t *Transaction) Progress {
	latest := t.LatestDocuments()
	done := 0
	for _, d := range latest {
		if d.Status == DocumentApproved || d.Status == DocumentSigned {
			done++
		}
	}
	return NewProgress(done, len(latest))
}

func paymentProgress(t *Transaction) Progress {
	total, done := 0, 0
	for _, p := range t.Payments {
		if p.Status == PaymentCancelled {
			continue
		}
		total++
		if p.Status == PaymentPaid {
			done++
		}
	}
	return NewProgress(done, total)
}

func keyDateProgress(t *Transaction) Progress {
	total, done := 0, 0
	for _, k := range t.KeyDates {
		if k.Status == KeyDateCancelled {
			continue
		}
		total++
		if k.Status == KeyDateCompleted {
			done++
		}
	}
	return NewProgress(done, total)
}

func upcomingDeadlines(t *Transaction, now time.Time, windowDays int) []Deadline {
	horizon := now.AddDate(0, 0, windowDays)
	out := make([]Deadline, 0)
	for _, k := range t.SortedKeyDates(now) {
		if k.Status.Terminal() {
			continue
		}
		if k.Status == KeyDateUpcoming && k.Date.After(horizon) {
			continue
		}
		out = append(out, Deadline{
			KeyDateID:     k.KeyDateID,
			Name:          k.Name,
			Date:          k.Date,
			Type:          k.Type,
			Status:        k.Status,
			Critical:      k.Critical,
			DaysRemaining: DaysUntil(k.Date, now),
		})
	}
	return out
}

func recentActivity(activity []ActivityEntry, limit int) []ActivityEntry {
	sorted := make([]ActivityEntry, len(activity))
	copy(sorted, activity)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.After(sorted[j].OccurredAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func teamStatus(t *Transaction, now time.Time) []TeamMemberStatus {
	out := make([]TeamMemberStatus, 0, len(t.Parties))
	for _, party := range t.Parties {
		s := TeamMemberStatus{PartyID: party.PartyID, UserID: party.UserID, Name: party.Name, Role: party.Role}
		for _, item := range t.ChecklistItems {
			if item.AssignedTo != party.UserID {
				continue
			}
			s.AssignedItems++
			if item.Status == ChecklistCompleted {
				s.CompletedItems++
			} else if item.IsOverdue(now) {
				s.OverdueItems++
			}
		}
		for _, item := range t.PostClosingItems {
			if item.AssignedTo != party.UserID || item.Status == PostClosingCancelled {
				continue
			}
			s.AssignedItems++
			if item.Status == PostClosingCompleted {
				s.CompletedItems++
			} else if item.IsOverdue(now) {
				s.OverdueItems++
			}
		}
		for _, doc := range t.LatestDocuments() {
			if doc.Status != DocumentApproved || doc.HasSigned(party.UserID) {
				continue
			}
			for _, expected := range t.ExpectedSignatories(doc) {
				if expected.UserID == party.UserID {
					s.PendingSignatures++
				}
			}
		}
		out = append(out, s)
	}
	return out
}

// Financials reconciles the payment schedule against the deal value.
func Financials(t *Transaction) FinancialSummary {
	s := FinancialSummary{
		Currency:             t.CurrencyCode,
		TotalValue:           t.TotalValue,
		PaidAmount:           decimal.Zero,
		ScheduledOutstanding: decimal.Zero,
		OverdueAmount:        decimal.Zero,
		EscrowHeld:           decimal.Zero,
	}
	for _, p := range t.Payments {
		switch p.Status {
		case PaymentPaid:
			s.PaidAmount = s.PaidAmount.Add(p.Amount)
		case PaymentOverdue:
			s.OverdueAmount = s.OverdueAmount.Add(p.Amount)
			s.ScheduledOutstanding = s.ScheduledOutstanding.Add(p.Amount)
		case PaymentPending:
			s.ScheduledOutstanding = s.ScheduledOutstanding.Add(p.Amount)
		}
	}
	if t.Escrow != nil && t.Escrow.Status != EscrowReleased {
		s.EscrowHeld = t.Escrow.HeldAmount
	}
	s.PendingAmount = s.TotalValue.Sub(s.PaidAmount)
	s.UnscheduledAmount = s.PendingAmount.Sub(s.ScheduledOutstanding)
	s.Reconciled = s.UnscheduledAmount.IsZero()
	return s
}

// AssessRisk grades the transaction at now. High: a critical checklist item or critical key date
// is overdue, or the closing date passed on an open transaction. Medium: anything else is overdue,
// or critical work falls due within dueSoonDays. Otherwise low.
func AssessRisk(t *Transaction, now time.Time, dueSoonDays int) (RiskLevel, []string) {
	var high, medium []string
	soon := now.AddDate(0, 0, dueSoonDays)

	for _, item := range t.ChecklistItems {
		switch {
		case item.IsOverdue(now) && item.Priority == PriorityCritical:
			high = append(high, "critical checklist item overdue: "+item.Title)
		case item.IsOverdue(now):
			medium = append(medium, "checklist item overdue: "+item.Title)
		case item.Status != ChecklistCompleted && item.Priority == PriorityCritical && item.DueDate.Before(soon):
			medium = append(medium, "critical checklist item due soon: "+item.Title)
		}
	}
	for _, k := range t.KeyDates {
		status := k.ComputeStatus(now)
		switch {
		case status == KeyDateOverdue && k.Critical:
			high = append(high, "critical key date overdue: "+k.Name)
		case status == KeyDateOverdue:
			medium = append(medium, "key date overdue: "+k.Name)
		case status == KeyDateUpcoming && k.Critical && k.Date.Before(soon):
			medium = append(medium, "critical key date due soon: "+k.Name)
		}
	}
	if !t.Status.Terminal() && t.ClosingDate.Before(now) {
		high = append(high, "closing date has passed")
	}
	for _, p := range t.Payments {
		if p.EffectiveStatus(now) == PaymentOverdue {
			medium = append(medium, "payment overdue: "+p.PaymentID)
		}
	}
	for _, item := range t.PostClosingItems {
		if item.IsOverdue(now) {
			medium = append(medium, "post-closing item overdue: "+item.Title)
		}
	}

	switch {
	case len(high) > 0:
		return RiskHigh, append(high, medium...)
	case len(medium) > 0:
		return RiskMedium, medium
	}
	return RiskLow, []string{}
}
