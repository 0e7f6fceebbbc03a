package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, txn *domain.Transaction)
		want  domain.RiskLevel
	}{
		{
			name:  "nothing overdue",
			setup: func(t *testing.T, txn *domain.Transaction) {},
			want:  domain.RiskLow,
		},
		{
			name: "critical checklist item overdue",
			setup: func(t *testing.T, txn *domain.Transaction) {
				item := checklistItem("a", domain.CategoryLegal)
				item.Priority = domain.PriorityCritical
				item.DueDate = refNow.AddDate(0, 0, -1)
				_, err := txn.AddChecklistItem(item)
				require.NoError(t, err)
			},
			want: domain.RiskHigh,
		},
		{
			name: "ordinary checklist item overdue",
			setup: func(t *testing.T, txn *domain.Transaction) {
				item := checklistItem("a", domain.CategoryLegal)
				item.DueDate = refNow.AddDate(0, 0, -1)
				_, err := txn.AddChecklistItem(item)
				require.NoError(t, err)
			},
			want: domain.RiskMedium,
		},
		{
			name: "critical key date overdue",
			setup: func(t *testing.T, txn *domain.Transaction) {
				_, err := txn.AddKeyDate(domain.KeyDate{KeyDateID: "k", Name: "Regulator sign-off", Date: refNow.AddDate(0, 0, -2), Type: domain.KeyDateDeadline, Critical: true})
				require.NoError(t, err)
			},
			want: domain.RiskHigh,
		},
		{
			name: "critical key date due soon",
			setup: func(t *testing.T, txn *domain.Transaction) {
				_, err := txn.AddKeyDate(domain.KeyDate{KeyDateID: "k", Name: "Regulator sign-off", Date: refNow.AddDate(0, 0, 2), Type: domain.KeyDateDeadline, Critical: true})
				require.NoError(t, err)
			},
			want: domain.RiskMedium,
		},
		{
			name: "pending payment past due",
			setup: func(t *testing.T, txn *domain.Transaction) {
				_, err := txn.SchedulePayment(newPayment("p", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
				require.NoError(t, err)
			},
			want: domain.RiskMedium,
		},
		{
			name: "closing date passed",
			setup: func(t *testing.T, txn *domain.Transaction) {
				txn.ClosingDate = refNow.AddDate(0, 0, -1)
			},
			want: domain.RiskHigh,
		},
		{
			name: "completed overdue item is not a risk",
			setup: func(t *testing.T, txn *domain.Transaction) {
				item := checklistItem("a", domain.CategoryLegal)
				item.Priority = domain.PriorityCritical
				item.DueDate = refNow.AddDate(0, 0, -1)
				_, err := txn.AddChecklistItem(item)
				require.NoError(t, err)
				_, err = txn.SetChecklistStatus("a", domain.ChecklistCompleted, refNow)
				require.NoError(t, err)
			},
			want: domain.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := newTestTransaction()
			tt.setup(t, txn)
			got, factors := domain.AssessRisk(txn, refNow, 7)
			assert.Equal(t, tt.want, got)
			if got == domain.RiskLow {
				assert.Empty(t, factors)
			} else {
				assert.NotEmpty(t, factors)
			}
		})
	}
}

func TestFinancials_ReconcilesSchedule(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.SchedulePayment(newPayment("p1", refNow.AddDate(0, 0, -20)))
	require.NoError(t, err)
	_, _, err = txn.ProcessPayment("p1", settlement, refNow)
	require.NoError(t, err)
	_, err = txn.SchedulePayment(newPayment("p2", refNow.AddDate(0, 0, 5)))
	require.NoError(t, err)
	_, err = txn.SchedulePayment(newPayment("p3", refNow.AddDate(0, 0, 6)))
	require.NoError(t, err)
	_, err = txn.CancelPayment("p3")
	require.NoError(t, err)

	s := domain.Financials(txn)
	assert.True(t, decimal.NewFromInt(100000).Equal(s.PaidAmount))
	assert.True(t, decimal.NewFromInt(400000).Equal(s.PendingAmount))
	assert.True(t, decimal.NewFromInt(100000).Equal(s.ScheduledOutstanding))
	assert.True(t, decimal.NewFromInt(300000).Equal(s.UnscheduledAmount))
	assert.False(t, s.Reconciled)
}

func TestBuildDashboard(t *testing.T) {
	txn := newTestTransaction()
	for _, id := range []string{"1", "2", "3", "4"} {
		item := checklistItem(id, domain.CategoryLegal)
		item.AssignedTo = "seller-user"
		_, err := txn.AddChecklistItem(item)
		require.NoError(t, err)
	}
	_, err := txn.SetChecklistStatus("1", domain.ChecklistCompleted, refNow)
	require.NoError(t, err)
	_, err = txn.AddKeyDate(domain.KeyDate{KeyDateID: "soon", Name: "Signing", Date: refNow.AddDate(0, 0, 3), Type: domain.KeyDateMilestone})
	require.NoError(t, err)
	_, err = txn.AddKeyDate(domain.KeyDate{KeyDateID: "far", Name: "Earnout review", Date: refNow.AddDate(0, 3, 0), Type: domain.KeyDateMilestone})
	require.NoError(t, err)
	_, err = txn.AddKeyDate(domain.KeyDate{KeyDateID: "missed", Name: "Data room closes", Date: refNow.AddDate(0, 0, -1), Type: domain.KeyDateDeadline})
	require.NoError(t, err)
	_, err = txn.AddDocument(newDocument("d1", "SPA", domain.SideBoth))
	require.NoError(t, err)
	approve(t, txn, "d1")

	activity := make([]domain.ActivityEntry, 0, 12)
	for i := 0; i < 12; i++ {
		activity = append(activity, domain.ActivityEntry{ActivityID: string(rune('a' + i)), OccurredAt: refNow.Add(time.Duration(i) * time.Minute)})
	}

	d := domain.BuildDashboard(*txn, activity, refNow, domain.DefaultDashboardOptions())

	assert.Equal(t, 25, d.Progress.OverallProgress.Rounded)
	assert.Equal(t, 25, d.Progress.ByCategory[domain.CategoryLegal].Rounded)
	assert.Equal(t, 100, d.Progress.Documents.Rounded)

	require.Len(t, d.UpcomingDeadlines, 2)
	assert.Equal(t, "missed", d.UpcomingDeadlines[0].KeyDateID)
	assert.Equal(t, domain.KeyDateOverdue, d.UpcomingDeadlines[0].Status)
	assert.Equal(t, "soon", d.UpcomingDeadlines[1].KeyDateID)
	assert.Equal(t, 3, d.UpcomingDeadlines[1].DaysRemaining)

	require.Len(t, d.RecentActivity, 10)
	assert.Equal(t, "l", d.RecentActivity[0].ActivityID)

	var seller, buyer domain.TeamMemberStatus
	for _, s := range d.TeamStatus {
		switch s.UserID {
		case "seller-user":
			seller = s
		case "buyer-user":
			buyer = s
		}
	}
	assert.Equal(t, 4, seller.AssignedItems)
	assert.Equal(t, 1, seller.CompletedItems)
	assert.Equal(t, 1, seller.PendingSignatures)
	assert.Equal(t, 1, buyer.PendingSignatures)

	assert.Equal(t, domain.RiskMedium, d.RiskLevel)
	assert.Equal(t, 20, d.Countdown.DaysToClosing)

	// the source aggregate keeps its stored statuses
	assert.Equal(t, domain.KeyDateUpcoming, txn.KeyDates[0].Status)
}
