package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		percent   float64
		display   string
	}{
		{name: "no items", completed: 0, total: 0, percent: 0, display: "0%"},
		{name: "quarter", completed: 2, total: 8, percent: 25, display: "25%"},
		{name: "rounds half up", completed: 3, total: 8, percent: 37.5, display: "38%"},
		{name: "thirds", completed: 1, total: 3, percent: 100.0 / 3, display: "33%"},
		{name: "all done", completed: 4, total: 4, percent: 100, display: "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.NewProgress(tt.completed, tt.total)
			assert.InDelta(t, tt.percent, p.Percent, 1e-9)
			assert.Equal(t, tt.display, p.Display())
			assert.GreaterOrEqual(t, p.Percent, 0.0)
			assert.LessOrEqual(t, p.Percent, 100.0)
		})
	}
}

// Eight items with two completed; completing a third and then a blocked dependant.
func TestChecklist_ProgressAndDependencyGate(t *testing.T) {
	txn := newTestTransaction()
	for i, id := range []string{"1", "2", "3", "4", "5", "6"} {
		cat := domain.CategoryLegal
		if i%2 == 1 {
			cat = domain.CategoryFinancial
		}
		_, err := txn.AddChecklistItem(checklistItem(id, cat))
		require.NoError(t, err)
	}
	_, err := txn.AddChecklistItem(checklistItem("7", domain.CategoryClosing, "2"))
	require.NoError(t, err)
	_, err = txn.AddChecklistItem(checklistItem("8", domain.CategoryClosing))
	require.NoError(t, err)

	_, err = txn.SetChecklistStatus("1", domain.ChecklistCompleted, refNow)
	require.NoError(t, err)
	_, err = txn.SetChecklistStatus("4", domain.ChecklistCompleted, refNow)
	require.NoError(t, err)
	_, err = txn.SetChecklistStatus("2", domain.ChecklistInProgress, refNow)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, txn.ChecklistProgress().Overall.Percent, 1e-9)

	item, err := txn.SetChecklistStatus("3", domain.ChecklistCompleted, refNow)
	require.NoError(t, err)
	require.NotNil(t, item.CompletedDate)
	assert.Equal(t, refNow, *item.CompletedDate)

	progress := txn.ChecklistProgress()
	assert.InDelta(t, 37.5, progress.Overall.Percent, 1e-9)
	assert.Equal(t, "38%", progress.Overall.Display())
	assert.Equal(t, 3, progress.Overall.Completed)

	_, err = txn.SetChecklistStatus("7", domain.ChecklistCompleted, refNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDependencyUnmet))
	var depErr *apperrors.DependencyUnmetError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, []string{"2"}, depErr.Unmet)

	seven, err := txn.ChecklistItem("7")
	require.NoError(t, err)
	assert.Equal(t, domain.ChecklistPending, seven.Status)
	assert.Nil(t, seven.CompletedDate)
}

func TestChecklist_LeavingCompletedClearsDate(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddChecklistItem(checklistItem("a", domain.CategoryLegal))
	require.NoError(t, err)

	item, err := txn.SetChecklistStatus("a", domain.ChecklistCompleted, refNow)
	require.NoError(t, err)
	require.NotNil(t, item.CompletedDate)

	item, err = txn.SetChecklistStatus("a", domain.ChecklistBlocked, refNow)
	require.NoError(t, err)
	assert.Nil(t, item.CompletedDate)
	assert.Equal(t, domain.ChecklistBlocked, item.Status)
}

func TestChecklist_RejectsInvalidDependencies(t *testing.T) {
	tests := []struct {
		name  string
		setup []domain.ClosingChecklistItem
		add   domain.ClosingChecklistItem
	}{
		{
			name: "unknown dependency",
			add:  checklistItem("a", domain.CategoryLegal, "missing"),
		},
		{
			name: "self dependency",
			add:  checklistItem("a", domain.CategoryLegal, "a"),
		},
		{
			name:  "duplicate dependency",
			setup: []domain.ClosingChecklistItem{checklistItem("a", domain.CategoryLegal)},
			add:   checklistItem("b", domain.CategoryLegal, "a", "a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := newTestTransaction()
			for _, item := range tt.setup {
				_, err := txn.AddChecklistItem(item)
				require.NoError(t, err)
			}
			_, err := txn.AddChecklistItem(tt.add)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestChecklist_UpdateDependenciesRejectsCycle(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddChecklistItem(checklistItem("a", domain.CategoryLegal))
	require.NoError(t, err)
	_, err = txn.AddChecklistItem(checklistItem("b", domain.CategoryLegal, "a"))
	require.NoError(t, err)

	_, err = txn.SetChecklistDependencies("a", []string{"b"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	a, err := txn.ChecklistItem("a")
	require.NoError(t, err)
	assert.Empty(t, a.Dependencies)
}

func TestChecklist_ByCategoryKeepsInsertionOrder(t *testing.T) {
	txn := newTestTransaction()
	for _, id := range []string{"z", "b", "m"} {
		_, err := txn.AddChecklistItem(checklistItem(id, domain.CategoryRegulatory))
		require.NoError(t, err)
	}
	_, err := txn.AddChecklistItem(checklistItem("x", domain.CategoryLegal))
	require.NoError(t, err)

	grouped := txn.ChecklistByCategory()
	require.Len(t, grouped[domain.CategoryRegulatory], 3)
	assert.Equal(t, "z", grouped[domain.CategoryRegulatory][0].ItemID)
	assert.Equal(t, "b", grouped[domain.CategoryRegulatory][1].ItemID)
	assert.Equal(t, "m", grouped[domain.CategoryRegulatory][2].ItemID)
	assert.Len(t, grouped[domain.CategoryLegal], 1)
}

func TestChecklist_Readiness(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddChecklistItem(checklistItem("a", domain.CategoryLegal))
	require.NoError(t, err)
	_, err = txn.AddChecklistItem(checklistItem("b", domain.CategoryLegal, "a"))
	require.NoError(t, err)
	_, err = txn.AddChecklistItem(checklistItem("c", domain.CategoryLegal))
	require.NoError(t, err)

	ids := func(items []domain.ClosingChecklistItem) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.ItemID)
		}
		return out
	}
	assert.Equal(t, []string{"a", "c"}, ids(txn.ChecklistReadiness()))

	_, err = txn.SetChecklistStatus("a", domain.ChecklistCompleted, refNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(txn.ChecklistReadiness()))
}

func TestChecklist_ChildEntitiesNeedActiveTransaction(t *testing.T) {
	txn := newTestTransaction()
	txn.Status = domain.TransactionPending
	_, err := txn.AddChecklistItem(checklistItem("a", domain.CategoryLegal))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestChecklist_CommentsResolveIndependently(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddChecklistItem(checklistItem("a", domain.CategoryLegal))
	require.NoError(t, err)

	c, err := domain.NewComment("c1", "buyer-user", "  please attach the NDA ", refNow)
	require.NoError(t, err)
	assert.Equal(t, "please attach the NDA", c.Text)
	_, err = txn.AddChecklistComment("a", c)
	require.NoError(t, err)

	item, err := txn.ResolveChecklistComment("a", "c1", "seller-user", refNow)
	require.NoError(t, err)
	assert.True(t, item.Comments[0].Resolved)
	assert.Equal(t, "seller-user", item.Comments[0].ResolvedBy)
	assert.Equal(t, domain.ChecklistPending, item.Status)

	_, err = txn.ResolveChecklistComment("a", "nope", "seller-user", refNow)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = domain.NewComment("c2", "buyer-user", "   ", refNow)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
