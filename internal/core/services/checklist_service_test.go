package services_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/stretchr/testify/suite"
)

type ChecklistServiceTestSuite struct {
	trackerSuite
	txnID string
}

func TestChecklistServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChecklistServiceTestSuite))
}

func (s *ChecklistServiceTestSuite) SetupTest() {
	s.trackerSuite.SetupTest()
	s.txnID = s.openTransaction()
}

func (s *ChecklistServiceTestSuite) addItem(category, title, side string, deps ...string) domain.ClosingChecklistItem {
	res, err := s.svc.Checklist.AddItem(s.ctx, s.txnID, dto.AddChecklistItemRequest{
		Category:         category,
		Title:            title,
		Priority:         "high",
		ResponsibleParty: side,
		DueDate:          refNow.AddDate(0, 0, 7),
		Dependencies:     deps,
		Required:         true,
	}, buyerUser)
	s.Require().NoError(err)
	return res.Data
}

func (s *ChecklistServiceTestSuite) setStatus(itemID, status, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	return s.svc.Checklist.SetStatus(s.ctx, s.txnID, itemID, dto.SetChecklistStatusRequest{Status: status}, userID)
}

func (s *ChecklistServiceTestSuite) TestAddItem() {
	before := s.version(s.txnID)
	item := s.addItem("legal", "  Title search  ", "")

	s.Equal("Title search", item.Title)
	s.Equal(domain.ChecklistPending, item.Status)
	s.Empty(item.Dependencies)
	s.Equal(before+1, s.version(s.txnID))
}

func (s *ChecklistServiceTestSuite) TestAddItem_Rejections() {
	first := s.addItem("legal", "Draft SPA", "")

	testCases := []struct {
		name    string
		req     dto.AddChecklistItemRequest
		userID  string
		wantErr error
	}{
		{
			name:    "unknown dependency",
			req:     dto.AddChecklistItemRequest{Category: "legal", Title: "Sign", Priority: "low", DueDate: refNow, Dependencies: []string{"nope"}},
			userID:  buyerUser,
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "duplicate dependency",
			req:     dto.AddChecklistItemRequest{Category: "legal", Title: "Sign", Priority: "low", DueDate: refNow, Dependencies: []string{first.ItemID, first.ItemID}},
			userID:  buyerUser,
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown category",
			req:     dto.AddChecklistItemRequest{Category: "marketing", Title: "Sign", Priority: "low", DueDate: refNow},
			userID:  buyerUser,
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "missing due date",
			req:     dto.AddChecklistItemRequest{Category: "legal", Title: "Sign", Priority: "low"},
			userID:  buyerUser,
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "outsider",
			req:     dto.AddChecklistItemRequest{Category: "legal", Title: "Sign", Priority: "low", DueDate: refNow},
			userID:  outsider,
			wantErr: apperrors.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			before := s.version(s.txnID)
			_, err := s.svc.Checklist.AddItem(s.ctx, s.txnID, tc.req, tc.userID)
			s.ErrorIs(err, tc.wantErr)
			s.Equal(before, s.version(s.txnID))
		})
	}
}

func (s *ChecklistServiceTestSuite) TestAddItem_PendingTransaction() {
	created, err := s.svc.Transaction.CreateTransaction(s.ctx, createRequest(), buyerUser)
	s.Require().NoError(err)

	_, err = s.svc.Checklist.AddItem(s.ctx, created.Data.TransactionID, dto.AddChecklistItemRequest{
		Category: "legal", Title: "Too early", Priority: "low", DueDate: refNow,
	}, buyerUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ChecklistServiceTestSuite) TestSetStatus_DependencyGate() {
	diligence := s.addItem("financial", "Financial diligence", "")
	signing := s.addItem("closing", "Sign closing documents", "", diligence.ItemID)

	_, err := s.setStatus(signing.ItemID, "completed", buyerUser)
	var unmet *apperrors.DependencyUnmetError
	s.Require().True(errors.As(err, &unmet))
	s.Equal(signing.ItemID, unmet.ItemID)
	s.Equal([]string{diligence.ItemID}, unmet.Unmet)
	s.ErrorIs(err, apperrors.ErrDependencyUnmet)

	ready, err := s.svc.Checklist.Readiness(s.ctx, s.txnID, sellerUser)
	s.Require().NoError(err)
	s.Require().Len(ready, 1)
	s.Equal(diligence.ItemID, ready[0].ItemID)

	done, err := s.setStatus(diligence.ItemID, "completed", sellerUser)
	s.Require().NoError(err)
	s.Require().NotNil(done.Data.CompletedDate)
	s.Equal(refNow, *done.Data.CompletedDate)

	_, err = s.setStatus(signing.ItemID, "completed", buyerUser)
	s.NoError(err)

	reopened, err := s.setStatus(diligence.ItemID, "in_progress", buyerUser)
	s.Require().NoError(err)
	s.Nil(reopened.Data.CompletedDate)
}

func (s *ChecklistServiceTestSuite) TestSetStatus_Authorization() {
	sellerItem := s.addItem("legal", "Disclosure letter", "seller")

	_, err := s.setStatus(sellerItem.ItemID, "in_progress", buyerUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.setStatus(sellerItem.ItemID, "in_progress", advisorUser)
	s.NoError(err)

	_, err = s.setStatus("missing", "in_progress", sellerUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ChecklistServiceTestSuite) TestSetStatus_RepeatDoesNotWrite() {
	item := s.addItem("legal", "Board resolution", "")
	_, err := s.setStatus(item.ItemID, "in_progress", buyerUser)
	s.Require().NoError(err)
	v := s.version(s.txnID)

	res, err := s.setStatus(item.ItemID, "in_progress", buyerUser)
	s.Require().NoError(err)
	s.Equal(v, res.Version)
	s.Equal(v, s.version(s.txnID))
}

func (s *ChecklistServiceTestSuite) TestUpdateDependencies_RejectsCycle() {
	a := s.addItem("legal", "A", "")
	b := s.addItem("legal", "B", "", a.ItemID)

	_, err := s.svc.Checklist.UpdateDependencies(s.ctx, s.txnID, a.ItemID, dto.UpdateDependenciesRequest{Dependencies: []string{b.ItemID}}, buyerUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	res, err := s.svc.Checklist.UpdateDependencies(s.ctx, s.txnID, b.ItemID, dto.UpdateDependenciesRequest{}, buyerUser)
	s.Require().NoError(err)
	s.Empty(res.Data.Dependencies)
}

func (s *ChecklistServiceTestSuite) TestListByCategoryAndProgress() {
	legal := s.addItem("legal", "Title search", "")
	s.addItem("legal", "SPA", "")
	s.addItem("financial", "Funds flow", "")

	_, err := s.setStatus(legal.ItemID, "completed", buyerUser)
	s.Require().NoError(err)

	list, err := s.svc.Checklist.ListByCategory(s.ctx, s.txnID, sellerUser)
	s.Require().NoError(err)
	s.Len(list.Categories[domain.CategoryLegal], 2)
	s.Len(list.Categories[domain.CategoryFinancial], 1)
	s.Equal(s.version(s.txnID), list.Version)

	progress, err := s.svc.Checklist.Progress(s.ctx, s.txnID, sellerUser)
	s.Require().NoError(err)
	s.Equal(1, progress.Overall.Completed)
	s.Equal(3, progress.Overall.Total)
	s.Equal(33, progress.Overall.Rounded)
	s.Equal(50, progress.ByGroup[domain.CategoryLegal].Rounded)
	s.Equal(0, progress.ByGroup[domain.CategoryFinancial].Rounded)
}

func (s *ChecklistServiceTestSuite) TestComments() {
	item := s.addItem("legal", "Escrow agreement", "")

	_, err := s.svc.Checklist.AddComment(s.ctx, s.txnID, item.ItemID, dto.AddCommentRequest{Text: "   "}, sellerUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	commented, err := s.svc.Checklist.AddComment(s.ctx, s.txnID, item.ItemID, dto.AddCommentRequest{Text: "Waiting on bank"}, sellerUser)
	s.Require().NoError(err)
	s.Require().Len(commented.Data.Comments, 1)
	commentID := commented.Data.Comments[0].CommentID

	resolved, err := s.svc.Checklist.ResolveComment(s.ctx, s.txnID, item.ItemID, commentID, dto.VersionedRequest{}, buyerUser)
	s.Require().NoError(err)
	s.True(resolved.Data.Comments[0].Resolved)
	s.Equal(buyerUser, resolved.Data.Comments[0].ResolvedBy)

	again, err := s.svc.Checklist.ResolveComment(s.ctx, s.txnID, item.ItemID, commentID, dto.VersionedRequest{}, sellerUser)
	s.Require().NoError(err)
	s.Equal(resolved.Version, again.Version)
	s.Equal(buyerUser, again.Data.Comments[0].ResolvedBy)

	_, err = s.svc.Checklist.ResolveComment(s.ctx, s.txnID, item.ItemID, "missing", dto.VersionedRequest{}, buyerUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
