package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/stretchr/testify/suite"
)

type TimelineServiceTestSuite struct {
	trackerSuite
	txnID string
}

func TestTimelineServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimelineServiceTestSuite))
}

func (s *TimelineServiceTestSuite) SetupTest() {
	s.trackerSuite.SetupTest()
	s.txnID = s.openTransaction()
}

func (s *TimelineServiceTestSuite) addKeyDate(name string, date time.Time, side string) domain.KeyDate {
	res, err := s.svc.Timeline.AddKeyDate(s.ctx, s.txnID, dto.AddKeyDateRequest{
		Name:             name,
		Date:             date,
		Type:             "deadline",
		ResponsibleParty: side,
	}, buyerUser)
	s.Require().NoError(err)
	return res.Data
}

func (s *TimelineServiceTestSuite) TestListKeyDates_OrderedWithDerivedStatus() {
	s.addKeyDate("Closing", refNow.AddDate(0, 0, 20), "")
	s.addKeyDate("Kickoff", refNow.AddDate(0, 0, -1), "")
	s.addKeyDate("Diligence cut-off", refNow.AddDate(0, 0, 5), "")

	res, err := s.svc.Timeline.ListKeyDates(s.ctx, s.txnID, sellerUser)
	s.Require().NoError(err)
	s.Require().Len(res.KeyDates, 3)
	s.Equal("Kickoff", res.KeyDates[0].Name)
	s.Equal(domain.KeyDateOverdue, res.KeyDates[0].Status)
	s.Equal("Diligence cut-off", res.KeyDates[1].Name)
	s.Equal(domain.KeyDateUpcoming, res.KeyDates[1].Status)
	s.Equal("Closing", res.KeyDates[2].Name)
	s.Equal(20, res.Countdown.DaysToClosing)
	s.Equal(domain.AlertNone, res.Countdown.Alert)
}

func (s *TimelineServiceTestSuite) TestAddKeyDate_Rejections() {
	_, err := s.svc.Timeline.AddKeyDate(s.ctx, s.txnID, dto.AddKeyDateRequest{Name: "x", Date: refNow, Type: "party"}, buyerUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Timeline.AddKeyDate(s.ctx, s.txnID, dto.AddKeyDateRequest{Name: " ", Date: refNow, Type: "milestone"}, buyerUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	created, err := s.svc.Transaction.CreateTransaction(s.ctx, createRequest(), buyerUser)
	s.Require().NoError(err)
	_, err = s.svc.Timeline.AddKeyDate(s.ctx, created.Data.TransactionID, dto.AddKeyDateRequest{Name: "x", Date: refNow, Type: "milestone"}, buyerUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TimelineServiceTestSuite) TestCompleteAndCancel() {
	k := s.addKeyDate("Financing commitment", refNow.AddDate(0, 0, 3), "buyer")

	_, err := s.svc.Timeline.CompleteKeyDate(s.ctx, s.txnID, k.KeyDateID, dto.VersionedRequest{}, sellerUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	done, err := s.svc.Timeline.CompleteKeyDate(s.ctx, s.txnID, k.KeyDateID, dto.VersionedRequest{}, buyerUser)
	s.Require().NoError(err)
	s.Equal(domain.KeyDateCompleted, done.Data.Status)

	again, err := s.svc.Timeline.CompleteKeyDate(s.ctx, s.txnID, k.KeyDateID, dto.VersionedRequest{}, buyerUser)
	s.Require().NoError(err)
	s.Equal(done.Version, again.Version)

	_, err = s.svc.Timeline.CancelKeyDate(s.ctx, s.txnID, k.KeyDateID, dto.VersionedRequest{}, buyerUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Timeline.CancelKeyDate(s.ctx, s.txnID, "missing", dto.VersionedRequest{}, buyerUser)
	s.ErrorIs(err, apperrors.ErrNotFound)

	// a finished key date stays finished after its date passes
	s.clock.Advance(10 * 24 * time.Hour)
	res, err := s.svc.Timeline.ListKeyDates(s.ctx, s.txnID, buyerUser)
	s.Require().NoError(err)
	s.Equal(domain.KeyDateCompleted, res.KeyDates[0].Status)
}

func (s *TimelineServiceTestSuite) TestClosingCountdown() {
	testCases := []struct {
		name      string
		advance   time.Duration
		wantDays  int
		wantAlert domain.CountdownAlert
		wantPast  bool
	}{
		{name: "far out", advance: 0, wantDays: 20, wantAlert: domain.AlertNone},
		{name: "inside the window", advance: 14 * 24 * time.Hour, wantDays: 6, wantAlert: domain.AlertApproaching},
		{name: "part of a day left", advance: 19*24*time.Hour + time.Hour, wantDays: 1, wantAlert: domain.AlertApproaching},
		{name: "passed", advance: 21 * 24 * time.Hour, wantDays: -1, wantAlert: domain.AlertPastDue, wantPast: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.clock.Set(refNow.Add(tc.advance))
			countdown, err := s.svc.Timeline.ClosingCountdown(s.ctx, s.txnID, advisorUser)
			s.Require().NoError(err)
			s.Equal(tc.wantDays, countdown.DaysToClosing)
			s.Equal(tc.wantAlert, countdown.Alert)
			s.Equal(tc.wantPast, countdown.PastDue)
		})
	}
}

func (s *TimelineServiceTestSuite) TestClosingCountdown_CancelledTransaction() {
	_, err := s.svc.Transaction.UpdateStatus(s.ctx, s.txnID, dto.UpdateTransactionStatusRequest{Status: "cancelled"}, sellerUser)
	s.Require().NoError(err)
	s.clock.Advance(30 * 24 * time.Hour)

	countdown, err := s.svc.Timeline.ClosingCountdown(s.ctx, s.txnID, buyerUser)
	s.Require().NoError(err)
	s.True(countdown.PastDue)
	s.Equal(domain.AlertNone, countdown.Alert)
}
