package services_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/closing_tracker/internal/adapters/database/memory"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/core/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	buyerUser   = "buyer-user"
	sellerUser  = "seller-user"
	advisorUser = "advisor-user"
	agentUser   = "agent-user"
	lenderUser  = "lender-user"
	outsider    = "outsider-user"
	adminUser   = "admin-user"
)

var refNow = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

// testClock is a settable clock shared by every service of a fixture.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequentialIDs produces readable ids in creation order.
type sequentialIDs struct {
	n atomic.Int64
}

func (s *sequentialIDs) Next() string {
	return fmt.Sprintf("id-%03d", s.n.Add(1))
}

// trackerSuite wires every service against the in-memory repository.
type trackerSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *testClock
	repo     *memory.TransactionRepository
	storage  portsrepo.DocumentStorage
	svc      *portssvc.ServiceContainer
	extraOps []services.ServiceOption
}

func (s *trackerSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &testClock{now: refNow}
	s.repo = memory.NewTransactionRepository()
	s.rebuild()
}

func (s *trackerSuite) rebuild() {
	ids := &sequentialIDs{}
	opts := append([]services.ServiceOption{
		services.WithClock(s.clock.Now),
		services.WithIDGenerator(ids.Next),
	}, s.extraOps...)
	s.svc = services.NewServiceContainer(nil, portsrepo.RepositoryProvider{
		TransactionRepo: s.repo,
		DocumentStorage: s.storage,
	}, opts...)
}

func (s *trackerSuite) adminCtx() context.Context {
	return middleware.WithUser(s.ctx, adminUser, true)
}

func createRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		OfferID:         "offer-1",
		ListingID:       "listing-1",
		BuyerID:         buyerUser,
		SellerID:        sellerUser,
		TransactionType: "asset_purchase",
		TotalValue:      decimal.NewFromInt(500000),
		CurrencyCode:    "eur",
		ClosingDate:     refNow.AddDate(0, 0, 20),
		Parties: []dto.PartyRequest{
			{UserID: buyerUser, Name: "Bea Buyer", Role: "buyer"},
			{UserID: sellerUser, Name: "Sam Seller", Role: "seller"},
			{UserID: advisorUser, Name: "Ada Advisor", Role: "buyer_advisor"},
			{UserID: agentUser, Name: "Eli Escrow", Role: "escrow_agent"},
			{UserID: lenderUser, Name: "Lou Lender", Role: "lender"},
		},
	}
}

// openTransaction creates a transaction as the buyer and moves it to in_progress.
func (s *trackerSuite) openTransaction() string {
	created, err := s.svc.Transaction.CreateTransaction(s.ctx, createRequest(), buyerUser)
	s.Require().NoError(err)
	_, err = s.svc.Transaction.UpdateStatus(s.ctx, created.Data.TransactionID, dto.UpdateTransactionStatusRequest{Status: "in_progress"}, buyerUser)
	s.Require().NoError(err)
	return created.Data.TransactionID
}

func (s *trackerSuite) version(transactionID string) int64 {
	txn, err := s.repo.FindTransactionByID(s.ctx, transactionID)
	s.Require().NoError(err)
	return txn.Version
}

func expect(v int64) dto.VersionedRequest {
	return dto.VersionedRequest{ExpectedVersion: &v}
}
