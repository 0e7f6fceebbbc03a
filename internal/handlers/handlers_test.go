package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/handlers"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/SscSPs/closing_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "handler-test-secret"
	testUserID    = "buyer-1"
	txnID         = "txn-1"
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          *config.Config
	transactions *MockTransactionService
	checklist    *MockChecklistService
	documents    *MockDocumentService
	payments     *MockPaymentService
	timeline     *MockTimelineService
	postClosing  *MockPostClosingService
	dashboard    *MockDashboardService
	token        string
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.transactions = new(MockTransactionService)
	s.checklist = new(MockChecklistService)
	s.documents = new(MockDocumentService)
	s.payments = new(MockPaymentService)
	s.timeline = new(MockTimelineService)
	s.postClosing = new(MockPostClosingService)
	s.dashboard = new(MockDashboardService)

	s.cfg = &config.Config{
		IsProduction:         true,
		JWTSecret:            testJWTSecret,
		DocumentBaseURL:      "/files",
		DocumentMaxSizeBytes: 1 << 20,
	}
	s.buildRouter()
	s.token = s.signToken(testUserID)
}

func (s *HandlerTestSuite) buildRouter() {
	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slogDiscard()))
	err := handlers.RegisterRoutes(s.router, s.cfg, &portssvc.ServiceContainer{
		Transaction: s.transactions,
		Checklist:   s.checklist,
		Document:    s.documents,
		Payment:     s.payments,
		Timeline:    s.timeline,
		PostClosing: s.postClosing,
		Dashboard:   s.dashboard,
	}, handlers.RouterDeps{})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.transactions.AssertExpectations(s.T())
	s.checklist.AssertExpectations(s.T())
	s.documents.AssertExpectations(s.T())
	s.payments.AssertExpectations(s.T())
	s.timeline.AssertExpectations(s.T())
	s.postClosing.AssertExpectations(s.T())
	s.dashboard.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) signToken(userID string) string {
	claims := middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	return signed
}

func (s *HandlerTestSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *HandlerTestSuite) decode(rr *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func version(v int64) *int64 { return &v }

func slogDiscard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func path(suffix string) string { return "/api/v1/transactions/" + txnID + suffix }

func (s *HandlerTestSuite) TestGetTransaction() {
	txn := domain.Transaction{TransactionID: txnID, OfferID: "offer-1", Status: domain.TransactionInProgress, Version: 3}
	s.transactions.On("GetTransaction", mock.Anything, txnID, testUserID).
		Return(&dto.Versioned[domain.Transaction]{Data: txn, Version: 3}, nil).Once()

	rr := s.do(http.MethodGet, path(""), nil, nil)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal(`"3"`, rr.Header().Get("ETag"))
	s.Equal(txnID, s.decode(rr)["transactionID"])
}

func (s *HandlerTestSuite) TestRequiresBearerToken() {
	req := httptest.NewRequest(http.MethodGet, path(""), nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	s.Equal(http.StatusUnauthorized, rr.Code)

	s.token = "not-a-jwt"
	rr = s.do(http.MethodGet, path(""), nil, nil)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *HandlerTestSuite) TestServiceErrorsMapToStatus() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.NewNotFoundError("transaction txn-1 not found"), http.StatusNotFound},
		{"validation", fmt.Errorf("%w: bad status", apperrors.ErrValidation), http.StatusBadRequest},
		{"forbidden", fmt.Errorf("%w: not yours", apperrors.ErrForbidden), http.StatusForbidden},
		{"conflict", apperrors.NewConflictError("transaction changed"), http.StatusConflict},
		{"duplicate", fmt.Errorf("%w: already approved", apperrors.ErrDuplicate), http.StatusConflict},
		{"transient", fmt.Errorf("%w: db down", apperrors.ErrTransient), http.StatusServiceUnavailable},
		{"upload too large", fmt.Errorf("%w: file is 90 bytes, limit is 64", apperrors.ErrUpload), http.StatusRequestEntityTooLarge},
		{"unsupported media type", fmt.Errorf("%w: application/zip", apperrors.ErrUnsupportedContentType), http.StatusUnsupportedMediaType},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.dashboard.On("BuildDashboard", mock.Anything, txnID, testUserID).Return(nil, tt.err).Once()

			rr := s.do(http.MethodGet, path("/dashboard"), nil, nil)

			s.Equal(tt.wantStatus, rr.Code)
			s.NotEmpty(s.decode(rr)["error"])
		})
	}
}

func (s *HandlerTestSuite) TestChecklistStatusUsesIfMatch() {
	want := dto.SetChecklistStatusRequest{
		VersionedRequest: dto.VersionedRequest{ExpectedVersion: version(2)},
		Status:           "completed",
	}
	item := domain.ClosingChecklistItem{ItemID: "item-3", Title: "Board consent", Status: domain.ChecklistCompleted}
	s.checklist.On("SetStatus", mock.Anything, txnID, "item-3", want, testUserID).
		Return(&dto.Versioned[domain.ClosingChecklistItem]{Data: item, Version: 3}, nil).Once()

	rr := s.do(http.MethodPatch, path("/checklist/item-3"), gin.H{"status": "completed"}, map[string]string{"If-Match": `"2"`})

	s.Equal(http.StatusOK, rr.Code)
	s.Equal(`"3"`, rr.Header().Get("ETag"))
	s.Equal("completed", s.decode(rr)["status"])
}

func (s *HandlerTestSuite) TestBodyVersionWinsOverIfMatch() {
	want := dto.SetChecklistStatusRequest{
		VersionedRequest: dto.VersionedRequest{ExpectedVersion: version(5)},
		Status:           "in_progress",
	}
	s.checklist.On("SetStatus", mock.Anything, txnID, "item-1", want, testUserID).
		Return(&dto.Versioned[domain.ClosingChecklistItem]{Data: domain.ClosingChecklistItem{ItemID: "item-1"}, Version: 6}, nil).Once()

	rr := s.do(http.MethodPatch, path("/checklist/item-1"), gin.H{"status": "in_progress", "version": 5}, map[string]string{"If-Match": `"2"`})

	s.Equal(http.StatusOK, rr.Code)
}

func (s *HandlerTestSuite) TestMalformedRequestsNeverReachService() {
	tests := []struct {
		name    string
		body    any
		headers map[string]string
	}{
		{"unknown status", gin.H{"status": "done"}, nil},
		{"missing status", gin.H{}, nil},
		{"bad If-Match", gin.H{"status": "completed"}, map[string]string{"If-Match": "abc"}},
		{"zero If-Match", gin.H{"status": "completed"}, map[string]string{"If-Match": `"0"`}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rr := s.do(http.MethodPatch, path("/checklist/item-1"), tt.body, tt.headers)
			s.Equal(http.StatusBadRequest, rr.Code)
		})
	}
	s.checklist.AssertNotCalled(s.T(), "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestDependencyUnmetListsBlockers() {
	unmet := &apperrors.DependencyUnmetError{ItemID: "item-7", Unmet: []string{"item-2"}}
	s.checklist.On("SetStatus", mock.Anything, txnID, "item-7", mock.Anything, testUserID).
		Return(nil, fmt.Errorf("set status: %w", unmet)).Once()

	rr := s.do(http.MethodPatch, path("/checklist/item-7"), gin.H{"status": "completed"}, nil)

	s.Equal(http.StatusUnprocessableEntity, rr.Code)
	body := s.decode(rr)
	s.Equal("item-7", body["itemID"])
	s.Equal([]any{"item-2"}, body["unmetDependencies"])
}

func (s *HandlerTestSuite) TestResolveCommentWithoutBody() {
	s.checklist.On("ResolveComment", mock.Anything, txnID, "item-1", "c-1", dto.VersionedRequest{ExpectedVersion: version(4)}, testUserID).
		Return(&dto.Versioned[domain.ClosingChecklistItem]{Data: domain.ClosingChecklistItem{ItemID: "item-1"}, Version: 5}, nil).Once()

	rr := s.do(http.MethodPost, path("/checklist/item-1/comments/c-1/resolve"), nil, map[string]string{"If-Match": `W/"4"`})

	s.Equal(http.StatusOK, rr.Code)
	s.Equal(`"5"`, rr.Header().Get("ETag"))
}

func (s *HandlerTestSuite) TestProcessPayment() {
	want := dto.ProcessPaymentRequest{
		ConfirmationNumber: "WIRE-001",
		Method:             "wire_transfer",
		Reference:          "INV-9",
	}
	paid := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	payment := domain.TransactionPayment{
		PaymentID:          "pay-1",
		Amount:             decimal.NewFromInt(100000),
		Currency:           "EUR",
		Status:             domain.PaymentPaid,
		PaidDate:           &paid,
		ConfirmationNumber: "WIRE-001",
	}
	s.payments.On("ProcessPayment", mock.Anything, txnID, "pay-1", want, testUserID).
		Return(&dto.Versioned[domain.TransactionPayment]{Data: payment, Version: 8}, nil).Once()

	rr := s.do(http.MethodPatch, path("/payments/pay-1"), gin.H{
		"confirmationNumber": "WIRE-001",
		"method":             "wire_transfer",
		"reference":          "INV-9",
	}, nil)

	s.Equal(http.StatusOK, rr.Code)
	body := s.decode(rr)
	s.Equal("paid", body["status"])
	s.Equal("100000", body["amount"])
}

func (s *HandlerTestSuite) TestProcessPaymentRejectsUnknownMethod() {
	rr := s.do(http.MethodPatch, path("/payments/pay-1"), gin.H{"confirmationNumber": "X", "method": "cash"}, nil)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerTestSuite) TestUploadDocument() {
	content := []byte("%PDF-1.7 share purchase agreement")
	s.documents.On("Upload", mock.Anything, txnID,
		mock.MatchedBy(func(req dto.UploadDocumentRequest) bool {
			return req.Name == "Share Purchase Agreement" &&
				req.Type == "legal" &&
				req.RequiredBy == "both" &&
				req.FileName == "spa.pdf" &&
				req.ContentType == "application/pdf" &&
				req.Size == int64(len(content)) &&
				req.DueDate != nil && req.DueDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
				req.ExpectedVersion != nil && *req.ExpectedVersion == 7
		}),
		mock.Anything, testUserID).
		Run(func(args mock.Arguments) {
			got, err := io.ReadAll(args.Get(3).(io.Reader))
			s.Require().NoError(err)
			s.Equal(content, got)
		}).
		Return(&dto.Versioned[domain.TransactionDocument]{
			Data:    domain.TransactionDocument{DocumentID: "doc-1", Name: "Share Purchase Agreement", Status: domain.DocumentDraft, Version: 1, IsLatest: true},
			Version: 8,
		}, nil).Once()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	s.Require().NoError(w.WriteField("name", "Share Purchase Agreement"))
	s.Require().NoError(w.WriteField("type", "legal"))
	s.Require().NoError(w.WriteField("requiredBy", "both"))
	s.Require().NoError(w.WriteField("dueDate", "2024-03-01"))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="spa.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, path("/documents"), &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("If-Match", `"7"`)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	s.Equal(http.StatusCreated, rr.Code, rr.Body.String())
	s.Equal(`"8"`, rr.Header().Get("ETag"))
	s.Equal(true, s.decode(rr)["isLatest"])
}

func (s *HandlerTestSuite) TestUploadWithoutFile() {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	s.Require().NoError(w.WriteField("name", "Disclosure letter"))
	s.Require().NoError(w.WriteField("type", "legal"))
	s.Require().NoError(w.WriteField("requiredBy", "seller"))
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, path("/documents"), &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerTestSuite) TestUploadRejectedByPolicy() {
	s.documents.On("Upload", mock.Anything, txnID, mock.Anything, mock.Anything, testUserID).
		Return(nil, fmt.Errorf("%w: application/zip", apperrors.ErrUnsupportedContentType)).Once()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	s.Require().NoError(w.WriteField("name", "Data room"))
	s.Require().NoError(w.WriteField("type", "operational"))
	s.Require().NoError(w.WriteField("requiredBy", "buyer"))
	part, err := w.CreateFormFile("file", "room.zip")
	s.Require().NoError(err)
	_, err = part.Write([]byte("PK"))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, path("/documents"), &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	s.Equal(http.StatusUnsupportedMediaType, rr.Code)
	s.Contains(s.decode(rr)["error"], "not accepted")
}

func (s *HandlerTestSuite) TestDownloadRedirects() {
	s.documents.On("GetDocument", mock.Anything, txnID, "doc-1", testUserID).
		Return(&domain.TransactionDocument{DocumentID: "doc-1", DownloadURL: "/files/txn-1/doc-1/spa.pdf"}, nil).Once()

	rr := s.do(http.MethodGet, path("/documents/doc-1/download"), nil, nil)

	s.Equal(http.StatusFound, rr.Code)
	s.Equal("/files/txn-1/doc-1/spa.pdf", rr.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestListVersionsResolvesLineage() {
	s.documents.On("GetDocument", mock.Anything, txnID, "doc-2", testUserID).
		Return(&domain.TransactionDocument{DocumentID: "doc-2", LineageID: "doc-1"}, nil).Once()
	s.documents.On("ListVersions", mock.Anything, txnID, "doc-1", testUserID).
		Return([]domain.TransactionDocument{{DocumentID: "doc-1", Version: 1}, {DocumentID: "doc-2", Version: 2, IsLatest: true}}, nil).Once()

	rr := s.do(http.MethodGet, path("/documents/doc-2/versions"), nil, nil)

	s.Equal(http.StatusOK, rr.Code)
	var versions []domain.TransactionDocument
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &versions))
	s.Len(versions, 2)
	s.True(versions[1].IsLatest)
}

func (s *HandlerTestSuite) TestSignatureCarriesClientIP() {
	s.documents.On("AddSignature", mock.Anything, txnID, "doc-1",
		mock.MatchedBy(func(req dto.AddSignatureRequest) bool {
			return req.Method == "electronic" && req.IPAddress != ""
		}), testUserID).
		Return(&dto.Versioned[domain.TransactionDocument]{Data: domain.TransactionDocument{DocumentID: "doc-1"}, Version: 4}, nil).Once()

	rr := s.do(http.MethodPost, path("/documents/doc-1/signatures"), gin.H{"method": "electronic"}, nil)

	s.Equal(http.StatusCreated, rr.Code)
}

func (s *HandlerTestSuite) TestPostClosingStatus() {
	want := dto.SetPostClosingStatusRequest{Status: "completed"}
	s.postClosing.On("SetStatus", mock.Anything, txnID, "pc-1", want, testUserID).
		Return(&dto.Versioned[domain.PostClosingItem]{Data: domain.PostClosingItem{ItemID: "pc-1", Status: domain.PostClosingCompleted}, Version: 11}, nil).Once()

	rr := s.do(http.MethodPatch, path("/post-closing/pc-1"), gin.H{"status": "completed"}, nil)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal(`"11"`, rr.Header().Get("ETag"))
}

func (s *HandlerTestSuite) TestPostClosingReadiness() {
	s.postClosing.On("Readiness", mock.Anything, txnID, testUserID).
		Return([]domain.PostClosingItem{{ItemID: "pc-2", Status: domain.PostClosingPending}}, nil).Once()

	rr := s.do(http.MethodGet, path("/post-closing/readiness"), nil, nil)

	s.Equal(http.StatusOK, rr.Code)
	var items []domain.PostClosingItem
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &items))
	s.Require().Len(items, 1)
	s.Equal("pc-2", items[0].ItemID)
}

func (s *HandlerTestSuite) TestPostClosingDependencies() {
	want := dto.UpdateDependenciesRequest{Dependencies: []string{"pc-1"}}
	s.postClosing.On("UpdateDependencies", mock.Anything, txnID, "pc-2", want, testUserID).
		Return(&dto.Versioned[domain.PostClosingItem]{Data: domain.PostClosingItem{ItemID: "pc-2", Dependencies: []string{"pc-1"}}, Version: 12}, nil).Once()
	cyclic := dto.UpdateDependenciesRequest{Dependencies: []string{"pc-2"}}
	s.postClosing.On("UpdateDependencies", mock.Anything, txnID, "pc-1", cyclic, testUserID).
		Return(nil, fmt.Errorf("%w: dependency cycle", apperrors.ErrValidation)).Once()

	rr := s.do(http.MethodPut, path("/post-closing/pc-2/dependencies"), gin.H{"dependencies": []string{"pc-1"}}, nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(`"12"`, rr.Header().Get("ETag"))

	rr = s.do(http.MethodPut, path("/post-closing/pc-1/dependencies"), gin.H{"dependencies": []string{"pc-2"}}, nil)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerTestSuite) TestDashboard() {
	s.dashboard.On("BuildDashboard", mock.Anything, txnID, testUserID).Return(&domain.Dashboard{
		Transaction: &domain.Transaction{TransactionID: txnID, Version: 9},
		RiskLevel:   domain.RiskMedium,
		RiskFactors: []string{"1 payment(s) overdue"},
		Countdown:   domain.ClosingCountdown{DaysToClosing: 5, Alert: domain.AlertApproaching},
	}, nil).Once()

	rr := s.do(http.MethodGet, path("/dashboard"), nil, nil)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal(`"9"`, rr.Header().Get("ETag"))
	body := s.decode(rr)
	s.Equal("medium", body["riskLevel"])
	s.Equal(float64(5), body["countdown"].(map[string]any)["daysToClosing"])
}

func (s *HandlerTestSuite) TestUpdateEntityPassesKind() {
	title := "Escrow agreement signed"
	s.transactions.On("UpdateEntity", mock.Anything, txnID, domain.EntityKeyDate, "kd-1",
		mock.MatchedBy(func(req dto.EntityPatch) bool { return req.Name != nil && *req.Name == title }), testUserID).
		Return(&dto.Versioned[any]{Data: domain.KeyDate{KeyDateID: "kd-1", Name: title}, Version: 2}, nil).Once()

	rr := s.do(http.MethodPatch, path("/entities/key_date/kd-1"), gin.H{"name": title}, nil)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal(title, s.decode(rr)["name"])
}

func (s *HandlerTestSuite) TestListActivityLimit() {
	s.transactions.On("ListActivity", mock.Anything, txnID, testUserID, 5).Return([]domain.ActivityEntry{}, nil).Once()

	s.Equal(http.StatusOK, s.do(http.MethodGet, path("/activity?limit=5"), nil, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, path("/activity?limit=-1"), nil, nil).Code)
}

func (s *HandlerTestSuite) TestCreateTransaction() {
	s.transactions.On("CreateTransaction", mock.Anything,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.OfferID == "offer-1" && len(req.Parties) == 2 && req.TotalValue.Equal(decimal.NewFromInt(500000))
		}), testUserID).
		Return(&dto.Versioned[domain.Transaction]{Data: domain.Transaction{TransactionID: txnID, Version: 1}, Version: 1}, nil).Once()

	rr := s.do(http.MethodPost, "/api/v1/transactions", gin.H{
		"offerID":         "offer-1",
		"listingID":       "listing-1",
		"buyerID":         testUserID,
		"sellerID":        "seller-1",
		"transactionType": "share_purchase",
		"totalValue":      "500000",
		"currencyCode":    "EUR",
		"closingDate":     "2024-03-01T00:00:00Z",
		"parties": []gin.H{
			{"userID": testUserID, "name": "Bea Buyer", "role": "buyer"},
			{"userID": "seller-1", "name": "Sam Seller", "role": "seller"},
		},
	}, nil)

	s.Equal(http.StatusCreated, rr.Code, rr.Body.String())
	s.Equal(`"1"`, rr.Header().Get("ETag"))
}

func (s *HandlerTestSuite) TestMutationsAreRateLimited() {
	s.cfg.MutationRateLimit = "1-M"
	s.buildRouter()
	s.checklist.On("SetStatus", mock.Anything, txnID, "item-1", mock.Anything, testUserID).
		Return(&dto.Versioned[domain.ClosingChecklistItem]{Data: domain.ClosingChecklistItem{ItemID: "item-1"}, Version: 2}, nil).Once()
	s.checklist.On("Readiness", mock.Anything, txnID, testUserID).Return([]domain.ClosingChecklistItem{}, nil).Twice()

	s.Equal(http.StatusOK, s.do(http.MethodPatch, path("/checklist/item-1"), gin.H{"status": "in_progress"}, nil).Code)
	rr := s.do(http.MethodPatch, path("/checklist/item-1"), gin.H{"status": "in_progress"}, nil)
	s.Equal(http.StatusTooManyRequests, rr.Code)
	s.Equal("0", rr.Header().Get("X-RateLimit-Remaining"))

	// Reads are not limited.
	s.Equal(http.StatusOK, s.do(http.MethodGet, path("/checklist/readiness"), nil, nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, path("/checklist/readiness"), nil, nil).Code)
}

func (s *HandlerTestSuite) TestInvalidRateLimitFailsRegistration() {
	s.cfg.MutationRateLimit = "often"
	err := handlers.RegisterRoutes(gin.New(), s.cfg, &portssvc.ServiceContainer{}, handlers.RouterDeps{})
	s.Error(err)
	s.True(strings.Contains(err.Error(), "MUTATION_RATE_LIMIT"))
}

func (s *HandlerTestSuite) TestHealthIsPublic() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("OK", rr.Body.String())
}
