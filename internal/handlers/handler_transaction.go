package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests on the transaction record itself.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	dashboardService   portssvc.DashboardSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, ds portssvc.DashboardSvc) *transactionHandler {
	return &transactionHandler{transactionService: ts, dashboardService: ds}
}

// registerTransactionRoutes registers the collection routes and the record routes under txn.
func registerTransactionRoutes(rg *gin.RouterGroup, txn *gin.RouterGroup, ts portssvc.TransactionSvcFacade, ds portssvc.DashboardSvc) {
	h := newTransactionHandler(ts, ds)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
	}

	txn.GET("", h.getTransaction)
	txn.PATCH("/status", h.updateStatus)
	txn.POST("/approvals", h.approve)
	txn.POST("/communications", h.postCommunication)
	txn.GET("/activity", h.listActivity)
	txn.PATCH("/entities/:kind/:entityId", h.updateEntity)
	txn.GET("/dashboard", h.getDashboard)
}

// createTransaction godoc
// @Summary Open a transaction
// @Description Opens the transaction record of an accepted offer. The caller must be one of the parties.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} domain.Transaction
// @Header  201 {string} ETag "Transaction version"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a party"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create transaction", slog.String("offer_id", req.OfferID))
	created, err := h.transactionService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}
	logger.Info("Transaction created", slog.String("transaction_id", created.Data.TransactionID))
	respondVersioned(c, http.StatusCreated, created)
}

// listTransactions godoc
// @Summary List the caller's transactions
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns the full aggregate with time-derived statuses applied.
// @Tags transactions
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Header  200 {string} ETag "Transaction version"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{transactionId} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	respondVersioned(c, http.StatusOK, txn)
}

// updateStatus godoc
// @Summary Move a transaction through its lifecycle
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   If-Match header string false "Expected transaction version"
// @Param   status body dto.UpdateTransactionStatusRequest true "New status"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 403 {object} map[string]string "Only buyer or seller"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 422 {object} map[string]interface{} "Required checklist items not completed"
// @Security BearerAuth
// @Router /transactions/{transactionId}/status [patch]
func (h *transactionHandler) updateStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionStatusRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	txn, err := h.transactionService.UpdateStatus(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update transaction status")
		return
	}
	respondVersioned(c, http.StatusOK, txn)
}

// approve godoc
// @Summary Approve a transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   approval body dto.ApproveTransactionRequest true "Approval comment"
// @Success 201 {object} domain.Approval
// @Failure 403 {object} map[string]string "Only buyer or seller"
// @Failure 409 {object} map[string]string "Already approved or version conflict"
// @Security BearerAuth
// @Router /transactions/{transactionId}/approvals [post]
func (h *transactionHandler) approve(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ApproveTransactionRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	approval, err := h.transactionService.Approve(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to approve transaction")
		return
	}
	respondVersioned(c, http.StatusCreated, approval)
}

// postCommunication godoc
// @Summary Post a message to other parties
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   message body dto.PostCommunicationRequest true "Message"
// @Success 201 {object} domain.Communication
// @Failure 400 {object} map[string]string "Invalid recipients"
// @Security BearerAuth
// @Router /transactions/{transactionId}/communications [post]
func (h *transactionHandler) postCommunication(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.PostCommunicationRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	posted, err := h.transactionService.PostCommunication(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post communication")
		return
	}
	respondVersioned(c, http.StatusCreated, posted)
}

// listActivity godoc
// @Summary List recent activity
// @Tags transactions
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   limit query int false "Maximum entries" default(50)
// @Success 200 {array} domain.ActivityEntry
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/activity [get]
func (h *transactionHandler) listActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	entries, err := h.transactionService.ListActivity(c.Request.Context(), c.Param("transactionId"), userID, limit)
	if err != nil {
		respondError(c, err, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// updateEntity godoc
// @Summary Patch a child entity
// @Description Updates non-status fields of a checklist item, document, payment, key date or post-closing item.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   kind path string true "Entity kind" Enums(checklist_item, document, payment, key_date, post_closing_item)
// @Param   entityId path string true "Entity ID"
// @Param   If-Match header string false "Expected transaction version"
// @Param   patch body dto.EntityPatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Unsupported field or invalid value"
// @Failure 403 {object} map[string]string "Not allowed to edit this entity"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Security BearerAuth
// @Router /transactions/{transactionId}/entities/{kind}/{entityId} [patch]
func (h *transactionHandler) updateEntity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.EntityPatch
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	kind := domain.EntityKind(c.Param("kind"))
	updated, err := h.transactionService.UpdateEntity(c.Request.Context(), c.Param("transactionId"), kind, c.Param("entityId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update "+string(kind))
		return
	}
	respondVersioned(c, http.StatusOK, updated)
}

// getDashboard godoc
// @Summary Get the transaction dashboard
// @Description Aggregates progress, deadlines, activity, team status, financials and risk.
// @Tags transactions
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} domain.Dashboard
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /transactions/{transactionId}/dashboard [get]
func (h *transactionHandler) getDashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboardService.BuildDashboard(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	if dashboard.Transaction != nil {
		setETag(c, dashboard.Transaction.Version)
	}
	c.JSON(http.StatusOK, dashboard)
}
