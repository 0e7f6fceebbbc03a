package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests on scheduled payments and escrow.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

func registerPaymentRoutes(txn *gin.RouterGroup, ps portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(ps)

	payments := txn.Group("/payments")
	{
		payments.GET("", h.listPayments)
		payments.POST("", h.schedulePayment)
		payments.PATCH("/:paymentId", h.processPayment)
		payments.POST("/:paymentId/cancel", h.cancelPayment)
	}

	escrow := txn.Group("/escrow")
	{
		escrow.PUT("", h.setEscrow)
		escrow.GET("/release-check", h.checkReleaseConditions)
		escrow.PATCH("/conditions/:conditionId", h.updateReleaseCondition)
		escrow.POST("/release", h.releaseEscrow)
		escrow.POST("/dispute", h.disputeEscrow)
	}
}

// listPayments godoc
// @Summary List payments
// @Description Pending payments past their due date are reported as overdue.
// @Tags payments
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {array} domain.TransactionPayment
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	payments, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// schedulePayment godoc
// @Summary Schedule a payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   payment body dto.SchedulePaymentRequest true "Payment"
// @Success 201 {object} domain.TransactionPayment
// @Failure 400 {object} map[string]string "Invalid amount, currency or parties"
// @Failure 409 {object} map[string]string "Version conflict"
// @Security BearerAuth
// @Router /transactions/{transactionId}/payments [post]
func (h *paymentHandler) schedulePayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SchedulePaymentRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	payment, err := h.paymentService.SchedulePayment(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to schedule payment")
		return
	}
	respondVersioned(c, http.StatusCreated, payment)
}

// processPayment godoc
// @Summary Record a payment as paid
// @Description Settling an already paid payment returns it unchanged.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   paymentId path string true "Payment ID"
// @Param   If-Match header string false "Expected transaction version"
// @Param   settlement body dto.ProcessPaymentRequest true "Settlement details"
// @Success 200 {object} domain.TransactionPayment
// @Failure 400 {object} map[string]string "Payment cancelled or invalid method"
// @Failure 403 {object} map[string]string "Not allowed to settle"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 504 {object} map[string]string "Payment submission timed out"
// @Security BearerAuth
// @Router /transactions/{transactionId}/payments/{paymentId} [patch]
func (h *paymentHandler) processPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ProcessPaymentRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	paymentID := c.Param("paymentId")
	logger.Info("Received payment settlement", slog.String("payment_id", paymentID), slog.String("method", req.Method))
	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), c.Param("transactionId"), paymentID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to process payment")
		return
	}
	respondVersioned(c, http.StatusOK, payment)
}

// cancelPayment godoc
// @Summary Cancel a payment
// @Tags payments
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   paymentId path string true "Payment ID"
// @Success 200 {object} domain.TransactionPayment
// @Failure 400 {object} map[string]string "Payment already paid"
// @Security BearerAuth
// @Router /transactions/{transactionId}/payments/{paymentId}/cancel [post]
func (h *paymentHandler) cancelPayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	payment, err := h.paymentService.CancelPayment(c.Request.Context(), c.Param("transactionId"), c.Param("paymentId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel payment")
		return
	}
	respondVersioned(c, http.StatusOK, payment)
}

// setEscrow godoc
// @Summary Open the escrow account
// @Tags escrow
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   escrow body dto.SetEscrowRequest true "Escrow"
// @Success 200 {object} domain.Escrow
// @Failure 400 {object} map[string]string "Invalid escrow"
// @Security BearerAuth
// @Router /transactions/{transactionId}/escrow [put]
func (h *paymentHandler) setEscrow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SetEscrowRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	escrow, err := h.paymentService.SetEscrow(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to set escrow")
		return
	}
	respondVersioned(c, http.StatusOK, escrow)
}

// checkReleaseConditions godoc
// @Summary Check whether escrow can be released
// @Tags escrow
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} dto.ReleaseCheckResponse
// @Failure 404 {object} map[string]string "No escrow"
// @Security BearerAuth
// @Router /transactions/{transactionId}/escrow/release-check [get]
func (h *paymentHandler) checkReleaseConditions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.paymentService.CheckReleaseConditions(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to check release conditions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateReleaseCondition godoc
// @Summary Set a release condition's status
// @Tags escrow
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   conditionId path string true "Condition ID"
// @Param   condition body dto.UpdateReleaseConditionRequest true "New status"
// @Success 200 {object} domain.ReleaseCondition
// @Security BearerAuth
// @Router /transactions/{transactionId}/escrow/conditions/{conditionId} [patch]
func (h *paymentHandler) updateReleaseCondition(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateReleaseConditionRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	condition, err := h.paymentService.UpdateReleaseCondition(c.Request.Context(), c.Param("transactionId"), c.Param("conditionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update release condition")
		return
	}
	respondVersioned(c, http.StatusOK, condition)
}

// releaseEscrow godoc
// @Summary Release escrow
// @Description Allowed only when every release condition is satisfied.
// @Tags escrow
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} domain.Escrow
// @Failure 400 {object} map[string]string "Conditions outstanding"
// @Security BearerAuth
// @Router /transactions/{transactionId}/escrow/release [post]
func (h *paymentHandler) releaseEscrow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	escrow, err := h.paymentService.ReleaseEscrow(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to release escrow")
		return
	}
	respondVersioned(c, http.StatusOK, escrow)
}

// disputeEscrow godoc
// @Summary Dispute escrow
// @Tags escrow
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} domain.Escrow
// @Security BearerAuth
// @Router /transactions/{transactionId}/escrow/dispute [post]
func (h *paymentHandler) disputeEscrow(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	escrow, err := h.paymentService.DisputeEscrow(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to dispute escrow")
		return
	}
	respondVersioned(c, http.StatusOK, escrow)
}
