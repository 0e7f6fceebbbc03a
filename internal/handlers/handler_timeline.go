package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type timelineHandler struct {
	timelineService portssvc.TimelineSvcFacade
}

func registerTimelineRoutes(txn *gin.RouterGroup, ts portssvc.TimelineSvcFacade) {
	h := &timelineHandler{timelineService: ts}

	keyDates := txn.Group("/key-dates")
	{
		keyDates.GET("", h.listKeyDates)
		keyDates.POST("", h.addKeyDate)
		keyDates.POST("/:keyDateId/complete", h.completeKeyDate)
		keyDates.POST("/:keyDateId/cancel", h.cancelKeyDate)
	}
	txn.GET("/countdown", h.countdown)
}

// listKeyDates godoc
// @Summary List key dates
// @Description Ascending by date with derived status, plus the closing countdown.
// @Tags timeline
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} dto.TimelineResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/key-dates [get]
func (h *timelineHandler) listKeyDates(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.timelineService.ListKeyDates(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to list key dates")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// addKeyDate godoc
// @Summary Add a key date
// @Tags timeline
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   keyDate body dto.AddKeyDateRequest true "Key date"
// @Success 201 {object} domain.KeyDate
// @Failure 400 {object} map[string]string "Invalid key date"
// @Security BearerAuth
// @Router /transactions/{transactionId}/key-dates [post]
func (h *timelineHandler) addKeyDate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddKeyDateRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	keyDate, err := h.timelineService.AddKeyDate(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add key date")
		return
	}
	respondVersioned(c, http.StatusCreated, keyDate)
}

// completeKeyDate godoc
// @Summary Mark a key date completed
// @Tags timeline
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   keyDateId path string true "Key date ID"
// @Success 200 {object} domain.KeyDate
// @Security BearerAuth
// @Router /transactions/{transactionId}/key-dates/{keyDateId}/complete [post]
func (h *timelineHandler) completeKeyDate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	keyDate, err := h.timelineService.CompleteKeyDate(c.Request.Context(), c.Param("transactionId"), c.Param("keyDateId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to complete key date")
		return
	}
	respondVersioned(c, http.StatusOK, keyDate)
}

// cancelKeyDate godoc
// @Summary Cancel a key date
// @Tags timeline
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   keyDateId path string true "Key date ID"
// @Success 200 {object} domain.KeyDate
// @Security BearerAuth
// @Router /transactions/{transactionId}/key-dates/{keyDateId}/cancel [post]
func (h *timelineHandler) cancelKeyDate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	keyDate, err := h.timelineService.CancelKeyDate(c.Request.Context(), c.Param("transactionId"), c.Param("keyDateId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel key date")
		return
	}
	respondVersioned(c, http.StatusOK, keyDate)
}

// countdown godoc
// @Summary Days to closing
// @Tags timeline
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} domain.ClosingCountdown
// @Security BearerAuth
// @Router /transactions/{transactionId}/countdown [get]
func (h *timelineHandler) countdown(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	countdown, err := h.timelineService.ClosingCountdown(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute countdown")
		return
	}
	c.JSON(http.StatusOK, countdown)
}
