package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// checklistHandler handles HTTP requests on the closing checklist.
type checklistHandler struct {
	checklistService portssvc.ChecklistSvcFacade
}

func newChecklistHandler(cs portssvc.ChecklistSvcFacade) *checklistHandler {
	return &checklistHandler{checklistService: cs}
}

func registerChecklistRoutes(txn *gin.RouterGroup, cs portssvc.ChecklistSvcFacade) {
	h := newChecklistHandler(cs)

	checklist := txn.Group("/checklist")
	{
		checklist.GET("", h.listChecklist)
		checklist.POST("", h.addItem)
		checklist.GET("/progress", h.progress)
		checklist.GET("/readiness", h.readiness)
		checklist.PATCH("/:itemId", h.setStatus)
		checklist.PUT("/:itemId/dependencies", h.updateDependencies)
		checklist.POST("/:itemId/comments", h.addComment)
		checklist.POST("/:itemId/comments/:commentId/resolve", h.resolveComment)
	}
}

// listChecklist godoc
// @Summary List checklist items by category
// @Tags checklist
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} dto.ChecklistResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist [get]
func (h *checklistHandler) listChecklist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.checklistService.ListByCategory(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to list checklist")
		return
	}
	setETag(c, resp.Version)
	c.JSON(http.StatusOK, resp)
}

// addItem godoc
// @Summary Add a checklist item
// @Tags checklist
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   item body dto.AddChecklistItemRequest true "Item"
// @Success 201 {object} domain.ClosingChecklistItem
// @Failure 400 {object} map[string]string "Unknown or cyclic dependency"
// @Failure 409 {object} map[string]string "Version conflict"
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist [post]
func (h *checklistHandler) addItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddChecklistItemRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.checklistService.AddItem(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add checklist item")
		return
	}
	respondVersioned(c, http.StatusCreated, item)
}

// progress godoc
// @Summary Checklist progress per category
// @Tags checklist
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist/progress [get]
func (h *checklistHandler) progress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	progress, err := h.checklistService.Progress(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute checklist progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// readiness godoc
// @Summary List items that can be worked on now
// @Description Open items whose dependencies are all completed.
// @Tags checklist
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {array} domain.ClosingChecklistItem
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist/readiness [get]
func (h *checklistHandler) readiness(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.checklistService.Readiness(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute readiness")
		return
	}
	c.JSON(http.StatusOK, items)
}

// setStatus godoc
// @Summary Set a checklist item's status
// @Description Completing an item requires every dependency to be completed.
// @Tags checklist
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Checklist item ID"
// @Param   If-Match header string false "Expected transaction version"
// @Param   status body dto.SetChecklistStatusRequest true "New status"
// @Success 200 {object} domain.ClosingChecklistItem
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 403 {object} map[string]string "Not allowed to change this item"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 422 {object} map[string]interface{} "Dependencies not completed"
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist/{itemId} [patch]
func (h *checklistHandler) setStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SetChecklistStatusRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.checklistService.SetStatus(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update checklist item")
		return
	}
	respondVersioned(c, http.StatusOK, item)
}

// updateDependencies godoc
// @Summary Replace a checklist item's dependencies
// @Tags checklist
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Checklist item ID"
// @Param   dependencies body dto.UpdateDependenciesRequest true "Dependency item IDs"
// @Success 200 {object} domain.ClosingChecklistItem
// @Failure 400 {object} map[string]string "Unknown or cyclic dependency"
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist/{itemId}/dependencies [put]
func (h *checklistHandler) updateDependencies(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateDependenciesRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.checklistService.UpdateDependencies(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update dependencies")
		return
	}
	respondVersioned(c, http.StatusOK, item)
}

// addComment godoc
// @Summary Comment on a checklist item
// @Tags checklist
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Checklist item ID"
// @Param   comment body dto.AddCommentRequest true "Comment"
// @Success 201 {object} domain.ClosingChecklistItem
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist/{itemId}/comments [post]
func (h *checklistHandler) addComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.checklistService.AddComment(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	respondVersioned(c, http.StatusCreated, item)
}

// resolveComment godoc
// @Summary Resolve a checklist comment
// @Tags checklist
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Checklist item ID"
// @Param   commentId path string true "Comment ID"
// @Success 200 {object} domain.ClosingChecklistItem
// @Security BearerAuth
// @Router /transactions/{transactionId}/checklist/{itemId}/comments/{commentId}/resolve [post]
func (h *checklistHandler) resolveComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	item, err := h.checklistService.ResolveComment(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), c.Param("commentId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to resolve comment")
		return
	}
	respondVersioned(c, http.StatusOK, item)
}
