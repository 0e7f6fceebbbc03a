package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// postClosingHandler handles HTTP requests on post-closing handover work.
type postClosingHandler struct {
	postClosingService portssvc.PostClosingSvcFacade
}

func registerPostClosingRoutes(txn *gin.RouterGroup, ps portssvc.PostClosingSvcFacade) {
	h := &postClosingHandler{postClosingService: ps}

	items := txn.Group("/post-closing")
	{
		items.GET("", h.listItems)
		items.POST("", h.addItem)
		items.GET("/progress", h.progress)
		items.GET("/suggested-dates", h.suggestedDates)
		items.GET("/readiness", h.readiness)
		items.PATCH("/:itemId", h.setStatus)
		items.PUT("/:itemId/dependencies", h.updateDependencies)
		items.POST("/:itemId/comments", h.addComment)
		items.POST("/:itemId/comments/:commentId/resolve", h.resolveComment)
	}
}

// listItems godoc
// @Summary List post-closing items by type
// @Tags post-closing
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} dto.PostClosingResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing [get]
func (h *postClosingHandler) listItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.postClosingService.ListByType(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to list post-closing items")
		return
	}
	setETag(c, resp.Version)
	c.JSON(http.StatusOK, resp)
}

// addItem godoc
// @Summary Add a post-closing item
// @Tags post-closing
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   item body dto.AddPostClosingItemRequest true "Item"
// @Success 201 {object} domain.PostClosingItem
// @Failure 400 {object} map[string]string "Unknown or cyclic dependency"
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing [post]
func (h *postClosingHandler) addItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddPostClosingItemRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.postClosingService.AddItem(c.Request.Context(), c.Param("transactionId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add post-closing item")
		return
	}
	respondVersioned(c, http.StatusCreated, item)
}

// progress godoc
// @Summary Post-closing progress per type
// @Tags post-closing
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing/progress [get]
func (h *postClosingHandler) progress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	progress, err := h.postClosingService.Progress(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute post-closing progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// suggestedDates godoc
// @Summary Suggested completion dates
// @Description Closing date or latest dependency date plus the estimated duration.
// @Tags post-closing
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {array} domain.SuggestedCompletion
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing/suggested-dates [get]
func (h *postClosingHandler) suggestedDates(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	suggested, err := h.postClosingService.SuggestedCompletionDates(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute suggested dates")
		return
	}
	c.JSON(http.StatusOK, suggested)
}

// readiness godoc
// @Summary Post-closing items that can be worked on now
// @Tags post-closing
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {array} domain.PostClosingItem
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing/readiness [get]
func (h *postClosingHandler) readiness(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.postClosingService.Readiness(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute post-closing readiness")
		return
	}
	c.JSON(http.StatusOK, items)
}

// setStatus godoc
// @Summary Set a post-closing item's status
// @Tags post-closing
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Post-closing item ID"
// @Param   If-Match header string false "Expected transaction version"
// @Param   status body dto.SetPostClosingStatusRequest true "New status"
// @Success 200 {object} domain.PostClosingItem
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 403 {object} map[string]string "Not allowed to change this item"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 422 {object} map[string]interface{} "Dependencies not completed"
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing/{itemId} [patch]
func (h *postClosingHandler) setStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SetPostClosingStatusRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.postClosingService.SetStatus(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update post-closing item")
		return
	}
	respondVersioned(c, http.StatusOK, item)
}

// updateDependencies godoc
// @Summary Replace a post-closing item's dependencies
// @Tags post-closing
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Post-closing item ID"
// @Param   dependencies body dto.UpdateDependenciesRequest true "Dependency item IDs"
// @Success 200 {object} domain.PostClosingItem
// @Failure 400 {object} map[string]string "Unknown or cyclic dependency"
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing/{itemId}/dependencies [put]
func (h *postClosingHandler) updateDependencies(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateDependenciesRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.postClosingService.UpdateDependencies(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update dependencies")
		return
	}
	respondVersioned(c, http.StatusOK, item)
}

// addComment godoc
// @Summary Comment on a post-closing item
// @Tags post-closing
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Post-closing item ID"
// @Param   comment body dto.AddCommentRequest true "Comment"
// @Success 201 {object} domain.PostClosingItem
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing/{itemId}/comments [post]
func (h *postClosingHandler) addComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	item, err := h.postClosingService.AddComment(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	respondVersioned(c, http.StatusCreated, item)
}

// resolveComment godoc
// @Summary Resolve a post-closing comment
// @Tags post-closing
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   itemId path string true "Post-closing item ID"
// @Param   commentId path string true "Comment ID"
// @Success 200 {object} domain.PostClosingItem
// @Security BearerAuth
// @Router /transactions/{transactionId}/post-closing/{itemId}/comments/{commentId}/resolve [post]
func (h *postClosingHandler) resolveComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	item, err := h.postClosingService.ResolveComment(c.Request.Context(), c.Param("transactionId"), c.Param("itemId"), c.Param("commentId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to resolve comment")
		return
	}
	respondVersioned(c, http.StatusOK, item)
}
