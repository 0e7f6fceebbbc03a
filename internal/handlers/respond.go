package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto an HTTP status and writes the JSON error body.
// fallback is the message used for unexpected failures.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var unmet *apperrors.DependencyUnmetError
	switch {
	case errors.As(err, &unmet):
		logger.Warn("Dependencies not completed", slog.String("item_id", unmet.ItemID), slog.Any("unmet", unmet.Unmet))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             err.Error(),
			"itemID":            unmet.ItemID,
			"unmetDependencies": unmet.Unmet,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting write", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnsupportedContentType):
		logger.Warn("Upload rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUpload):
		logger.Warn("Upload rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTransient):
		logger.Error("Upstream unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": fallback + ": storage temporarily unavailable, retry later"})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Request timed out", slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": fallback + ": timed out"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// currentUser returns the authenticated caller or writes a 401.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// bindJSON binds a required JSON body and applies If-Match. It writes a 400 on failure.
func bindJSON(c *gin.Context, req any, versioned *dto.VersionedRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return applyIfMatch(c, versioned)
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, req *dto.VersionedRequest) bool {
	if c.Request.ContentLength > 0 {
		return bindJSON(c, req, req)
	}
	return applyIfMatch(c, req)
}

// applyIfMatch fills the expected version from the If-Match header when the body did not set one.
func applyIfMatch(c *gin.Context, req *dto.VersionedRequest) bool {
	header := c.GetHeader("If-Match")
	if header == "" || req.ExpectedVersion != nil {
		return true
	}
	version, err := parseETag(header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	req.ExpectedVersion = &version
	return true
}

func parseETag(header string) (int64, error) {
	tag := strings.TrimPrefix(strings.TrimSpace(header), "W/")
	tag = strings.Trim(tag, `"`)
	version, err := strconv.ParseInt(tag, 10, 64)
	if err != nil || version < 1 {
		return 0, fmt.Errorf("If-Match must carry a transaction version, got %q", header)
	}
	return version, nil
}

func setETag(c *gin.Context, version int64) {
	c.Header("ETag", strconv.Quote(strconv.FormatInt(version, 10)))
}

// respondVersioned writes the mutated entity with the transaction version as ETag.
func respondVersioned[T any](c *gin.Context, status int, v *dto.Versioned[T]) {
	setETag(c, v.Version)
	c.JSON(status, v.Data)
}
