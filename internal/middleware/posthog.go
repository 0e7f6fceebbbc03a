package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/closing_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware tracks successful tracker mutations with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/transactions/:transactionId/checklist" -> "post_transactions_checklist"
		eventName := EventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if txnID := c.Param("transactionId"); txnID != "" {
			props["transaction_id"] = txnID
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName derives an analytics event name from a route template, dropping the API
// prefix and path parameters.
func EventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	parts := []string{strings.ToLower(method)}
	for _, segment := range strings.Split(strings.TrimPrefix(fullPath, "/api/v1"), "/") {
		if segment == "" || strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(segment, "-", "_"))
	}
	return strings.Join(parts, "_")
}
