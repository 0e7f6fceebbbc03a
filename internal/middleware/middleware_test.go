package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims middleware.Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(cfg middleware.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	router.GET("/whoami", middleware.AuthMiddleware(cfg), func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": userID, "admin": middleware.IsAdminFromCtx(c.Request.Context())})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	cfg := middleware.AuthConfig{JWTSecret: testSecret, Issuer: "marketplace"}
	valid := middleware.Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "marketplace",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	wrongIssuer := valid
	wrongIssuer.Issuer = "elsewhere"

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + signToken(t, valid, testSecret), wantStatus: http.StatusOK, wantBody: `{"admin":true,"user":"user-1"}`},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantBody: "Authorization header required"},
		{name: "bad format", header: "Token abc", wantStatus: http.StatusUnauthorized, wantBody: "Bearer {token}"},
		{name: "expired", header: "Bearer " + signToken(t, expired, testSecret), wantStatus: http.StatusUnauthorized, wantBody: "Token has expired"},
		{name: "wrong secret", header: "Bearer " + signToken(t, valid, "other"), wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
		{name: "wrong issuer", header: "Bearer " + signToken(t, wrongIssuer, testSecret), wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
	}

	router := newAuthRouter(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestAuthMiddleware_GoogleFallback(t *testing.T) {
	// A token signed with another algorithm fails the HS256 signing method check.
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	restore := middleware.WithGoogleTokenValidator(func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token == foreign && audience == "client-id" {
			return &idtoken.Payload{Subject: "google-user"}, nil
		}
		return nil, errors.New("invalid")
	})
	defer restore()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	w := httptest.NewRecorder()
	newAuthRouter(middleware.AuthConfig{JWTSecret: testSecret, GoogleClientID: "client-id"}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"google-user"`)
	assert.Contains(t, w.Body.String(), `"admin":false`)

	w = httptest.NewRecorder()
	newAuthRouter(middleware.AuthConfig{JWTSecret: testSecret}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "fallback is off without a client id")
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "post_transactions_checklist", middleware.EventName(http.MethodPost, "/api/v1/transactions/:transactionId/checklist"))
	assert.Equal(t, "patch_transactions_post_closing", middleware.EventName(http.MethodPatch, "/api/v1/transactions/:transactionId/post-closing/:itemId"))
	assert.Equal(t, "", middleware.EventName(http.MethodPost, ""))
}

func TestMutationsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	blocked := func(c *gin.Context) { c.AbortWithStatus(http.StatusTeapot) }
	router.Use(middleware.MutationsOnly(blocked))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RateLimit(limiter))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = middleware.NewMemoryLimiter("nonsense")
	assert.Error(t, err)
}

func TestIssueToken(t *testing.T) {
	cfg := middleware.AuthConfig{JWTSecret: testSecret, Issuer: "closing-tracker"}
	router := newAuthRouter(cfg)

	token, err := middleware.IssueToken(cfg, "ops-1", true, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":true,"user":"ops-1"}`, w.Body.String())

	_, err = middleware.IssueToken(cfg, " ", false, time.Hour)
	assert.Error(t, err)
	_, err = middleware.IssueToken(cfg, "ops-1", false, 0)
	assert.Error(t, err)
}
