package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/cmd/docs"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/SscSPs/closing_tracker/internal/platform/config"
	"github.com/SscSPs/closing_tracker/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterDeps are optional collaborators of the HTTP surface.
type RouterDeps struct {
	Posthog *utils.PosthogClientWrapper
	// Files serves stored content under cfg.DocumentBaseURL when set.
	Files ContentOpener
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) error {
	if cfg.FrontendBaseURL != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-Match", "X-Request-ID"},
			ExposeHeaders:    []string{"ETag", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	auth := middleware.AuthMiddleware(middleware.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		GoogleClientID: cfg.GoogleClientID,
	})

	if err := setupAPIV1Routes(r, cfg, services, deps, auth); err != nil {
		return err
	}

	if deps.Files != nil && strings.HasPrefix(cfg.DocumentBaseURL, "/") {
		files := newDocumentHandler(services.Document, cfg.DocumentMaxSizeBytes, deps.Files)
		r.GET(cfg.DocumentBaseURL+"/*key", auth, files.serveContent)
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the tracker route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
	auth gin.HandlerFunc,
) error {
	chain := []gin.HandlerFunc{auth, middleware.PosthogMiddleware(deps.Posthog)}
	if cfg.MutationRateLimit != "" {
		limiter, err := middleware.NewMemoryLimiter(cfg.MutationRateLimit)
		if err != nil {
			return fmt.Errorf("invalid MUTATION_RATE_LIMIT %q: %w", cfg.MutationRateLimit, err)
		}
		chain = append(chain, middleware.MutationsOnly(middleware.RateLimit(limiter)))
	}
	v1 := r.Group("/api/v1", chain...)

	txn := v1.Group("/transactions/:transactionId")
	registerTransactionRoutes(v1, txn, services.Transaction, services.Dashboard)
	registerChecklistRoutes(txn, services.Checklist)
	registerDocumentRoutes(txn, newDocumentHandler(services.Document, cfg.DocumentMaxSizeBytes, deps.Files))
	registerPaymentRoutes(txn, services.Payment)
	registerTimelineRoutes(txn, services.Timeline)
	registerPostClosingRoutes(txn, services.PostClosing)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
