package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/idtoken"
)

// Claims are the JWT claims issued by the marketplace auth service.
type Claims struct {
	Admin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// AuthConfig configures token verification.
type AuthConfig struct {
	JWTSecret string
	// Issuer, when set, must match the iss claim.
	Issuer string
	// GoogleClientID enables Google ID tokens as a fallback for service accounts.
	GoogleClientID string
}

// googleTokenValidator is swapped in tests.
var googleTokenValidator = idtoken.Validate

// AuthMiddleware creates a Gin middleware handler that validates bearer tokens and stores
// the authenticated user in the request context.
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		tokenString := parts[1]

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}, parserOpts...)

		if err != nil && cfg.GoogleClientID != "" && errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			payload, gErr := googleTokenValidator(c.Request.Context(), tokenString, cfg.GoogleClientID)
			if gErr == nil && payload.Subject != "" {
				setUser(c, logger, payload.Subject, false, "google_id_token")
				c.Next()
				return
			}
			logger.Warn("Google ID token rejected", slog.Any("error", gErr))
		}

		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if !token.Valid || claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		setUser(c, logger, claims.Subject, claims.Admin, "jwt")
		c.Next()
	}
}

// IssueToken signs an HS256 token that AuthMiddleware accepts under cfg.
func IssueToken(cfg AuthConfig, userID string, admin bool, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}
	if ttl <= 0 {
		return "", errors.New("token lifetime must be positive")
	}
	now := time.Now()
	claims := Claims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

func setUser(c *gin.Context, logger *slog.Logger, userID string, admin bool, method string) {
	enrichedLogger := logger.With(slog.String("user_id", userID))
	ctx := WithUser(c.Request.Context(), userID, admin)
	ctx = WithLogger(ctx, enrichedLogger)
	c.Request = c.Request.WithContext(ctx)
	c.Set("authMethod", method)
}

// WithGoogleTokenValidator replaces the Google ID token validator and returns a restore func.
func WithGoogleTokenValidator(fn func(ctx context.Context, token, audience string) (*idtoken.Payload, error)) func() {
	prev := googleTokenValidator
	googleTokenValidator = fn
	return func() { googleTokenValidator = prev }
}
