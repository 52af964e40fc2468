package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/payzen/payzen_backend/internal/apperrors"
)

// AccessTokenVerifier checks a bearer access token and returns the account it was issued to.
type AccessTokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (string, error)
}

// AuthMiddleware creates a Gin middleware handler that validates bearer access tokens.
func AuthMiddleware(verifier AccessTokenVerifier) gin.HandlerFunc {
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

		accountID, err := verifier.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx := WithAccountID(c.Request.Context(), accountID)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", accountID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
