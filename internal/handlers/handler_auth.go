package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/payzen/payzen_backend/internal/middleware"
	"github.com/payzen/payzen_backend/internal/platform/config"
)

// authHandler handles the unauthenticated account flows.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public /api/v1/auth routes behind the IP rate limiter.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/v1/auth", authRateLimit(cfg))
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/verify-email", h.verifyEmail)
		auth.POST("/forgot-password", h.forgotPassword)
		auth.GET("/reset-password", h.checkResetToken)
		auth.POST("/reset-password", h.resetPassword)
		auth.POST("/refresh-tokens", h.refreshTokens)
	}
}

// registerSessionRoutes registers auth routes that need a valid access token.
func registerSessionRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)
	rg.POST("/auth/logout", h.logout)
}

func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to register account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account registered", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	account, tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Account: dto.ToAccountResponse(account), Tokens: *tokens})
}

func (h *authHandler) verifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token query parameter is required"})
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		respondError(c, err, "Email verification failed")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "email verified"})
}

func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Forgot password failed")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password reset email sent"})
}

// checkResetToken answers the GET a mail client makes when the reset link is opened.
func (h *authHandler) checkResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token query parameter is required"})
		return
	}

	if err := h.authService.CheckResetToken(c.Request.Context(), token); err != nil {
		respondError(c, err, "Reset token check failed")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "reset token is valid; POST the new password to this URL"})
}

func (h *authHandler) resetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token query parameter is required"})
		return
	}
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.ResetPassword(c.Request.Context(), token, req.Password)
	if err != nil {
		respondError(c, err, "Password reset failed")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *authHandler) refreshTokens(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.RefreshAuth(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Token refresh failed")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *authHandler) logout(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), accountID); err != nil {
		respondError(c, err, "Logout failed")
		return
	}
	c.Status(http.StatusNoContent)
}
