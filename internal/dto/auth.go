package dto

import "github.com/payzen/payzen_backend/internal/core/domain"

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the new password; the token travels in the query string.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by login.
type AuthResponse struct {
	Account AccountResponse   `json:"account"`
	Tokens  domain.AuthTokens `json:"tokens"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
