package domain

import "time"

// Account is a registered business that owns clients and issues invoices.
type Account struct {
	AccountID    string `json:"accountID"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsVerified   bool   `json:"isVerified"`
	Description  string `json:"description,omitempty"`
	Instagram    string `json:"instagram,omitempty"`

	// Only the SHA-256 of the active refresh token is kept; issuing a new one replaces it.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
}

// HasActiveRefreshToken reports whether a refresh token is stored and not yet expired at now.
func (a *Account) HasActiveRefreshToken(now time.Time) bool {
	if a.RefreshTokenHash == "" || a.RefreshTokenExpiryTime == nil {
		return false
	}
	return now.Before(*a.RefreshTokenExpiryTime)
}
