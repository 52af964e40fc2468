package domain

import "time"

// TokenType identifies what a signed token may be used for.
type TokenType string

const (
	TokenTypeAccess        TokenType = "access"
	TokenTypeRefresh       TokenType = "refresh"
	TokenTypeVerifyEmail   TokenType = "verifyEmail"
	TokenTypeResetPassword TokenType = "resetPassword"
)

// IsValid reports whether t is a known token type.
func (t TokenType) IsValid() bool {
	switch t {
	case TokenTypeAccess, TokenTypeRefresh, TokenTypeVerifyEmail, TokenTypeResetPassword:
		return true
	}
	return false
}

// IsSingleUse reports whether tokens of this type are stored as Token records and blacklisted on use.
func (t TokenType) IsSingleUse() bool {
	return t == TokenTypeVerifyEmail || t == TokenTypeResetPassword
}

// Token is a persisted single-use credential. Refresh tokens live on the Account instead
// and are surfaced as a Token with an empty TokenID when verified.
type Token struct {
	TokenID     string    `json:"tokenID"`
	Token       string    `json:"-"`
	AccountID   string    `json:"accountID"`
	Type        TokenType `json:"type"`
	Expires     time.Time `json:"expires"`
	Blacklisted bool      `json:"blacklisted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsExpired reports whether the persisted expiry has passed at now.
func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.Expires)
}

// IssuedToken is a signed token and its expiry.
type IssuedToken struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is the pair returned to a client on login, refresh and password reset.
type AuthTokens struct {
	Access  IssuedToken `json:"access"`
	Refresh IssuedToken `json:"refresh"`
}
