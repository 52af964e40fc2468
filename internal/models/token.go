package models

import "time"

// Token is the tokens table row for single-use verify and reset tokens.
type Token struct {
	TokenID     string    `db:"token_id"`
	Token       string    `db:"token"`
	AccountID   string    `db:"account_id"`
	Type        string    `db:"type"`
	Expires     time.Time `db:"expires"`
	Blacklisted bool      `db:"blacklisted"`
	CreatedAt   time.Time `db:"created_at"`
}
