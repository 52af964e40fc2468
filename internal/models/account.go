package models

import (
	"database/sql"
)

// Account is the accounts table row.
type Account struct {
	AccountID    string         `db:"account_id"`
	BusinessName string         `db:"business_name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	IsVerified   bool           `db:"is_verified"`
	Description  sql.NullString `db:"description"`
	Instagram    sql.NullString `db:"instagram"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	AuditFields
}
