package mapping

import (
	"database/sql"

	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:        d.AccountID,
		BusinessName:     d.BusinessName,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		IsVerified:       d.IsVerified,
		Description:      nullString(d.Description),
		Instagram:        nullString(d.Instagram),
		RefreshTokenHash: nullString(d.RefreshTokenHash),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:        m.AccountID,
		BusinessName:     m.BusinessName,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		IsVerified:       m.IsVerified,
		Description:      m.Description.String,
		Instagram:        m.Instagram.String,
		RefreshTokenHash: m.RefreshTokenHash.String,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}
