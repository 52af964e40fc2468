package mapping

import (
	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/models"
)

// ToModelToken converts a domain Token to a model Token
func ToModelToken(d domain.Token) models.Token {
	return models.Token{
		TokenID:     d.TokenID,
		Token:       d.Token,
		AccountID:   d.AccountID,
		Type:        string(d.Type),
		Expires:     d.Expires,
		Blacklisted: d.Blacklisted,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainToken converts a model Token to a domain Token
func ToDomainToken(m models.Token) domain.Token {
	return domain.Token{
		TokenID:     m.TokenID,
		Token:       m.Token,
		AccountID:   m.AccountID,
		Type:        domain.TokenType(m.Type),
		Expires:     m.Expires,
		Blacklisted: m.Blacklisted,
		CreatedAt:   m.CreatedAt,
	}
}
