package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		ClientRepo:  newPgxClientRepository(dbPool),
		InvoiceRepo: newPgxInvoiceRepository(dbPool),
		TokenRepo:   newPgxTokenRepository(dbPool),
		PaymentRepo: newPgxPaymentRepository(dbPool),
	}
}
