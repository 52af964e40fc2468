package repositories

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// ClientReader defines read operations for clients
type ClientReader interface {
	// FindClientByID retrieves a client by its ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientByEmail retrieves a client of the given owner by email, compared case-insensitively.
	FindClientByEmail(ctx context.Context, businessOwnerID string, email string) (*domain.Client, error)

	// FindClients retrieves a page of clients matching filter.
	FindClients(ctx context.Context, filter domain.ClientFilter, limit int, offset int) ([]domain.Client, error)

	// CountClients counts all clients matching filter.
	CountClients(ctx context.Context, filter domain.ClientFilter) (int, error)
}

// ClientWriter defines write operations for clients
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates a client's contact details. The invoice sequence is never written here.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client.
	DeleteClient(ctx context.Context, clientID string) error
}

// InvoiceSequencer hands out per-client invoice sequence numbers
type InvoiceSequencer interface {
	// NextInvoiceSequence atomically increments the client's invoice sequence and
	// returns the new value. Concurrent callers never observe the same value.
	NextInvoiceSequence(ctx context.Context, clientID string) (int64, error)
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	InvoiceSequencer
}
