package services

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/dto"
)

// ClientReaderSvc defines read operations for an owner's clients
type ClientReaderSvc interface {
	GetClientByID(ctx context.Context, ownerID string, clientID string) (*domain.Client, error)
	GetClientByEmail(ctx context.Context, ownerID string, email string) (*domain.Client, error)

	// QueryClients returns one page of the owner's clients. The include and exclude
	// field lists of q are validated but projection is left to the caller.
	QueryClients(ctx context.Context, ownerID string, q dto.ClientQuery) (*domain.PagedResult[domain.Client], error)
}

// ClientWriterSvc defines write operations for an owner's clients
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, ownerID string, req *dto.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, ownerID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, ownerID string, clientID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
