package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/payzen/payzen_backend/internal/utils/pagination"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service
func NewClientService(repo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: repo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, ownerID string, req *dto.CreateClientRequest) (*domain.Client, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: business owner is required", apperrors.ErrValidation)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", apperrors.ErrValidation)
	}
	normalized := *req
	normalized.Email = normalizeEmail(req.Email)
	normalized.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if err := validateStruct(normalized); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, ownerID, normalized.Email, ""); err != nil {
		return nil, err
	}

	now := s.Now()
	client := domain.Client{
		ClientID:          uuid.NewString(),
		BusinessOwnerID:   ownerID,
		ClientName:        domain.ClientFullName(normalized.FirstName, normalized.LastName),
		ClientEmail:       normalized.Email,
		ClientPhoneNumber: normalized.PhoneNumber,
		ClientAddress:     strings.TrimSpace(normalized.Address),
		InvoiceSequence:   0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("owner_id", ownerID))
		return nil, err
	}

	s.LogInfo(ctx, "Client created",
		slog.String("owner_id", ownerID),
		slog.String("client_id", client.ClientID))
	return &client, nil
}

// ensureEmailFree fails with ErrDuplicate when another client of ownerID uses email.
func (s *clientService) ensureEmailFree(ctx context.Context, ownerID, email, exceptClientID string) error {
	existing, err := s.clientRepo.FindClientByEmail(ctx, ownerID, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to check client email", slog.String("owner_id", ownerID))
		return err
	}
	if existing.ClientID == exceptClientID {
		return nil
	}
	return fmt.Errorf("%w: client email already exists", apperrors.ErrDuplicate)
}

// getOwnedClient loads a client and hides it from every owner but its own.
func (s *clientService) getOwnedClient(ctx context.Context, ownerID, clientID string) (*domain.Client, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get client", slog.String("client_id", clientID))
		}
		return nil, err
	}
	if client.BusinessOwnerID != ownerID {
		s.LogDebug(ctx, "Client belongs to another owner",
			slog.String("client_id", clientID),
			slog.String("owner_id", ownerID))
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, ownerID string, clientID string) (*domain.Client, error) {
	return s.getOwnedClient(ctx, ownerID, clientID)
}

func (s *clientService) GetClientByEmail(ctx context.Context, ownerID string, email string) (*domain.Client, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.ErrNotFound
	}
	client, err := s.clientRepo.FindClientByEmail(ctx, ownerID, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get client by email", slog.String("owner_id", ownerID))
		}
		return nil, err
	}
	return client, nil
}

// splitClientName returns the first word and the rest of a stored client name.
func splitClientName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}

func (s *clientService) UpdateClient(ctx context.Context, ownerID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.getOwnedClient(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		first, last := splitClientName(client.ClientName)
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		name := domain.ClientFullName(first, last)
		if name == "" {
			return nil, fmt.Errorf("%w: client name cannot be empty", apperrors.ErrValidation)
		}
		client.ClientName = name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != client.ClientEmail {
			if err := s.ensureEmailFree(ctx, ownerID, email, client.ClientID); err != nil {
				return nil, err
			}
			client.ClientEmail = email
		}
	}
	if req.PhoneNumber != nil {
		client.ClientPhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Address != nil {
		client.ClientAddress = strings.TrimSpace(*req.Address)
	}
	client.LastUpdatedAt = s.Now()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, ownerID string, clientID string) error {
	if _, err := s.getOwnedClient(ctx, ownerID, clientID); err != nil {
		return err
	}
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return err
	}
	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}

func (s *clientService) QueryClients(ctx context.Context, ownerID string, q dto.ClientQuery) (*domain.PagedResult[domain.Client], error) {
	if err := dto.ValidateClientFields(dto.SplitFields(q.Include), dto.SplitFields(q.Exclude)); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	page, limit := pagination.Normalize(q.Page, q.Limit)
	filter := domain.ClientFilter{
		BusinessOwnerID: ownerID,
		ClientName:      strings.TrimSpace(q.Name),
		ClientEmail:     normalizeEmail(q.Email),
	}

	total, err := s.clientRepo.CountClients(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count clients", slog.String("owner_id", ownerID))
		return nil, err
	}
	clients, err := s.clientRepo.FindClients(ctx, filter, limit, pagination.Offset(page, limit))
	if err != nil {
		s.LogError(ctx, err, "Failed to query clients", slog.String("owner_id", ownerID))
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}

	return &domain.PagedResult[domain.Client]{
		Items:    clients,
		PageInfo: pagination.NewPageInfo(page, limit, total),
	}, nil
}
