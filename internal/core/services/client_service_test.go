package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/core/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClientServiceTestSuite struct {
	suite.Suite
	mockRepo *MockClientRepository
	service  portssvc.ClientSvcFacade
	ownerID  string
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockClientRepository)
	suite.service = services.NewClientService(suite.mockRepo)
	suite.ownerID = uuid.NewString()
}

func validClientRequest() *dto.CreateClientRequest {
	return &dto.CreateClientRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "Ada@Client.com",
		PhoneNumber: "08031234567",
		Address:     "12 Marina Road, Lagos",
	}
}

func (suite *ClientServiceTestSuite) TestCreateClient_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindClientByEmail", ctx, suite.ownerID, "ada@client.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.ClientName == "Ada Obi" && c.BusinessOwnerID == suite.ownerID && c.InvoiceSequence == 0
	})).Return(nil).Once()

	client, err := suite.service.CreateClient(ctx, suite.ownerID, validClientRequest())
	suite.Require().NoError(err)
	suite.Equal("Ada Obi", client.ClientName)
	suite.Equal("ada@client.com", client.ClientEmail)
	suite.Equal(int64(0), client.InvoiceSequence)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestCreateClient_PhoneLength() {
	ctx := context.Background()
	suite.mockRepo.On("FindClientByEmail", ctx, suite.ownerID, "ada@client.com").Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).Return(nil)

	for phone, ok := range map[string]bool{
		"08031234567":    true,
		"+2348031234567": true,
		"0803123456":     false,
		"080312345678":   false,
	} {
		req := validClientRequest()
		req.PhoneNumber = phone
		_, err := suite.service.CreateClient(ctx, suite.ownerID, req)
		if ok {
			suite.NoError(err, phone)
		} else {
			suite.ErrorIs(err, apperrors.ErrValidation, phone)
		}
	}
}

func (suite *ClientServiceTestSuite) TestCreateClient_DuplicateEmail() {
	ctx := context.Background()
	suite.mockRepo.On("FindClientByEmail", ctx, suite.ownerID, "ada@client.com").Return(&domain.Client{ClientID: "c-1"}, nil).Once()

	_, err := suite.service.CreateClient(ctx, suite.ownerID, validClientRequest())
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestCreateClient_RequiresOwnerAndBody() {
	_, err := suite.service.CreateClient(context.Background(), "", validClientRequest())
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateClient(context.Background(), suite.ownerID, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClientServiceTestSuite) TestGetClientByID_OtherOwnerIsNotFound() {
	ctx := context.Background()
	clientID := uuid.NewString()
	suite.mockRepo.On("FindClientByID", ctx, clientID).Return(&domain.Client{ClientID: clientID, BusinessOwnerID: uuid.NewString()}, nil).Once()

	_, err := suite.service.GetClientByID(ctx, suite.ownerID, clientID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ClientServiceTestSuite) TestUpdateClient_NotFoundFirst() {
	ctx := context.Background()
	clientID := uuid.NewString()
	suite.mockRepo.On("FindClientByID", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	name := "Grace"
	_, err := suite.service.UpdateClient(ctx, suite.ownerID, clientID, dto.UpdateClientRequest{FirstName: &name})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestUpdateClient_ChangesFirstName() {
	ctx := context.Background()
	clientID := uuid.NewString()
	existing := &domain.Client{ClientID: clientID, BusinessOwnerID: suite.ownerID, ClientName: "Ada Obi", InvoiceSequence: 4}
	suite.mockRepo.On("FindClientByID", ctx, clientID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.ClientName == "Grace Obi" && c.InvoiceSequence == 4
	})).Return(nil).Once()

	name := "Grace"
	client, err := suite.service.UpdateClient(ctx, suite.ownerID, clientID, dto.UpdateClientRequest{FirstName: &name})
	suite.Require().NoError(err)
	suite.Equal("Grace Obi", client.ClientName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestDeleteClient() {
	ctx := context.Background()
	clientID := uuid.NewString()
	suite.mockRepo.On("FindClientByID", ctx, clientID).Return(&domain.Client{ClientID: clientID, BusinessOwnerID: suite.ownerID}, nil).Once()
	suite.mockRepo.On("DeleteClient", ctx, clientID).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteClient(ctx, suite.ownerID, clientID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestQueryClients_Pagination() {
	ctx := context.Background()
	filter := domain.ClientFilter{BusinessOwnerID: suite.ownerID}
	suite.mockRepo.On("CountClients", ctx, filter).Return(45, nil).Once()
	suite.mockRepo.On("FindClients", ctx, filter, 20, 20).Return([]domain.Client{{ClientID: "c-21"}}, nil).Once()

	page, err := suite.service.QueryClients(ctx, suite.ownerID, dto.ClientQuery{Page: 2})
	suite.Require().NoError(err)
	suite.Equal(2, page.Page)
	suite.Equal(20, page.Limit)
	suite.Equal(45, page.Count)
	suite.Equal(3, page.TotalPages)
	suite.True(page.HasNextPage)
	suite.True(page.HasPreviousPage)
	suite.Len(page.Items, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestQueryClients_LimitCappedAndEmpty() {
	ctx := context.Background()
	filter := domain.ClientFilter{BusinessOwnerID: suite.ownerID, ClientName: "ada"}
	suite.mockRepo.On("CountClients", ctx, filter).Return(0, nil).Once()
	suite.mockRepo.On("FindClients", ctx, filter, 100, 0).Return(nil, nil).Once()

	page, err := suite.service.QueryClients(ctx, suite.ownerID, dto.ClientQuery{Limit: 500, Name: "ada"})
	suite.Require().NoError(err)
	suite.NotNil(page.Items)
	suite.Empty(page.Items)
	suite.Equal(0, page.TotalPages)
	suite.False(page.HasNextPage)
}

func (suite *ClientServiceTestSuite) TestQueryClients_UnknownField() {
	_, err := suite.service.QueryClients(context.Background(), suite.ownerID, dto.ClientQuery{Include: "clientName,passwordHash"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountClients", mock.Anything, mock.Anything)
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
