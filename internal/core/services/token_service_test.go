package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/core/services"
	"github.com/payzen/payzen_backend/internal/platform/config"
	"github.com/payzen/payzen_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                        "test-secret",
		JWTIssuer:                        "payzen-test",
		AccessTokenExpiryDuration:        30 * time.Minute,
		RefreshTokenExpiryDuration:       24 * time.Hour,
		VerifyEmailTokenExpiryDuration:   24 * time.Hour,
		ResetPasswordTokenExpiryDuration: 10 * time.Minute,
		BaseURL:                          "https://api.payzen.test",
	}
}

type TokenServiceTestSuite struct {
	suite.Suite
	tokenRepo   *MockTokenRepository
	accountRepo *MockAccountRepository
	now         time.Time
	service     portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.tokenRepo = new(MockTokenRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewTokenService(testConfig(), suite.tokenRepo, suite.accountRepo,
		services.WithTokenClock(func() time.Time { return suite.now }))
}

func (suite *TokenServiceTestSuite) TestIssueAndVerifyAccessToken() {
	ctx := context.Background()
	issued, err := suite.service.IssueToken(ctx, "acc-1", domain.TokenTypeAccess, 30*time.Minute)
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(30*time.Minute), issued.Expires)

	accountID, err := suite.service.VerifyAccessToken(ctx, issued.Token)
	suite.Require().NoError(err)
	suite.Equal("acc-1", accountID)
}

func (suite *TokenServiceTestSuite) TestVerifyToken_WrongTypeIsInvalidSignature() {
	ctx := context.Background()
	issued, err := suite.service.IssueToken(ctx, "acc-1", domain.TokenTypeVerifyEmail, time.Hour)
	suite.Require().NoError(err)

	_, err = suite.service.VerifyToken(ctx, issued.Token, domain.TokenTypeResetPassword)
	suite.ErrorIs(err, apperrors.ErrInvalidSignature)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestVerifyToken_TamperedIsInvalidSignature() {
	_, err := suite.service.VerifyAccessToken(context.Background(), "not.a.jwt")
	suite.ErrorIs(err, apperrors.ErrInvalidSignature)
}

func (suite *TokenServiceTestSuite) TestVerifyToken_SignedExpiryPassed() {
	ctx := context.Background()
	issued, err := suite.service.IssueToken(ctx, "acc-1", domain.TokenTypeAccess, time.Minute)
	suite.Require().NoError(err)

	suite.now = suite.now.Add(time.Hour)
	_, err = suite.service.VerifyAccessToken(ctx, issued.Token)
	suite.ErrorIs(err, apperrors.ErrTokenExpired)
}

func (suite *TokenServiceTestSuite) TestVerifyToken_PersistedExpiryIsAuthoritative() {
	ctx := context.Background()
	issued, err := suite.service.IssueToken(ctx, "acc-1", domain.TokenTypeResetPassword, time.Hour)
	suite.Require().NoError(err)

	record := &domain.Token{
		TokenID:   "tok-1",
		Token:     issued.Token,
		AccountID: "acc-1",
		Type:      domain.TokenTypeResetPassword,
		Expires:   suite.now.Add(10 * time.Minute),
	}
	suite.tokenRepo.On("FindActiveToken", ctx, issued.Token, domain.TokenTypeResetPassword, "acc-1").Return(record, nil).Once()

	suite.now = suite.now.Add(20 * time.Minute)
	_, err = suite.service.VerifyToken(ctx, issued.Token, domain.TokenTypeResetPassword)
	suite.ErrorIs(err, apperrors.ErrTokenExpired)
	suite.tokenRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestVerifyToken_ConsumedTokenNotFound() {
	ctx := context.Background()
	issued, err := suite.service.IssueToken(ctx, "acc-1", domain.TokenTypeResetPassword, time.Hour)
	suite.Require().NoError(err)

	suite.tokenRepo.On("FindActiveToken", ctx, issued.Token, domain.TokenTypeResetPassword, "acc-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err = suite.service.VerifyToken(ctx, issued.Token, domain.TokenTypeResetPassword)
	suite.ErrorIs(err, apperrors.ErrTokenNotFound)
}

func (suite *TokenServiceTestSuite) TestPersistToken_SingleUse() {
	ctx := context.Background()
	issued := domain.IssuedToken{Token: "signed", Expires: suite.now.Add(time.Hour)}

	suite.tokenRepo.On("SaveToken", ctx, mock.MatchedBy(func(t domain.Token) bool {
		return t.Token == "signed" && t.AccountID == "acc-1" && t.Type == domain.TokenTypeVerifyEmail &&
			t.Expires.Equal(issued.Expires) && t.TokenID != "" && !t.Blacklisted
	})).Return(nil).Once()

	err := suite.service.PersistToken(ctx, "acc-1", domain.TokenTypeVerifyEmail, issued)
	suite.Require().NoError(err)
	suite.tokenRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestPersistToken_AccessRejected() {
	err := suite.service.PersistToken(context.Background(), "acc-1", domain.TokenTypeAccess, domain.IssuedToken{Token: "x"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.tokenRepo.AssertNotCalled(suite.T(), "SaveToken", mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestIssueToken_EmptySecretIsSigningError() {
	cfg := testConfig()
	cfg.JWTSecret = ""
	svc := services.NewTokenService(cfg, suite.tokenRepo, suite.accountRepo)

	_, err := svc.IssueToken(context.Background(), "acc-1", domain.TokenTypeAccess, time.Minute)
	suite.ErrorIs(err, apperrors.ErrSigning)
}

func (suite *TokenServiceTestSuite) TestGenerateAuthTokens_RefreshRoundTrip() {
	ctx := context.Background()
	var storedHash string
	var storedExpiry time.Time
	suite.accountRepo.On("UpdateRefreshToken", ctx, "acc-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
			storedExpiry = args.Get(3).(time.Time)
		}).Return(nil).Once()

	tokens, err := suite.service.GenerateAuthTokens(ctx, "acc-1")
	suite.Require().NoError(err)
	suite.NotEqual(tokens.Access.Token, tokens.Refresh.Token)
	suite.Equal(utils.HashRefreshToken(tokens.Refresh.Token), storedHash)
	suite.Equal(tokens.Refresh.Expires, storedExpiry)

	account := &domain.Account{AccountID: "acc-1", RefreshTokenHash: storedHash, RefreshTokenExpiryTime: &storedExpiry}
	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Twice()

	record, err := suite.service.VerifyToken(ctx, tokens.Refresh.Token, domain.TokenTypeRefresh)
	suite.Require().NoError(err)
	suite.Equal("acc-1", record.AccountID)

	// An access token never passes as a refresh token.
	_, err = suite.service.VerifyToken(ctx, tokens.Access.Token, domain.TokenTypeRefresh)
	suite.ErrorIs(err, apperrors.ErrInvalidSignature)

	// A rotated refresh token no longer matches the stored hash.
	account.RefreshTokenHash = utils.HashRefreshToken("newer")
	_, err = suite.service.VerifyToken(ctx, tokens.Refresh.Token, domain.TokenTypeRefresh)
	suite.ErrorIs(err, apperrors.ErrTokenNotFound)
}

func (suite *TokenServiceTestSuite) TestConsumeToken() {
	ctx := context.Background()
	suite.tokenRepo.On("BlacklistToken", ctx, "tok-1").Return(nil).Once()
	suite.accountRepo.On("ClearRefreshToken", ctx, "acc-1").Return(nil).Once()

	suite.Require().NoError(suite.service.ConsumeToken(ctx, &domain.Token{TokenID: "tok-1", Type: domain.TokenTypeVerifyEmail}))
	suite.Require().NoError(suite.service.ConsumeToken(ctx, &domain.Token{AccountID: "acc-1", Type: domain.TokenTypeRefresh}))
	suite.ErrorIs(suite.service.ConsumeToken(ctx, nil), apperrors.ErrValidation)

	suite.tokenRepo.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestConsumeToken_AlreadyConsumed() {
	ctx := context.Background()
	suite.tokenRepo.On("BlacklistToken", ctx, "tok-1").Return(apperrors.ErrTokenNotFound).Once()

	err := suite.service.ConsumeToken(ctx, &domain.Token{TokenID: "tok-1", Type: domain.TokenTypeResetPassword})
	suite.ErrorIs(err, apperrors.ErrTokenNotFound)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
