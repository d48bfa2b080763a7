package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_conversion_app/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_app/internal/core/services"
	"github.com/SscSPs/currency_conversion_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, tenantID string, fromCurrency, toCurrency *string, limit, offset int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, fromCurrency, toCurrency, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExchangeRateRepository
	service  portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRepo)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	creatorUserID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrency: "EUR",
		ToCurrency:   "USD",
		Value:        "1.0875",
		RateType:     "M",
		ValidFrom:    time.Date(2019, 9, 16, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.TenantID == tenantID &&
			r.FromCurrency.Code == "EUR" && r.ToCurrency.Code == "USD" &&
			r.Value.String() == "1.0875" &&
			r.FromCurrencyFactor == 1 && r.ToCurrencyFactor == 1 &&
			r.ExchangeRateID != "" &&
			r.CreatedBy == creatorUserID && r.LastUpdatedBy == creatorUserID
	})).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, tenantID, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("1.0875", rate.Value.String())
	suite.False(rate.IsIndirect)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NegativeValue() {
	req := dto.CreateExchangeRateRequest{
		FromCurrency: "EUR",
		ToCurrency:   "USD",
		Value:        "-1",
		RateType:     "M",
		ValidFrom:    time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(context.Background(), "t1", req, "u1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIllegalExchangeRate)
	suite.Nil(rate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCurrency() {
	req := dto.CreateExchangeRateRequest{
		FromCurrency: "EUR",
		ToCurrency:   "EUR",
		Value:        "1",
		RateType:     "M",
		ValidFrom:    time.Now(),
	}

	_, err := suite.service.CreateExchangeRate(context.Background(), "t1", req, "u1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCurrency() {
	req := dto.CreateExchangeRateRequest{
		FromCurrency: "XXX",
		ToCurrency:   "USD",
		Value:        "1",
		RateType:     "M",
		ValidFrom:    time.Now(),
	}

	_, err := suite.service.CreateExchangeRate(context.Background(), "t1", req, "u1")

	suite.ErrorIs(err, apperrors.ErrInvalidCurrencyCode)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SaveError() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrency: "EUR",
		ToCurrency:   "USD",
		Value:        "1.1",
		RateType:     "M",
		ValidFrom:    time.Now(),
	}
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(expectedErr).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, "t1", req, "u1")

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(rate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	from := "EUR"
	stored := []domain.ExchangeRate{{ExchangeRateID: uuid.NewString(), TenantID: tenantID}}

	suite.mockRepo.On("ListExchangeRates", ctx, tenantID, &from, (*string)(nil), 100, 0).Return(stored, nil).Once()

	rates, err := suite.service.ListExchangeRates(ctx, tenantID, dto.ListExchangeRatesRequest{FromCurrency: &from, Limit: 100})

	suite.Require().NoError(err)
	suite.Equal(stored, rates)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_EmptyNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListExchangeRates", ctx, "t1", (*string)(nil), (*string)(nil), 0, 0).Return(nil, nil).Once()

	rates, err := suite.service.ListExchangeRates(ctx, "t1", dto.ListExchangeRatesRequest{})

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
