package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/core/ports"
	"github.com/SscSPs/currency_conversion_app/internal/dto"
	"github.com/SscSPs/currency_conversion_app/internal/utils/isocurrency"
	"github.com/google/uuid"
)

// ExchangeRateService provides business logic for exchange rate records.
type ExchangeRateService struct {
	rateRepo ports.ExchangeRateRepository
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo ports.ExchangeRateRepository) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo}
}

// CreateExchangeRate handles the creation of a new exchange rate record.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, tenantID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	// Basic format validation is handled by DTO binding tags.
	value, err := domain.NewRateValue(req.Value)
	if err != nil {
		return nil, err
	}
	from, err := isocurrency.Resolve(req.FromCurrency)
	if err != nil {
		return nil, err
	}
	to, err := isocurrency.Resolve(req.ToCurrency)
	if err != nil {
		return nil, err
	}
	if from.Equal(to) {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	fromFactor := req.FromCurrencyFactor
	if fromFactor == 0 {
		fromFactor = 1
	}
	toFactor := req.ToCurrencyFactor
	if toFactor == 0 {
		toFactor = 1
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:        uuid.NewString(),
		TenantID:              tenantID,
		RatesDataProviderCode: req.RatesDataProviderCode,
		RatesDataSource:       req.RatesDataSource,
		RateType:              req.RateType,
		Value:                 value,
		FromCurrency:          from,
		ToCurrency:            to,
		ValidFrom:             req.ValidFrom,
		IsIndirect:            req.IsIndirect,
		FromCurrencyFactor:    fromFactor,
		ToCurrencyFactor:      toFactor,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	return &rate, nil
}

// ListExchangeRates retrieves stored records for a tenant with optional
// currency pair filters.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, tenantID string, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, tenantID, req.FromCurrency, req.ToCurrency, req.Limit, req.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
