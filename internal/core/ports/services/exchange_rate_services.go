package services

import (
	"context"

	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data.
type ExchangeRateReaderSvc interface {
	// ListExchangeRates retrieves stored records for a tenant, optionally
	// filtered by currency pair.
	ListExchangeRates(ctx context.Context, tenantID string, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data.
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate record.
	CreateExchangeRate(ctx context.Context, tenantID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
