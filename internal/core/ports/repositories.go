package ports

import (
	"context"

	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
)

// ExchangeRateRepository defines persistence operations for exchange rate
// records.
type ExchangeRateRepository interface {
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	ListExchangeRates(ctx context.Context, tenantID string, fromCurrency, toCurrency *string, limit, offset int) ([]domain.ExchangeRate, error)
}
