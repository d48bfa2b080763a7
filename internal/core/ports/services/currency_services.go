package services

import (
	"context"

	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency metadata. The
// currency set is static ISO 4217 data, so there is no writer interface.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencySvcFacade combines all currency service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
