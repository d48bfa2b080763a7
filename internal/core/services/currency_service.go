package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/utils/isocurrency"
)

// CurrencyService exposes the static ISO 4217 currency metadata.
type CurrencyService struct{}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService() *CurrencyService {
	return &CurrencyService{}
}

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (domain.Currency, error) {
	currency, err := isocurrency.Resolve(currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCurrencyCode) {
			return domain.Currency{}, fmt.Errorf("%w: currency %q", apperrors.ErrNotFound, currencyCode)
		}
		return domain.Currency{}, err
	}
	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return isocurrency.All(), nil
}
