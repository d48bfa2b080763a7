package dto

import (
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
)

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Code                  string `json:"currencyCode"`
	NumericCode           string `json:"numericCode"`
	DefaultFractionDigits int    `json:"defaultFractionDigits"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(curr domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:                  curr.Code,
		NumericCode:           curr.NumericCode,
		DefaultFractionDigits: curr.DefaultFractionDigits,
	}
}

// ToListCurrencyResponse converts a slice of currencies to response DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(curr)
	}
	return res
}
