package dto

import (
	"time"

	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
)

// CreateExchangeRateRequest defines the data needed to store a new exchange
// rate record. Factors default to 1 when omitted.
type CreateExchangeRateRequest struct {
	FromCurrency          string    `json:"fromCurrency" binding:"required,currency_code"`
	ToCurrency            string    `json:"toCurrency" binding:"required,currency_code"`
	Value                 string    `json:"exchangeRateValue" binding:"required"`
	RateType              string    `json:"exchangeRateType" binding:"required"`
	ValidFrom             time.Time `json:"validFromDateTime" binding:"required"`
	RatesDataProviderCode *string   `json:"ratesDataProviderCode,omitempty"`
	RatesDataSource       *string   `json:"ratesDataSource,omitempty"`
	IsIndirect            bool      `json:"isIndirect"`
	FromCurrencyFactor    int64     `json:"fromCurrencyFactor,omitempty" binding:"omitempty,gt=0"`
	ToCurrencyFactor      int64     `json:"toCurrencyFactor,omitempty" binding:"omitempty,gt=0"`
}

// ListExchangeRatesRequest carries the optional query filters for listing.
type ListExchangeRatesRequest struct {
	FromCurrency *string `form:"fromCurrency" binding:"omitempty,currency_code"`
	ToCurrency   *string `form:"toCurrency" binding:"omitempty,currency_code"`
	Limit        int     `form:"limit,default=100" binding:"omitempty,gt=0,lte=1000"`
	Offset       int     `form:"offset" binding:"omitempty,gte=0"`
}

// ExchangeRateResponse defines the data returned for an exchange rate
// record. Derived records have an empty exchangeRateID.
type ExchangeRateResponse struct {
	ExchangeRateID        string    `json:"exchangeRateID,omitempty"`
	TenantID              string    `json:"tenantID"`
	RatesDataProviderCode *string   `json:"ratesDataProviderCode,omitempty"`
	RatesDataSource       *string   `json:"ratesDataSource,omitempty"`
	RateType              string    `json:"exchangeRateType"`
	Value                 string    `json:"exchangeRateValue"`
	FromCurrency          string    `json:"fromCurrency"`
	ToCurrency            string    `json:"toCurrency"`
	ValidFrom             time.Time `json:"validFromDateTime"`
	IsIndirect            bool      `json:"isIndirect"`
	FromCurrencyFactor    int64     `json:"fromCurrencyFactor"`
	ToCurrencyFactor      int64     `json:"toCurrencyFactor"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:        rate.ExchangeRateID,
		TenantID:              rate.TenantID,
		RatesDataProviderCode: rate.RatesDataProviderCode,
		RatesDataSource:       rate.RatesDataSource,
		RateType:              rate.RateType,
		Value:                 rate.Value.String(),
		FromCurrency:          rate.FromCurrency.Code,
		ToCurrency:            rate.ToCurrency.Code,
		ValidFrom:             rate.ValidFrom,
		IsIndirect:            rate.IsIndirect,
		FromCurrencyFactor:    rate.FromCurrencyFactor,
		ToCurrencyFactor:      rate.ToCurrencyFactor,
	}
}

// ToListExchangeRateResponse converts a slice of records to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
