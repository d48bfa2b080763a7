package dto

import (
	"time"

	"github.com/SscSPs/currency_conversion_app/internal/core/conversion"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
)

// TenantSettingsOverride narrows a batch to one provider/source pair. Both
// fields are required whenever an override is supplied at all.
type TenantSettingsOverride struct {
	RatesDataProviderCode string `json:"ratesDataProviderCode" binding:"required"`
	RatesDataSource       string `json:"ratesDataSource" binding:"required"`
}

// ConversionRequest defines one non-fixed conversion. The conversion date
// defaults to the current time when omitted.
type ConversionRequest struct {
	FromCurrency string     `json:"fromCurrency" binding:"required,currency_code"`
	ToCurrency   string     `json:"toCurrency" binding:"required,currency_code"`
	Amount       string     `json:"amount" binding:"required"`
	RateType     string     `json:"exchangeRateType" binding:"required"`
	AsOf         *time.Time `json:"conversionAsOfDateTime,omitempty"`
}

// BulkConversionRequest defines a batch of non-fixed conversions.
type BulkConversionRequest struct {
	Requests []ConversionRequest     `json:"conversionRequests" binding:"required,min=1,max=1000,dive"`
	Override *TenantSettingsOverride `json:"tenantSettingsOverride,omitempty"`
}

// FixedConversionRequest defines one conversion with a caller-supplied rate.
type FixedConversionRequest struct {
	FromCurrency string `json:"fromCurrency" binding:"required,currency_code"`
	ToCurrency   string `json:"toCurrency" binding:"required,currency_code"`
	Amount       string `json:"amount" binding:"required"`
	FixedRate    string `json:"fixedRateValue" binding:"required"`
}

// BulkFixedConversionRequest defines a batch of fixed-rate conversions.
type BulkFixedConversionRequest struct {
	Requests []FixedConversionRequest `json:"conversionRequests" binding:"required,min=1,max=1000,dive"`
}

// ConversionEntryResponse is the outcome for one batch item: either the
// converted amounts plus the record used, or an error message.
type ConversionEntryResponse struct {
	FromCurrency              string                `json:"fromCurrency"`
	ToCurrency                string                `json:"toCurrency"`
	FromAmount                string                `json:"fromAmount"`
	ConvertedAmount           string                `json:"convertedAmount,omitempty"`
	RoundedOffConvertedAmount string                `json:"roundedOffConvertedAmount,omitempty"`
	ExchangeRate              *ExchangeRateResponse `json:"exchangeRate,omitempty"`
	Error                     string                `json:"error,omitempty"`
}

// BulkConversionResponse holds one entry per request, in request order.
type BulkConversionResponse struct {
	Results []ConversionEntryResponse `json:"conversionResults"`
}

// ToConversionEntryResponse converts one orchestrator entry to its DTO.
func ToConversionEntryResponse(entry conversion.ConversionEntry) ConversionEntryResponse {
	resp := ConversionEntryResponse{
		FromCurrency: entry.Parameter.FromCurrency.Code,
		ToCurrency:   entry.Parameter.ToCurrency.Code,
		FromAmount:   entry.Parameter.FromAmount.String(),
	}
	if entry.Err != nil {
		resp.Error = entry.Err.Error()
		return resp
	}
	rate := ToExchangeRateResponse(&entry.Result.ExchangeRate)
	resp.ConvertedAmount = entry.Result.ConvertedAmount.String()
	resp.RoundedOffConvertedAmount = entry.Result.RoundedOffConvertedAmount.String()
	resp.ExchangeRate = &rate
	return resp
}

// ToFixedConversionEntryResponse converts one fixed-rate entry to its DTO.
func ToFixedConversionEntryResponse(entry conversion.FixedConversionEntry) ConversionEntryResponse {
	resp := ConversionEntryResponse{
		FromCurrency: entry.Parameter.FromCurrency.Code,
		ToCurrency:   entry.Parameter.ToCurrency.Code,
		FromAmount:   entry.Parameter.FromAmount.String(),
	}
	if entry.Err != nil {
		resp.Error = entry.Err.Error()
		return resp
	}
	resp.ConvertedAmount = entry.Result.ConvertedAmount.String()
	resp.RoundedOffConvertedAmount = entry.Result.RoundedOffConvertedAmount.String()
	return resp
}

// ConversionResponse is the outcome of a single conversion.
type ConversionResponse struct {
	ConvertedAmount           string                `json:"convertedAmount"`
	RoundedOffConvertedAmount string                `json:"roundedOffConvertedAmount"`
	ExchangeRate              *ExchangeRateResponse `json:"exchangeRate,omitempty"`
}

// ToConversionResponse converts a single non-fixed result to its DTO.
func ToConversionResponse(res *domain.ConversionResult) ConversionResponse {
	rate := ToExchangeRateResponse(&res.ExchangeRate)
	return ConversionResponse{
		ConvertedAmount:           res.ConvertedAmount.String(),
		RoundedOffConvertedAmount: res.RoundedOffConvertedAmount.String(),
		ExchangeRate:              &rate,
	}
}

// ToFixedConversionResponse converts a single fixed-rate result to its DTO.
func ToFixedConversionResponse(res *domain.FixedConversionResult) ConversionResponse {
	return ConversionResponse{
		ConvertedAmount:           res.ConvertedAmount.String(),
		RoundedOffConvertedAmount: res.RoundedOffConvertedAmount.String(),
	}
}

// ToBulkConversionResponse converts a non-fixed bulk result to its DTO.
func ToBulkConversionResponse(bulk conversion.BulkConversionResult) BulkConversionResponse {
	results := make([]ConversionEntryResponse, len(bulk))
	for i, entry := range bulk {
		results[i] = ToConversionEntryResponse(entry)
	}
	return BulkConversionResponse{Results: results}
}

// ToBulkFixedConversionResponse converts a fixed bulk result to its DTO.
func ToBulkFixedConversionResponse(bulk conversion.BulkFixedConversionResult) BulkConversionResponse {
	results := make([]ConversionEntryResponse, len(bulk))
	for i, entry := range bulk {
		results[i] = ToFixedConversionEntryResponse(entry)
	}
	return BulkConversionResponse{Results: results}
}
