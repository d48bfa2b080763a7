package domain

import "time"

// ConversionParameter describes one non-fixed conversion request: the rate
// to apply is looked up by rate type as of a point in time.
type ConversionParameter struct {
	FromCurrency Currency     `json:"fromCurrency"`
	ToCurrency   Currency     `json:"toCurrency"`
	FromAmount   DecimalValue `json:"fromAmount"`
	RateType     string       `json:"exchangeRateType"`
	AsOf         time.Time    `json:"conversionAsOfDateTime"`
}

// FixedConversionParameter describes one conversion with a caller-supplied
// rate; no lookup, directionality or currency factor concepts apply.
type FixedConversionParameter struct {
	FromCurrency Currency     `json:"fromCurrency"`
	ToCurrency   Currency     `json:"toCurrency"`
	FromAmount   DecimalValue `json:"fromAmount"`
	FixedRate    RateValue    `json:"fixedRateValue"`
}

// ConversionResult is the outcome of a non-fixed conversion: the record
// that was used (possibly derived), the exact converted amount, and the
// amount rounded half-up to the target currency's fraction digits.
type ConversionResult struct {
	ExchangeRate              ExchangeRate `json:"exchangeRate"`
	ConvertedAmount           DecimalValue `json:"convertedAmount"`
	RoundedOffConvertedAmount DecimalValue `json:"roundedOffConvertedAmount"`
}

// FixedConversionResult is the outcome of a fixed-rate conversion.
type FixedConversionResult struct {
	ConvertedAmount           DecimalValue `json:"convertedAmount"`
	RoundedOffConvertedAmount DecimalValue `json:"roundedOffConvertedAmount"`
}
