package domain

import (
	"time"
)

// ExchangeRate describes one quoted rate between two currencies for a
// tenant, provider, source, rate type and point in time. Records are
// read-only snapshots once handed to the conversion core; the only records
// the core itself creates are derived cross rates (see
// NewDerivedExchangeRate), which are never persisted.
type ExchangeRate struct {
	ExchangeRateID        string    `json:"exchangeRateID,omitempty"` // empty for derived records
	TenantID              string    `json:"tenantID"`
	RatesDataProviderCode *string   `json:"ratesDataProviderCode,omitempty"`
	RatesDataSource       *string   `json:"ratesDataSource,omitempty"`
	RateType              string    `json:"exchangeRateType"`
	Value                 RateValue `json:"exchangeRateValue"`
	FromCurrency          Currency  `json:"fromCurrency"`
	ToCurrency            Currency  `json:"toCurrency"`
	ValidFrom             time.Time `json:"validFromDateTime"`
	IsIndirect            bool      `json:"isIndirect"`
	FromCurrencyFactor    int64     `json:"fromCurrencyFactor"`
	ToCurrencyFactor      int64     `json:"toCurrencyFactor"`
	AuditFields
}

// NewDerivedExchangeRate builds the synthetic record produced by a
// reference currency derivation. It is the same value type as a stored
// record so downstream arithmetic treats it identically; the folded-in
// currency factors are normalized to 1 and the direction is always direct.
func NewDerivedExchangeRate(
	tenantID string,
	rateType string,
	value RateValue,
	from, to Currency,
	validFrom time.Time,
	providerCode, source *string,
) ExchangeRate {
	return ExchangeRate{
		TenantID:              tenantID,
		RatesDataProviderCode: providerCode,
		RatesDataSource:       source,
		RateType:              rateType,
		Value:                 value,
		FromCurrency:          from,
		ToCurrency:            to,
		ValidFrom:             validFrom,
		IsIndirect:            false,
		FromCurrencyFactor:    1,
		ToCurrencyFactor:      1,
	}
}

// ExchangeRateTypeDetail is the per rate type metadata driving
// determination: an optional reference currency enabling cross rate
// derivation and a flag enabling reciprocal pair matching. The zero value
// means "no reference currency, inversion not allowed".
type ExchangeRateTypeDetail struct {
	ReferenceCurrency  *Currency `json:"referenceCurrency,omitempty"`
	IsInversionAllowed bool      `json:"isInversionAllowed"`
}

// TenantSettings narrows eligible records to one provider and source pair.
// A nil *TenantSettings skips provider/source filtering and switches the
// determiner to the stricter wildcard duplicate detection rules.
type TenantSettings struct {
	RatesDataProviderCode string `json:"ratesDataProviderCode"`
	RatesDataSource       string `json:"ratesDataSource"`
}
