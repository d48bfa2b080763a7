// Package isocurrency maps ISO 4217 currency codes to their numeric codes
// and default fraction digits. It backs currency resolution for the
// conversion core and the currency lookup API.
package isocurrency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
)

type metadata struct {
	numericCode    string
	fractionDigits int
}

// Subset of ISO 4217 covering the currencies the service quotes. Fraction
// digits follow the standard's minor unit column.
var currencies = map[string]metadata{
	"AED": {"784", 2},
	"AUD": {"036", 2},
	"BHD": {"048", 3},
	"BRL": {"986", 2},
	"CAD": {"124", 2},
	"CHF": {"756", 2},
	"CLF": {"990", 4},
	"CLP": {"152", 0},
	"CNY": {"156", 2},
	"CZK": {"203", 2},
	"DKK": {"208", 2},
	"EUR": {"978", 2},
	"GBP": {"826", 2},
	"HKD": {"344", 2},
	"HUF": {"348", 2},
	"IDR": {"360", 2},
	"ILS": {"376", 2},
	"INR": {"356", 2},
	"ISK": {"352", 0},
	"JOD": {"400", 3},
	"JPY": {"392", 0},
	"KRW": {"410", 0},
	"KWD": {"414", 3},
	"MXN": {"484", 2},
	"MYR": {"458", 2},
	"NOK": {"578", 2},
	"NZD": {"554", 2},
	"OMR": {"512", 3},
	"PHP": {"608", 2},
	"PLN": {"985", 2},
	"RON": {"946", 2},
	"RUB": {"643", 2},
	"SAR": {"682", 2},
	"SEK": {"752", 2},
	"SGD": {"702", 2},
	"THB": {"764", 2},
	"TND": {"788", 3},
	"TRY": {"949", 2},
	"TWD": {"901", 2},
	"USD": {"840", 2},
	"VND": {"704", 0},
	"ZAR": {"710", 2},
}

// Resolve maps an ISO currency code to its Currency metadata.
func Resolve(code string) (domain.Currency, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return domain.Currency{}, apperrors.ErrNullCurrencyCode
	}
	meta, ok := currencies[trimmed]
	if !ok {
		return domain.Currency{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, code)
	}
	return domain.Currency{
		Code:                  trimmed,
		NumericCode:           meta.numericCode,
		DefaultFractionDigits: meta.fractionDigits,
	}, nil
}

// IsSupported reports whether code is a known ISO currency code.
func IsSupported(code string) bool {
	_, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// All returns every supported currency, sorted by code.
func All() []domain.Currency {
	out := make([]domain.Currency, 0, len(currencies))
	for code, meta := range currencies {
		out = append(out, domain.Currency{
			Code:                  code,
			NumericCode:           meta.numericCode,
			DefaultFractionDigits: meta.fractionDigits,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
