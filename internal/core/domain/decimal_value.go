package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DecimalValue is an arbitrary precision decimal backed by the string it was
// parsed from, so the caller-supplied representation (including trailing
// zeros) survives the round trip through arithmetic.
type DecimalValue struct {
	str   string
	value decimal.Decimal
}

// NewDecimalValue parses s into a DecimalValue. Any sign is accepted;
// amounts may legitimately be negative.
func NewDecimalValue(s string) (DecimalValue, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return DecimalValue{}, fmt.Errorf("%w: empty decimal value", apperrors.ErrInvalidParameters)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return DecimalValue{}, fmt.Errorf("%w: %q is not a decimal value", apperrors.ErrInvalidParameters, s)
	}
	return DecimalValue{str: trimmed, value: d}, nil
}

// DecimalValueFrom wraps an already computed decimal, e.g. a conversion
// result that never had a caller-supplied string form.
func DecimalValueFrom(d decimal.Decimal) DecimalValue {
	return DecimalValue{str: d.String(), value: d}
}

// Decimal returns the parsed numeric form for arithmetic.
func (v DecimalValue) Decimal() decimal.Decimal {
	return v.value
}

// String returns the original string form.
func (v DecimalValue) String() string {
	return v.str
}

// Scale returns the number of decimal places of the value.
func (v DecimalValue) Scale() int32 {
	if exp := v.value.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// IsZero reports whether the numeric value is zero.
func (v DecimalValue) IsZero() bool {
	return v.value.IsZero()
}

// RoundedValue rounds d half away from zero to places decimal places and
// pins the string form to exactly that many places.
func RoundedValue(d decimal.Decimal, places int32) DecimalValue {
	s := d.Round(places).StringFixed(places)
	v, _ := decimal.NewFromString(s)
	return DecimalValue{str: s, value: v}
}

// RateValue is a DecimalValue restricted to non-negative magnitudes, as
// required for exchange rate values.
type RateValue struct {
	DecimalValue
}

// NewRateValue parses s into a RateValue, rejecting negative values.
func NewRateValue(s string) (RateValue, error) {
	dv, err := NewDecimalValue(s)
	if err != nil {
		return RateValue{}, err
	}
	if dv.value.IsNegative() {
		return RateValue{}, fmt.Errorf("%w: rate value %q is negative", apperrors.ErrIllegalExchangeRate, s)
	}
	return RateValue{DecimalValue: dv}, nil
}

// RateValueFrom wraps a computed, non-negative decimal as a RateValue. It is
// used for derived cross rates, which are produced by division of validated
// non-negative values.
func RateValueFrom(d decimal.Decimal) RateValue {
	return RateValue{DecimalValue: DecimalValueFrom(d)}
}
