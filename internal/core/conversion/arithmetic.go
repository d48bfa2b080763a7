package conversion

import (
	"fmt"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// minDivisionScale is the floor for every division performed while
// computing an effective rate.
const minDivisionScale = 14

// rateCase is the closed set of effective rate computations: the record's
// pair is either aligned with or inverted against the request, and its
// value is stored direct or indirect.
type rateCase int

const (
	alignedDirect rateCase = iota
	alignedIndirect
	invertedDirect
	invertedIndirect
)

func classifyRate(r domain.ExchangeRate, from, to domain.Currency) rateCase {
	aligned := r.FromCurrency.Equal(from) && r.ToCurrency.Equal(to)
	switch {
	case aligned && !r.IsIndirect:
		return alignedDirect
	case aligned && r.IsIndirect:
		return alignedIndirect
	case !aligned && r.IsIndirect:
		return invertedIndirect
	default:
		return invertedDirect
	}
}

// convertWithRecord applies the selected record to the request amount and
// returns the exact converted amount together with its half-up rounding to
// the target currency's fraction digits.
func convertWithRecord(amount domain.DecimalValue, from, to domain.Currency, r domain.ExchangeRate) (domain.DecimalValue, domain.DecimalValue, error) {
	if from.Equal(to) {
		return amount, domain.RoundedValue(amount.Decimal(), int32(to.DefaultFractionDigits)), nil
	}

	scale := divisionScale(amount.Scale() + r.Value.Scale())
	ratio, err := factorRatio(r, scale)
	if err != nil {
		return domain.DecimalValue{}, domain.DecimalValue{}, err
	}
	eff, err := effectiveRate(r, classifyRate(r, from, to), ratio, scale)
	if err != nil {
		return domain.DecimalValue{}, domain.DecimalValue{}, err
	}

	unrounded := amount.Decimal().Mul(eff)
	return domain.DecimalValueFrom(unrounded),
		domain.RoundedValue(unrounded, int32(to.DefaultFractionDigits)), nil
}

// effectiveRate computes the multiplier that takes a from-amount to a
// to-amount for the given record orientation and storage direction.
func effectiveRate(r domain.ExchangeRate, c rateCase, factorRatio decimal.Decimal, scale int32) (decimal.Decimal, error) {
	rate := r.Value.Decimal()
	one := decimal.New(1, 0)
	switch c {
	case alignedDirect:
		return rate.Mul(factorRatio), nil
	case alignedIndirect:
		if rate.IsZero() {
			return decimal.Decimal{}, fmt.Errorf("%w: zero indirect rate for %s to %s",
				apperrors.ErrIllegalExchangeRate, r.FromCurrency.Code, r.ToCurrency.Code)
		}
		return one.DivRound(rate, scale).Mul(factorRatio), nil
	case invertedIndirect:
		return rate.Mul(one.DivRound(factorRatio, scale)), nil
	case invertedDirect:
		denominator := rate.Mul(factorRatio)
		if denominator.IsZero() {
			return decimal.Decimal{}, fmt.Errorf("%w: zero rate for inverted pair %s to %s",
				apperrors.ErrIllegalExchangeRate, r.FromCurrency.Code, r.ToCurrency.Code)
		}
		return one.DivRound(denominator, scale), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: unknown rate case", apperrors.ErrIllegalExchangeRate)
}

// factorRatio computes toCurrencyFactor/fromCurrencyFactor at the given
// division scale. Negative factors and ratios that would be zero, infinite
// or NaN are rejected.
func factorRatio(r domain.ExchangeRate, scale int32) (decimal.Decimal, error) {
	if r.FromCurrencyFactor < 0 || r.ToCurrencyFactor < 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %d/%d on %s to %s",
			apperrors.ErrNegativeCurrencyFactor, r.ToCurrencyFactor, r.FromCurrencyFactor,
			r.FromCurrency.Code, r.ToCurrency.Code)
	}
	if r.FromCurrencyFactor == 0 || r.ToCurrencyFactor == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %d/%d on %s to %s",
			apperrors.ErrZeroCurrencyFactor, r.ToCurrencyFactor, r.FromCurrencyFactor,
			r.FromCurrency.Code, r.ToCurrency.Code)
	}
	return decimal.NewFromInt(r.ToCurrencyFactor).
		DivRound(decimal.NewFromInt(r.FromCurrencyFactor), scale), nil
}

func divisionScale(summed int32) int32 {
	if summed > minDivisionScale {
		return summed
	}
	return minDivisionScale
}
