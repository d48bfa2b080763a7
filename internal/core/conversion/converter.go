// Package conversion implements the currency conversion core: rate
// determination over a pool of candidate records, exact decimal conversion
// arithmetic, the fixed-rate path, and the bulk orchestrator. It performs
// no I/O; exchange rates and tenant metadata come in through the
// ports.RateSource interface, fetched once per batch.
package conversion

import (
	"context"
	"fmt"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

// maxBulkSize bounds one bulk call; exceeding it fails the whole call.
const maxBulkSize = 1000

// Converter exposes the conversion operations. It holds no state; every
// call works on immutable snapshots of its inputs.
type Converter struct{}

// NewConverter creates a Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ConversionEntry pairs one input parameter with its result or error.
// Duplicated inputs in a batch produce independent entries.
type ConversionEntry struct {
	Parameter domain.ConversionParameter
	Result    *domain.ConversionResult
	Err       error
}

// BulkConversionResult holds one entry per input parameter, in input order.
type BulkConversionResult []ConversionEntry

// FixedConversionEntry pairs one fixed-rate input with its result or error.
type FixedConversionEntry struct {
	Parameter domain.FixedConversionParameter
	Result    *domain.FixedConversionResult
	Err       error
}

// BulkFixedConversionResult holds one entry per input, in input order.
type BulkFixedConversionResult []FixedConversionEntry

// ConvertFixed converts a single amount with a caller-supplied rate.
func (c *Converter) ConvertFixed(p domain.FixedConversionParameter) (domain.FixedConversionResult, error) {
	return convertFixed(p)
}

// ConvertFixedMany converts a batch of fixed-rate requests. One request's
// failure is captured in its entry and never aborts the rest.
func (c *Converter) ConvertFixedMany(params []domain.FixedConversionParameter) (BulkFixedConversionResult, error) {
	if err := validateBulkSize(params == nil, len(params)); err != nil {
		return nil, err
	}
	out := make(BulkFixedConversionResult, 0, len(params))
	for _, p := range params {
		res, err := convertFixed(p)
		if err != nil {
			out = append(out, FixedConversionEntry{Parameter: p, Err: err})
			continue
		}
		out = append(out, FixedConversionEntry{Parameter: p, Result: &res})
	}
	return out, nil
}

// ConvertNonFixed converts a single amount using a rate looked up from the
// source. Any per-item error is propagated directly to the caller.
func (c *Converter) ConvertNonFixed(
	ctx context.Context,
	p domain.ConversionParameter,
	source ports.RateSource,
	tenantID string,
	override *domain.TenantSettings,
) (domain.ConversionResult, error) {
	bulk, err := c.ConvertNonFixedMany(ctx, []domain.ConversionParameter{p}, source, tenantID, override)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	entry := bulk[0]
	if entry.Err != nil {
		return domain.ConversionResult{}, entry.Err
	}
	return *entry.Result, nil
}

// ConvertNonFixedMany converts a batch of requests against rates fetched
// once from the source. Validation and fetch errors abort the whole call;
// per-item determination or arithmetic errors are stored in that item's
// entry only.
func (c *Converter) ConvertNonFixedMany(
	ctx context.Context,
	params []domain.ConversionParameter,
	source ports.RateSource,
	tenantID string,
	override *domain.TenantSettings,
) (BulkConversionResult, error) {
	if err := validateBulkSize(params == nil, len(params)); err != nil {
		return nil, err
	}
	if source == nil || tenantID == "" {
		return nil, apperrors.ErrNilRateSource
	}

	settings, err := resolveTenantSettings(ctx, source, tenantID, override)
	if err != nil {
		return nil, err
	}
	rates, err := source.FetchExchangeRates(ctx, tenantID, params, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFetchExchangeRates, err)
	}
	if len(rates) == 0 {
		return nil, apperrors.ErrEmptyExchangeRateList
	}
	details, err := source.FetchRateTypeDetails(ctx, tenantID, distinctRateTypes(params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFetchExchangeRates, err)
	}

	determiner := newRateDeterminer(tenantID, settings, rates, details)
	out := make(BulkConversionResult, 0, len(params))
	for _, p := range params {
		res, err := convertOne(determiner, p)
		if err != nil {
			out = append(out, ConversionEntry{Parameter: p, Err: err})
			continue
		}
		out = append(out, ConversionEntry{Parameter: p, Result: &res})
	}
	return out, nil
}

func convertOne(determiner *rateDeterminer, p domain.ConversionParameter) (domain.ConversionResult, error) {
	if p.FromCurrency.Equal(p.ToCurrency) {
		// Same currency needs no lookup; report a unit record alongside the
		// verbatim amount.
		return domain.ConversionResult{
			ExchangeRate: domain.NewDerivedExchangeRate(
				determiner.tenantID, p.RateType, domain.RateValueFrom(decimal.New(1, 0)),
				p.FromCurrency, p.ToCurrency, p.AsOf, nil, nil,
			),
			ConvertedAmount:           p.FromAmount,
			RoundedOffConvertedAmount: domain.RoundedValue(p.FromAmount.Decimal(), int32(p.ToCurrency.DefaultFractionDigits)),
		}, nil
	}

	record, err := determiner.determine(p)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	unrounded, rounded, err := convertWithRecord(p.FromAmount, p.FromCurrency, p.ToCurrency, record)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	return domain.ConversionResult{
		ExchangeRate:              record,
		ConvertedAmount:           unrounded,
		RoundedOffConvertedAmount: rounded,
	}, nil
}

func convertFixed(p domain.FixedConversionParameter) (domain.FixedConversionResult, error) {
	if p.FromCurrency.Equal(p.ToCurrency) {
		return domain.FixedConversionResult{
			ConvertedAmount:           p.FromAmount,
			RoundedOffConvertedAmount: domain.RoundedValue(p.FromAmount.Decimal(), int32(p.ToCurrency.DefaultFractionDigits)),
		}, nil
	}
	unrounded := p.FromAmount.Decimal().Mul(p.FixedRate.Decimal())
	return domain.FixedConversionResult{
		ConvertedAmount:           domain.DecimalValueFrom(unrounded),
		RoundedOffConvertedAmount: domain.RoundedValue(unrounded, int32(p.ToCurrency.DefaultFractionDigits)),
	}, nil
}

// resolveTenantSettings prefers a complete override, else asks the source
// for the tenant's defaults. A nil result means no provider/source filter.
func resolveTenantSettings(
	ctx context.Context,
	source ports.RateSource,
	tenantID string,
	override *domain.TenantSettings,
) (*domain.TenantSettings, error) {
	if override != nil {
		if override.RatesDataProviderCode == "" || override.RatesDataSource == "" {
			return nil, fmt.Errorf("%w: provider and source must both be set", apperrors.ErrEmptyOverrideSetting)
		}
		return override, nil
	}
	settings, err := source.FetchDefaultSettings(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFetchDefaultSettings, err)
	}
	return settings, nil
}

func validateBulkSize(isNil bool, n int) error {
	if isNil || n == 0 {
		return fmt.Errorf("%w: request list must not be empty", apperrors.ErrInvalidParameters)
	}
	if n > maxBulkSize {
		return fmt.Errorf("%w: request list exceeds %d entries", apperrors.ErrInvalidParameters, maxBulkSize)
	}
	return nil
}

func distinctRateTypes(params []domain.ConversionParameter) []string {
	seen := make(map[string]struct{}, len(params))
	out := make([]string, 0, len(params))
	for _, p := range params {
		if _, ok := seen[p.RateType]; ok {
			continue
		}
		seen[p.RateType] = struct{}{}
		out = append(out, p.RateType)
	}
	return out
}
