package ports

import (
	"context"

	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
)

// RateSource supplies exchange rate records and tenant scoped metadata for
// non-fixed conversions. The conversion core calls each method at most once
// per batch and treats failures as fatal for the whole batch.
type RateSource interface {
	// FetchExchangeRates returns the candidate records for the batch. The
	// implementation may over-fetch; the determiner applies the exact
	// filtering rules.
	FetchExchangeRates(ctx context.Context, tenantID string, params []domain.ConversionParameter, settings *domain.TenantSettings) ([]domain.ExchangeRate, error)

	// FetchDefaultSettings returns the tenant's default provider/source
	// filter, or nil when the tenant has none configured.
	FetchDefaultSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error)

	// FetchRateTypeDetails returns per rate type metadata for the given
	// types. Missing entries mean "no reference currency, no inversion".
	FetchRateTypeDetails(ctx context.Context, tenantID string, rateTypes []string) (map[string]domain.ExchangeRateTypeDetail, error)
}
