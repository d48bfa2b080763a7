// Package pgsql implements the persistence ports on PostgreSQL via pgxpool.
package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/utils/isocurrency"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements ports.ExchangeRateRepository and
// ports.RateSource using pgxpool. Rate values travel as text so the numeric
// column round-trips without float conversion.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

const exchangeRateColumns = `
	exchange_rate_id, tenant_id, rates_data_provider_code, rates_data_source,
	rate_type, value::text, from_currency, to_currency, valid_from,
	is_indirect, from_currency_factor, to_currency_factor,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveExchangeRate inserts a new exchange rate record.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, tenant_id, rates_data_provider_code, rates_data_source,
			rate_type, value, from_currency, to_currency, valid_from,
			is_indirect, from_currency_factor, to_currency_factor,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, rate.TenantID, rate.RatesDataProviderCode, rate.RatesDataSource,
		rate.RateType, rate.Value.String(), rate.FromCurrency.Code, rate.ToCurrency.Code, rate.ValidFrom,
		rate.IsIndirect, rate.FromCurrencyFactor, rate.ToCurrencyFactor,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

// ListExchangeRates retrieves a tenant's records with optional pair filters,
// most recent first.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, tenantID string, fromCurrency, toCurrency *string, limit, offset int) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE tenant_id = $1
		  AND ($2::text IS NULL OR from_currency = $2)
		  AND ($3::text IS NULL OR to_currency = $3)
		ORDER BY valid_from DESC, exchange_rate_id
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, tenantID, fromCurrency, toCurrency, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()
	return collectExchangeRates(rows)
}

// FetchExchangeRates returns the candidate records for a conversion batch.
// It over-fetches by currency involvement; the conversion core applies the
// exact matching rules.
func (r *PgxExchangeRateRepository) FetchExchangeRates(ctx context.Context, tenantID string, params []domain.ConversionParameter, settings *domain.TenantSettings) ([]domain.ExchangeRate, error) {
	currencies := make([]string, 0, len(params)*2)
	rateTypes := make([]string, 0, len(params))
	seenCurrency := make(map[string]struct{})
	seenType := make(map[string]struct{})
	for _, p := range params {
		for _, code := range []string{p.FromCurrency.Code, p.ToCurrency.Code} {
			if _, ok := seenCurrency[code]; !ok {
				seenCurrency[code] = struct{}{}
				currencies = append(currencies, code)
			}
		}
		if _, ok := seenType[p.RateType]; !ok {
			seenType[p.RateType] = struct{}{}
			rateTypes = append(rateTypes, p.RateType)
		}
	}

	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE tenant_id = $1
		  AND rate_type = ANY($2)
		  AND (from_currency = ANY($3) OR to_currency = ANY($3))
		  AND ($4::text IS NULL OR rates_data_provider_code = $4)
		  AND ($5::text IS NULL OR rates_data_source = $5)
	`
	var providerCode, source *string
	if settings != nil {
		providerCode = &settings.RatesDataProviderCode
		source = &settings.RatesDataSource
	}
	rows, err := r.db.Query(ctx, query, tenantID, rateTypes, currencies, providerCode, source)
	if err != nil {
		return nil, fmt.Errorf("error fetching exchange rates: %w", err)
	}
	defer rows.Close()
	return collectExchangeRates(rows)
}

// FetchDefaultSettings returns the tenant's configured provider/source
// filter, or nil when none is configured.
func (r *PgxExchangeRateRepository) FetchDefaultSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	query := `
		SELECT rates_data_provider_code, rates_data_source
		FROM tenant_settings
		WHERE tenant_id = $1
	`
	settings := &domain.TenantSettings{}
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&settings.RatesDataProviderCode, &settings.RatesDataSource)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching tenant settings: %w", err)
	}
	return settings, nil
}

// FetchRateTypeDetails returns the per rate type metadata for the given
// types. Types without a row are simply absent from the map.
func (r *PgxExchangeRateRepository) FetchRateTypeDetails(ctx context.Context, tenantID string, rateTypes []string) (map[string]domain.ExchangeRateTypeDetail, error) {
	query := `
		SELECT rate_type, reference_currency, is_inversion_allowed
		FROM exchange_rate_type_details
		WHERE tenant_id = $1 AND rate_type = ANY($2)
	`
	rows, err := r.db.Query(ctx, query, tenantID, rateTypes)
	if err != nil {
		return nil, fmt.Errorf("error fetching rate type details: %w", err)
	}
	defer rows.Close()

	details := make(map[string]domain.ExchangeRateTypeDetail)
	for rows.Next() {
		var rateType string
		var refCode *string
		var detail domain.ExchangeRateTypeDetail
		if err := rows.Scan(&rateType, &refCode, &detail.IsInversionAllowed); err != nil {
			return nil, fmt.Errorf("error scanning rate type detail: %w", err)
		}
		if refCode != nil {
			ref, err := isocurrency.Resolve(*refCode)
			if err != nil {
				return nil, fmt.Errorf("invalid reference currency for rate type %s: %w", rateType, err)
			}
			detail.ReferenceCurrency = &ref
		}
		details[rateType] = detail
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate type details: %w", err)
	}
	return details, nil
}

func collectExchangeRates(rows pgx.Rows) ([]domain.ExchangeRate, error) {
	var rates []domain.ExchangeRate
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return rates, nil
}

func scanExchangeRate(row pgx.Row) (domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	var value, fromCode, toCode string
	err := row.Scan(
		&rate.ExchangeRateID, &rate.TenantID, &rate.RatesDataProviderCode, &rate.RatesDataSource,
		&rate.RateType, &value, &fromCode, &toCode, &rate.ValidFrom,
		&rate.IsIndirect, &rate.FromCurrencyFactor, &rate.ToCurrencyFactor,
		&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("error scanning exchange rate: %w", err)
	}
	if rate.Value, err = domain.NewRateValue(value); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("invalid stored rate value: %w", err)
	}
	if rate.FromCurrency, err = isocurrency.Resolve(fromCode); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("invalid stored from currency: %w", err)
	}
	if rate.ToCurrency, err = isocurrency.Resolve(toCode); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("invalid stored to currency: %w", err)
	}
	return rate, nil
}
