package conversion_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/conversion"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/utils/isocurrency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tenantID = "tenant-001"

var conversionDate = time.Date(2019, 9, 16, 2, 30, 0, 0, time.UTC)

type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchExchangeRates(ctx context.Context, tenantID string, params []domain.ConversionParameter, settings *domain.TenantSettings) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, params, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockRateSource) FetchDefaultSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}

func (m *MockRateSource) FetchRateTypeDetails(ctx context.Context, tenantID string, rateTypes []string) (map[string]domain.ExchangeRateTypeDetail, error) {
	args := m.Called(ctx, tenantID, rateTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ExchangeRateTypeDetail), args.Error(1)
}

func currency(t *testing.T, code string) domain.Currency {
	t.Helper()
	c, err := isocurrency.Resolve(code)
	require.NoError(t, err)
	return c
}

func amount(t *testing.T, s string) domain.DecimalValue {
	t.Helper()
	a, err := domain.NewDecimalValue(s)
	require.NoError(t, err)
	return a
}

func rate(t *testing.T, s string) domain.RateValue {
	t.Helper()
	v, err := domain.NewRateValue(s)
	require.NoError(t, err)
	return v
}

func record(t *testing.T, from, to, value string, validFrom time.Time) domain.ExchangeRate {
	t.Helper()
	return domain.ExchangeRate{
		TenantID:           tenantID,
		RateType:           "M",
		Value:              rate(t, value),
		FromCurrency:       currency(t, from),
		ToCurrency:         currency(t, to),
		ValidFrom:          validFrom,
		FromCurrencyFactor: 1,
		ToCurrencyFactor:   1,
	}
}

func param(t *testing.T, from, to, amt string) domain.ConversionParameter {
	t.Helper()
	return domain.ConversionParameter{
		FromCurrency: currency(t, from),
		ToCurrency:   currency(t, to),
		FromAmount:   amount(t, amt),
		RateType:     "M",
		AsOf:         conversionDate,
	}
}

func TestConvertFixed(t *testing.T) {
	converter := conversion.NewConverter()

	res, err := converter.ConvertFixed(domain.FixedConversionParameter{
		FromCurrency: currency(t, "INR"),
		ToCurrency:   currency(t, "USD"),
		FromAmount:   amount(t, "10.00"),
		FixedRate:    rate(t, "70.23"),
	})

	require.NoError(t, err)
	assert.True(t, res.ConvertedAmount.Decimal().Equal(decimal.RequireFromString("702.3")))
	assert.Equal(t, "702.30", res.RoundedOffConvertedAmount.String())
}

func TestConvertFixed_SameCurrency(t *testing.T) {
	converter := conversion.NewConverter()

	res, err := converter.ConvertFixed(domain.FixedConversionParameter{
		FromCurrency: currency(t, "USD"),
		ToCurrency:   currency(t, "USD"),
		FromAmount:   amount(t, "10.005"),
		FixedRate:    rate(t, "2"),
	})

	require.NoError(t, err)
	assert.Equal(t, "10.005", res.ConvertedAmount.String(), "fixed rate is ignored for identical currencies")
	assert.Equal(t, "10.01", res.RoundedOffConvertedAmount.String())
}

func TestConvertFixedMany_SizeLimits(t *testing.T) {
	converter := conversion.NewConverter()

	_, err := converter.ConvertFixedMany(nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameters)

	_, err = converter.ConvertFixedMany([]domain.FixedConversionParameter{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameters)

	atLimit := make([]domain.FixedConversionParameter, 1000)
	for i := range atLimit {
		atLimit[i] = domain.FixedConversionParameter{
			FromCurrency: currency(t, "INR"),
			ToCurrency:   currency(t, "USD"),
			FromAmount:   amount(t, "1"),
			FixedRate:    rate(t, "2"),
		}
	}
	res, err := converter.ConvertFixedMany(atLimit)
	require.NoError(t, err)
	assert.Len(t, res, 1000)

	overLimit := append(atLimit, atLimit[0])
	_, err = converter.ConvertFixedMany(overLimit)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameters)
}

func TestConvertNonFixedMany_Succeeds(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return([]domain.ExchangeRate{record(t, "INR", "EUR", "100", conversionDate)}, nil)
	source.On("FetchRateTypeDetails", mock.Anything, tenantID, []string{"M"}).
		Return(map[string]domain.ExchangeRateTypeDetail{}, nil)

	converter := conversion.NewConverter()
	res, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "100")}, source, tenantID, nil)

	require.NoError(t, err)
	require.Len(t, res, 1)
	require.NoError(t, res[0].Err)
	assert.True(t, res[0].Result.ConvertedAmount.Decimal().Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "10000.00", res[0].Result.RoundedOffConvertedAmount.String())
	assert.Equal(t, "INR", res[0].Result.ExchangeRate.FromCurrency.Code)
	source.AssertExpectations(t)
}

func TestConvertNonFixedMany_PerItemErrorsAreIsolated(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return([]domain.ExchangeRate{record(t, "INR", "EUR", "100", conversionDate)}, nil)
	source.On("FetchRateTypeDetails", mock.Anything, tenantID, mock.Anything).
		Return(map[string]domain.ExchangeRateTypeDetail{}, nil)

	converter := conversion.NewConverter()
	res, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{
			param(t, "USD", "EUR", "50"), // no record for this pair
			param(t, "INR", "EUR", "100"),
		}, source, tenantID, nil)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.ErrorIs(t, res[0].Err, apperrors.ErrNoMatchingRecord)
	assert.Nil(t, res[0].Result)
	require.NoError(t, res[1].Err)
	assert.True(t, res[1].Result.ConvertedAmount.Decimal().Equal(decimal.NewFromInt(10000)))
}

func TestConvertNonFixedMany_DuplicateInputsGetIndependentEntries(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return([]domain.ExchangeRate{record(t, "INR", "EUR", "100", conversionDate)}, nil)
	source.On("FetchRateTypeDetails", mock.Anything, tenantID, mock.Anything).
		Return(map[string]domain.ExchangeRateTypeDetail{}, nil)

	converter := conversion.NewConverter()
	p := param(t, "INR", "EUR", "100")
	res, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{p, p}, source, tenantID, nil)

	require.NoError(t, err)
	require.Len(t, res, 2)
	require.NoError(t, res[0].Err)
	require.NoError(t, res[1].Err)
	assert.Equal(t, res[0].Result.RoundedOffConvertedAmount.String(), res[1].Result.RoundedOffConvertedAmount.String())
}

func TestConvertNonFixedMany_NilSource(t *testing.T) {
	converter := conversion.NewConverter()

	_, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "100")}, nil, tenantID, nil)
	assert.ErrorIs(t, err, apperrors.ErrNilRateSource)

	_, err = converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "100")}, new(MockRateSource), "", nil)
	assert.ErrorIs(t, err, apperrors.ErrNilRateSource)
}

func TestConvertNonFixedMany_SettingsFetchErrorIsFatal(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, errors.New("db down"))

	converter := conversion.NewConverter()
	_, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "100")}, source, tenantID, nil)

	assert.ErrorIs(t, err, apperrors.ErrFetchDefaultSettings)
}

func TestConvertNonFixedMany_RateFetchErrorIsFatal(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return(nil, errors.New("db down"))

	converter := conversion.NewConverter()
	_, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "100")}, source, tenantID, nil)

	assert.ErrorIs(t, err, apperrors.ErrFetchExchangeRates)
}

func TestConvertNonFixedMany_EmptyRateListIsFatal(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return([]domain.ExchangeRate{}, nil)

	converter := conversion.NewConverter()
	_, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "USD", "USD", "100")}, source, tenantID, nil)

	assert.ErrorIs(t, err, apperrors.ErrEmptyExchangeRateList,
		"an empty rate pool fails the batch even for same currency requests")
}

func TestConvertNonFixedMany_IncompleteOverride(t *testing.T) {
	source := new(MockRateSource)
	converter := conversion.NewConverter()

	_, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "100")}, source, tenantID,
		&domain.TenantSettings{RatesDataProviderCode: "ECB"})

	assert.ErrorIs(t, err, apperrors.ErrEmptyOverrideSetting)
	source.AssertNotCalled(t, "FetchDefaultSettings", mock.Anything, mock.Anything)
}

func TestConvertNonFixedMany_OverrideSkipsDefaultSettings(t *testing.T) {
	override := &domain.TenantSettings{RatesDataProviderCode: "ECB", RatesDataSource: "feed-a"}
	scoped := record(t, "INR", "EUR", "100", conversionDate)
	provider, feed := "ECB", "feed-a"
	scoped.RatesDataProviderCode = &provider
	scoped.RatesDataSource = &feed

	source := new(MockRateSource)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, override).
		Return([]domain.ExchangeRate{scoped}, nil)
	source.On("FetchRateTypeDetails", mock.Anything, tenantID, mock.Anything).
		Return(map[string]domain.ExchangeRateTypeDetail{}, nil)

	converter := conversion.NewConverter()
	res, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "100")}, source, tenantID, override)

	require.NoError(t, err)
	require.NoError(t, res[0].Err)
	source.AssertNotCalled(t, "FetchDefaultSettings", mock.Anything, mock.Anything)
}

func TestConvertNonFixedMany_SameCurrencyShortCircuits(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return([]domain.ExchangeRate{record(t, "INR", "EUR", "100", conversionDate)}, nil)
	source.On("FetchRateTypeDetails", mock.Anything, tenantID, mock.Anything).
		Return(map[string]domain.ExchangeRateTypeDetail{}, nil)

	converter := conversion.NewConverter()
	res, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "USD", "USD", "10.005")}, source, tenantID, nil)

	require.NoError(t, err)
	require.NoError(t, res[0].Err)
	assert.Equal(t, "10.005", res[0].Result.ConvertedAmount.String())
	assert.Equal(t, "10.01", res[0].Result.RoundedOffConvertedAmount.String())
	assert.True(t, res[0].Result.ExchangeRate.Value.Decimal().Equal(decimal.NewFromInt(1)))
}

func TestConvertNonFixedMany_SizeLimit(t *testing.T) {
	over := make([]domain.ConversionParameter, 1001)
	for i := range over {
		over[i] = param(t, "INR", "EUR", "1")
	}

	converter := conversion.NewConverter()
	_, err := converter.ConvertNonFixedMany(context.Background(), over, new(MockRateSource), tenantID, nil)

	assert.ErrorIs(t, err, apperrors.ErrInvalidParameters)
}

func TestConvertNonFixedMany_FetchesDistinctRateTypesOnce(t *testing.T) {
	monthly := record(t, "INR", "EUR", "100", conversionDate)
	annual := record(t, "INR", "EUR", "90", conversionDate)
	annual.RateType = "A"

	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return([]domain.ExchangeRate{monthly, annual}, nil)
	source.On("FetchRateTypeDetails", mock.Anything, tenantID, []string{"M", "A"}).
		Return(map[string]domain.ExchangeRateTypeDetail{}, nil).Once()

	annualParam := param(t, "INR", "EUR", "1")
	annualParam.RateType = "A"

	converter := conversion.NewConverter()
	res, err := converter.ConvertNonFixedMany(context.Background(),
		[]domain.ConversionParameter{param(t, "INR", "EUR", "1"), annualParam, param(t, "INR", "EUR", "2")},
		source, tenantID, nil)

	require.NoError(t, err)
	require.Len(t, res, 3)
	for i, entry := range res {
		assert.NoError(t, entry.Err, fmt.Sprintf("entry %d", i))
	}
	source.AssertExpectations(t)
}

func TestConvertNonFixed_DelegatesToBulk(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchDefaultSettings", mock.Anything, tenantID).Return(nil, nil)
	source.On("FetchExchangeRates", mock.Anything, tenantID, mock.Anything, (*domain.TenantSettings)(nil)).
		Return([]domain.ExchangeRate{record(t, "INR", "EUR", "100", conversionDate)}, nil)
	source.On("FetchRateTypeDetails", mock.Anything, tenantID, mock.Anything).
		Return(map[string]domain.ExchangeRateTypeDetail{}, nil)

	converter := conversion.NewConverter()
	res, err := converter.ConvertNonFixed(context.Background(), param(t, "INR", "EUR", "100"), source, tenantID, nil)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", res.RoundedOffConvertedAmount.String())

	_, err = converter.ConvertNonFixed(context.Background(), param(t, "USD", "EUR", "100"), source, tenantID, nil)
	assert.ErrorIs(t, err, apperrors.ErrNoMatchingRecord, "per item errors surface directly on the single call")
}
