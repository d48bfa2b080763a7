package isocurrency_test

import (
	"sort"
	"testing"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/utils/isocurrency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	usd, err := isocurrency.Resolve("USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", usd.Code)
	assert.Equal(t, "840", usd.NumericCode)
	assert.Equal(t, 2, usd.DefaultFractionDigits)

	jpy, err := isocurrency.Resolve(" jpy ")
	require.NoError(t, err, "codes are case insensitive and trimmed")
	assert.Equal(t, "JPY", jpy.Code)
	assert.Equal(t, 0, jpy.DefaultFractionDigits)

	kwd, err := isocurrency.Resolve("KWD")
	require.NoError(t, err)
	assert.Equal(t, 3, kwd.DefaultFractionDigits)

	clf, err := isocurrency.Resolve("CLF")
	require.NoError(t, err)
	assert.Equal(t, 4, clf.DefaultFractionDigits)
}

func TestResolve_Errors(t *testing.T) {
	_, err := isocurrency.Resolve("")
	assert.ErrorIs(t, err, apperrors.ErrNullCurrencyCode)

	_, err = isocurrency.Resolve("   ")
	assert.ErrorIs(t, err, apperrors.ErrNullCurrencyCode)

	_, err = isocurrency.Resolve("XXX")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCurrencyCode)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, isocurrency.IsSupported("EUR"))
	assert.True(t, isocurrency.IsSupported("eur"))
	assert.False(t, isocurrency.IsSupported("XBT"))
	assert.False(t, isocurrency.IsSupported(""))
}

func TestAll(t *testing.T) {
	all := isocurrency.All()
	require.NotEmpty(t, all)
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Code < all[j].Code }))
	for _, c := range all {
		assert.True(t, isocurrency.IsSupported(c.Code))
		assert.Len(t, c.NumericCode, 3)
	}
}
