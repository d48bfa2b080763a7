package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidParameters indicates a nil, empty, or oversized conversion
// request list, or a nil single request.
var ErrInvalidParameters = errors.New("invalid conversion parameters")

// ErrNilRateSource indicates that the rate source or tenant is missing for a
// non-fixed conversion.
var ErrNilRateSource = errors.New("rate source and tenant are required")

// ErrEmptyExchangeRateList indicates the rate source returned no exchange
// rate records for the batch.
var ErrEmptyExchangeRateList = errors.New("empty exchange rate list")

// ErrFetchDefaultSettings indicates the default tenant settings lookup failed.
var ErrFetchDefaultSettings = errors.New("failed fetching default tenant settings")

// ErrFetchExchangeRates indicates the exchange rate or rate type detail
// lookup failed.
var ErrFetchExchangeRates = errors.New("failed fetching exchange rates")

// ErrNoMatchingRecord indicates that no exchange rate record matched the
// conversion request.
var ErrNoMatchingRecord = errors.New("no matching exchange rate record found")

// ErrMultipleConversionRecords indicates records from different data
// providers or sources share the best-match timestamp.
var ErrMultipleConversionRecords = errors.New("multiple conversion records found")

// ErrDuplicateConversionRecord indicates more than one record with the same
// provider and source shares the best-match timestamp.
var ErrDuplicateConversionRecord = errors.New("duplicate conversion record found")

// ErrZeroCurrencyFactor indicates a currency factor ratio evaluated to
// zero, infinity, or NaN.
var ErrZeroCurrencyFactor = errors.New("zero currency factor")

// ErrZeroRateReferenceCurrency indicates a zero rate value on a leg of a
// reference currency derivation.
var ErrZeroRateReferenceCurrency = errors.New("zero rate in reference currency derivation")

// ErrNegativeCurrencyFactor indicates a currency factor was negative.
var ErrNegativeCurrencyFactor = errors.New("negative currency factor")

// ErrIllegalExchangeRate indicates a rate value that is not usable, e.g. a
// negative rate or a zero rate that would need inverting.
var ErrIllegalExchangeRate = errors.New("illegal exchange rate")

// ErrEmptyOverrideSetting indicates an override tenant setting with only one
// of provider and source populated.
var ErrEmptyOverrideSetting = errors.New("incomplete override tenant setting")

// ErrInvalidCurrencyCode indicates an unknown ISO currency code.
var ErrInvalidCurrencyCode = errors.New("invalid currency code")

// ErrNullCurrencyCode indicates an empty or missing currency code.
var ErrNullCurrencyCode = errors.New("currency code must not be empty")
