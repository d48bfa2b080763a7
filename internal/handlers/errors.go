package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
)

// statusForError maps service and conversion core errors to HTTP statuses.
// Anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidParameters),
		errors.Is(err, apperrors.ErrInvalidCurrencyCode),
		errors.Is(err, apperrors.ErrNullCurrencyCode),
		errors.Is(err, apperrors.ErrEmptyOverrideSetting):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrNoMatchingRecord),
		errors.Is(err, apperrors.ErrEmptyExchangeRateList):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrDuplicateConversionRecord),
		errors.Is(err, apperrors.ErrMultipleConversionRecords):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrIllegalExchangeRate),
		errors.Is(err, apperrors.ErrZeroCurrencyFactor),
		errors.Is(err, apperrors.ErrNegativeCurrencyFactor),
		errors.Is(err, apperrors.ErrZeroRateReferenceCurrency):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
