package services

import (
	"context"

	"github.com/SscSPs/currency_conversion_app/internal/core/conversion"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/dto"
)

// NonFixedConversionSvc defines conversions whose rate is looked up from
// stored records.
type NonFixedConversionSvc interface {
	// Convert converts one amount; per-item errors surface directly.
	Convert(ctx context.Context, tenantID string, req dto.ConversionRequest, override *dto.TenantSettingsOverride) (*domain.ConversionResult, error)

	// ConvertBulk converts a batch against one rate fetch; per-item errors
	// live in the entries.
	ConvertBulk(ctx context.Context, tenantID string, req dto.BulkConversionRequest) (conversion.BulkConversionResult, error)
}

// FixedConversionSvc defines conversions with a caller-supplied rate.
type FixedConversionSvc interface {
	ConvertFixed(ctx context.Context, req dto.FixedConversionRequest) (*domain.FixedConversionResult, error)
	ConvertFixedBulk(ctx context.Context, req dto.BulkFixedConversionRequest) (conversion.BulkFixedConversionResult, error)
}

// ConversionSvcFacade combines all conversion service interfaces.
type ConversionSvcFacade interface {
	NonFixedConversionSvc
	FixedConversionSvc
}
