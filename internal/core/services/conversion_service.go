package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/currency_conversion_app/internal/core/conversion"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/SscSPs/currency_conversion_app/internal/core/ports"
	"github.com/SscSPs/currency_conversion_app/internal/dto"
	"github.com/SscSPs/currency_conversion_app/internal/utils/isocurrency"
)

// ConversionService provides the conversion operations over a rate source.
type ConversionService struct {
	converter *conversion.Converter
	source    ports.RateSource
}

// NewConversionService creates a new ConversionService.
func NewConversionService(source ports.RateSource) *ConversionService {
	return &ConversionService{
		converter: conversion.NewConverter(),
		source:    source,
	}
}

// Convert converts a single amount using a looked-up rate.
func (s *ConversionService) Convert(ctx context.Context, tenantID string, req dto.ConversionRequest, override *dto.TenantSettingsOverride) (*domain.ConversionResult, error) {
	p, err := toConversionParameter(req)
	if err != nil {
		return nil, err
	}
	res, err := s.converter.ConvertNonFixed(ctx, p, s.source, tenantID, toTenantSettings(override))
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ConvertBulk converts a batch of requests against one rate fetch. A request
// that fails to parse fails the whole batch, matching the orchestrator's
// treatment of invalid input.
func (s *ConversionService) ConvertBulk(ctx context.Context, tenantID string, req dto.BulkConversionRequest) (conversion.BulkConversionResult, error) {
	params := make([]domain.ConversionParameter, len(req.Requests))
	for i, r := range req.Requests {
		p, err := toConversionParameter(r)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		params[i] = p
	}
	return s.converter.ConvertNonFixedMany(ctx, params, s.source, tenantID, toTenantSettings(req.Override))
}

// ConvertFixed converts a single amount with a caller-supplied rate.
func (s *ConversionService) ConvertFixed(ctx context.Context, req dto.FixedConversionRequest) (*domain.FixedConversionResult, error) {
	p, err := toFixedConversionParameter(req)
	if err != nil {
		return nil, err
	}
	res, err := s.converter.ConvertFixed(p)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ConvertFixedBulk converts a batch of fixed-rate requests.
func (s *ConversionService) ConvertFixedBulk(ctx context.Context, req dto.BulkFixedConversionRequest) (conversion.BulkFixedConversionResult, error) {
	params := make([]domain.FixedConversionParameter, len(req.Requests))
	for i, r := range req.Requests {
		p, err := toFixedConversionParameter(r)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		params[i] = p
	}
	return s.converter.ConvertFixedMany(params)
}

func toConversionParameter(req dto.ConversionRequest) (domain.ConversionParameter, error) {
	from, err := isocurrency.Resolve(req.FromCurrency)
	if err != nil {
		return domain.ConversionParameter{}, err
	}
	to, err := isocurrency.Resolve(req.ToCurrency)
	if err != nil {
		return domain.ConversionParameter{}, err
	}
	amount, err := domain.NewDecimalValue(req.Amount)
	if err != nil {
		return domain.ConversionParameter{}, err
	}
	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}
	return domain.ConversionParameter{
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   amount,
		RateType:     req.RateType,
		AsOf:         asOf,
	}, nil
}

func toFixedConversionParameter(req dto.FixedConversionRequest) (domain.FixedConversionParameter, error) {
	from, err := isocurrency.Resolve(req.FromCurrency)
	if err != nil {
		return domain.FixedConversionParameter{}, err
	}
	to, err := isocurrency.Resolve(req.ToCurrency)
	if err != nil {
		return domain.FixedConversionParameter{}, err
	}
	amount, err := domain.NewDecimalValue(req.Amount)
	if err != nil {
		return domain.FixedConversionParameter{}, err
	}
	rate, err := domain.NewRateValue(req.FixedRate)
	if err != nil {
		return domain.FixedConversionParameter{}, err
	}
	return domain.FixedConversionParameter{
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   amount,
		FixedRate:    rate,
	}, nil
}

func toTenantSettings(override *dto.TenantSettingsOverride) *domain.TenantSettings {
	if override == nil {
		return nil
	}
	return &domain.TenantSettings{
		RatesDataProviderCode: override.RatesDataProviderCode,
		RatesDataSource:       override.RatesDataSource,
	}
}
