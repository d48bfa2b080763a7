package conversion

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/currency_conversion_app/internal/apperrors"
	"github.com/SscSPs/currency_conversion_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// rateDeterminer selects, or derives, the single applicable exchange rate
// record for a conversion request. It is built fresh per batch from that
// batch's tenant, settings, fetched records and rate type details, and
// never mutates its inputs; the only record it constructs is the derived
// cross rate.
type rateDeterminer struct {
	tenantID string
	settings *domain.TenantSettings
	rates    []domain.ExchangeRate
	details  map[string]domain.ExchangeRateTypeDetail
}

func newRateDeterminer(
	tenantID string,
	settings *domain.TenantSettings,
	rates []domain.ExchangeRate,
	details map[string]domain.ExchangeRateTypeDetail,
) *rateDeterminer {
	return &rateDeterminer{
		tenantID: tenantID,
		settings: settings,
		rates:    rates,
		details:  details,
	}
}

// determine returns exactly one applicable record for p. A rate type with a
// reference currency configured goes through cross rate derivation; all
// other types use direct (and, when allowed, inverted) pair matching.
func (d *rateDeterminer) determine(p domain.ConversionParameter) (domain.ExchangeRate, error) {
	detail := d.details[p.RateType]
	if detail.ReferenceCurrency != nil {
		return d.determineViaReference(p, *detail.ReferenceCurrency)
	}
	return d.determineDirect(p, detail.IsInversionAllowed)
}

// eligible applies the filters shared by every candidate list: tenant, rate
// type, effective date, and the tenant settings provider/source restriction
// when settings are present.
func (d *rateDeterminer) eligible(r domain.ExchangeRate, p domain.ConversionParameter) bool {
	if r.TenantID != d.tenantID || r.RateType != p.RateType {
		return false
	}
	if r.ValidFrom.After(p.AsOf) {
		return false
	}
	if d.settings != nil {
		if r.RatesDataProviderCode == nil || *r.RatesDataProviderCode != d.settings.RatesDataProviderCode {
			return false
		}
		if r.RatesDataSource == nil || *r.RatesDataSource != d.settings.RatesDataSource {
			return false
		}
	}
	return true
}

// determineDirect resolves a request without a reference currency: exact
// pair matches first, then the swapped pair when the rate type allows
// inversion.
func (d *rateDeterminer) determineDirect(p domain.ConversionParameter, inversionAllowed bool) (domain.ExchangeRate, error) {
	var direct, inverted []domain.ExchangeRate
	for _, r := range d.rates {
		if !d.eligible(r, p) {
			continue
		}
		switch {
		case r.FromCurrency.Equal(p.FromCurrency) && r.ToCurrency.Equal(p.ToCurrency):
			direct = append(direct, r)
		case r.FromCurrency.Equal(p.ToCurrency) && r.ToCurrency.Equal(p.FromCurrency):
			inverted = append(inverted, r)
		}
	}
	sortByValidFromDesc(direct)
	sortByValidFromDesc(inverted)

	if len(direct) > 0 {
		return d.pickBest(direct)
	}
	if inversionAllowed && len(inverted) > 0 {
		return d.pickBest(inverted)
	}
	return domain.ExchangeRate{}, fmt.Errorf("%w: %s to %s for rate type %s",
		apperrors.ErrNoMatchingRecord, p.FromCurrency.Code, p.ToCurrency.Code, p.RateType)
}

// determineViaReference resolves a request through a reference currency:
// both legs quote into the reference currency, and a synthetic record for
// the requested pair is derived from their ratio. When either leg is
// missing, exact pair matches are used as a fallback.
func (d *rateDeterminer) determineViaReference(p domain.ConversionParameter, ref domain.Currency) (domain.ExchangeRate, error) {
	var direct, fromLegs, toLegs []domain.ExchangeRate
	for _, r := range d.rates {
		if !d.eligible(r, p) {
			continue
		}
		if r.FromCurrency.Equal(p.FromCurrency) && r.ToCurrency.Equal(p.ToCurrency) {
			direct = append(direct, r)
		}
		if r.ToCurrency.Equal(ref) {
			switch {
			case r.FromCurrency.Equal(p.FromCurrency):
				fromLegs = append(fromLegs, r)
			case r.FromCurrency.Equal(p.ToCurrency):
				toLegs = append(toLegs, r)
			}
		}
	}
	sortByValidFromDesc(direct)
	sortByValidFromDesc(fromLegs)
	sortByValidFromDesc(toLegs)

	if len(fromLegs) == 0 || len(toLegs) == 0 {
		if len(direct) == 0 {
			return domain.ExchangeRate{}, fmt.Errorf("%w: %s to %s via %s for rate type %s",
				apperrors.ErrNoMatchingRecord, p.FromCurrency.Code, p.ToCurrency.Code, ref.Code, p.RateType)
		}
		return d.pickBest(direct)
	}

	fromLeg, err := d.pickBest(fromLegs)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	toLeg, err := d.pickBest(toLegs)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	return d.deriveCrossRate(p, fromLeg, toLeg)
}

// deriveCrossRate synthesizes the record for the requested pair from the
// two reference currency legs:
//
//	value = (xEff / yEff) * (factorRatio(fromLeg) / factorRatio(toLeg))
//
// where each leg's effective value is its reciprocal when the leg is stored
// indirect. The main division runs at max(14, scale(xEff)+scale(yEff)).
func (d *rateDeterminer) deriveCrossRate(p domain.ConversionParameter, fromLeg, toLeg domain.ExchangeRate) (domain.ExchangeRate, error) {
	if fromLeg.Value.IsZero() {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %s to %s",
			apperrors.ErrZeroRateReferenceCurrency, fromLeg.FromCurrency.Code, fromLeg.ToCurrency.Code)
	}
	if toLeg.Value.IsZero() {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %s to %s",
			apperrors.ErrZeroRateReferenceCurrency, toLeg.FromCurrency.Code, toLeg.ToCurrency.Code)
	}

	xEff, xScale := effectiveLegValue(fromLeg)
	yEff, yScale := effectiveLegValue(toLeg)
	scale := divisionScale(xScale + yScale)

	ratioFrom, err := factorRatio(fromLeg, scale)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	ratioTo, err := factorRatio(toLeg, scale)
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	value := xEff.DivRound(yEff, scale).Mul(ratioFrom.DivRound(ratioTo, scale))

	validFrom := fromLeg.ValidFrom
	if toLeg.ValidFrom.Before(validFrom) {
		validFrom = toLeg.ValidFrom
	}
	var providerCode, source *string
	if d.settings != nil {
		providerCode = fromLeg.RatesDataProviderCode
		source = fromLeg.RatesDataSource
	}
	return domain.NewDerivedExchangeRate(
		d.tenantID, p.RateType, domain.RateValueFrom(value),
		p.FromCurrency, p.ToCurrency, validFrom, providerCode, source,
	), nil
}

// effectiveLegValue returns a leg's rate value in direct quotation and the
// scale to carry into the derivation. An indirect leg is inverted at a
// scale equal to its own decimal place count, minimum 1.
func effectiveLegValue(r domain.ExchangeRate) (decimal.Decimal, int32) {
	v := r.Value.Decimal()
	s := r.Value.Scale()
	if !r.IsIndirect {
		return v, s
	}
	if s < 1 {
		s = 1
	}
	return decimal.New(1, 0).DivRound(v, s), s
}

// pickBest validates a non-empty, descending-sorted candidate list and
// returns its most recent entry. Ambiguity among entries sharing the best
// timestamp is an error: with tenant settings any tie is a duplicate;
// without settings, nil provider/source act as wildcards, distinct concrete
// pairs are "multiple records" and same pairs are "duplicate record".
func (d *rateDeterminer) pickBest(list []domain.ExchangeRate) (domain.ExchangeRate, error) {
	best := list[0]
	n := 1
	for _, r := range list[1:] {
		if !r.ValidFrom.Equal(best.ValidFrom) {
			break
		}
		n++
	}
	sameDate := list[:n]
	if len(sameDate) == 1 {
		return best, nil
	}
	if d.settings != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %s to %s at %s",
			apperrors.ErrDuplicateConversionRecord, best.FromCurrency.Code, best.ToCurrency.Code,
			best.ValidFrom.Format(time.RFC3339))
	}
	for i := 0; i < len(sameDate); i++ {
		for j := i + 1; j < len(sameDate); j++ {
			if providerSourceConflict(sameDate[i], sameDate[j]) {
				return domain.ExchangeRate{}, fmt.Errorf("%w: %s to %s at %s",
					apperrors.ErrMultipleConversionRecords, best.FromCurrency.Code, best.ToCurrency.Code,
					best.ValidFrom.Format(time.RFC3339))
			}
		}
	}
	return domain.ExchangeRate{}, fmt.Errorf("%w: %s to %s at %s",
		apperrors.ErrDuplicateConversionRecord, best.FromCurrency.Code, best.ToCurrency.Code,
		best.ValidFrom.Format(time.RFC3339))
}

// providerSourceConflict reports whether two records resolve to different
// (provider, source) pairs once nil components are treated as wildcards.
func providerSourceConflict(a, b domain.ExchangeRate) bool {
	if a.RatesDataProviderCode != nil && b.RatesDataProviderCode != nil &&
		*a.RatesDataProviderCode != *b.RatesDataProviderCode {
		return true
	}
	if a.RatesDataSource != nil && b.RatesDataSource != nil &&
		*a.RatesDataSource != *b.RatesDataSource {
		return true
	}
	return false
}

// sortByValidFromDesc orders candidates most recent first, keeping the
// input order of same-timestamp entries stable.
func sortByValidFromDesc(list []domain.ExchangeRate) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ValidFrom.After(list[j].ValidFrom)
	})
}
