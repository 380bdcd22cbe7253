// Package sensitivity provides the point-sensitivity value types produced
// while pricing against credit curves, the mutable accumulator that gathers
// them during a pricing run, and the per-parameter sensitivity vectors they
// are converted into for risk reporting.
//
// A point sensitivity records that a priced result changes by Value for a
// one-unit bump of a market input (a zero rate or a recovery rate) at a
// given year fraction, expressed in a sensitivity currency that may differ
// from the curve's own. The two kinds are structurally parallel but never
// interchangeable: the kind participates in the compare key so that
// aggregation can never collapse a zero-rate and a recovery-rate entry
// into one.
package sensitivity

import (
	"cmp"
	"strings"

	"github.com/openquant/creditcurve/market"
)

// Kind discriminates the closed set of point-sensitivity variants.
type Kind string

const (
	// KindZeroRate marks sensitivity to a continuously compounded zero rate.
	KindZeroRate Kind = "ZeroRate"
	// KindRecoveryRate marks sensitivity to a recovery rate.
	KindRecoveryRate Kind = "RecoveryRate"
)

// PointSensitivity is the capability set shared by the two variants.
// Implementations are immutable value types; every operation returns a new
// value. The identifying fields (kind, curve currency, sensitivity
// currency, legal entity, year fraction) form the compare key; the value
// field is summed, never compared, when merging.
type PointSensitivity interface {
	// Kind returns the variant discriminant.
	Kind() Kind
	// CurveCurrency returns the currency of the curve the sensitivity is
	// computed for.
	CurveCurrency() market.Currency
	// YearFraction returns the time that was queried, derived from the
	// owning curve's own day count.
	YearFraction() float64
	// Currency returns the currency the sensitivity value is expressed in.
	Currency() market.Currency
	// LegalEntity returns the credit-risky entity the curve pertains to.
	// It is the zero StandardID only for plain discount-curve zero-rate
	// sensitivities.
	LegalEntity() market.StandardID
	// Value returns the sensitivity value.
	Value() float64

	// CompareKey orders sensitivities by their identifying fields, value
	// excluded. The kind leads the ordering so variants never interleave.
	CompareKey(other PointSensitivity) int
	// ConvertedTo re-expresses the value in the target currency using the
	// provider, rewriting the sensitivity currency. It returns
	// market.ErrMissingFxRate (wrapped) when the provider has no rate.
	ConvertedTo(target market.Currency, fx market.FxRateProvider) (PointSensitivity, error)
	// WithCurrency rewrites the sensitivity currency without rescaling.
	// Callers must not use it to perform currency conversion.
	WithCurrency(target market.Currency) PointSensitivity
	// WithValue replaces the value, all identifying fields fixed.
	WithValue(value float64) PointSensitivity
	// MapValue applies an arbitrary transform to the value.
	MapValue(op func(float64) float64) PointSensitivity
	// MultipliedBy scales the value, e.g. by a trade notional.
	MultipliedBy(factor float64) PointSensitivity
	// Normalize returns the canonical form used for deduplication. Single
	// point sensitivities are already canonical.
	Normalize() PointSensitivity
	// Cloned returns a value copy.
	Cloned() PointSensitivity
	// BuildInto appends this sensitivity to a running accumulator and
	// returns the accumulator.
	BuildInto(acc *Mutable) *Mutable
}

// compareKey is the shared total order over identifying fields.
func compareKey(a, b PointSensitivity) int {
	if c := strings.Compare(string(a.Kind()), string(b.Kind())); c != 0 {
		return c
	}
	if c := strings.Compare(a.CurveCurrency().String(), b.CurveCurrency().String()); c != 0 {
		return c
	}
	if c := strings.Compare(a.Currency().String(), b.Currency().String()); c != 0 {
		return c
	}
	if c := a.LegalEntity().Compare(b.LegalEntity()); c != 0 {
		return c
	}
	return cmp.Compare(a.YearFraction(), b.YearFraction())
}
