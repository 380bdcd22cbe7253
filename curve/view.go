// Package curve provides discount-factor views over credit curves and the
// projection of point sensitivities onto each curve's parameter basis.
//
// A View exposes discount factors and continuously compounded zero rates
// at year fractions computed by the view's own day count. Discount factor
// and zero rate are two co-equal representations of the same state and
// satisfy discountFactor == exp(-zeroRate*yearFraction) for positive year
// fractions. Sensitivity computation splits into a curve-agnostic raw step
// (the derivative of the discounting formula, -discountFactor*yearFraction)
// and a curve-specific projection step (the chain rule onto calibration
// parameters), so a new parameterization only supplies the projection.
package curve

import (
	"errors"
	"fmt"
	"time"

	"github.com/openquant/creditcurve/daycount"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/sensitivity"
)

var (
	// ErrParameterCountMismatch is returned when a pre-computed sensitivity
	// vector does not match the curve's parameter count.
	ErrParameterCountMismatch = errors.New("parameter count mismatch")
	// ErrIndexOutOfRange is returned for a parameter index outside
	// [0, ParameterCount).
	ErrIndexOutOfRange = errors.New("parameter index out of range")
)

// View is a read-only discount view over one credit curve. Implementations
// are immutable and safe to share across concurrent pricing tasks;
// WithParameter and WithPerturbation return new instances.
type View interface {
	// Name identifies the underlying curve.
	Name() market.StandardID
	// Currency is the currency discount factors are provided for, fixed at
	// construction.
	Currency() market.Currency
	// Entity is the credit-risky legal entity the curve pertains to, or
	// the zero StandardID for a plain discount curve.
	Entity() market.StandardID
	// ValuationDate anchors the curve's time axis.
	ValuationDate() time.Time
	// DayCount is the convention converting dates to year fractions.
	DayCount() daycount.Convention

	// ParameterCount returns the number of calibration parameters.
	ParameterCount() int
	// Parameter returns the i-th parameter value.
	Parameter(i int) (float64, error)

	// RelativeYearFraction converts a date to the curve's time coordinate
	// using the valuation date and day count. Dates before the valuation
	// date give a negative fraction.
	RelativeYearFraction(date time.Time) float64

	// DiscountFactor returns the discount factor at a year fraction
	// produced by RelativeYearFraction. It is exactly 1 for year fractions
	// at or before zero.
	DiscountFactor(yearFraction float64) float64
	// DiscountFactorOn is the date form of DiscountFactor; the two agree
	// bit-for-bit.
	DiscountFactorOn(date time.Time) float64

	// ZeroRate returns the continuously compounded rate r with
	// DiscountFactor == exp(-r*yearFraction) for positive year fractions.
	// At yearFraction zero every implementation returns its short-end
	// limit; see the implementation docs.
	ZeroRate(yearFraction float64) float64
	// ZeroRateOn is the date form of ZeroRate.
	ZeroRateOn(date time.Time) float64

	// ZeroRatePointSensitivity returns the derivative of the discount
	// factor with respect to the zero rate at the year fraction, tagged
	// with the given sensitivity currency. The value is
	// -DiscountFactor(yearFraction)*yearFraction; re-expression into
	// another currency happens at the point-sensitivity stage, never here.
	ZeroRatePointSensitivity(yearFraction float64, sensitivityCurrency market.Currency) sensitivity.ZeroRateSensitivity
	// ZeroRatePointSensitivitySelf is ZeroRatePointSensitivity in the
	// curve's own currency.
	ZeroRatePointSensitivitySelf(yearFraction float64) sensitivity.ZeroRateSensitivity

	// UnitParameterSensitivity returns the derivative of the zero rate at
	// the year fraction with respect to each curve parameter, in
	// parameter order. This is the Jacobian row the chain rule uses.
	UnitParameterSensitivity(yearFraction float64) []float64
	// ParameterSensitivity projects a point sensitivity onto the curve's
	// parameter basis.
	ParameterSensitivity(point sensitivity.ZeroRateSensitivity) sensitivity.ParameterSensitivity
	// CreateParameterSensitivity wraps a pre-computed vector whose length
	// must equal ParameterCount.
	CreateParameterSensitivity(currency market.Currency, values []float64) (sensitivity.ParameterSensitivity, error)

	// WithParameter returns a view with one parameter replaced.
	WithParameter(i int, value float64) (View, error)
	// WithPerturbation returns a view with every parameter rewritten by
	// the perturbation function.
	WithPerturbation(perturbation func(i int, value float64) float64) View
}

// meta carries the identity fields shared by every implementation.
type meta struct {
	name      market.StandardID
	currency  market.Currency
	entity    market.StandardID
	valuation time.Time
	dayCount  daycount.Convention
}

func (m meta) Name() market.StandardID       { return m.name }
func (m meta) Currency() market.Currency     { return m.currency }
func (m meta) Entity() market.StandardID     { return m.entity }
func (m meta) ValuationDate() time.Time      { return m.valuation }
func (m meta) DayCount() daycount.Convention { return m.dayCount }

func (m meta) RelativeYearFraction(date time.Time) float64 {
	return m.dayCount.YearFraction(m.valuation, date)
}

// pointSensitivity builds the raw zero-rate point sensitivity for a view.
func pointSensitivity(v View, yearFraction float64, ccy market.Currency) sensitivity.ZeroRateSensitivity {
	value := -v.DiscountFactor(yearFraction) * yearFraction
	if entity := v.Entity(); !entity.IsZero() {
		return sensitivity.NewEntityZeroRateSensitivity(v.Currency(), yearFraction, ccy, entity, value)
	}
	return sensitivity.NewZeroRateSensitivity(v.Currency(), yearFraction, ccy, value)
}

// project applies the chain rule: point value times the unit sensitivity.
func project(v View, point sensitivity.ZeroRateSensitivity) sensitivity.ParameterSensitivity {
	weights := v.UnitParameterSensitivity(point.YearFraction())
	values := make([]float64, len(weights))
	for i, w := range weights {
		values[i] = w * point.Value()
	}
	return sensitivity.NewParameterSensitivity(v.Name(), point.Currency(), values)
}

// createParameterSensitivity validates a pre-computed vector for a view.
func createParameterSensitivity(v View, ccy market.Currency, values []float64) (sensitivity.ParameterSensitivity, error) {
	if len(values) != v.ParameterCount() {
		return sensitivity.ParameterSensitivity{}, fmt.Errorf("curve %s: %d values for %d parameters: %w",
			v.Name(), len(values), v.ParameterCount(), ErrParameterCountMismatch)
	}
	return sensitivity.NewParameterSensitivity(v.Name(), ccy, values), nil
}
