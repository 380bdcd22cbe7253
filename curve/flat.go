package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/openquant/creditcurve/daycount"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/sensitivity"
)

// Flat is a single-parameter curve with one continuously compounded rate
// at every tenor. The projection onto its parameter basis is the identity
// mapping onto the single parameter. A Flat curve also serves as a
// constant recovery-rate curve, with the rate read as the recovery level.
type Flat struct {
	meta
	rate float64
}

// NewFlat builds a flat curve.
func NewFlat(name market.StandardID, ccy market.Currency, valuation time.Time, dc daycount.Convention, rate float64) *Flat {
	return &Flat{
		meta: meta{name: name, currency: ccy, valuation: valuation, dayCount: dc},
		rate: rate,
	}
}

// WithEntity returns a copy tied to a credit-risky legal entity, so that
// point sensitivities produced by the curve carry the entity.
func (c *Flat) WithEntity(entity market.StandardID) *Flat {
	out := *c
	out.entity = entity
	return &out
}

// Rate returns the flat rate.
func (c *Flat) Rate() float64 { return c.rate }

func (c *Flat) ParameterCount() int { return 1 }

func (c *Flat) Parameter(i int) (float64, error) {
	if i != 0 {
		return 0, fmt.Errorf("flat curve %s: index %d: %w", c.name, i, ErrIndexOutOfRange)
	}
	return c.rate, nil
}

func (c *Flat) DiscountFactor(yearFraction float64) float64 {
	if yearFraction <= 0 {
		return 1.0
	}
	return math.Exp(-c.rate * yearFraction)
}

func (c *Flat) DiscountFactorOn(date time.Time) float64 {
	return c.DiscountFactor(c.RelativeYearFraction(date))
}

// ZeroRate returns the flat rate at every year fraction, including zero,
// where the flat rate is the short-end limit.
func (c *Flat) ZeroRate(float64) float64 { return c.rate }

func (c *Flat) ZeroRateOn(date time.Time) float64 {
	return c.ZeroRate(c.RelativeYearFraction(date))
}

func (c *Flat) ZeroRatePointSensitivity(yearFraction float64, ccy market.Currency) sensitivity.ZeroRateSensitivity {
	return pointSensitivity(c, yearFraction, ccy)
}

func (c *Flat) ZeroRatePointSensitivitySelf(yearFraction float64) sensitivity.ZeroRateSensitivity {
	return c.ZeroRatePointSensitivity(yearFraction, c.currency)
}

func (c *Flat) UnitParameterSensitivity(float64) []float64 {
	return []float64{1}
}

func (c *Flat) ParameterSensitivity(point sensitivity.ZeroRateSensitivity) sensitivity.ParameterSensitivity {
	return project(c, point)
}

func (c *Flat) CreateParameterSensitivity(ccy market.Currency, values []float64) (sensitivity.ParameterSensitivity, error) {
	return createParameterSensitivity(c, ccy, values)
}

func (c *Flat) WithParameter(i int, value float64) (View, error) {
	if i != 0 {
		return nil, fmt.Errorf("flat curve %s: index %d: %w", c.name, i, ErrIndexOutOfRange)
	}
	out := *c
	out.rate = value
	return &out, nil
}

func (c *Flat) WithPerturbation(perturbation func(i int, value float64) float64) View {
	out := *c
	out.rate = perturbation(0, c.rate)
	return &out
}
