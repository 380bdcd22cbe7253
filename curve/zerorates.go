package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/openquant/creditcurve/daycount"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/sensitivity"
)

// ZeroRates is a curve parameterized by zero rates at increasing node year
// fractions, interpolated piecewise-linearly on the rates with flat
// extrapolation beyond both ends. Its parameter basis is the node rates in
// node order, so the projection of a point sensitivity distributes the
// value across the bracketing nodes by the linear interpolation weights.
type ZeroRates struct {
	meta
	times []float64
	rates []float64
}

// NewZeroRates builds a zero-rate curve. Node times must be strictly
// increasing and positive; one rate per node.
func NewZeroRates(name market.StandardID, ccy market.Currency, valuation time.Time, dc daycount.Convention, times, rates []float64) (*ZeroRates, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("curve %s: no nodes", name)
	}
	if len(times) != len(rates) {
		return nil, fmt.Errorf("curve %s: %d node times but %d rates", name, len(times), len(rates))
	}
	prev := 0.0
	for i, t := range times {
		if t <= prev {
			return nil, fmt.Errorf("curve %s: node times must be positive and strictly increasing, node %d is %g", name, i, t)
		}
		prev = t
	}
	c := &ZeroRates{
		meta:  meta{name: name, currency: ccy, valuation: valuation, dayCount: dc},
		times: append([]float64(nil), times...),
		rates: append([]float64(nil), rates...),
	}
	return c, nil
}

// WithEntity returns a copy tied to a credit-risky legal entity.
func (c *ZeroRates) WithEntity(entity market.StandardID) *ZeroRates {
	out := *c
	out.entity = entity
	return &out
}

// NodeTimes returns a copy of the node year fractions.
func (c *ZeroRates) NodeTimes() []float64 {
	return append([]float64(nil), c.times...)
}

func (c *ZeroRates) ParameterCount() int { return len(c.rates) }

func (c *ZeroRates) Parameter(i int) (float64, error) {
	if i < 0 || i >= len(c.rates) {
		return 0, fmt.Errorf("curve %s: index %d of %d: %w", c.name, i, len(c.rates), ErrIndexOutOfRange)
	}
	return c.rates[i], nil
}

// bracket returns the node indices around yf. Callers guarantee
// times[0] < yf < times[last].
func (c *ZeroRates) bracket(yf float64) (int, int) {
	// First index with times[i] >= yf.
	i := sort.SearchFloat64s(c.times, yf)
	return i - 1, i
}

func (c *ZeroRates) zeroRateAt(yf float64) float64 {
	if yf <= c.times[0] {
		return c.rates[0]
	}
	last := len(c.times) - 1
	if yf >= c.times[last] {
		return c.rates[last]
	}
	i, j := c.bracket(yf)
	t1, t2 := c.times[i], c.times[j]
	w := (yf - t1) / (t2 - t1)
	return c.rates[i]*(1-w) + c.rates[j]*w
}

func (c *ZeroRates) DiscountFactor(yearFraction float64) float64 {
	if yearFraction <= 0 {
		return 1.0
	}
	return math.Exp(-c.zeroRateAt(yearFraction) * yearFraction)
}

func (c *ZeroRates) DiscountFactorOn(date time.Time) float64 {
	return c.DiscountFactor(c.RelativeYearFraction(date))
}

// ZeroRate returns the interpolated zero rate. At year fraction zero (and
// below) it returns the first node's rate, the curve's short-end limit.
func (c *ZeroRates) ZeroRate(yearFraction float64) float64 {
	return c.zeroRateAt(yearFraction)
}

func (c *ZeroRates) ZeroRateOn(date time.Time) float64 {
	return c.ZeroRate(c.RelativeYearFraction(date))
}

func (c *ZeroRates) ZeroRatePointSensitivity(yearFraction float64, ccy market.Currency) sensitivity.ZeroRateSensitivity {
	return pointSensitivity(c, yearFraction, ccy)
}

func (c *ZeroRates) ZeroRatePointSensitivitySelf(yearFraction float64) sensitivity.ZeroRateSensitivity {
	return c.ZeroRatePointSensitivity(yearFraction, c.currency)
}

func (c *ZeroRates) UnitParameterSensitivity(yearFraction float64) []float64 {
	weights := make([]float64, len(c.times))
	last := len(c.times) - 1
	switch {
	case yearFraction <= c.times[0]:
		weights[0] = 1
	case yearFraction >= c.times[last]:
		weights[last] = 1
	default:
		i, j := c.bracket(yearFraction)
		t1, t2 := c.times[i], c.times[j]
		w := (yearFraction - t1) / (t2 - t1)
		weights[i] = 1 - w
		weights[j] = w
	}
	return weights
}

func (c *ZeroRates) ParameterSensitivity(point sensitivity.ZeroRateSensitivity) sensitivity.ParameterSensitivity {
	return project(c, point)
}

func (c *ZeroRates) CreateParameterSensitivity(ccy market.Currency, values []float64) (sensitivity.ParameterSensitivity, error) {
	return createParameterSensitivity(c, ccy, values)
}

func (c *ZeroRates) WithParameter(i int, value float64) (View, error) {
	if i < 0 || i >= len(c.rates) {
		return nil, fmt.Errorf("curve %s: index %d of %d: %w", c.name, i, len(c.rates), ErrIndexOutOfRange)
	}
	out := *c
	out.rates = append([]float64(nil), c.rates...)
	out.rates[i] = value
	return &out, nil
}

func (c *ZeroRates) WithPerturbation(perturbation func(i int, value float64) float64) View {
	out := *c
	out.rates = make([]float64, len(c.rates))
	for i, r := range c.rates {
		out.rates[i] = perturbation(i, r)
	}
	return &out
}
