package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/openquant/creditcurve/config"
	"github.com/openquant/creditcurve/daycount"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/sensitivity"
)

// LogLinearDiscount is a curve parameterized by zero rates at increasing
// node year fractions with log-linear interpolation of discount factors,
// i.e. linear interpolation of rate*time. This is the standard discount
// curve interpolation (constant forward rate between nodes). Below the
// first node the curve is anchored at discountFactor(0) == 1, giving a
// constant short-end zero rate; beyond the last node the final segment's
// forward rate is extended flat.
type LogLinearDiscount struct {
	meta
	times []float64
	rates []float64
}

// NewLogLinearDiscount builds the curve from node zero rates. Node times
// must be strictly increasing and positive; one rate per node.
func NewLogLinearDiscount(name market.StandardID, ccy market.Currency, valuation time.Time, dc daycount.Convention, times, rates []float64) (*LogLinearDiscount, error) {
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
	c := &LogLinearDiscount{
		meta:  meta{name: name, currency: ccy, valuation: valuation, dayCount: dc},
		times: append([]float64(nil), times...),
		rates: append([]float64(nil), rates...),
	}
	return c, nil
}

// NewLogLinearDiscountFromFactors builds the curve from discount factors
// at the node times, extracting the node zero rates. Factors are floored
// at the configured minimum to keep the log well defined.
func NewLogLinearDiscountFromFactors(name market.StandardID, ccy market.Currency, valuation time.Time, dc daycount.Convention, times, factors []float64) (*LogLinearDiscount, error) {
	if len(times) != len(factors) {
		return nil, fmt.Errorf("curve %s: %d node times but %d factors", name, len(times), len(factors))
	}
	floor := config.GetConfig().MinDiscountFactor
	rates := make([]float64, len(factors))
	for i, df := range factors {
		if df < floor {
			df = floor
		}
		if times[i] <= 0 {
			return nil, fmt.Errorf("curve %s: node times must be positive, node %d is %g", name, i, times[i])
		}
		rates[i] = -math.Log(df) / times[i]
	}
	return NewLogLinearDiscount(name, ccy, valuation, dc, times, rates)
}

// WithEntity returns a copy tied to a credit-risky legal entity.
func (c *LogLinearDiscount) WithEntity(entity market.StandardID) *LogLinearDiscount {
	out := *c
	out.entity = entity
	return &out
}

// NodeTimes returns a copy of the node year fractions.
func (c *LogLinearDiscount) NodeTimes() []float64 {
	return append([]float64(nil), c.times...)
}

func (c *LogLinearDiscount) ParameterCount() int { return len(c.rates) }

func (c *LogLinearDiscount) Parameter(i int) (float64, error) {
	if i < 0 || i >= len(c.rates) {
		return 0, fmt.Errorf("curve %s: index %d of %d: %w", c.name, i, len(c.rates), ErrIndexOutOfRange)
	}
	return c.rates[i], nil
}

// rateTime returns rate*time at yf, the negative log discount factor.
func (c *LogLinearDiscount) rateTime(yf float64) float64 {
	last := len(c.times) - 1
	switch {
	case yf <= c.times[0]:
		// Anchored at the origin: constant zero rate up to the first node.
		return c.rates[0] * yf
	case yf >= c.times[last]:
		if last == 0 {
			return c.rates[0] * yf
		}
		// Flat forward beyond the last node.
		t1, t2 := c.times[last-1], c.times[last]
		fwd := (c.rates[last]*t2 - c.rates[last-1]*t1) / (t2 - t1)
		return c.rates[last]*t2 + fwd*(yf-t2)
	default:
		i := sort.SearchFloat64s(c.times, yf)
		t1, t2 := c.times[i-1], c.times[i]
		w := (yf - t1) / (t2 - t1)
		return c.rates[i-1]*t1*(1-w) + c.rates[i]*t2*w
	}
}

func (c *LogLinearDiscount) DiscountFactor(yearFraction float64) float64 {
	if yearFraction <= 0 {
		return 1.0
	}
	return math.Exp(-c.rateTime(yearFraction))
}

func (c *LogLinearDiscount) DiscountFactorOn(date time.Time) float64 {
	return c.DiscountFactor(c.RelativeYearFraction(date))
}

// ZeroRate returns rateTime/yearFraction. At year fraction zero (and
// below) it returns the first node's rate, the short-end limit of the
// anchored segment.
func (c *LogLinearDiscount) ZeroRate(yearFraction float64) float64 {
	if yearFraction <= 0 {
		return c.rates[0]
	}
	return c.rateTime(yearFraction) / yearFraction
}

func (c *LogLinearDiscount) ZeroRateOn(date time.Time) float64 {
	return c.ZeroRate(c.RelativeYearFraction(date))
}

func (c *LogLinearDiscount) ZeroRatePointSensitivity(yearFraction float64, ccy market.Currency) sensitivity.ZeroRateSensitivity {
	return pointSensitivity(c, yearFraction, ccy)
}

func (c *LogLinearDiscount) ZeroRatePointSensitivitySelf(yearFraction float64) sensitivity.ZeroRateSensitivity {
	return c.ZeroRatePointSensitivity(yearFraction, c.currency)
}

// UnitParameterSensitivity differentiates the interpolated zero rate with
// respect to each node rate: d(rateTime)/d(rate_i) divided by the year
// fraction.
func (c *LogLinearDiscount) UnitParameterSensitivity(yearFraction float64) []float64 {
	weights := make([]float64, len(c.times))
	last := len(c.times) - 1
	switch {
	case yearFraction <= c.times[0]:
		weights[0] = 1
	case yearFraction >= c.times[last]:
		if last == 0 {
			weights[0] = 1
			break
		}
		t1, t2 := c.times[last-1], c.times[last]
		over := yearFraction - t2
		weights[last] = (t2 + over*t2/(t2-t1)) / yearFraction
		weights[last-1] = -over * t1 / (t2 - t1) / yearFraction
	default:
		i := sort.SearchFloat64s(c.times, yearFraction)
		t1, t2 := c.times[i-1], c.times[i]
		w := (yearFraction - t1) / (t2 - t1)
		weights[i-1] = (1 - w) * t1 / yearFraction
		weights[i] = w * t2 / yearFraction
	}
	return weights
}

func (c *LogLinearDiscount) ParameterSensitivity(point sensitivity.ZeroRateSensitivity) sensitivity.ParameterSensitivity {
	return project(c, point)
}

func (c *LogLinearDiscount) CreateParameterSensitivity(ccy market.Currency, values []float64) (sensitivity.ParameterSensitivity, error) {
	return createParameterSensitivity(c, ccy, values)
}

func (c *LogLinearDiscount) WithParameter(i int, value float64) (View, error) {
	if i < 0 || i >= len(c.rates) {
		return nil, fmt.Errorf("curve %s: index %d of %d: %w", c.name, i, len(c.rates), ErrIndexOutOfRange)
	}
	out := *c
	out.rates = append([]float64(nil), c.rates...)
	out.rates[i] = value
	return &out, nil
}

func (c *LogLinearDiscount) WithPerturbation(perturbation func(i int, value float64) float64) View {
	out := *c
	out.rates = make([]float64, len(c.rates))
	for i, r := range c.rates {
		out.rates[i] = perturbation(i, r)
	}
	return &out
}
