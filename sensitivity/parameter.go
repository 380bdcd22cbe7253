package sensitivity

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/openquant/creditcurve/market"
)

// ParameterSensitivity is the sensitivity of a priced value to the
// calibration parameters of one curve: one value per curve parameter, in
// parameter order, expressed in a single currency. It is produced by
// projecting point sensitivities through the curve's own unit-sensitivity
// function, and its length always equals the originating curve's
// parameter count.
type ParameterSensitivity struct {
	curveName market.StandardID
	currency  market.Currency
	values    *mat.VecDense
}

// NewParameterSensitivity builds a parameter sensitivity, copying values.
func NewParameterSensitivity(curveName market.StandardID, currency market.Currency, values []float64) ParameterSensitivity {
	data := make([]float64, len(values))
	copy(data, values)
	return ParameterSensitivity{
		curveName: curveName,
		currency:  currency,
		values:    mat.NewVecDense(len(data), data),
	}
}

// CurveName identifies the originating curve.
func (p ParameterSensitivity) CurveName() market.StandardID { return p.curveName }

// Currency returns the currency of the sensitivity values.
func (p ParameterSensitivity) Currency() market.Currency { return p.currency }

// ParameterCount returns the number of curve parameters.
func (p ParameterSensitivity) ParameterCount() int { return p.values.Len() }

// Sensitivities returns a copy of the per-parameter values.
func (p ParameterSensitivity) Sensitivities() []float64 {
	out := make([]float64, p.values.Len())
	copy(out, p.values.RawVector().Data)
	return out
}

// Total returns the sum over all parameters.
func (p ParameterSensitivity) Total() float64 {
	return floats.Sum(p.values.RawVector().Data)
}

// MultipliedBy scales every value.
func (p ParameterSensitivity) MultipliedBy(factor float64) ParameterSensitivity {
	out := mat.NewVecDense(p.values.Len(), nil)
	out.ScaleVec(factor, p.values)
	return ParameterSensitivity{curveName: p.curveName, currency: p.currency, values: out}
}

// ConvertedTo re-expresses the values in the target currency.
func (p ParameterSensitivity) ConvertedTo(target market.Currency, fx market.FxRateProvider) (ParameterSensitivity, error) {
	if p.currency == target {
		return p, nil
	}
	rate, err := fx.FxRate(p.currency, target)
	if err != nil {
		return ParameterSensitivity{}, fmt.Errorf("convert parameter sensitivity to %s: %w", target, err)
	}
	out := p.MultipliedBy(rate)
	out.currency = target
	return out, nil
}

func (p ParameterSensitivity) String() string {
	return fmt.Sprintf("ParameterSensitivity{curve=%s ccy=%s values=%v}",
		p.curveName, p.currency, p.Sensitivities())
}

// sameTarget reports whether two entries target the same curve and currency.
func (p ParameterSensitivity) sameTarget(other ParameterSensitivity) bool {
	return p.curveName.Compare(other.curveName) == 0 && p.currency == other.currency
}

//-------------------------------------------------------------------------

// ParameterSensitivities is an ordered collection of parameter
// sensitivities, at most one entry per (curve, currency) pair, sorted by
// curve name then currency so output is deterministic.
type ParameterSensitivities struct {
	list []ParameterSensitivity
}

// NewParameterSensitivities builds a collection from entries, combining
// duplicates.
func NewParameterSensitivities(entries ...ParameterSensitivity) ParameterSensitivities {
	var out ParameterSensitivities
	for _, e := range entries {
		out = out.CombinedWith(e)
	}
	return out
}

// Size returns the number of entries.
func (ps ParameterSensitivities) Size() int { return len(ps.list) }

// List returns the entries in their deterministic order.
func (ps ParameterSensitivities) List() []ParameterSensitivity {
	out := make([]ParameterSensitivity, len(ps.list))
	copy(out, ps.list)
	return out
}

// Find returns the entry for a curve and currency, if present.
func (ps ParameterSensitivities) Find(curveName market.StandardID, currency market.Currency) (ParameterSensitivity, bool) {
	for _, e := range ps.list {
		if e.curveName.Compare(curveName) == 0 && e.currency == currency {
			return e, true
		}
	}
	return ParameterSensitivity{}, false
}

// CombinedWith merges one entry into the collection. An entry targeting an
// existing (curve, currency) pair is added element-wise; the vector
// lengths must agree since both came from the same curve's parameter
// basis.
func (ps ParameterSensitivities) CombinedWith(entry ParameterSensitivity) ParameterSensitivities {
	out := ParameterSensitivities{list: make([]ParameterSensitivity, len(ps.list))}
	copy(out.list, ps.list)

	for i, e := range out.list {
		if e.sameTarget(entry) {
			sum := mat.NewVecDense(e.values.Len(), nil)
			sum.AddVec(e.values, entry.values)
			out.list[i] = ParameterSensitivity{curveName: e.curveName, currency: e.currency, values: sum}
			return out
		}
	}

	out.list = append(out.list, entry)
	sort.SliceStable(out.list, func(i, j int) bool {
		if c := out.list[i].curveName.Compare(out.list[j].curveName); c != 0 {
			return c < 0
		}
		return strings.Compare(out.list[i].currency.String(), out.list[j].currency.String()) < 0
	})
	return out
}

// CombinedWithAll merges every entry of another collection.
func (ps ParameterSensitivities) CombinedWithAll(other ParameterSensitivities) ParameterSensitivities {
	out := ps
	for _, e := range other.list {
		out = out.CombinedWith(e)
	}
	return out
}

// Total sums every value across all entries. Only meaningful when all
// entries share one currency.
func (ps ParameterSensitivities) Total() float64 {
	total := 0.0
	for _, e := range ps.list {
		total += e.Total()
	}
	return total
}
