// Package input loads curve and sensitivity definitions from JSON files
// for the curverisk binary. Quoted rates are decoded as decimals so the
// quote survives exactly until it enters the float-based curve core.
package input

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openquant/creditcurve/curve"
	"github.com/openquant/creditcurve/daycount"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/risk"
	"github.com/openquant/creditcurve/sensitivity"
)

// CurveDef defines one curve.
type CurveDef struct {
	// Name is a scheme~value identifier, e.g. "OG-Curve~USD-DISC".
	Name string `json:"name"`
	// Kind is "zeroRate" or "recoveryRate".
	Kind string `json:"kind"`
	// Currency is the curve currency code.
	Currency string `json:"currency"`
	// Entity is an optional scheme~value legal entity identifier.
	Entity string `json:"entity,omitempty"`
	// DayCount is a convention code, e.g. "ACT/365F".
	DayCount string `json:"dayCount"`
	// Interpolation is "flat", "zeroRates" or "logLinearDiscount".
	Interpolation string `json:"interpolation"`

	// Times holds node year fractions for interpolated curves.
	Times []float64 `json:"times,omitempty"`
	// Rates holds quoted node zero rates, one per node.
	Rates []decimal.Decimal `json:"rates,omitempty"`
	// Rate is the single quoted rate of a flat curve.
	Rate decimal.Decimal `json:"rate,omitempty"`
}

// PointDef defines one point sensitivity.
type PointDef struct {
	Kind          string  `json:"kind"`
	CurveCurrency string  `json:"curveCurrency"`
	YearFraction  float64 `json:"yearFraction"`
	// Currency of the value; defaults to the curve currency.
	Currency string  `json:"currency,omitempty"`
	Entity   string  `json:"entity,omitempty"`
	Value    float64 `json:"value"`
}

// FxDef defines one quoted FX rate.
type FxDef struct {
	// Pair is "BASE/COUNTER", e.g. "USD/EUR".
	Pair string          `json:"pair"`
	Rate decimal.Decimal `json:"rate"`
}

// File is the top-level input document.
type File struct {
	// ValuationDate anchors every curve, formatted 2006-01-02.
	ValuationDate string     `json:"valuationDate"`
	Curves        []CurveDef `json:"curves"`
	Sensitivities []PointDef `json:"sensitivities,omitempty"`
	Fx            []FxDef    `json:"fx,omitempty"`
}

// Load reads and decodes an input file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode input %s: %w", path, err)
	}
	if len(f.Curves) == 0 {
		return nil, fmt.Errorf("input %s: no curves", path)
	}
	return &f, nil
}

// Valuation parses the valuation date.
func (f *File) Valuation() (time.Time, error) {
	d, err := time.Parse("2006-01-02", f.ValuationDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("valuation date %q: %w", f.ValuationDate, err)
	}
	return d, nil
}

func parseKind(s string) (sensitivity.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zerorate", "zero-rate", "":
		return sensitivity.KindZeroRate, nil
	case "recoveryrate", "recovery-rate":
		return sensitivity.KindRecoveryRate, nil
	}
	return "", fmt.Errorf("unknown sensitivity kind %q", s)
}

func toFloats(rates []decimal.Decimal) []float64 {
	out := make([]float64, len(rates))
	for i, r := range rates {
		out[i] = r.InexactFloat64()
	}
	return out
}

// BuildCurve constructs the curve view for one definition.
func (d CurveDef) BuildCurve(valuation time.Time) (curve.View, error) {
	name, err := market.ParseStandardID(d.Name)
	if err != nil {
		return nil, fmt.Errorf("curve name: %w", err)
	}
	dc, err := daycount.Parse(d.DayCount)
	if err != nil {
		return nil, fmt.Errorf("curve %s: %w", d.Name, err)
	}
	ccy := market.CurrencyOf(d.Currency)
	if ccy.IsZero() {
		return nil, fmt.Errorf("curve %s: no currency", d.Name)
	}

	var v curve.View
	switch strings.ToLower(strings.TrimSpace(d.Interpolation)) {
	case "flat":
		v = curve.NewFlat(name, ccy, valuation, dc, d.Rate.InexactFloat64())
	case "zerorates", "linearzero":
		c, err := curve.NewZeroRates(name, ccy, valuation, dc, d.Times, toFloats(d.Rates))
		if err != nil {
			return nil, err
		}
		v = c
	case "loglineardiscount", "loglinear":
		c, err := curve.NewLogLinearDiscount(name, ccy, valuation, dc, d.Times, toFloats(d.Rates))
		if err != nil {
			return nil, err
		}
		v = c
	default:
		return nil, fmt.Errorf("curve %s: unknown interpolation %q", d.Name, d.Interpolation)
	}

	if d.Entity != "" {
		entity, err := market.ParseStandardID(d.Entity)
		if err != nil {
			return nil, fmt.Errorf("curve %s entity: %w", d.Name, err)
		}
		switch c := v.(type) {
		case *curve.Flat:
			v = c.WithEntity(entity)
		case *curve.ZeroRates:
			v = c.WithEntity(entity)
		case *curve.LogLinearDiscount:
			v = c.WithEntity(entity)
		}
	}
	return v, nil
}

// BuildResolver constructs every curve and registers it under its kind.
func (f *File) BuildResolver() (*risk.StaticResolver, error) {
	valuation, err := f.Valuation()
	if err != nil {
		return nil, err
	}
	r := risk.NewStaticResolver()
	for _, d := range f.Curves {
		kind, err := parseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", d.Name, err)
		}
		v, err := d.BuildCurve(valuation)
		if err != nil {
			return nil, err
		}
		r.Register(kind, v)
	}
	return r, nil
}

// FindCurve builds the curve definition matching a name, or the first
// definition when name is empty.
func (f *File) FindCurve(name string) (curve.View, error) {
	valuation, err := f.Valuation()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return f.Curves[0].BuildCurve(valuation)
	}
	for _, d := range f.Curves {
		if d.Name == name {
			return d.BuildCurve(valuation)
		}
	}
	return nil, fmt.Errorf("no curve named %q in input", name)
}

// Points converts the sensitivity definitions.
func (f *File) Points() ([]sensitivity.PointSensitivity, error) {
	out := make([]sensitivity.PointSensitivity, 0, len(f.Sensitivities))
	for i, d := range f.Sensitivities {
		kind, err := parseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("sensitivity %d: %w", i, err)
		}
		curveCcy := market.CurrencyOf(d.CurveCurrency)
		ccy := market.CurrencyOf(d.Currency)
		if ccy.IsZero() {
			ccy = curveCcy
		}
		var entity market.StandardID
		if d.Entity != "" {
			entity, err = market.ParseStandardID(d.Entity)
			if err != nil {
				return nil, fmt.Errorf("sensitivity %d entity: %w", i, err)
			}
		}
		switch kind {
		case sensitivity.KindZeroRate:
			if entity.IsZero() {
				out = append(out, sensitivity.NewZeroRateSensitivity(curveCcy, d.YearFraction, ccy, d.Value))
			} else {
				out = append(out, sensitivity.NewEntityZeroRateSensitivity(curveCcy, d.YearFraction, ccy, entity, d.Value))
			}
		case sensitivity.KindRecoveryRate:
			if entity.IsZero() {
				return nil, fmt.Errorf("sensitivity %d: recovery rate requires an entity", i)
			}
			out = append(out, sensitivity.NewRecoveryRateSensitivityWithCurrency(curveCcy, d.YearFraction, ccy, entity, d.Value))
		}
	}
	return out, nil
}

// ParseFxPair splits "BASE/COUNTER".
func ParseFxPair(pair string) (market.Currency, market.Currency, error) {
	base, counter, ok := strings.Cut(pair, "/")
	if !ok {
		return "", "", fmt.Errorf("fx pair %q: want BASE/COUNTER", pair)
	}
	return market.CurrencyOf(base), market.CurrencyOf(counter), nil
}

// FxMatrix builds the FX matrix from the file's rates plus extra
// PAIR=rate entries from the command line, the latter winning on
// conflicts.
func (f *File) FxMatrix(extra []string) (*market.FxMatrix, error) {
	m := market.NewFxMatrix()
	for _, d := range f.Fx {
		base, counter, err := ParseFxPair(d.Pair)
		if err != nil {
			return nil, err
		}
		if err := m.AddRate(base, counter, d.Rate); err != nil {
			return nil, err
		}
	}
	for _, e := range extra {
		pair, quote, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("fx flag %q: want PAIR=RATE", e)
		}
		base, counter, err := ParseFxPair(pair)
		if err != nil {
			return nil, err
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(quote))
		if err != nil {
			return nil, fmt.Errorf("fx flag %q: %w", e, err)
		}
		if err := m.AddRate(base, counter, rate); err != nil {
			return nil, err
		}
	}
	return m, nil
}
