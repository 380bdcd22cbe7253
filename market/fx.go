package market

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMissingFxRate is returned when a provider cannot supply a rate for a
// currency pair.
var ErrMissingFxRate = errors.New("missing fx rate")

// FxRateProvider supplies FX rates for currency conversion of sensitivity
// values. Implementations must be deterministic for a given pair over the
// lifetime of a pricing run.
type FxRateProvider interface {
	// FxRate returns the rate r such that an amount in base multiplied by r
	// is the equivalent amount in counter.
	FxRate(base, counter Currency) (float64, error)
}

// FxMatrix is an in-memory FxRateProvider. Quoted rates are stored exactly
// as decimals; the reciprocal of a quoted rate serves the inverse pair.
// Identity pairs always resolve to 1.
type FxMatrix struct {
	rates map[string]decimal.Decimal
}

// NewFxMatrix returns an empty matrix.
func NewFxMatrix() *FxMatrix {
	return &FxMatrix{rates: make(map[string]decimal.Decimal)}
}

func pairKey(base, counter Currency) string {
	return base.String() + "/" + counter.String()
}

// AddRate records a quoted rate for base/counter. A rate for the inverse
// pair is derived on lookup, not stored.
func (m *FxMatrix) AddRate(base, counter Currency, rate decimal.Decimal) error {
	if base.IsZero() || counter.IsZero() {
		return fmt.Errorf("fx rate %s/%s: empty currency", base, counter)
	}
	if rate.Sign() <= 0 {
		return fmt.Errorf("fx rate %s/%s: rate must be positive, got %s", base, counter, rate)
	}
	m.rates[pairKey(base, counter)] = rate
	return nil
}

// FxRate implements FxRateProvider.
func (m *FxMatrix) FxRate(base, counter Currency) (float64, error) {
	if base == counter {
		return 1.0, nil
	}
	if r, ok := m.rates[pairKey(base, counter)]; ok {
		return r.InexactFloat64(), nil
	}
	if r, ok := m.rates[pairKey(counter, base)]; ok {
		return decimal.NewFromInt(1).Div(r).InexactFloat64(), nil
	}
	return 0, fmt.Errorf("%s/%s: %w", base, counter, ErrMissingFxRate)
}
