package sensitivity

import (
	"fmt"

	"github.com/openquant/creditcurve/market"
)

// ZeroRateSensitivity is the sensitivity of a priced value to the
// continuously compounded zero rate at a single year fraction on a credit
// discount curve. The legal entity is optional: it is set for curves tied
// to a credit-risky entity and zero for plain discount curves.
type ZeroRateSensitivity struct {
	curveCurrency market.Currency
	yearFraction  float64
	currency      market.Currency
	legalEntity   market.StandardID
	value         float64
}

// NewZeroRateSensitivity builds a zero-rate sensitivity with no legal
// entity. The year fraction must come from the owning curve's own day
// count; it is never reinterpreted here.
func NewZeroRateSensitivity(curveCurrency market.Currency, yearFraction float64, currency market.Currency, value float64) ZeroRateSensitivity {
	return ZeroRateSensitivity{
		curveCurrency: curveCurrency,
		yearFraction:  yearFraction,
		currency:      currency,
		value:         value,
	}
}

// NewEntityZeroRateSensitivity builds a zero-rate sensitivity on a curve
// tied to a legal entity.
func NewEntityZeroRateSensitivity(curveCurrency market.Currency, yearFraction float64, currency market.Currency, legalEntity market.StandardID, value float64) ZeroRateSensitivity {
	s := NewZeroRateSensitivity(curveCurrency, yearFraction, currency, value)
	s.legalEntity = legalEntity
	return s
}

func (s ZeroRateSensitivity) Kind() Kind                     { return KindZeroRate }
func (s ZeroRateSensitivity) CurveCurrency() market.Currency { return s.curveCurrency }
func (s ZeroRateSensitivity) YearFraction() float64          { return s.yearFraction }
func (s ZeroRateSensitivity) Currency() market.Currency      { return s.currency }
func (s ZeroRateSensitivity) LegalEntity() market.StandardID { return s.legalEntity }
func (s ZeroRateSensitivity) Value() float64                 { return s.value }

// CompareKey implements PointSensitivity.
func (s ZeroRateSensitivity) CompareKey(other PointSensitivity) int {
	return compareKey(s, other)
}

// ConvertedTo implements PointSensitivity.
func (s ZeroRateSensitivity) ConvertedTo(target market.Currency, fx market.FxRateProvider) (PointSensitivity, error) {
	if s.currency == target {
		return s, nil
	}
	rate, err := fx.FxRate(s.currency, target)
	if err != nil {
		return nil, fmt.Errorf("convert zero rate sensitivity to %s: %w", target, err)
	}
	out := s
	out.currency = target
	out.value = s.value * rate
	return out, nil
}

// WithCurrency implements PointSensitivity.
func (s ZeroRateSensitivity) WithCurrency(target market.Currency) PointSensitivity {
	out := s
	out.currency = target
	return out
}

// WithValue implements PointSensitivity.
func (s ZeroRateSensitivity) WithValue(value float64) PointSensitivity {
	out := s
	out.value = value
	return out
}

// MapValue implements PointSensitivity.
func (s ZeroRateSensitivity) MapValue(op func(float64) float64) PointSensitivity {
	return s.WithValue(op(s.value))
}

// MultipliedBy implements PointSensitivity.
func (s ZeroRateSensitivity) MultipliedBy(factor float64) PointSensitivity {
	return s.WithValue(s.value * factor)
}

// Normalize implements PointSensitivity.
func (s ZeroRateSensitivity) Normalize() PointSensitivity { return s }

// Cloned implements PointSensitivity.
func (s ZeroRateSensitivity) Cloned() PointSensitivity { return s }

// BuildInto implements PointSensitivity.
func (s ZeroRateSensitivity) BuildInto(acc *Mutable) *Mutable {
	acc.Add(s)
	return acc
}

func (s ZeroRateSensitivity) String() string {
	return fmt.Sprintf("ZeroRateSensitivity{curveCcy=%s yf=%g ccy=%s entity=%s value=%g}",
		s.curveCurrency, s.yearFraction, s.currency, s.legalEntity, s.value)
}
