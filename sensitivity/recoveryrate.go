package sensitivity

import (
	"fmt"

	"github.com/openquant/creditcurve/market"
)

// RecoveryRateSensitivity is the sensitivity of a priced value to the
// recovery rate of a legal entity at a single year fraction. It carries
// the same field set as ZeroRateSensitivity but the two are never merged:
// the kind discriminant keeps otherwise-identical keys apart. The legal
// entity is mandatory for this variant.
type RecoveryRateSensitivity struct {
	curveCurrency market.Currency
	yearFraction  float64
	currency      market.Currency
	legalEntity   market.StandardID
	value         float64
}

// NewRecoveryRateSensitivity builds a recovery-rate sensitivity expressed
// in the curve's own currency.
func NewRecoveryRateSensitivity(currency market.Currency, yearFraction float64, legalEntity market.StandardID, value float64) RecoveryRateSensitivity {
	return RecoveryRateSensitivity{
		curveCurrency: currency,
		yearFraction:  yearFraction,
		currency:      currency,
		legalEntity:   legalEntity,
		value:         value,
	}
}

// NewRecoveryRateSensitivityWithCurrency builds a recovery-rate sensitivity
// whose value currency differs from the curve currency.
func NewRecoveryRateSensitivityWithCurrency(curveCurrency market.Currency, yearFraction float64, currency market.Currency, legalEntity market.StandardID, value float64) RecoveryRateSensitivity {
	return RecoveryRateSensitivity{
		curveCurrency: curveCurrency,
		yearFraction:  yearFraction,
		currency:      currency,
		legalEntity:   legalEntity,
		value:         value,
	}
}

// RecoveryRateSensitivityOfZeroRate re-tags a zero-rate-shaped sensitivity
// as a recovery-rate sensitivity for the given legal entity, keeping the
// currencies, year fraction and value.
func RecoveryRateSensitivityOfZeroRate(zrs ZeroRateSensitivity, legalEntity market.StandardID) RecoveryRateSensitivity {
	return RecoveryRateSensitivity{
		curveCurrency: zrs.CurveCurrency(),
		yearFraction:  zrs.YearFraction(),
		currency:      zrs.Currency(),
		legalEntity:   legalEntity,
		value:         zrs.Value(),
	}
}

// ZeroRateShape returns the zero-rate-shaped equivalent of this
// sensitivity, used when projecting onto a curve's parameter basis. The
// legal entity is carried across so the projection keeps the full key.
func (s RecoveryRateSensitivity) ZeroRateShape() ZeroRateSensitivity {
	return NewEntityZeroRateSensitivity(s.curveCurrency, s.yearFraction, s.currency, s.legalEntity, s.value)
}

func (s RecoveryRateSensitivity) Kind() Kind                     { return KindRecoveryRate }
func (s RecoveryRateSensitivity) CurveCurrency() market.Currency { return s.curveCurrency }
func (s RecoveryRateSensitivity) YearFraction() float64          { return s.yearFraction }
func (s RecoveryRateSensitivity) Currency() market.Currency      { return s.currency }
func (s RecoveryRateSensitivity) LegalEntity() market.StandardID { return s.legalEntity }
func (s RecoveryRateSensitivity) Value() float64                 { return s.value }

// CompareKey implements PointSensitivity.
func (s RecoveryRateSensitivity) CompareKey(other PointSensitivity) int {
	return compareKey(s, other)
}

// ConvertedTo implements PointSensitivity.
func (s RecoveryRateSensitivity) ConvertedTo(target market.Currency, fx market.FxRateProvider) (PointSensitivity, error) {
	if s.currency == target {
		return s, nil
	}
	rate, err := fx.FxRate(s.currency, target)
	if err != nil {
		return nil, fmt.Errorf("convert recovery rate sensitivity to %s: %w", target, err)
	}
	out := s
	out.currency = target
	out.value = s.value * rate
	return out, nil
}

// WithCurrency implements PointSensitivity.
func (s RecoveryRateSensitivity) WithCurrency(target market.Currency) PointSensitivity {
	out := s
	out.currency = target
	return out
}

// WithValue implements PointSensitivity.
func (s RecoveryRateSensitivity) WithValue(value float64) PointSensitivity {
	out := s
	out.value = value
	return out
}

// MapValue implements PointSensitivity.
func (s RecoveryRateSensitivity) MapValue(op func(float64) float64) PointSensitivity {
	return s.WithValue(op(s.value))
}

// MultipliedBy implements PointSensitivity.
func (s RecoveryRateSensitivity) MultipliedBy(factor float64) PointSensitivity {
	return s.WithValue(s.value * factor)
}

// Normalize implements PointSensitivity.
func (s RecoveryRateSensitivity) Normalize() PointSensitivity { return s }

// Cloned implements PointSensitivity.
func (s RecoveryRateSensitivity) Cloned() PointSensitivity { return s }

// BuildInto implements PointSensitivity.
func (s RecoveryRateSensitivity) BuildInto(acc *Mutable) *Mutable {
	acc.Add(s)
	return acc
}

func (s RecoveryRateSensitivity) String() string {
	return fmt.Sprintf("RecoveryRateSensitivity{curveCcy=%s yf=%g ccy=%s entity=%s value=%g}",
		s.curveCurrency, s.yearFraction, s.currency, s.legalEntity, s.value)
}
