package curve

import (
	"fmt"

	"github.com/openquant/creditcurve/config"
)

// FiniteDifferenceSensitivity computes the derivative of the discount
// factor at a year fraction with respect to each curve parameter by
// central bump-and-reprice through WithParameter. It exists to validate
// the analytic path (ZeroRatePointSensitivity projected through
// ParameterSensitivity) and is not intended for production risk runs.
//
// A zero eps uses the configured default bump.
func FiniteDifferenceSensitivity(v View, yearFraction, eps float64) ([]float64, error) {
	if eps == 0 {
		eps = config.GetConfig().FiniteDifferenceBump
	}
	out := make([]float64, v.ParameterCount())
	for i := range out {
		base, err := v.Parameter(i)
		if err != nil {
			return nil, err
		}
		up, err := v.WithParameter(i, base+eps)
		if err != nil {
			return nil, fmt.Errorf("bump up parameter %d: %w", i, err)
		}
		down, err := v.WithParameter(i, base-eps)
		if err != nil {
			return nil, fmt.Errorf("bump down parameter %d: %w", i, err)
		}
		out[i] = (up.DiscountFactor(yearFraction) - down.DiscountFactor(yearFraction)) / (2 * eps)
	}
	return out, nil
}
