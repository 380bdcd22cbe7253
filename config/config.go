// Package config holds numeric parameters shared by curve evaluation and
// sensitivity validation.
package config

// Config holds the active numeric parameters.
type Config struct {
	// DualityTolerance is the tolerance for the discount-factor /
	// zero-rate consistency property, exp(-r*t) vs the stored factor.
	DualityTolerance float64

	// FiniteDifferenceBump is the default parameter bump used when
	// validating analytic sensitivities against bump-and-reprice.
	FiniteDifferenceBump float64

	// FiniteDifferenceRelTol is the maximum relative error accepted
	// between the analytic and finite-difference sensitivities.
	FiniteDifferenceRelTol float64

	// MinDiscountFactor floors interpolated discount factors to avoid
	// division by near-zero in zero-rate extraction.
	MinDiscountFactor float64
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	DualityTolerance:       1e-12,
	FiniteDifferenceBump:   1e-6,
	FiniteDifferenceRelTol: 1e-6,
	MinDiscountFactor:      1e-9,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
