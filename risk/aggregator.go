package risk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openquant/creditcurve/internal/logging"
	"github.com/openquant/creditcurve/sensitivity"
)

// Aggregate converts point sensitivities into parameter sensitivities.
//
// The input sequence is grouped by compare key and each group's values are
// summed; the grouping is stable, so identical input order gives identical
// output order. Each group's originating curve is resolved through the
// resolver and the summed point is projected through that curve's own
// parameter basis. Results targeting the same curve and currency are
// combined by element-wise vector addition. A group whose curve cannot be
// resolved fails the whole aggregation with ErrUnresolvedCurve.
func Aggregate(points []sensitivity.PointSensitivity, resolver CurveResolver) (sensitivity.ParameterSensitivities, error) {
	acc := sensitivity.NewMutable()
	acc.AddAll(points)
	return AggregateMutable(acc, resolver)
}

// AggregateMutable is Aggregate over an already-owned accumulator. The
// accumulator itself is left untouched; Normalized works on a snapshot.
func AggregateMutable(acc *sensitivity.Mutable, resolver CurveResolver) (sensitivity.ParameterSensitivities, error) {
	grouped := acc.Normalized()

	var out sensitivity.ParameterSensitivities
	for _, p := range grouped {
		v, err := resolver.FindCurve(KeyOf(p))
		if err != nil {
			return sensitivity.ParameterSensitivities{}, fmt.Errorf("aggregate sensitivities: %w", err)
		}
		out = out.CombinedWith(v.ParameterSensitivity(zeroRateShape(p)))
	}

	logging.Debug("aggregated point sensitivities",
		zap.String("run", acc.RunID()),
		zap.Int("groups", len(grouped)),
		zap.Int("curves", out.Size()))
	return out, nil
}

// zeroRateShape re-expresses any point sensitivity in the zero-rate shape
// every curve projection accepts. The variant distinction has already done
// its job by the time a group reaches its own curve: the resolver keyed on
// the kind, so a recovery-rate group can only land on a recovery-rate
// curve.
func zeroRateShape(p sensitivity.PointSensitivity) sensitivity.ZeroRateSensitivity {
	switch s := p.(type) {
	case sensitivity.ZeroRateSensitivity:
		return s
	case sensitivity.RecoveryRateSensitivity:
		return s.ZeroRateShape()
	default:
		// The variant set is closed; an unknown implementation is a
		// programming error.
		panic(fmt.Sprintf("unknown point sensitivity type %T", p))
	}
}
