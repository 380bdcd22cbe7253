package sensitivity

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openquant/creditcurve/internal/logging"
	"github.com/openquant/creditcurve/market"
)

// Mutable is the running point-sensitivity accumulator for one pricing
// run. It is the only mutable structure in the core: it must be owned by a
// single computation and never shared across concurrent pricing tasks.
// Concurrent tasks each own their own Mutable and merge results after
// their computations complete.
type Mutable struct {
	runID  string
	points []PointSensitivity
}

// NewMutable returns an empty accumulator tagged with a fresh run id used
// in debug logs.
func NewMutable() *Mutable {
	return &Mutable{runID: uuid.NewString()}
}

// RunID returns the accumulator's run identifier.
func (m *Mutable) RunID() string { return m.runID }

// Len returns the number of accumulated entries before normalization.
func (m *Mutable) Len() int { return len(m.points) }

// Add appends a point sensitivity.
func (m *Mutable) Add(p PointSensitivity) *Mutable {
	m.points = append(m.points, p)
	return m
}

// AddAll appends every point sensitivity in order.
func (m *Mutable) AddAll(ps []PointSensitivity) *Mutable {
	m.points = append(m.points, ps...)
	return m
}

// MultipliedBy scales every accumulated value in place.
func (m *Mutable) MultipliedBy(factor float64) *Mutable {
	for i, p := range m.points {
		m.points[i] = p.MultipliedBy(factor)
	}
	return m
}

// MappedBy applies op to every accumulated value in place.
func (m *Mutable) MappedBy(op func(float64) float64) *Mutable {
	for i, p := range m.points {
		m.points[i] = p.MapValue(op)
	}
	return m
}

// ConvertedTo re-expresses every accumulated value in the target currency.
func (m *Mutable) ConvertedTo(target market.Currency, fx market.FxRateProvider) error {
	for i, p := range m.points {
		converted, err := p.ConvertedTo(target, fx)
		if err != nil {
			return err
		}
		m.points[i] = converted
	}
	return nil
}

// Clone returns an independent snapshot with a new run id.
func (m *Mutable) Clone() *Mutable {
	out := NewMutable()
	out.points = make([]PointSensitivity, len(m.points))
	for i, p := range m.points {
		out.points[i] = p.Cloned()
	}
	return out
}

// Points returns the accumulated entries in insertion order.
func (m *Mutable) Points() []PointSensitivity {
	out := make([]PointSensitivity, len(m.points))
	copy(out, m.points)
	return out
}

// Normalized sorts the accumulated entries by compare key and merges
// entries sharing a key by summing their values. The accumulator itself
// is left untouched. The grouping is stable: identical input order gives
// identical output order.
func (m *Mutable) Normalized() []PointSensitivity {
	sorted := m.Points()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompareKey(sorted[j]) < 0
	})

	merged := make([]PointSensitivity, 0, len(sorted))
	for _, p := range sorted {
		n := len(merged)
		if n > 0 && merged[n-1].CompareKey(p) == 0 {
			merged[n-1] = merged[n-1].WithValue(merged[n-1].Value() + p.Value())
			continue
		}
		merged = append(merged, p.Normalize())
	}

	logging.Debug("normalized point sensitivities",
		zap.String("run", m.runID),
		zap.Int("in", len(sorted)),
		zap.Int("out", len(merged)))
	return merged
}
