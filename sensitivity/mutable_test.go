package sensitivity_test

import (
	"math"
	"testing"

	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/sensitivity"
)

func TestMutable_MergesSameKey(t *testing.T) {
	t.Parallel()

	a := sensitivity.NewZeroRateSensitivity(market.USD, 1.0, market.USD, 3.0)
	b := sensitivity.NewZeroRateSensitivity(market.USD, 1.0, market.USD, 4.5)

	acc := sensitivity.NewMutable()
	a.BuildInto(acc)
	b.BuildInto(acc)

	got := acc.Normalized()
	if len(got) != 1 {
		t.Fatalf("expected 1 merged entry, got %d", len(got))
	}
	if math.Abs(got[0].Value()-7.5) > 1e-12 {
		t.Fatalf("merged value: got %g want 7.5", got[0].Value())
	}
}

func TestMutable_KeepsKindsSeparate(t *testing.T) {
	t.Parallel()

	zero := sensitivity.NewEntityZeroRateSensitivity(market.USD, 1.0, market.USD, acme, 3.0)
	recovery := sensitivity.NewRecoveryRateSensitivity(market.USD, 1.0, acme, 4.0)

	acc := sensitivity.NewMutable()
	acc.Add(zero)
	acc.Add(recovery)

	got := acc.Normalized()
	if len(got) != 2 {
		t.Fatalf("kinds with identical fields must stay separate, got %d entries", len(got))
	}
}

func TestMutable_NormalizedIsStable(t *testing.T) {
	t.Parallel()

	points := []sensitivity.PointSensitivity{
		sensitivity.NewZeroRateSensitivity(market.USD, 2.0, market.USD, 1.0),
		sensitivity.NewZeroRateSensitivity(market.EUR, 1.0, market.EUR, 2.0),
		sensitivity.NewZeroRateSensitivity(market.USD, 1.0, market.USD, 3.0),
	}

	first := sensitivity.NewMutable().AddAll(points).Normalized()
	second := sensitivity.NewMutable().AddAll(points).Normalized()

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].CompareKey(second[i]) != 0 || first[i].Value() != second[i].Value() {
			t.Fatalf("entry %d differs between identical runs", i)
		}
	}
}

func TestMutable_ScaleAndClone(t *testing.T) {
	t.Parallel()

	acc := sensitivity.NewMutable()
	acc.Add(sensitivity.NewZeroRateSensitivity(market.USD, 1.0, market.USD, 2.0))

	snapshot := acc.Clone()
	acc.MultipliedBy(10)

	if got := acc.Normalized()[0].Value(); got != 20.0 {
		t.Fatalf("MultipliedBy: got %g", got)
	}
	if got := snapshot.Normalized()[0].Value(); got != 2.0 {
		t.Fatalf("clone must be independent, got %g", got)
	}
	if snapshot.RunID() == acc.RunID() {
		t.Fatal("clone must carry its own run id")
	}

	acc.MappedBy(func(v float64) float64 { return -v })
	if got := acc.Normalized()[0].Value(); got != -20.0 {
		t.Fatalf("MappedBy: got %g", got)
	}
}
