package curve_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/openquant/creditcurve/curve"
	"github.com/openquant/creditcurve/daycount"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/sensitivity"
)

var (
	valuation = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	usdDisc   = market.NewStandardID("OG-Curve", "USD-DISC")
	acme      = market.NewStandardID("OG-Entity", "ACME")
)

// testViews builds one instance of every curve parameterization over the
// same three nodes, for properties that must hold regardless of the
// interpolation scheme.
func testViews(t *testing.T) []curve.View {
	t.Helper()

	times := []float64{0.5, 1.0, 2.0}
	rates := []float64{0.010, 0.015, 0.020}

	zr, err := curve.NewZeroRates(usdDisc, market.USD, valuation, daycount.Act365F, times, rates)
	if err != nil {
		t.Fatalf("NewZeroRates: %v", err)
	}
	ll, err := curve.NewLogLinearDiscount(usdDisc, market.USD, valuation, daycount.Act365F, times, rates)
	if err != nil {
		t.Fatalf("NewLogLinearDiscount: %v", err)
	}
	flat := curve.NewFlat(usdDisc, market.USD, valuation, daycount.Act365F, 0.015)

	return []curve.View{zr, ll, flat}
}

func TestDiscountFactorZeroRateDuality(t *testing.T) {
	t.Parallel()

	yfs := []float64{0.1, 0.5, 0.75, 1.0, 1.5, 2.0, 3.5}
	for _, v := range testViews(t) {
		for _, yf := range yfs {
			df := v.DiscountFactor(yf)
			fromRate := math.Exp(-v.ZeroRate(yf) * yf)
			if diff := math.Abs(df - fromRate); diff > 1e-12 {
				t.Fatalf("%T at yf=%g: df=%g exp(-r*yf)=%g diff=%g", v, yf, df, fromRate, diff)
			}
		}
	}
}

func TestDiscountFactorAtOrBeforeZero(t *testing.T) {
	t.Parallel()

	for _, v := range testViews(t) {
		if df := v.DiscountFactor(0); df != 1.0 {
			t.Fatalf("%T: DiscountFactor(0) = %g, want exactly 1", v, df)
		}
		if df := v.DiscountFactor(-0.25); df != 1.0 {
			t.Fatalf("%T: DiscountFactor(-0.25) = %g, want exactly 1", v, df)
		}
	}
}

func TestDateFormsAgreeWithYearFractionForms(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		valuation.AddDate(0, 3, 0),
		valuation.AddDate(1, 0, 0),
		valuation.AddDate(2, 6, 10),
	}
	for _, v := range testViews(t) {
		for _, d := range dates {
			yf := v.RelativeYearFraction(d)
			if v.DiscountFactorOn(d) != v.DiscountFactor(yf) {
				t.Fatalf("%T on %s: DiscountFactorOn disagrees with DiscountFactor", v, d.Format("2006-01-02"))
			}
			if v.ZeroRateOn(d) != v.ZeroRate(yf) {
				t.Fatalf("%T on %s: ZeroRateOn disagrees with ZeroRate", v, d.Format("2006-01-02"))
			}
		}
	}
}

func TestZeroRateShortEndLimit(t *testing.T) {
	t.Parallel()

	for _, v := range testViews(t) {
		atZero := v.ZeroRate(0)
		near := v.ZeroRate(1e-9)
		if math.Abs(atZero-near) > 1e-9 {
			t.Fatalf("%T: ZeroRate(0)=%g is not the short-end limit (ZeroRate(1e-9)=%g)", v, atZero, near)
		}
	}
}

func TestZeroRatePointSensitivityValue(t *testing.T) {
	t.Parallel()

	for _, v := range testViews(t) {
		yf := 1.25
		pt := v.ZeroRatePointSensitivitySelf(yf)
		want := -v.DiscountFactor(yf) * yf
		if math.Abs(pt.Value()-want) > 1e-15 {
			t.Fatalf("%T: point value %g, want %g", v, pt.Value(), want)
		}
		if pt.CurveCurrency() != market.USD || pt.Currency() != market.USD {
			t.Fatalf("%T: currencies %s/%s, want USD/USD", v, pt.CurveCurrency(), pt.Currency())
		}
		if pt.YearFraction() != yf {
			t.Fatalf("%T: year fraction %g", v, pt.YearFraction())
		}

		tagged := v.ZeroRatePointSensitivity(yf, market.EUR)
		if tagged.Currency() != market.EUR {
			t.Fatalf("%T: sensitivity currency %s, want EUR", v, tagged.Currency())
		}
		if tagged.Value() != pt.Value() {
			t.Fatalf("%T: tagging a currency must not rescale the value", v)
		}
	}
}

func TestZeroRatePointSensitivityCarriesEntity(t *testing.T) {
	t.Parallel()

	base, err := curve.NewZeroRates(usdDisc, market.USD, valuation, daycount.Act365F,
		[]float64{1.0}, []float64{0.02})
	if err != nil {
		t.Fatalf("NewZeroRates: %v", err)
	}
	pt := base.WithEntity(acme).ZeroRatePointSensitivitySelf(1.0)
	if pt.LegalEntity().Compare(acme) != 0 {
		t.Fatalf("entity not carried: got %s", pt.LegalEntity())
	}
	if !base.ZeroRatePointSensitivitySelf(1.0).LegalEntity().IsZero() {
		t.Fatal("plain curve point must carry no entity")
	}
}

func TestZeroRatesProjectionWeights(t *testing.T) {
	t.Parallel()

	v, err := curve.NewZeroRates(usdDisc, market.USD, valuation, daycount.Act365F,
		[]float64{0.5, 1.0, 2.0}, []float64{0.01, 0.01, 0.01})
	if err != nil {
		t.Fatalf("NewZeroRates: %v", err)
	}

	// 0.75 sits halfway between the first two nodes, so a point value of
	// 10 splits 5/5 across them and leaves the third node untouched.
	pt := sensitivity.NewZeroRateSensitivity(market.USD, 0.75, market.USD, 10)
	ps := v.ParameterSensitivity(pt)

	got := ps.Sensitivities()
	want := []float64{5, 5, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("projection: got %v want %v", got, want)
		}
	}
	if math.Abs(ps.Total()-10) > 1e-12 {
		t.Fatalf("projected total %g, want the point value 10", ps.Total())
	}
	if ps.CurveName().Compare(usdDisc) != 0 {
		t.Fatalf("curve name: got %s", ps.CurveName())
	}
}

func TestProjectionMatchesFiniteDifference(t *testing.T) {
	t.Parallel()

	yfs := []float64{0.25, 0.75, 1.4, 2.8}
	for _, v := range testViews(t) {
		for _, yf := range yfs {
			pt := v.ZeroRatePointSensitivitySelf(yf)
			analytic := v.ParameterSensitivity(pt).Sensitivities()

			numeric, err := curve.FiniteDifferenceSensitivity(v, yf, 1e-6)
			if err != nil {
				t.Fatalf("%T: finite difference: %v", v, err)
			}
			for i := range analytic {
				diff := math.Abs(analytic[i] - numeric[i])
				scale := math.Max(math.Abs(numeric[i]), 1e-4)
				if diff/scale > 1e-6 {
					t.Fatalf("%T at yf=%g parameter %d: analytic=%g numeric=%g", v, yf, i, analytic[i], numeric[i])
				}
			}
		}
	}
}

func TestCreateParameterSensitivityLengthCheck(t *testing.T) {
	t.Parallel()

	for _, v := range testViews(t) {
		values := make([]float64, v.ParameterCount())
		if _, err := v.CreateParameterSensitivity(market.USD, values); err != nil {
			t.Fatalf("%T: matching length rejected: %v", v, err)
		}
		_, err := v.CreateParameterSensitivity(market.USD, append(values, 0))
		if !errors.Is(err, curve.ErrParameterCountMismatch) {
			t.Fatalf("%T: want ErrParameterCountMismatch, got %v", v, err)
		}
	}
}

func TestParameterIndexBounds(t *testing.T) {
	t.Parallel()

	for _, v := range testViews(t) {
		if _, err := v.Parameter(-1); !errors.Is(err, curve.ErrIndexOutOfRange) {
			t.Fatalf("%T: Parameter(-1): want ErrIndexOutOfRange, got %v", v, err)
		}
		if _, err := v.Parameter(v.ParameterCount()); !errors.Is(err, curve.ErrIndexOutOfRange) {
			t.Fatalf("%T: Parameter(count): want ErrIndexOutOfRange, got %v", v, err)
		}
		if _, err := v.WithParameter(v.ParameterCount(), 0.01); !errors.Is(err, curve.ErrIndexOutOfRange) {
			t.Fatalf("%T: WithParameter(count): want ErrIndexOutOfRange, got %v", v, err)
		}
	}
}

func TestWithParameterLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()

	for _, v := range testViews(t) {
		before, err := v.Parameter(0)
		if err != nil {
			t.Fatalf("%T: Parameter(0): %v", v, err)
		}
		bumped, err := v.WithParameter(0, before+0.01)
		if err != nil {
			t.Fatalf("%T: WithParameter: %v", v, err)
		}
		after, _ := v.Parameter(0)
		if after != before {
			t.Fatalf("%T: original mutated: %g -> %g", v, before, after)
		}
		got, _ := bumped.Parameter(0)
		if math.Abs(got-(before+0.01)) > 1e-15 {
			t.Fatalf("%T: bumped parameter %g, want %g", v, got, before+0.01)
		}
	}
}

func TestWithPerturbationRewritesEveryParameter(t *testing.T) {
	t.Parallel()

	for _, v := range testViews(t) {
		shifted := v.WithPerturbation(func(_ int, value float64) float64 { return value + 0.005 })
		for i := 0; i < v.ParameterCount(); i++ {
			base, _ := v.Parameter(i)
			got, _ := shifted.Parameter(i)
			if math.Abs(got-(base+0.005)) > 1e-15 {
				t.Fatalf("%T: parameter %d: got %g want %g", v, i, got, base+0.005)
			}
		}
	}
}

func TestLogLinearDiscountFromFactorsRoundTrip(t *testing.T) {
	t.Parallel()

	times := []float64{0.5, 1.0, 2.0}
	rates := []float64{0.010, 0.015, 0.020}

	byRates, err := curve.NewLogLinearDiscount(usdDisc, market.USD, valuation, daycount.Act365F, times, rates)
	if err != nil {
		t.Fatalf("NewLogLinearDiscount: %v", err)
	}
	factors := make([]float64, len(times))
	for i, yf := range times {
		factors[i] = byRates.DiscountFactor(yf)
	}
	byFactors, err := curve.NewLogLinearDiscountFromFactors(usdDisc, market.USD, valuation, daycount.Act365F, times, factors)
	if err != nil {
		t.Fatalf("NewLogLinearDiscountFromFactors: %v", err)
	}
	for _, yf := range []float64{0.1, 0.5, 0.8, 1.7, 2.0, 3.0} {
		a, b := byRates.DiscountFactor(yf), byFactors.DiscountFactor(yf)
		if math.Abs(a-b) > 1e-12 {
			t.Fatalf("at yf=%g: rate-built df=%g factor-built df=%g", yf, a, b)
		}
	}
}

func TestLogLinearDiscountConstantForwardBetweenNodes(t *testing.T) {
	t.Parallel()

	times := []float64{1.0, 2.0}
	rates := []float64{0.02, 0.03}
	v, err := curve.NewLogLinearDiscount(usdDisc, market.USD, valuation, daycount.Act365F, times, rates)
	if err != nil {
		t.Fatalf("NewLogLinearDiscount: %v", err)
	}

	// Between nodes the forward rate is constant, so log df is linear:
	// df(1.5) must be the geometric mean of df(1) and df(2).
	mid := v.DiscountFactor(1.5)
	want := math.Sqrt(v.DiscountFactor(1.0) * v.DiscountFactor(2.0))
	if math.Abs(mid-want) > 1e-12 {
		t.Fatalf("df(1.5)=%g, want geometric mean %g", mid, want)
	}

	// Beyond the last node that same forward extends flat.
	fwd := (rates[1]*2.0 - rates[0]*1.0) / (2.0 - 1.0)
	wantExtrap := v.DiscountFactor(2.0) * math.Exp(-fwd*0.5)
	if got := v.DiscountFactor(2.5); math.Abs(got-wantExtrap) > 1e-12 {
		t.Fatalf("df(2.5)=%g, want flat-forward %g", got, wantExtrap)
	}
}

func TestNodeValidation(t *testing.T) {
	t.Parallel()

	if _, err := curve.NewZeroRates(usdDisc, market.USD, valuation, daycount.Act365F,
		[]float64{1.0, 0.5}, []float64{0.01, 0.02}); err == nil {
		t.Fatal("decreasing node times accepted")
	}
	if _, err := curve.NewZeroRates(usdDisc, market.USD, valuation, daycount.Act365F,
		[]float64{1.0}, []float64{0.01, 0.02}); err == nil {
		t.Fatal("length mismatch accepted")
	}
	if _, err := curve.NewLogLinearDiscount(usdDisc, market.USD, valuation, daycount.Act365F,
		nil, nil); err == nil {
		t.Fatal("empty node set accepted")
	}
}
