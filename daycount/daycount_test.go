package daycount_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/openquant/creditcurve/daycount"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearFraction_Act365F(t *testing.T) {
	t.Parallel()

	start := date(2025, 1, 1)
	end := date(2026, 1, 1)

	got := daycount.Act365F.YearFraction(start, end)
	if math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("ACT/365F over a 365-day year: got %.12f want 1", got)
	}
}

func TestYearFraction_Act360(t *testing.T) {
	t.Parallel()

	start := date(2025, 1, 1)
	end := date(2025, 7, 1) // 181 days

	got := daycount.Act360.YearFraction(start, end)
	want := 181.0 / 360.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("ACT/360: got %.12f want %.12f", got, want)
	}
}

func TestYearFraction_Thirty360_CapsDay31(t *testing.T) {
	t.Parallel()

	start := date(2025, 1, 31)
	end := date(2025, 3, 31)

	got := daycount.ThirtyE360.YearFraction(start, end)
	want := 60.0 / 360.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("30E/360 with month-end dates: got %.12f want %.12f", got, want)
	}
}

func TestYearFraction_ReversedDatesAreNegative(t *testing.T) {
	t.Parallel()

	start := date(2025, 6, 1)
	end := date(2025, 1, 1)

	got := daycount.Act365F.YearFraction(start, end)
	if got >= 0 {
		t.Fatalf("reversed dates should give a negative fraction, got %.12f", got)
	}
}

func TestBetween_RejectsReversedDates(t *testing.T) {
	t.Parallel()

	_, err := daycount.Between(daycount.Act365F, date(2025, 6, 1), date(2025, 1, 1))
	if !errors.Is(err, daycount.ErrInvalidDateOrder) {
		t.Fatalf("expected ErrInvalidDateOrder, got %v", err)
	}

	yf, err := daycount.Between(daycount.Act365F, date(2025, 1, 1), date(2025, 1, 1))
	if err != nil {
		t.Fatalf("same-day Between error: %v", err)
	}
	if yf != 0 {
		t.Fatalf("same-day year fraction: got %.12f want 0", yf)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := daycount.Parse("ACT/360")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c != daycount.Act360 {
		t.Fatalf("Parse: got %q", c)
	}
	if _, err := daycount.Parse("ACT/ACT.AFB"); err == nil {
		t.Fatal("expected error for unsupported convention")
	}
}
