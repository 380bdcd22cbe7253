package calendar_test

import (
	"testing"
	"time"

	"github.com/openquant/creditcurve/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNoHolidays(t *testing.T) {
	t.Parallel()

	sat := date(2025, 6, 7)
	if !calendar.NoHolidays.IsBusinessDay(sat) {
		t.Fatal("NoHolidays must treat Saturday as a business day")
	}
	if got := calendar.NoHolidays.Shift(sat, 3); !got.Equal(date(2025, 6, 10)) {
		t.Fatalf("Shift(+3): got %s", got.Format("2006-01-02"))
	}
	if got := calendar.NoHolidays.NextOrSame(sat); !got.Equal(sat) {
		t.Fatalf("NextOrSame: got %s", got.Format("2006-01-02"))
	}
	if got := calendar.NoHolidays.DaysBetween(sat, date(2025, 6, 14)); got != 7 {
		t.Fatalf("DaysBetween: got %d want 7", got)
	}
}

func TestWeekends(t *testing.T) {
	t.Parallel()

	fri := date(2025, 6, 6)
	sat := date(2025, 6, 7)
	mon := date(2025, 6, 9)

	if calendar.Weekends.IsBusinessDay(sat) {
		t.Fatal("Saturday must not be a business day")
	}
	if got := calendar.Weekends.Next(fri); !got.Equal(mon) {
		t.Fatalf("Next(Fri): got %s want Monday", got.Format("2006-01-02"))
	}
	if got := calendar.Weekends.Shift(fri, -1); !got.Equal(date(2025, 6, 5)) {
		t.Fatalf("Shift(-1): got %s", got.Format("2006-01-02"))
	}
	if got := calendar.Weekends.NextOrSame(sat); !got.Equal(mon) {
		t.Fatalf("NextOrSame(Sat): got %s", got.Format("2006-01-02"))
	}
	if got := calendar.Weekends.PreviousOrSame(sat); !got.Equal(fri) {
		t.Fatalf("PreviousOrSame(Sat): got %s", got.Format("2006-01-02"))
	}
	// Mon..Fri of one week.
	if got := calendar.Weekends.DaysBetween(date(2025, 6, 2), date(2025, 6, 9)); got != 5 {
		t.Fatalf("DaysBetween: got %d want 5", got)
	}
}

func TestHolidaySet(t *testing.T) {
	t.Parallel()

	xmas := date(2025, 12, 25)
	cal := calendar.NewHolidaySet("TEST", []time.Time{xmas})

	if cal.IsBusinessDay(xmas) {
		t.Fatal("holiday must not be a business day")
	}
	if got := cal.NextOrSame(xmas); !got.Equal(date(2025, 12, 26)) {
		t.Fatalf("NextOrSame(holiday): got %s", got.Format("2006-01-02"))
	}
}

func TestAdjust_ModifiedFollowing(t *testing.T) {
	t.Parallel()

	// 2025-05-31 is a Saturday; Following would land in June, so Modified
	// Following rolls back to Friday the 30th.
	sat := date(2025, 5, 31)
	if got := calendar.Adjust(calendar.Weekends, sat); !got.Equal(date(2025, 5, 30)) {
		t.Fatalf("Adjust: got %s want 2025-05-30", got.Format("2006-01-02"))
	}

	// Mid-month weekend rolls forward.
	if got := calendar.Adjust(calendar.Weekends, date(2025, 6, 7)); !got.Equal(date(2025, 6, 9)) {
		t.Fatalf("Adjust: got %s want 2025-06-09", got.Format("2006-01-02"))
	}
}
