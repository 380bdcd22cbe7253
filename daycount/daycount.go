// Package daycount converts pairs of calendar dates into year fractions
// under a day count convention. The year fraction is the canonical time
// coordinate for every curve query downstream, so the conversion here must
// be deterministic and free of side effects.
package daycount

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateOrder is returned by Between when the end date precedes the
// start date. The plain YearFraction method never returns it: all supported
// conventions tolerate reversed dates and produce a negative fraction.
var ErrInvalidDateOrder = errors.New("end date before start date")

// Convention identifies a day count convention.
type Convention string

// Supported conventions. 30/360 and 30E/360 both apply the Eurobond basis
// with day-of-month capped at 30.
const (
	Act360     Convention = "ACT/360"
	Act365F    Convention = "ACT/365F"
	Thirty360  Convention = "30/360"
	ThirtyE360 Convention = "30E/360"
)

// Parse returns the convention matching s, or an error for an unknown code.
func Parse(s string) (Convention, error) {
	switch Convention(s) {
	case Act360, Act365F, Thirty360, ThirtyE360:
		return Convention(s), nil
	}
	return "", fmt.Errorf("unknown day count convention %q", s)
}

// Days returns the number of calendar days between two dates as a float.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// YearFraction computes the year fraction between two dates under the
// convention. It is a pure function of the two dates. If end is before
// start the result is negative; none of the supported conventions forbid
// the ordering.
//
// An unrecognised convention falls back to ACT/365F.
func (c Convention) YearFraction(start, end time.Time) float64 {
	switch c {
	case Act360:
		return Days(start, end) / 360.0
	case Act365F:
		return Days(start, end) / 365.0
	case Thirty360, ThirtyE360:
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return Days(start, end) / 365.0
	}
}

// Between is the strict form of YearFraction for callers that require a
// non-negative time coordinate. It returns ErrInvalidDateOrder when end
// precedes start.
func Between(c Convention, start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("year fraction %s to %s: %w",
			start.Format("2006-01-02"), end.Format("2006-01-02"), ErrInvalidDateOrder)
	}
	return c.YearFraction(start, end), nil
}
