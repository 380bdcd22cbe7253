// Package calendar provides holiday calendars and business day arithmetic.
//
// A Calendar decides whether a date is a business day and shifts dates by
// business days. The core treats calendars as pure function providers; the
// NoHolidays instance (every day is a business day) is a valid and commonly
// used implementation for curve time axes.
package calendar

import "time"

// Calendar decides business days and shifts dates across them.
type Calendar interface {
	// Name identifies the calendar, e.g. "NoHolidays" or "TARGET".
	Name() string
	// IsBusinessDay reports whether t is a business day.
	IsBusinessDay(t time.Time) bool
	// Shift moves n business days from t (n may be negative).
	Shift(t time.Time, n int) time.Time
	// Next returns the next business day strictly after t.
	Next(t time.Time) time.Time
	// Previous returns the closest business day strictly before t.
	Previous(t time.Time) time.Time
	// NextOrSame returns t if it is a business day, otherwise the next one.
	NextOrSame(t time.Time) time.Time
	// PreviousOrSame returns t if it is a business day, otherwise the previous one.
	PreviousOrSame(t time.Time) time.Time
	// DaysBetween counts business days in [start, endExclusive).
	DaysBetween(start, endExclusive time.Time) int
}

// shiftOver is the generic business-day walk shared by implementations.
func shiftOver(c Calendar, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

func daysBetweenOver(c Calendar, start, endExclusive time.Time) int {
	n := 0
	for d := start; d.Before(endExclusive); d = d.AddDate(0, 0, 1) {
		if c.IsBusinessDay(d) {
			n++
		}
	}
	return n
}

// Adjust applies Modified Following on cal: roll forward to a business day,
// but fall back before crossing a month boundary.
func Adjust(cal Calendar, t time.Time) time.Time {
	origMonth := t.Month()
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !cal.IsBusinessDay(t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AddBusinessDays advances n business days on cal (n may be negative).
func AddBusinessDays(cal Calendar, t time.Time, n int) time.Time {
	return cal.Shift(t, n)
}

//-------------------------------------------------------------------------

// noHolidays treats every day as a business day. Shifts collapse to plain
// calendar-day arithmetic.
type noHolidays struct{}

// NoHolidays is the calendar with no holidays and no weekends.
var NoHolidays Calendar = noHolidays{}

func (noHolidays) Name() string                         { return "NoHolidays" }
func (noHolidays) IsBusinessDay(time.Time) bool         { return true }
func (noHolidays) Shift(t time.Time, n int) time.Time   { return t.AddDate(0, 0, n) }
func (noHolidays) Next(t time.Time) time.Time           { return t.AddDate(0, 0, 1) }
func (noHolidays) Previous(t time.Time) time.Time       { return t.AddDate(0, 0, -1) }
func (noHolidays) NextOrSame(t time.Time) time.Time     { return t }
func (noHolidays) PreviousOrSame(t time.Time) time.Time { return t }

func (noHolidays) DaysBetween(start, endExclusive time.Time) int {
	return int(endExclusive.Sub(start).Hours() / 24)
}

//-------------------------------------------------------------------------

// weekends treats Saturday and Sunday as holidays.
type weekends struct{}

// Weekends is the calendar whose only holidays are Saturdays and Sundays.
var Weekends Calendar = weekends{}

func (weekends) Name() string { return "SatSun" }

func (weekends) IsBusinessDay(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

func (c weekends) Shift(t time.Time, n int) time.Time { return shiftOver(c, t, n) }
func (c weekends) Next(t time.Time) time.Time         { return c.Shift(t, 1) }
func (c weekends) Previous(t time.Time) time.Time     { return c.Shift(t, -1) }

func (c weekends) NextOrSame(t time.Time) time.Time {
	if c.IsBusinessDay(t) {
		return t
	}
	return c.Next(t)
}

func (c weekends) PreviousOrSame(t time.Time) time.Time {
	if c.IsBusinessDay(t) {
		return t
	}
	return c.Previous(t)
}

func (c weekends) DaysBetween(start, endExclusive time.Time) int {
	return daysBetweenOver(c, start, endExclusive)
}

//-------------------------------------------------------------------------

// HolidaySet is a calendar with the weekend rule plus an explicit holiday
// date set, keyed by yyyy-mm-dd.
type HolidaySet struct {
	name     string
	holidays map[string]struct{}
}

// NewHolidaySet builds a calendar from a list of holiday dates.
func NewHolidaySet(name string, holidays []time.Time) *HolidaySet {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Format("2006-01-02")] = struct{}{}
	}
	return &HolidaySet{name: name, holidays: set}
}

func (c *HolidaySet) Name() string { return c.name }

func (c *HolidaySet) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	_, holiday := c.holidays[t.Format("2006-01-02")]
	return !holiday
}

func (c *HolidaySet) Shift(t time.Time, n int) time.Time { return shiftOver(c, t, n) }
func (c *HolidaySet) Next(t time.Time) time.Time         { return c.Shift(t, 1) }
func (c *HolidaySet) Previous(t time.Time) time.Time     { return c.Shift(t, -1) }

func (c *HolidaySet) NextOrSame(t time.Time) time.Time {
	if c.IsBusinessDay(t) {
		return t
	}
	return c.Next(t)
}

func (c *HolidaySet) PreviousOrSame(t time.Time) time.Time {
	if c.IsBusinessDay(t) {
		return t
	}
	return c.Previous(t)
}

func (c *HolidaySet) DaysBetween(start, endExclusive time.Time) int {
	return daysBetweenOver(c, start, endExclusive)
}
