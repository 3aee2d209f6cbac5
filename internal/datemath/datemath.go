// Package datemath holds the pure date calculations the selection engine
// is built on: normalizing arbitrary date-like inputs into time.Time,
// granularity-restricted comparison, decade bounds, month day counts,
// clamping and day arithmetic.
//
// Conventions, used consistently across the whole module:
//   - Months are 0-based (January == 0) wherever an int month appears.
//     time.Month stays 1-based inside time.Time itself.
//   - Ordering comparisons (IsAfter, IsBefore, Clamp, IsBetween) are made
//     at day granularity: time-of-day is truncated before comparing. Call
//     sites that need wall-clock ordering compare time.Time directly.
//   - A zero time.Time means "absent".
package datemath

import (
	"errors"
	"time"

	appLog "dateselect/internal/log"
)

// ErrInvalidDate is returned when an input cannot be normalized into a
// real calendar point. Callers inside the engine treat it as a silent
// no-op rather than an escalating failure.
var ErrInvalidDate = errors.New("datemath: invalid date")

// Granularity selects the precision of date equality checks.
type Granularity int

const (
	Days Granularity = iota
	Months
	Years
)

// isoLayouts are the accepted string forms for Normalize, tried in order.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize converts a date-like value into a concrete time.Time.
//
// Accepted inputs:
//   - time.Time (returned as-is)
//   - *time.Time (nil fails)
//   - string in an ISO-8601-like layout
//   - int / int64 / float64 epoch value in milliseconds
//
// Anything else, including unparsable strings and zero times, fails with
// ErrInvalidDate.
func Normalize(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return d, nil
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return *d, nil
	case string:
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, d, time.Local); err == nil {
				return t, nil
			}
		}
		appLog.Debug("unable to convert value to date", "value", d)
		return time.Time{}, ErrInvalidDate
	case int:
		return time.UnixMilli(int64(d)), nil
	case int64:
		return time.UnixMilli(d), nil
	case float64:
		return time.UnixMilli(int64(d)), nil
	default:
		appLog.Debug("unsupported date-like type", "value", v)
		return time.Time{}, ErrInvalidDate
	}
}

// StartOfDay returns the midnight preceding t, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b are equal when restricted to the given
// granularity. Absent (zero) inputs are never equal to anything.
func SameDate(a, b time.Time, g Granularity) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	switch g {
	case Days:
		return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
	case Months:
		return a.Year() == b.Year() && a.Month() == b.Month()
	case Years:
		return a.Year() == b.Year()
	default:
		return false
	}
}

// IsAfter reports whether a falls after b, compared at day granularity.
// With orEqual, same-day counts as after.
func IsAfter(a, b time.Time, orEqual bool) bool {
	d1 := StartOfDay(a)
	d2 := StartOfDay(b)
	if orEqual {
		return !d1.Before(d2)
	}
	return d1.After(d2)
}

// IsBefore is the strict day-granularity complement of IsAfter.
func IsBefore(a, b time.Time) bool {
	return !IsAfter(a, b, true)
}

// IsBetween reports whether from < t < to at day granularity.
func IsBetween(t, from, to time.Time) bool {
	return IsAfter(t, from, false) && IsBefore(t, to)
}

// DecadeOf returns the decade bounds containing t, e.g. 2024 -> (2020, 2029).
func DecadeOf(t time.Time) (int, int) {
	first := t.Year() / 10 * 10
	return first, first + 9
}

// CenturyOf returns the century number of t, e.g. 2024 -> 20.
func CenturyOf(t time.Time) int {
	return t.Year() / 100
}

// DaysInMonth returns the day count of the given 0-based month, computed
// as day 0 of the following month. Handles leap-year February.
func DaysInMonth(month0, year int) int {
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// Clamp returns max if t is after it, min if t is before it, otherwise t.
// Zero bounds are treated as absent. Comparison is at day granularity.
func Clamp(t, min, max time.Time) time.Time {
	if !max.IsZero() && IsAfter(t, max, false) {
		return max
	}
	if !min.IsZero() && IsBefore(t, min) {
		return min
	}
	return t
}

// AddDays shifts t by n calendar days and resets the clock to midnight.
// Month and year boundaries roll over (Jan 31 + 1 -> Feb 1).
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// SubDays is AddDays with a negated count.
func SubDays(t time.Time, n int) time.Time {
	return AddDays(t, -n)
}
