package format

import (
	"fmt"
	"time"

	"dateselect/internal/datemath"
)

// Pentad maps t's day of month onto the month's fixed 5-day groups and
// returns the pentad index (1..6), the range label, and the range's first
// day. The final pentad runs from day 26 to the end of the month and its
// label carries an ordinal suffix on the last day, e.g. "26-30th" or
// "26-31st". Days outside 1..31 cannot come out of a real instant; if one
// ever appears it lands in the final pentad.
func Pentad(t time.Time) (int, string, int) {
	p := datemath.Parse(t)
	lastDay := datemath.DaysInMonth(p.Month, p.Year)
	day := p.Date

	switch {
	case day >= 1 && day <= 5:
		return 1, "1-5th", 1
	case day <= 10 && day > 0:
		return 2, "6-10th", 6
	case day <= 15 && day > 0:
		return 3, "11-15th", 11
	case day <= 20 && day > 0:
		return 4, "16-20th", 16
	case day <= 25 && day > 0:
		return 5, "21-25th", 21
	default:
		return 6, fmt.Sprintf("26-%s", ordinal(lastDay)), 26
	}
}

// ordinal renders n with its English ordinal suffix: 1st, 2nd, 3rd, 4th,
// 11th, 21st, ...
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
