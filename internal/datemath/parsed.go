package datemath

import (
	"fmt"
	"time"
)

// ParsedDate is a fully-decomposed read-only view of an instant. The
// Full* fields are fixed-width, zero-padded string renderings used by the
// formatter and by renderers that need stable cell labels.
type ParsedDate struct {
	Year  int
	Month int // 0-based
	Date  int // day of month
	Day   int // day of week, 0 = Sunday

	Hours     int
	Hours12   int // 1..12
	DayPeriod string
	Minutes   int
	Seconds   int

	FullDate    string
	FullMonth   string // 1-based
	FullHours   string
	FullHours12 string
	FullMinutes string
}

// Parse decomposes t into a ParsedDate.
func Parse(t time.Time) ParsedDate {
	hours := t.Hour()
	hours12, dayPeriod := DayPeriodFromHours24(hours)

	return ParsedDate{
		Year:  t.Year(),
		Month: int(t.Month()) - 1,
		Date:  t.Day(),
		Day:   int(t.Weekday()),

		Hours:     hours,
		Hours12:   hours12,
		DayPeriod: dayPeriod,
		Minutes:   t.Minute(),
		Seconds:   t.Second(),

		FullDate:    pad2(t.Day()),
		FullMonth:   pad2(int(t.Month())),
		FullHours:   pad2(hours),
		FullHours12: pad2(hours12),
		FullMinutes: pad2(t.Minute()),
	}
}

// DayPeriodFromHours24 converts a 24-hour value into its 12-hour clock
// rendering and am/pm period. Hour 0 and hour 12 both map to 12.
func DayPeriodFromHours24(hours int) (int, string) {
	hours12 := hours % 12
	if hours12 == 0 {
		hours12 = 12
	}
	period := "am"
	if hours > 11 {
		period = "pm"
	}
	return hours12, period
}

func pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}
