package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeInputs(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)

	got, err := Normalize("2024-03-05")
	assert.NoError(t, err)
	assert.True(t, got.Equal(want))

	got, err = Normalize("2024-03-05 13:45")
	assert.NoError(t, err)
	assert.Equal(t, 13, got.Hour())
	assert.Equal(t, 45, got.Minute())

	passthrough := date(2024, time.March, 5)
	got, err = Normalize(passthrough)
	assert.NoError(t, err)
	assert.True(t, got.Equal(passthrough))

	got, err = Normalize(&passthrough)
	assert.NoError(t, err)
	assert.True(t, got.Equal(passthrough))

	// Epoch input is milliseconds.
	ms := passthrough.UnixMilli()
	got, err = Normalize(ms)
	assert.NoError(t, err)
	assert.True(t, got.Equal(passthrough))

	got, err = Normalize(float64(ms))
	assert.NoError(t, err)
	assert.True(t, got.Equal(passthrough))
}

func TestNormalizeInvalid(t *testing.T) {
	cases := []any{
		"not a date",
		"2024-13-45",
		"",
		nil,
		struct{}{},
		time.Time{},
		(*time.Time)(nil),
	}
	for _, v := range cases {
		_, err := Normalize(v)
		assert.ErrorIs(t, err, ErrInvalidDate, "value %v", v)
	}
}

func TestSameDateGranularities(t *testing.T) {
	a := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	c := date(2024, time.March, 6)
	d := date(2024, time.April, 5)
	e := date(2025, time.March, 5)

	assert.True(t, SameDate(a, b, Days))
	assert.False(t, SameDate(a, c, Days))

	assert.True(t, SameDate(a, c, Months))
	assert.False(t, SameDate(a, d, Months))

	assert.True(t, SameDate(a, d, Years))
	assert.False(t, SameDate(a, e, Years))

	// Absent inputs never match.
	assert.False(t, SameDate(time.Time{}, time.Time{}, Days))
	assert.False(t, SameDate(a, time.Time{}, Days))
}

func TestOrderingIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 5, 20, 0, 0, 0, time.UTC)
	next := date(2024, time.March, 6)

	assert.False(t, IsAfter(evening, morning, false))
	assert.True(t, IsAfter(evening, morning, true))
	assert.True(t, IsAfter(next, morning, false))

	assert.False(t, IsBefore(morning, evening))
	assert.True(t, IsBefore(morning, next))

	assert.True(t, IsBetween(date(2024, time.March, 5), date(2024, time.March, 1), date(2024, time.March, 10)))
	assert.False(t, IsBetween(date(2024, time.March, 1), date(2024, time.March, 1), date(2024, time.March, 10)))
}

func TestDecadeAndCentury(t *testing.T) {
	first, last := DecadeOf(date(2024, time.June, 15))
	assert.Equal(t, 2020, first)
	assert.Equal(t, 2029, last)

	first, last = DecadeOf(date(2020, time.January, 1))
	assert.Equal(t, 2020, first)
	assert.Equal(t, 2029, last)

	assert.Equal(t, 20, CenturyOf(date(2024, time.June, 15)))
	assert.Equal(t, 19, CenturyOf(date(1999, time.December, 31)))
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month0, year, want int
	}{
		{0, 2024, 31},  // January
		{1, 2024, 29},  // leap February
		{1, 2023, 28},  // common February
		{1, 2000, 29},  // divisible by 400
		{1, 1900, 28},  // divisible by 100 but not 400
		{3, 2024, 30},  // April
		{11, 2024, 31}, // December
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DaysInMonth(c.month0, c.year), "month0=%d year=%d", c.month0, c.year)
	}
}

func TestClamp(t *testing.T) {
	min := date(2024, time.March, 10)
	max := date(2024, time.March, 20)

	assert.Equal(t, min, Clamp(date(2024, time.March, 1), min, max))
	assert.Equal(t, max, Clamp(date(2024, time.March, 25), min, max))

	inside := date(2024, time.March, 15)
	assert.Equal(t, inside, Clamp(inside, min, max))

	// Zero bounds are absent.
	before := date(2020, time.January, 1)
	assert.Equal(t, before, Clamp(before, time.Time{}, max))
	after := date(2030, time.January, 1)
	assert.Equal(t, after, Clamp(after, min, time.Time{}))

	// Same day as a bound stays put.
	assert.Equal(t, min, Clamp(min, min, max))
	assert.Equal(t, max, Clamp(max, min, max))
}

func TestAddDaysRollsOverAndResetsClock(t *testing.T) {
	got := AddDays(time.Date(2024, time.January, 31, 14, 30, 0, 0, time.UTC), 1)
	assert.Equal(t, date(2024, time.February, 1), got)

	got = AddDays(date(2024, time.December, 31), 1)
	assert.Equal(t, date(2025, time.January, 1), got)

	got = SubDays(date(2024, time.March, 1), 1)
	assert.Equal(t, date(2024, time.February, 29), got)
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2024, time.March, 5, 23, 59, 59, 1e8, time.UTC))
	assert.Equal(t, date(2024, time.March, 5), got)
}

func TestParse(t *testing.T) {
	p := Parse(time.Date(2024, time.March, 5, 13, 5, 9, 0, time.UTC))

	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, 2, p.Month) // 0-based
	assert.Equal(t, 5, p.Date)
	assert.Equal(t, 2, p.Day) // Tuesday

	assert.Equal(t, 13, p.Hours)
	assert.Equal(t, 1, p.Hours12)
	assert.Equal(t, "pm", p.DayPeriod)
	assert.Equal(t, 5, p.Minutes)
	assert.Equal(t, 9, p.Seconds)

	assert.Equal(t, "05", p.FullDate)
	assert.Equal(t, "03", p.FullMonth)
	assert.Equal(t, "13", p.FullHours)
	assert.Equal(t, "01", p.FullHours12)
	assert.Equal(t, "05", p.FullMinutes)
}

func TestDayPeriodFromHours24(t *testing.T) {
	cases := []struct {
		hours   int
		want12  int
		wantPer string
	}{
		{0, 12, "am"},
		{1, 1, "am"},
		{11, 11, "am"},
		{12, 12, "pm"},
		{13, 1, "pm"},
		{23, 11, "pm"},
	}
	for _, c := range cases {
		h12, per := DayPeriodFromHours24(c.hours)
		assert.Equal(t, c.want12, h12, "hours=%d", c.hours)
		assert.Equal(t, c.wantPer, per, "hours=%d", c.hours)
	}
}
