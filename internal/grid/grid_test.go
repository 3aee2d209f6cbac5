package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCellsForFebruary2024(t *testing.T) {
	view := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	cells := CellsFor(view, 0)

	// Feb 2024: 29 days, first on Thursday. Sunday-start weeks need 4
	// leading and 2 trailing spillover days.
	assert.Len(t, cells, 35)
	assert.Equal(t, 0, len(cells)%7)

	assert.Equal(t, time.Date(2024, time.January, 28, 0, 0, 0, 0, time.UTC), cells[0])
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), cells[len(cells)-1])
	assert.Equal(t, time.Weekday(0), cells[0].Weekday())

	// Every day of the month appears exactly once.
	seen := make(map[int]int)
	for _, c := range cells {
		if c.Month() == time.February {
			seen[c.Day()]++
		}
	}
	assert.Len(t, seen, 29)
	for day, n := range seen {
		assert.Equal(t, 1, n, "day %d", day)
	}
}

func TestCellsForMondayStart(t *testing.T) {
	view := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	cells := CellsFor(view, 1)

	assert.Equal(t, time.Weekday(1), cells[0].Weekday())
	assert.Equal(t, time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC), cells[0])
	assert.Equal(t, 0, len(cells)%7)
}

func TestCellsForDependsOnlyOnMonth(t *testing.T) {
	a := CellsFor(time.Date(2024, time.February, 1, 8, 30, 0, 0, time.UTC), 0)
	b := CellsFor(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC), 0)
	assert.Equal(t, a, b)
}

func TestDayNames(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, DayNames(0))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 0}, DayNames(1))
	assert.Equal(t, []int{6, 0, 1, 2, 3, 4, 5}, DayNames(6))
}

func TestClassifyBasicFlags(t *testing.T) {
	view := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.February, 14, 9, 30, 0, 0, time.UTC)

	ctx := Context{
		View:         view,
		Now:          now,
		Weekends:     []int{6, 0},
		SelectedDate: time.Date(2024, time.February, 20, 15, 0, 0, 0, time.UTC),
		FocusDate:    time.Date(2024, time.February, 21, 0, 0, 0, 0, time.UTC),
	}

	f := Classify(time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.Today)
	assert.False(t, f.OtherMonth)
	assert.False(t, f.Disabled)

	// Selection matches at day granularity even with a time of day.
	f = Classify(time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.Selected)

	f = Classify(time.Date(2024, time.February, 21, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.Focused)

	// Feb 17 2024 is a Saturday.
	f = Classify(time.Date(2024, time.February, 17, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.Weekend)

	f = Classify(time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.OtherMonth)
}

func TestClassifyOtherMonthDisabled(t *testing.T) {
	view := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	spill := time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC)

	f := Classify(spill, Context{View: view, SelectOtherMonths: true})
	assert.True(t, f.OtherMonth)
	assert.False(t, f.Disabled)

	f = Classify(spill, Context{View: view, SelectOtherMonths: false})
	assert.True(t, f.Disabled)
}

func TestClassifyIncludeList(t *testing.T) {
	view := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	allowed := []time.Time{
		time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC),
	}

	ctx := Context{View: view, IncludeDates: allowed, SelectOtherMonths: true}

	f := Classify(time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC), ctx)
	assert.False(t, f.Disabled)

	f = Classify(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.Disabled)
}

func TestClassifyMinMaxMarkers(t *testing.T) {
	view := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	ctx := Context{
		View:    view,
		MinDate: time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
		MaxDate: time.Date(2024, time.February, 25, 0, 0, 0, 0, time.UTC),
	}

	f := Classify(time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.MinDate)
	assert.False(t, f.MaxDate)

	f = Classify(time.Date(2024, time.February, 25, 0, 0, 0, 0, time.UTC), ctx)
	assert.True(t, f.MaxDate)
}
