// Package grid produces the ordered day-cell sequence for one calendar
// month view: the month's days plus the leading and trailing spillover
// days from the adjacent months needed to fill complete 7-wide weeks.
package grid

import (
	"time"

	"dateselect/internal/datemath"
)

// CellsFor returns the day cells for the month containing view, starting
// on firstDay (0 = Sunday). Each cell is midnight of a calendar day. The
// result is a deterministic function of (year, month, firstDay): its
// length is a multiple of 7, the first cell's weekday equals firstDay,
// and no fully blank trailing week is appended beyond completing the
// last row.
func CellsFor(view time.Time, firstDay int) []time.Time {
	p := datemath.Parse(view)
	totalMonthDays := datemath.DaysInMonth(p.Month, p.Year)

	firstMonthDay := time.Date(p.Year, time.Month(p.Month+1), 1, 0, 0, 0, 0, view.Location())
	lastMonthDay := time.Date(p.Year, time.Month(p.Month+1), totalMonthDays, 0, 0, 0, 0, view.Location())

	leading := (int(firstMonthDay.Weekday()) - firstDay + 7) % 7
	trailing := (6 - int(lastMonthDay.Weekday()) + firstDay) % 7

	first := datemath.SubDays(firstMonthDay, leading)
	total := totalMonthDays + leading + trailing

	cells := make([]time.Time, 0, total)
	for i := 0; i < total; i++ {
		cells = append(cells, datemath.AddDays(first, i))
	}
	return cells
}

// DayNames returns the weekday indices (0 = Sunday) in display order for
// a week starting on firstDay. Renderers map these through the locale's
// day-name tables.
func DayNames(firstDay int) []int {
	out := make([]int, 7)
	for i := 0; i < 7; i++ {
		out[i] = (firstDay + i) % 7
	}
	return out
}

// Flags classifies one cell against the picker's current state. The cell
// itself is never mutated; classification is recomputed whenever state
// changes.
type Flags struct {
	Today      bool
	Weekend    bool
	OtherMonth bool
	Disabled   bool
	MinDate    bool
	MaxDate    bool
	Selected   bool
	Focused    bool
}

// Context is the constraint snapshot a cell is classified against. Zero
// time fields mean "absent". IncludeDates being non-nil activates the
// allowed-list constraint: cells not day-equal to a member are disabled.
type Context struct {
	View              time.Time
	Now               time.Time
	Weekends          []int
	IncludeDates      []time.Time
	MinDate           time.Time
	MaxDate           time.Time
	SelectedDate      time.Time
	FocusDate         time.Time
	SelectOtherMonths bool
}

// Classify computes the display flags for one cell date.
func Classify(cell time.Time, ctx Context) Flags {
	var f Flags

	f.Today = datemath.SameDate(cell, ctx.Now, datemath.Days)
	f.OtherMonth = !datemath.SameDate(cell, ctx.View, datemath.Months)
	f.MinDate = datemath.SameDate(cell, ctx.MinDate, datemath.Days)
	f.MaxDate = datemath.SameDate(cell, ctx.MaxDate, datemath.Days)
	f.Selected = datemath.SameDate(cell, ctx.SelectedDate, datemath.Days)
	f.Focused = datemath.SameDate(cell, ctx.FocusDate, datemath.Days)

	day := int(cell.Weekday())
	for _, w := range ctx.Weekends {
		if w == day {
			f.Weekend = true
			break
		}
	}

	excluded := false
	if ctx.IncludeDates != nil {
		excluded = true
		for _, inc := range ctx.IncludeDates {
			if datemath.SameDate(cell, inc, datemath.Days) {
				excluded = false
				break
			}
		}
	}

	f.Disabled = (f.OtherMonth && !ctx.SelectOtherMonths) || excluded
	return f
}
