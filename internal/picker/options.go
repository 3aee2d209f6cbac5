package picker

import (
	"time"

	"dateselect/internal/locale"
)

// SelectEvent is passed to the OnSelect hook.
type SelectEvent struct {
	// Date is zero after a clear.
	Date          time.Time
	FormattedDate string
}

// ViewSummary is passed to the OnChangeViewDate hook.
type ViewSummary struct {
	Month  int // 0-based
	Year   int
	Decade [2]int
}

// Options configures a picker at construction. The shape is static:
// every field has defined override semantics against DefaultOptions, and
// no recursive merging happens anywhere.
type Options struct {
	// StartDate seeds the view date. Defaults to the current day.
	StartDate any

	// SelectedDate, if set, is selected (silently) during construction.
	SelectedDate any

	// IncludeDates restricts selection to the listed date-likes. When
	// non-empty, MinDate/MaxDate derive from its sorted extremes and the
	// hierarchical bucket index is built over it.
	IncludeDates []any

	// FirstDay overrides the locale's first day of week (0 = Sunday).
	FirstDay *int

	// Weekends lists day-of-week numbers rendered as weekend cells.
	Weekends []int

	// DateFormat / TimeFormat override the locale's templates.
	DateFormat string
	TimeFormat string

	// FormatFn, when set, replaces template formatting of the selected
	// date for the bound value and the OnSelect payload.
	FormatFn func(time.Time) string

	Locale *locale.Locale

	MoveToOtherMonthsOnSelect bool
	SelectOtherMonths         bool
	AutoClose                 bool
	KeyboardNav               bool
	Visible                   bool

	// BeforeSelect may veto a selection before any state changes.
	BeforeSelect func(time.Time) bool

	// Notification hooks. Never consumed internally, only invoked.
	OnSelect         func(SelectEvent)
	OnFocus          func(time.Time)
	OnChangeViewDate func(ViewSummary)
	OnShow           func()
	OnHide           func()
}

// DefaultOptions mirrors the stock behavior: Saturday/Sunday weekends,
// selection may move the view to the target month, auto close on select,
// keyboard navigation on.
func DefaultOptions() Options {
	return Options{
		Weekends:                  []int{6, 0},
		MoveToOtherMonthsOnSelect: true,
		SelectOtherMonths:         true,
		AutoClose:                 true,
		KeyboardNav:               true,
	}
}

// Patch carries partial option updates for Picker.Update. Nil pointer
// and nil slice fields leave the current value untouched.
type Patch struct {
	SelectedDate              any
	IncludeDates              []any
	FirstDay                  *int
	Weekends                  []int
	DateFormat                *string
	TimeFormat                *string
	AutoClose                 *bool
	MoveToOtherMonthsOnSelect *bool
}
