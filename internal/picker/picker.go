// Package picker owns the selection state machine driving a calendar
// date/date-time widget: the view date, focus date and selected date,
// their transitions under navigation and selection, min/max/include-date
// constraints, the hierarchical drill state for progressive-disclosure
// pickers, and the typed events renderers consume.
//
// A picker instance is owned by a single logical caller, matching a
// single-threaded UI event loop: its methods are not safe for concurrent
// use. The only cross-tick piece is the deferred completion returned by
// SelectDate and Clear, which is guarded independently.
package picker

import (
	"sort"
	"sync"
	"time"

	"dateselect/internal/bucket"
	"dateselect/internal/datemath"
	"dateselect/internal/format"
	"dateselect/internal/grid"
	"dateselect/internal/locale"
	appLog "dateselect/internal/log"
)

// View granularity levels for the calendar surface.
const (
	viewDays = iota
	viewMonths
	viewYears
)

type Picker struct {
	emitter

	opts Options
	loc  locale.Locale

	viewDate     time.Time
	focusDate    time.Time // zero = none
	selectedDate time.Time // zero = none
	hasSelected  bool
	lastSelected time.Time

	includeDates []time.Time
	minDate      time.Time
	maxDate      time.Time

	index *bucket.Node
	drill []bucket.Path

	viewIndex int
	visible   bool

	keyboard *Keyboard

	// boundValue stands in for the host's bound input: it is refreshed
	// by the deferred sync after select/clear, not synchronously.
	syncMu     sync.Mutex
	boundValue string
	syncTail   <-chan struct{}
}

// New builds a picker from opts. Option fields not set fall back to
// DefaultOptions values only when New is handed the result of mutating
// DefaultOptions(); New itself applies opts as given.
func New(opts Options) *Picker {
	p := &Picker{opts: opts}

	p.loc = locale.EN()
	if opts.Locale != nil {
		p.loc = p.loc.Apply(*opts.Locale)
	}
	if opts.DateFormat != "" {
		p.loc.DateFormat = opts.DateFormat
	}
	if opts.TimeFormat != "" {
		p.loc.TimeFormat = opts.TimeFormat
	}
	if opts.FirstDay != nil && *opts.FirstDay >= 0 && *opts.FirstDay <= 6 {
		p.loc.FirstDay = *opts.FirstDay
	}

	start := time.Now()
	if opts.StartDate != nil {
		if d, err := datemath.Normalize(opts.StartDate); err == nil {
			start = d
		}
	}
	p.viewDate = start

	p.createIncludeDates(opts.IncludeDates)
	p.limitViewDateByMinMax()

	if opts.KeyboardNav {
		p.keyboard = newKeyboard(p)
	}

	if opts.SelectedDate != nil {
		p.SelectDate(opts.SelectedDate, SelectParams{Silent: true})
	}

	if opts.Visible {
		p.Show()
	}

	return p
}

// createIncludeDates normalizes, sorts and indexes the allowed-instants
// list, and derives min/max from its extremes. Values that fail to
// normalize are dropped.
func (p *Picker) createIncludeDates(values []any) {
	p.includeDates = nil
	p.minDate = time.Time{}
	p.maxDate = time.Time{}
	p.index = nil
	p.drill = nil

	if len(values) == 0 {
		return
	}

	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := datemath.Normalize(v)
		if err != nil {
			appLog.Debug("include date dropped", "value", v)
			continue
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	p.includeDates = dates
	p.minDate = dates[0]
	p.maxDate = dates[len(dates)-1]

	p.index = bucket.Build(dates)
	p.drill, _ = bucket.DefaultDrill(p.index)
}

func (p *Picker) limitViewDateByMinMax() {
	if !p.maxDate.IsZero() && datemath.IsAfter(p.viewDate, p.maxDate, false) {
		p.SetViewDate(p.maxDate)
	}
	if !p.minDate.IsZero() && datemath.IsBefore(p.viewDate, p.minDate) {
		p.SetViewDate(p.minDate)
	}
}

//  State accessors
// -------------------------------------------------

func (p *Picker) ViewDate() time.Time { return p.viewDate }

func (p *Picker) FocusDate() (time.Time, bool) {
	return p.focusDate, !p.focusDate.IsZero()
}

func (p *Picker) SelectedDate() (time.Time, bool) {
	return p.selectedDate, p.hasSelected
}

func (p *Picker) LastSelectedDate() time.Time { return p.lastSelected }

func (p *Picker) MinDate() time.Time { return p.minDate }
func (p *Picker) MaxDate() time.Time { return p.maxDate }

func (p *Picker) IncludeDates() []time.Time { return p.includeDates }

func (p *Picker) Visible() bool { return p.visible }

func (p *Picker) Locale() locale.Locale { return p.loc }

// BoundValue returns the host-facing rendering of the selection. It is
// refreshed by the deferred sync; await the channel returned from
// SelectDate or Clear before reading it.
func (p *Picker) BoundValue() string {
	p.syncMu.Lock()
	defer p.syncMu.Unlock()
	return p.boundValue
}

//  Transitions
// -------------------------------------------------

// SetViewDate moves the displayed period. A value that is day-equal to
// the current view date, or that fails to normalize, is a no-op.
func (p *Picker) SetViewDate(v any) {
	d, err := datemath.Normalize(v)
	if err != nil {
		return
	}
	if datemath.SameDate(d, p.viewDate, datemath.Days) {
		return
	}

	old := p.viewDate
	p.viewDate = d

	if p.opts.OnChangeViewDate != nil {
		pv := datemath.Parse(d)
		d1, d2 := datemath.DecadeOf(d)
		p.opts.OnChangeViewDate(ViewSummary{Month: pv.Month, Year: pv.Year, Decade: [2]int{d1, d2}})
	}

	p.emitViewDate(ViewDateChange{Date: d, OldDate: old})
}

// FocusParams qualifies SetFocusDate.
type FocusParams struct {
	// ViewDateTransition moves the view when the new focus falls in a
	// different month, year or decade than the current view.
	ViewDateTransition bool
}

// SetFocusDate sets or clears (v == nil) the focused cell.
func (p *Picker) SetFocusDate(v any, params FocusParams) {
	var d time.Time
	if v != nil {
		var err error
		d, err = datemath.Normalize(v)
		if err != nil {
			return
		}
	}

	p.focusDate = d
	p.emitFocusDate(FocusDateChange{Date: d, ViewDateTransition: params.ViewDateTransition})

	if d.IsZero() {
		return
	}

	if params.ViewDateTransition &&
		(p.IsOtherMonth(d) || p.IsOtherYear(d) || p.IsOtherDecade(d)) {
		p.SetViewDate(d)
	}

	if p.opts.OnFocus != nil {
		p.opts.OnFocus(d)
	}
}

// SelectParams qualifies SelectDate and Clear.
type SelectParams struct {
	// Silent suppresses the OnSelect hook. The bound value still syncs.
	Silent bool
	// UpdateTime asks time-of-day consumers to adopt the date's clock.
	UpdateTime bool
}

// SelectDate selects a date. The returned channel closes once the
// deferred bound-value sync (and the OnSelect hook, unless silent) has
// run; callers that read BoundValue must await it. Selection is a no-op
// when the input does not normalize, the BeforeSelect guard vetoes it,
// or an active include-list does not contain the date at day
// granularity.
func (p *Picker) SelectDate(v any, params SelectParams) <-chan struct{} {
	done := make(chan struct{})

	d, err := datemath.Normalize(v)
	if err != nil {
		close(done)
		return done
	}

	if p.opts.BeforeSelect != nil && !p.opts.BeforeSelect(d) {
		close(done)
		return done
	}

	if !p.isSelectable(d) {
		appLog.Debug("selection outside allowed dates ignored", "date", d.Format(time.RFC3339))
		close(done)
		return done
	}

	if !datemath.SameDate(d, p.viewDate, datemath.Months) && p.opts.MoveToOtherMonthsOnSelect {
		p.SetViewDate(time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()))
	}

	p.selectedDate = d
	p.hasSelected = true

	p.emitSelection(SelectionChange{
		Action:     ActionSelect,
		Date:       d,
		Silent:     params.Silent,
		UpdateTime: params.UpdateTime,
	})

	p.lastSelected = d
	p.emitLastSelected(d)

	if p.opts.AutoClose && p.visible {
		p.Hide()
	}

	p.scheduleSync(done, !params.Silent)
	return done
}

// Clear unselects. Same deferred-completion contract as SelectDate.
func (p *Picker) Clear(params SelectParams) <-chan struct{} {
	done := make(chan struct{})

	p.selectedDate = time.Time{}
	p.hasSelected = false

	p.emitSelection(SelectionChange{Action: ActionUnselect, Silent: params.Silent})

	p.scheduleSync(done, !params.Silent)
	return done
}

// isSelectable enforces the include-list constraint at day granularity.
func (p *Picker) isSelectable(d time.Time) bool {
	if p.includeDates == nil {
		return true
	}
	for _, inc := range p.includeDates {
		if datemath.SameDate(d, inc, datemath.Days) {
			return true
		}
	}
	return false
}

// scheduleSync refreshes the bound value and fires OnSelect on the next
// scheduling tick, after the current transition has fully returned. This
// guarantees callers awaiting the done channel observe the synced value.
//
// Syncs are chained: each one waits for the previous sync to finish
// before writing, so back-to-back transitions apply their bound-value
// writes in call order and the last transition always wins.
func (p *Picker) scheduleSync(done chan struct{}, notify bool) {
	formatted := ""
	var date time.Time
	if p.hasSelected {
		date = p.selectedDate
		formatted = p.formatSelection(date)
	}
	hook := p.opts.OnSelect

	prev := p.syncTail
	p.syncTail = done

	go func() {
		if prev != nil {
			<-prev
		}

		p.syncMu.Lock()
		p.boundValue = formatted
		p.syncMu.Unlock()

		if notify && hook != nil {
			hook(SelectEvent{Date: date, FormattedDate: formatted})
		}
		close(done)
	}()
}

func (p *Picker) formatSelection(d time.Time) string {
	if p.opts.FormatFn != nil {
		return p.opts.FormatFn(d)
	}
	return format.Format(d, p.loc.DateFormat, p.loc)
}

// FormatDate renders an arbitrary date with this picker's locale.
func (p *Picker) FormatDate(d time.Time, template string) string {
	return format.Format(d, template, p.loc)
}

//  Period navigation
// -------------------------------------------------

// Next moves the view one period forward: a month on the day view, a
// year on the month view, a decade on the year view.
func (p *Picker) Next() { p.stepPeriod(1) }

// Prev is Next in the other direction.
func (p *Picker) Prev() { p.stepPeriod(-1) }

func (p *Picker) stepPeriod(dir int) {
	pv := datemath.Parse(p.viewDate)
	loc := p.viewDate.Location()

	switch p.viewIndex {
	case viewDays:
		// Month arithmetic is left to time.Date normalization so the
		// year rolls over at the boundaries.
		p.SetViewDate(time.Date(pv.Year, time.Month(pv.Month+1+dir), 1, 0, 0, 0, 0, loc))
	case viewMonths:
		p.SetViewDate(time.Date(pv.Year+dir, time.Month(pv.Month+1), 1, 0, 0, 0, 0, loc))
	case viewYears:
		p.SetViewDate(time.Date(pv.Year+10*dir, time.Month(pv.Month+1), 1, 0, 0, 0, 0, loc))
	}
}

// Up coarsens the view granularity (days -> months -> years), anchored
// at v, the focus date, or the view date, in that order.
func (p *Picker) Up(v any) { p.changeGranularity(v, 1) }

// Down refines the view granularity (years -> months -> days).
func (p *Picker) Down(v any) { p.changeGranularity(v, -1) }

func (p *Picker) changeGranularity(v any, dir int) {
	base := v
	if base == nil {
		if !p.focusDate.IsZero() {
			base = p.focusDate
		} else {
			base = p.viewDate
		}
	}

	d, err := datemath.Normalize(base)
	if err != nil {
		return
	}

	next := p.viewIndex + dir
	if next > viewYears {
		next = viewYears
	}
	if next < viewDays {
		next = viewDays
	}
	p.viewIndex = next

	p.SetViewDate(time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()))
}

// ViewIndex reports the current granularity: 0 days, 1 months, 2 years.
func (p *Picker) ViewIndex() int { return p.viewIndex }

//  Visibility
// -------------------------------------------------

func (p *Picker) Show() {
	if p.visible {
		return
	}
	p.visible = true
	if p.opts.OnShow != nil {
		p.opts.OnShow()
	}
}

func (p *Picker) Hide() {
	if !p.visible {
		return
	}
	p.visible = false
	if p.opts.OnHide != nil {
		p.opts.OnHide()
	}
}

//  Hierarchical drill state
// -------------------------------------------------

// DrillInto descends one level into the bucket index. The level must be
// the next expected one and the key must be populated; anything else is
// a no-op returning false.
func (p *Picker) DrillInto(level bucket.Level, key int) bool {
	if p.index == nil || level > bucket.LevelHour {
		return false
	}
	if level != p.DrillLevel() {
		return false
	}
	if p.drillNodeAt(append(p.drillPathCopy(), bucket.Path{Level: level, Key: key})) == nil {
		return false
	}
	p.drill = append(p.drill, bucket.Path{Level: level, Key: key})
	return true
}

// DrillBack pops the deepest drill level. Because the drill state is an
// explicit stack, popping can never leave a deeper field populated above
// a cleared shallower one.
func (p *Picker) DrillBack() bool {
	if len(p.drill) == 0 {
		return false
	}
	p.drill = p.drill[:len(p.drill)-1]
	return true
}

// DrillLevel is the level the next DrillInto must target.
func (p *Picker) DrillLevel() bucket.Level {
	if len(p.drill) == 0 {
		return bucket.LevelCentury
	}
	return p.drill[len(p.drill)-1].Level.Next()
}

// DrillPath returns a copy of the current drill position.
func (p *Picker) DrillPath() []bucket.Path { return p.drillPathCopy() }

// DrillNode returns the index node at the current drill position, or the
// index root when nothing has been drilled. Nil without an include-list.
func (p *Picker) DrillNode() *bucket.Node {
	return p.drillNodeAt(p.drill)
}

func (p *Picker) drillPathCopy() []bucket.Path {
	out := make([]bucket.Path, len(p.drill))
	copy(out, p.drill)
	return out
}

func (p *Picker) drillNodeAt(path []bucket.Path) *bucket.Node {
	node := p.index
	for _, step := range path {
		node = node.Child(step.Key)
		if node == nil {
			return nil
		}
	}
	return node
}

//  Stepping through the allowed-instants list
// -------------------------------------------------

// PrevTime selects the allowed instant preceding the current selection.
// With no selection it selects the latest instant. No-op at the lower
// bound or without an include-list.
func (p *Picker) PrevTime() { p.stepTime(-1) }

// NextTime selects the allowed instant following the current selection.
// With no selection it selects the earliest instant.
func (p *Picker) NextTime() { p.stepTime(1) }

func (p *Picker) stepTime(dir int) {
	if len(p.includeDates) == 0 {
		return
	}

	if !p.hasSelected {
		idx := 0
		if dir < 0 {
			idx = len(p.includeDates) - 1
		}
		p.SelectDate(p.includeDates[idx], SelectParams{UpdateTime: true})
		return
	}

	cur := -1
	for i, d := range p.includeDates {
		if d.Equal(p.selectedDate) {
			cur = i
			break
		}
	}
	if cur < 0 {
		return
	}

	next := cur + dir
	if next < 0 || next >= len(p.includeDates) {
		return
	}
	p.SelectDate(p.includeDates[next], SelectParams{UpdateTime: true})
}

//  Live option updates
// -------------------------------------------------

// Update applies a partial option change and re-derives the dependent
// state: include-list constraints, min/max, view date limits, and the
// bound value.
func (p *Picker) Update(patch Patch) {
	if patch.FirstDay != nil && *patch.FirstDay >= 0 && *patch.FirstDay <= 6 {
		p.loc.FirstDay = *patch.FirstDay
	}
	if patch.Weekends != nil {
		p.opts.Weekends = patch.Weekends
	}
	if patch.DateFormat != nil {
		p.loc.DateFormat = *patch.DateFormat
	}
	if patch.TimeFormat != nil {
		p.loc.TimeFormat = *patch.TimeFormat
	}
	if patch.AutoClose != nil {
		p.opts.AutoClose = *patch.AutoClose
	}
	if patch.MoveToOtherMonthsOnSelect != nil {
		p.opts.MoveToOtherMonthsOnSelect = *patch.MoveToOtherMonthsOnSelect
	}

	if patch.IncludeDates != nil {
		p.createIncludeDates(patch.IncludeDates)
		// A selection outside the replacement allowed set cannot stand.
		if p.hasSelected && !p.isSelectable(p.selectedDate) {
			p.selectedDate = time.Time{}
			p.hasSelected = false
			p.emitSelection(SelectionChange{Action: ActionUnselect, Silent: true})
		}
	}
	p.limitViewDateByMinMax()

	if patch.SelectedDate != nil {
		p.SelectDate(patch.SelectedDate, SelectParams{})
		return
	}

	// Re-render the bound value under the (possibly) new format.
	done := make(chan struct{})
	p.scheduleSync(done, false)
	<-done
}

//  Queries for renderers
// -------------------------------------------------

func (p *Picker) ParsedViewDate() datemath.ParsedDate {
	return datemath.Parse(p.viewDate)
}

func (p *Picker) CurDecade() (int, int) {
	return datemath.DecadeOf(p.viewDate)
}

func (p *Picker) IsWeekend(day int) bool {
	for _, w := range p.opts.Weekends {
		if w == day {
			return true
		}
	}
	return false
}

func (p *Picker) IsOtherMonth(d time.Time) bool {
	return !datemath.SameDate(d, p.viewDate, datemath.Months)
}

func (p *Picker) IsOtherYear(d time.Time) bool {
	return !datemath.SameDate(d, p.viewDate, datemath.Years)
}

func (p *Picker) IsOtherDecade(d time.Time) bool {
	first, last := datemath.DecadeOf(p.viewDate)
	return d.Year() < first || d.Year() > last
}

// GetClampedDate clamps d into [minDate, maxDate].
func (p *Picker) GetClampedDate(d time.Time) time.Time {
	return datemath.Clamp(d, p.minDate, p.maxDate)
}

// CheckIfDateIsSelected reports whether d is day-equal to the selection
// and returns the selected instant (which may carry a time of day).
func (p *Picker) CheckIfDateIsSelected(d time.Time) (time.Time, bool) {
	if p.hasSelected && datemath.SameDate(d, p.selectedDate, datemath.Days) {
		return p.selectedDate, true
	}
	return time.Time{}, false
}

// GetViewDates returns the current calendar cell set.
func (p *Picker) GetViewDates() []time.Time {
	return grid.CellsFor(p.viewDate, p.loc.FirstDay)
}

// DayNames returns the weekday order for the grid header.
func (p *Picker) DayNames() []int {
	return grid.DayNames(p.loc.FirstDay)
}

// Classify computes the display flags of one cell against the current
// state.
func (p *Picker) Classify(cell time.Time) grid.Flags {
	return grid.Classify(cell, grid.Context{
		View:              p.viewDate,
		Now:               time.Now(),
		Weekends:          p.opts.Weekends,
		IncludeDates:      p.includeDates,
		MinDate:           p.minDate,
		MaxDate:           p.maxDate,
		SelectedDate:      p.selectedDate,
		FocusDate:         p.focusDate,
		SelectOtherMonths: p.opts.SelectOtherMonths,
	})
}

// Keyboard returns the keyboard command map, or nil when keyboard
// navigation is disabled.
func (p *Picker) Keyboard() *Keyboard { return p.keyboard }
