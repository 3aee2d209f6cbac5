package picker

import "time"

// SelectionAction tags a SelectionChange with what happened.
type SelectionAction string

const (
	ActionSelect   SelectionAction = "select"
	ActionUnselect SelectionAction = "unselect"
)

// ViewDateChange is emitted after the view date moves to a different day.
type ViewDateChange struct {
	Date    time.Time
	OldDate time.Time
}

// FocusDateChange is emitted whenever the focus date is set or cleared.
// A zero Date means focus was cleared. ViewDateTransition echoes whether
// the caller asked for the view to follow the focus.
type FocusDateChange struct {
	Date               time.Time
	ViewDateTransition bool
}

// SelectionChange is emitted on select and unselect. Consumers must
// suppress user-facing callbacks when Silent is set but still refresh
// any bound display value.
type SelectionChange struct {
	Action     SelectionAction
	Date       time.Time
	Silent     bool
	UpdateTime bool
}

// emitter is the typed event fan-out composed into the picker. The event
// set is fixed; payloads are plain structs. Dispatch is synchronous and
// in registration order. Listeners may re-enter the picker (and even
// subscribe again) during dispatch: each emit iterates over a snapshot
// of the listener list taken at dispatch start.
type emitter struct {
	viewDate  []func(ViewDateChange)
	focusDate []func(FocusDateChange)
	selection []func(SelectionChange)
	lastSel   []func(time.Time)
}

// OnViewDateChanged subscribes to view date transitions.
func (e *emitter) OnViewDateChanged(fn func(ViewDateChange)) {
	e.viewDate = append(e.viewDate, fn)
}

// OnFocusDateChanged subscribes to focus changes.
func (e *emitter) OnFocusDateChanged(fn func(FocusDateChange)) {
	e.focusDate = append(e.focusDate, fn)
}

// OnSelectedDateChanged subscribes to select/unselect transitions.
func (e *emitter) OnSelectedDateChanged(fn func(SelectionChange)) {
	e.selection = append(e.selection, fn)
}

// OnLastSelectedDateChanged subscribes to last-selected-date updates.
func (e *emitter) OnLastSelectedDateChanged(fn func(time.Time)) {
	e.lastSel = append(e.lastSel, fn)
}

func (e *emitter) emitViewDate(ev ViewDateChange) {
	for _, fn := range snapshot(e.viewDate) {
		fn(ev)
	}
}

func (e *emitter) emitFocusDate(ev FocusDateChange) {
	for _, fn := range snapshot(e.focusDate) {
		fn(ev)
	}
}

func (e *emitter) emitSelection(ev SelectionChange) {
	for _, fn := range snapshot(e.selection) {
		fn(ev)
	}
}

func (e *emitter) emitLastSelected(t time.Time) {
	for _, fn := range snapshot(e.lastSel) {
		fn(t)
	}
}

// snapshot copies the listener slice so re-entrant subscription during
// dispatch can neither skip nor double-fire a listener.
func snapshot[T any](fns []T) []T {
	out := make([]T, len(fns))
	copy(out, fns)
	return out
}
