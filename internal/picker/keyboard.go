package picker

import (
	"time"

	"dateselect/internal/datemath"
)

// Key names follow the DOM KeyboardEvent.key values the host forwards.
const (
	KeyControl    = "Control"
	KeyShift      = "Shift"
	KeyAlt        = "Alt"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
)

// dateParts is the mutable (year, month, day) triple a hot key acts on.
// Month stays 0-based; out-of-range values after mutation are left to
// time.Date normalization.
type dateParts struct {
	year  int
	month int
	date  int
}

// hotKey binds a set of key combinations to one date mutation. All
// combinations of one hotKey share the action (left/down step back,
// right/up step forward).
type hotKey struct {
	combos [][]string
	apply  func(*dateParts, *Picker)
}

// Keyboard tracks the currently pressed key set and maps exact-set
// matches to state machine actions. Combinations match regardless of
// press order: a combination fires when the pressed set has the same
// size and members.
type Keyboard struct {
	p       *Picker
	pressed map[string]bool
	hotKeys []hotKey
}

func newKeyboard(p *Picker) *Keyboard {
	k := &Keyboard{
		p:       p,
		pressed: make(map[string]bool),
	}

	k.hotKeys = []hotKey{
		{
			combos: [][]string{{KeyControl, KeyArrowRight}, {KeyControl, KeyArrowUp}},
			apply:  func(d *dateParts, _ *Picker) { d.month++ },
		},
		{
			combos: [][]string{{KeyControl, KeyArrowLeft}, {KeyControl, KeyArrowDown}},
			apply:  func(d *dateParts, _ *Picker) { d.month-- },
		},
		{
			combos: [][]string{{KeyShift, KeyArrowRight}, {KeyShift, KeyArrowUp}},
			apply:  func(d *dateParts, _ *Picker) { d.year++ },
		},
		{
			combos: [][]string{{KeyShift, KeyArrowLeft}, {KeyShift, KeyArrowDown}},
			apply:  func(d *dateParts, _ *Picker) { d.year-- },
		},
		{
			combos: [][]string{{KeyAlt, KeyArrowRight}, {KeyAlt, KeyArrowUp}},
			apply:  func(d *dateParts, _ *Picker) { d.year += 10 },
		},
		{
			combos: [][]string{{KeyAlt, KeyArrowLeft}, {KeyAlt, KeyArrowDown}},
			apply:  func(d *dateParts, _ *Picker) { d.year -= 10 },
		},
		{
			combos: [][]string{{KeyControl, KeyShift, KeyArrowUp}},
			apply:  func(_ *dateParts, p *Picker) { p.Up(nil) },
		},
	}

	return k
}

// KeyDown registers a pressed key and dispatches the matching action.
// It reports whether the key press was consumed (the host should then
// suppress default handling).
func (k *Keyboard) KeyDown(key string) bool {
	k.pressed[key] = true

	if hk := k.matchHotKey(); hk != nil {
		k.handleHotKey(hk)
		return true
	}

	if isArrow(key) {
		k.focusNextCell(key)
		return true
	}

	if key == KeyEnter {
		focus, ok := k.p.FocusDate()
		if !ok {
			// Nothing to select, let the host keep its default handling.
			return false
		}
		k.p.SelectDate(focus, SelectParams{})
		return true
	}

	if key == KeyEscape {
		k.p.Hide()
		return true
	}

	return false
}

// KeyUp removes a key from the pressed set.
func (k *Keyboard) KeyUp(key string) {
	delete(k.pressed, key)
}

// matchHotKey returns the hot key whose combination exactly equals the
// pressed set, if any. At most one can match per key-down.
func (k *Keyboard) matchHotKey() *hotKey {
	for i := range k.hotKeys {
		for _, combo := range k.hotKeys[i].combos {
			if len(combo) != len(k.pressed) {
				continue
			}
			all := true
			for _, key := range combo {
				if !k.pressed[key] {
					all = false
					break
				}
			}
			if all {
				return &k.hotKeys[i]
			}
		}
	}
	return nil
}

// initialFocusDate picks the anchor a movement applies to: the focus
// date, else the selection, else today's day number in the view month.
func (k *Keyboard) initialFocusDate() time.Time {
	if focus, ok := k.p.FocusDate(); ok {
		return focus
	}
	if sel, ok := k.p.SelectedDate(); ok {
		return sel
	}
	pv := k.p.ParsedViewDate()
	return time.Date(pv.Year, time.Month(pv.Month+1), time.Now().Day(), 0, 0, 0, 0, k.p.ViewDate().Location())
}

func (k *Keyboard) handleHotKey(hk *hotKey) {
	anchor := k.initialFocusDate()
	pv := datemath.Parse(anchor)
	parts := dateParts{year: pv.Year, month: pv.Month, date: pv.Date}

	hk.apply(&parts, k.p)

	// Landing in a shorter month clamps to its last day (Jan 31 +month
	// becomes Feb 28/29, not Mar 2/3).
	firstOfTarget := time.Date(parts.year, time.Month(parts.month+1), 1, 0, 0, 0, 0, anchor.Location())
	total := datemath.DaysInMonth(int(firstOfTarget.Month())-1, firstOfTarget.Year())
	if parts.date > total {
		parts.date = total
	}

	target := time.Date(firstOfTarget.Year(), firstOfTarget.Month(), parts.date, 0, 0, 0, 0, anchor.Location())
	k.p.SetFocusDate(k.p.GetClampedDate(target), FocusParams{ViewDateTransition: true})
}

// focusNextCell moves focus by one day (left/right) or one week
// (up/down), asking the view to follow when focus leaves the month.
func (k *Keyboard) focusNextCell(key string) {
	anchor := k.initialFocusDate()

	delta := 0
	switch key {
	case KeyArrowLeft:
		delta = -1
	case KeyArrowRight:
		delta = 1
	case KeyArrowUp:
		delta = -7
	case KeyArrowDown:
		delta = 7
	}

	target := datemath.AddDays(anchor, delta)
	k.p.SetFocusDate(k.p.GetClampedDate(target), FocusParams{ViewDateTransition: true})
}

func isArrow(key string) bool {
	switch key {
	case KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown:
		return true
	}
	return false
}
