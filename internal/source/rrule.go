package source

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "dateselect/internal/log"
)

// RRule expands an RFC 5545 recurrence rule value over the window,
// anchored at dtstart (the window start when dtstart is zero). The
// occurrence list is capped at max; hitting the cap is logged, not an
// error.
func RRule(rule string, dtstart time.Time, w Window, max int) ([]time.Time, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	if max <= 0 {
		max = defaultMaxOccurrences
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		appLog.Error("failed to parse recurrence rule", err, "rrule", rule)
		return nil, err
	}

	if dtstart.IsZero() {
		dtstart = w.Start
	}
	r.DTStart(dtstart)

	var set rrule.Set
	set.RRule(r)

	occ := set.Between(w.Start.In(dtstart.Location()), w.End.In(dtstart.Location()), true)
	if len(occ) > max {
		occ = occ[:max]
		appLog.Error("recurrence expansion truncated at cap", errMaxOccurrences, "rrule", rule, "cap", max)
	}

	return occ, nil
}

var errMaxOccurrences = errors.New("max occurrences reached")
