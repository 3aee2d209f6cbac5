package source

import (
	"time"

	"github.com/robfig/cron/v3"

	appLog "dateselect/internal/log"
)

// Cron generates the fire times of a standard five-field cron
// expression inside the window, capped at max occurrences.
func Cron(expr string, w Window, max int) ([]time.Time, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	if max <= 0 {
		max = defaultMaxOccurrences
	}

	sched, err := cron.ParseStandard(expr)
	if err != nil {
		appLog.Error("failed to parse cron expression", err, "cron", expr)
		return nil, err
	}

	out := make([]time.Time, 0)

	// Schedule.Next is strictly-after, so step back one second to keep
	// the window start inclusive.
	t := w.Start.Add(-time.Second)
	for {
		t = sched.Next(t)
		if t.IsZero() || t.After(w.End) {
			break
		}
		out = append(out, t)
		if len(out) >= max {
			appLog.Error("cron expansion truncated at cap", errMaxOccurrences, "cron", expr, "cap", max)
			break
		}
	}

	return out, nil
}
