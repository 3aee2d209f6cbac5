// Package source supplies the allowed-instants list a picker is
// constrained to. Instants can be written out literally, expanded from
// an RFC 5545 recurrence rule, generated from a cron expression, or
// lifted from the event start times of an ICS payload. A Set bundles all
// four grammars; Resolve merges them into one normalized, de-duplicated,
// ascending list.
package source

import (
	"errors"
	"sort"
	"time"

	"dateselect/internal/datemath"
	appLog "dateselect/internal/log"
)

const defaultMaxOccurrences = 5000

// Window is the inclusive time range schedule-based sources (rrule,
// cron) are expanded over.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return errors.New("source: expansion window is not set")
	}
	if w.End.Before(w.Start) {
		return errors.New("source: window end is before window start")
	}
	return nil
}

// Set describes one bundle of allowed-instant sources.
type Set struct {
	// Dates are literal date-like strings.
	Dates []string

	// RRule is an RFC 5545 recurrence rule value (e.g.
	// "FREQ=DAILY;INTERVAL=2"); DTStart anchors it.
	RRule   string
	DTStart time.Time

	// Cron is a standard five-field cron expression.
	Cron string

	// ICS is a raw iCalendar payload; each VEVENT's DTSTART becomes an
	// allowed instant.
	ICS []byte

	// MaxOccurrences caps each schedule expansion. Zero means the
	// package default.
	MaxOccurrences int
}

// Resolve expands every grammar in the set over the window and merges
// the results. Individual values that fail to parse are logged and
// skipped; a malformed rule or expression fails the whole set.
func (s Set) Resolve(w Window) ([]time.Time, error) {
	max := s.MaxOccurrences
	if max <= 0 {
		max = defaultMaxOccurrences
	}

	var lists [][]time.Time

	if len(s.Dates) > 0 {
		lists = append(lists, Literal(s.Dates))
	}

	if s.RRule != "" {
		dates, err := RRule(s.RRule, s.DTStart, w, max)
		if err != nil {
			return nil, err
		}
		lists = append(lists, dates)
	}

	if s.Cron != "" {
		dates, err := Cron(s.Cron, w, max)
		if err != nil {
			return nil, err
		}
		lists = append(lists, dates)
	}

	if len(s.ICS) > 0 {
		dates, err := ICS(s.ICS)
		if err != nil {
			return nil, err
		}
		lists = append(lists, dates)
	}

	return Merge(lists...), nil
}

// Literal normalizes explicit date-like strings. Values that do not
// normalize are logged and dropped, matching the engine's recoverable
// InvalidDate policy.
func Literal(values []string) []time.Time {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := datemath.Normalize(v)
		if err != nil {
			appLog.Debug("literal date dropped", "value", v)
			continue
		}
		out = append(out, d)
	}
	return out
}

// Merge concatenates the lists, removes exact-instant duplicates, and
// sorts ascending.
func Merge(lists ...[]time.Time) []time.Time {
	var out []time.Time
	seen := make(map[int64]bool)

	for _, list := range lists {
		for _, d := range list {
			key := d.UnixNano()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
