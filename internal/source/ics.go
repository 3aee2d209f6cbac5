package source

import (
	"bytes"
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "dateselect/internal/log"
)

// ICS extracts the DTSTART of every VEVENT in an iCalendar payload. The
// library's VTIMEZONE/TZID handling produces time.Time values with the
// proper location. Events with a missing or unreadable start are logged
// and skipped; only a payload that fails to parse at all is an error.
func ICS(body []byte) ([]time.Time, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err)
		return nil, err
	}

	out := make([]time.Time, 0)

	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			uid := ""
			if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
				uid = p.Value
			}
			appLog.Error("ics vevent start unreadable", err, "uid", uid)
			continue
		}
		if start.IsZero() {
			continue
		}
		out = append(out, start)
	}

	appLog.Info("ics source parsed", "event_count", len(out))
	return out, nil
}
