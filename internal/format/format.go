// Package format renders instants into display strings using the
// engine's token templates and locale tables.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"dateselect/internal/datemath"
	"dateselect/internal/locale"
)

// tokens lists every recognized template token. Order is irrelevant for
// correctness: each token is replaced only at word boundaries, so "M"
// can never match inside "MM"/"MMM"/"MMMM".
var tokens = []string{
	"T",
	"m", "mm",
	"h", "hh", "H", "HH",
	"aa", "AA",
	"E", "EEEE",
	"d", "dd",
	"M", "MM", "MMM", "MMMM",
	"yy", "yyyy", "yyyy1", "yyyy2",
}

// boundarySymbols are the characters that delimit a token inside a
// template, in addition to start/end of string and angle brackets. Angle
// brackets count as boundaries so templates may embed markup, e.g.
// "MMMM, <i>yyyy</i>".
const boundarySymbols = `\s|\.|-|/|\\|,|\$|\!|\?|:|;`

var tokenRegexps = compileTokenRegexps()

func compileTokenRegexps() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(tokens))
	for _, tok := range tokens {
		out[tok] = regexp.MustCompile(
			`(^|>|` + boundarySymbols + `)(` + tok + `)($|<|` + boundarySymbols + `)`,
		)
	}
	return out
}

// tokenValues builds the substitution table for one instant. Tokens not
// present in a template simply never match; an unrecognized token in the
// template passes through as literal text.
func tokenValues(t time.Time, loc locale.Locale) map[string]string {
	p := datemath.Parse(t)
	decadeStart, decadeEnd := datemath.DecadeOf(t)

	return map[string]string{
		// Time in ms
		"T": strconv.FormatInt(t.UnixMilli(), 10),

		// Minutes
		"m":  strconv.Itoa(p.Minutes),
		"mm": p.FullMinutes,

		// Hours
		"h":  strconv.Itoa(p.Hours12),
		"hh": p.FullHours12,
		"H":  strconv.Itoa(p.Hours),
		"HH": p.FullHours,

		// Day period
		"aa": p.DayPeriod,
		"AA": map[string]string{"am": "AM", "pm": "PM"}[p.DayPeriod],

		// Day of week
		"E":    loc.DaysShort[p.Day],
		"EEEE": loc.Days[p.Day],

		// Date of month
		"d":  strconv.Itoa(p.Date),
		"dd": p.FullDate,

		// Months
		"M":    strconv.Itoa(p.Month + 1),
		"MM":   p.FullMonth,
		"MMM":  loc.MonthsShort[p.Month],
		"MMMM": loc.Months[p.Month],

		// Years
		"yy":    fmt.Sprintf("%02d", p.Year%100),
		"yyyy":  strconv.Itoa(p.Year),
		"yyyy1": strconv.Itoa(decadeStart),
		"yyyy2": strconv.Itoa(decadeEnd),
	}
}

// Format substitutes the recognized tokens in template with values drawn
// from t and loc. Literal text, including embedded markup, is preserved:
// tokens only match when delimited by boundaries.
func Format(t time.Time, template string, loc locale.Locale) string {
	values := tokenValues(t, loc)
	result := template
	for _, tok := range tokens {
		re := tokenRegexps[tok]
		result = re.ReplaceAllString(result, "${1}"+values[tok]+"${3}")
	}
	return result
}

// FormatDate renders t as dd/mm/yyyy, or with the locale's own date
// template when a locale is supplied.
func FormatDate(t time.Time, loc *locale.Locale) string {
	if loc != nil {
		return Format(t, loc.DateFormat, *loc)
	}
	p := datemath.Parse(t)
	return p.FullDate + "/" + p.FullMonth + "/" + strconv.Itoa(p.Year)
}

// FormatTime renders t as hh:mm:ss, or with the locale's own time
// template when a locale is supplied.
func FormatTime(t time.Time, loc *locale.Locale) string {
	if loc != nil {
		return Format(t, loc.TimeFormat, *loc)
	}
	p := datemath.Parse(t)
	return p.FullHours + ":" + p.FullMinutes + fmt.Sprintf(":%02d", p.Seconds)
}

// FormatDateTime combines FormatDate and FormatTime with a comma.
func FormatDateTime(t time.Time, loc *locale.Locale) string {
	return FormatDate(t, loc) + ", " + FormatTime(t, loc)
}

// PeriodFormat renders t with the given template and, when asPeriod is
// "pentadal", appends the pentad marker, e.g. " - P5 21-25th".
func PeriodFormat(t time.Time, template string, asPeriod string, loc locale.Locale) string {
	formatted := Format(t, template, loc)

	if asPeriod == "pentadal" {
		pentad, label, _ := Pentad(t)
		formatted = fmt.Sprintf("%s - P%d %s", formatted, pentad, label)
	}

	return formatted
}
