// Package locale holds the string tables substituted into formatted
// dates. Only table substitution is supported; there is no CLDR-style
// localization logic here.
package locale

// Locale is a statically-shaped table of display strings plus the
// default format templates and week layout for a language.
type Locale struct {
	Days        []string `yaml:"days"`
	DaysShort   []string `yaml:"days_short"`
	DaysMin     []string `yaml:"days_min"`
	Months      []string `yaml:"months"`
	MonthsShort []string `yaml:"months_short"`

	DateFormat string `yaml:"date_format"`
	TimeFormat string `yaml:"time_format"`

	// FirstDay is the first day of the week, 0 = Sunday.
	FirstDay int `yaml:"first_day"`
}

// EN returns the built-in English locale.
func EN() Locale {
	return Locale{
		Days:        []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		DaysShort:   []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		DaysMin:     []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
		Months:      []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		MonthsShort: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		DateFormat:  "MM/dd/yyyy",
		TimeFormat:  "hh:mm aa",
		FirstDay:    0,
	}
}

// Apply overlays the non-empty fields of o onto l. Each field overrides
// independently; there is no recursive merging.
func (l Locale) Apply(o Locale) Locale {
	if len(o.Days) == 7 {
		l.Days = o.Days
	}
	if len(o.DaysShort) == 7 {
		l.DaysShort = o.DaysShort
	}
	if len(o.DaysMin) == 7 {
		l.DaysMin = o.DaysMin
	}
	if len(o.Months) == 12 {
		l.Months = o.Months
	}
	if len(o.MonthsShort) == 12 {
		l.MonthsShort = o.MonthsShort
	}
	if o.DateFormat != "" {
		l.DateFormat = o.DateFormat
	}
	if o.TimeFormat != "" {
		l.TimeFormat = o.TimeFormat
	}
	// FirstDay is overridden at the config layer, where "unset" is
	// representable; 0 is a meaningful value (Sunday) here.
	return l
}
