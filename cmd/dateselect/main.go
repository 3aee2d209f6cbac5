package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"dateselect/internal/config"
	"dateselect/internal/datemath"
	appLog "dateselect/internal/log"
	"dateselect/internal/picker"
	"dateselect/internal/source"
)

// flagConfig holds CLI flag values layered over the config file.
type flagConfig struct {
	configPath string
	selectDate string
	viewDate   string
	logLevel   string
}

func main() {
	appLog.Info("dateselect starting", "version", "0.1.0-dev")

	flags := parseFlags()
	appLog.SetLevel(appLog.Level(strings.ToUpper(flags.logLevel)))

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	appLog.Info("effective config",
		"first_day_of_week", conf.FirstDayOfWeek,
		"date_format", conf.DateFormat,
		"time_format", conf.TimeFormat,
		"horizon_days", conf.HorizonDays,
		"backfill_days", conf.BackfillDays,
		"source_count", len(conf.Sources),
	)

	anchor := time.Now()
	if conf.StartDate != "" {
		d, err := datemath.Normalize(conf.StartDate)
		if err != nil {
			appLog.Error("invalid start_date in config", err, "start_date", conf.StartDate)
			os.Exit(1)
		}
		anchor = d
	}
	// CLI -month overrides the configured start date.
	if flags.viewDate != "" {
		d, err := datemath.Normalize(flags.viewDate)
		if err != nil {
			appLog.Error("invalid -month value", err, "month", flags.viewDate)
			os.Exit(1)
		}
		anchor = d
	}

	include, err := resolveSources(conf, anchor)
	if err != nil {
		appLog.Error("failed to resolve date sources", err)
		os.Exit(1)
	}

	opts := picker.DefaultOptions()
	opts.StartDate = anchor
	opts.FirstDay = &conf.FirstDayOfWeek
	opts.Weekends = conf.Weekends
	opts.DateFormat = conf.DateFormat
	opts.TimeFormat = conf.TimeFormat
	opts.Locale = conf.Locale
	opts.MoveToOtherMonthsOnSelect = conf.MoveToOtherMonthsOnSelect
	opts.AutoClose = conf.AutoClose
	opts.KeyboardNav = conf.KeyboardNav
	opts.Visible = true
	for _, d := range include {
		opts.IncludeDates = append(opts.IncludeDates, d)
	}

	p := picker.New(opts)

	if flags.selectDate != "" {
		done := p.SelectDate(flags.selectDate, picker.SelectParams{})
		<-done
		if _, ok := p.SelectedDate(); !ok {
			appLog.Error("date is not selectable", errors.New("date not in allowed set"), "date", flags.selectDate)
			os.Exit(1)
		}
	}

	printMonth(p)

	if d, ok := p.SelectedDate(); ok {
		fmt.Printf("\nselected: %s\n", p.BoundValue())
		if conf.TimeFormat != "" {
			fmt.Printf("time:     %s\n", p.FormatDate(d, p.Locale().TimeFormat))
		}
	}

	appLog.Info("dateselect exiting")
}

// printMonth renders the current view as a text calendar. Cell markup:
// selected dates in brackets, today in parens, disabled cells as dots.
func printMonth(p *picker.Picker) {
	loc := p.Locale()
	pv := p.ParsedViewDate()

	fmt.Printf("%s %d\n", loc.Months[pv.Month], pv.Year)

	var header []string
	for _, day := range p.DayNames() {
		header = append(header, fmt.Sprintf("%4s", loc.DaysMin[day]))
	}
	fmt.Println(strings.Join(header, ""))

	cells := p.GetViewDates()
	for i, cell := range cells {
		fmt.Print(renderCell(p, cell))
		if (i+1)%7 == 0 {
			fmt.Println()
		}
	}
}

func renderCell(p *picker.Picker, cell time.Time) string {
	f := p.Classify(cell)

	switch {
	case f.OtherMonth:
		return "    "
	case f.Selected:
		return fmt.Sprintf("[%2d]", cell.Day())
	case f.Disabled:
		return fmt.Sprintf("%3s.", "")
	case f.Today:
		return fmt.Sprintf("(%2d)", cell.Day())
	default:
		return fmt.Sprintf("%3d ", cell.Day())
	}
}

// resolveSources expands every configured source over the window
// [anchor - backfill, anchor + horizon] and merges the results.
func resolveSources(conf *config.Config, anchor time.Time) ([]time.Time, error) {
	if len(conf.Sources) == 0 {
		return nil, nil
	}

	w := source.Window{
		Start: datemath.StartOfDay(anchor).AddDate(0, 0, -conf.BackfillDays),
		End:   datemath.StartOfDay(anchor).AddDate(0, 0, conf.HorizonDays),
	}

	var lists [][]time.Time
	for i, sc := range conf.Sources {
		set := source.Set{
			Dates: sc.Dates,
			RRule: sc.RRule,
			Cron:  sc.Cron,
		}
		if sc.DTStart != "" {
			d, err := datemath.Normalize(sc.DTStart)
			if err != nil {
				return nil, fmt.Errorf("source %d: invalid dtstart %q: %w", i, sc.DTStart, err)
			}
			set.DTStart = d
		}
		if sc.ICSFile != "" {
			body, err := os.ReadFile(sc.ICSFile)
			if err != nil {
				return nil, fmt.Errorf("source %d: %w", i, err)
			}
			set.ICS = body
		}

		dates, err := set.Resolve(w)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		lists = append(lists, dates)
	}

	merged := source.Merge(lists...)
	appLog.Info("sources resolved", "date_count", len(merged),
		"window_start", w.Start.Format("2006-01-02"), "window_end", w.End.Format("2006-01-02"))
	return merged, nil
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", defaultConfigPath(), "Path to config file")
	flag.StringVar(&cfg.selectDate, "date", "", "Date to select (e.g. 2026-08-28)")
	flag.StringVar(&cfg.viewDate, "month", "", "Month to display (any date inside it)")
	flag.StringVar(&cfg.logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, ERROR)")

	flag.Parse()

	return cfg
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dateselect.yaml"
	}
	return home + "/.config/dateselect/config.yaml"
}
