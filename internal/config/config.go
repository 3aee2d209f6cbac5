package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dateselect/internal/locale"
)

// SourceConfig describes one allowed-instants source. Any combination of
// the grammars may be set; they are merged.
type SourceConfig struct {
	// Dates are literal date strings (ISO-8601-like).
	Dates []string `yaml:"dates" json:"dates"`
	// RRule is an RFC 5545 recurrence rule value, e.g. "FREQ=DAILY".
	RRule string `yaml:"rrule" json:"rrule"`
	// DTStart anchors the recurrence rule (literal date string).
	DTStart string `yaml:"dtstart" json:"dtstart"`
	// Cron is a standard five-field cron expression.
	Cron string `yaml:"cron" json:"cron"`
	// ICSFile points to an iCalendar file whose event start times become
	// allowed instants.
	ICSFile string `yaml:"ics_file" json:"ics_file"`
}

// Config is the top-level picker configuration.
type Config struct {
	// FirstDayOfWeek is the first day of the displayed week, 0=Sunday.
	FirstDayOfWeek int `yaml:"first_day_of_week" json:"first_day_of_week"`

	// Weekends lists day-of-week numbers (0-6) shown as weekend cells.
	Weekends []int `yaml:"weekends" json:"weekends"`

	// DateFormat / TimeFormat are token templates overriding the locale
	// defaults (e.g. "yyyy-MM-dd", "HH:mm").
	DateFormat string `yaml:"date_format" json:"date_format"`
	TimeFormat string `yaml:"time_format" json:"time_format"`

	// StartDate seeds the initial view (literal date string). Empty
	// means today.
	StartDate string `yaml:"start_date" json:"start_date"`

	MoveToOtherMonthsOnSelect bool `yaml:"move_to_other_months_on_select" json:"move_to_other_months_on_select"`
	AutoClose                 bool `yaml:"auto_close" json:"auto_close"`
	KeyboardNav               bool `yaml:"keyboard_nav" json:"keyboard_nav"`

	// HorizonDays / BackfillDays bound the expansion window for
	// schedule-based sources, counted from StartDate (or today).
	HorizonDays  int `yaml:"horizon_days" json:"horizon_days"`
	BackfillDays int `yaml:"backfill_days" json:"backfill_days"`

	// Locale overrides individual locale table entries.
	Locale *locale.Locale `yaml:"locale,omitempty" json:"locale,omitempty"`

	// Sources is the list of allowed-instants sources. Empty means no
	// include-list constraint.
	Sources []SourceConfig `yaml:"sources" json:"sources"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstDayOfWeek:            0,
		Weekends:                  []int{6, 0},
		DateFormat:                "",
		TimeFormat:                "",
		MoveToOtherMonthsOnSelect: true,
		AutoClose:                 true,
		KeyboardNav:               true,
		HorizonDays:               366,
		BackfillDays:              0,
		Sources:                   []SourceConfig{},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.FirstDayOfWeek < 0 || c.FirstDayOfWeek > 6 {
		c.FirstDayOfWeek = 0
	}
	if c.Weekends == nil {
		c.Weekends = []int{6, 0}
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 366
	}
	if c.BackfillDays < 0 {
		c.BackfillDays = 0
	}
	if c.Sources == nil {
		c.Sources = []SourceConfig{}
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".dateselect-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the
// package-level Save function:
//
//	cfg, _ := config.Load(path)
//	// ... mutate cfg ...
//	if err := cfg.Save(path); err != nil { ... }
func (c *Config) Save(path string) error {
	return Save(path, c)
}
