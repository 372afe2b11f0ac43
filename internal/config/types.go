package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete usagedash configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Locale    string          `yaml:"locale" mapstructure:"locale"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig locates the tracker API.
type ServerConfig struct {
	// URL is the tracker's base address, e.g. http://127.0.0.1:52847.
	URL string `yaml:"url" mapstructure:"url"`

	// Timeout bounds each API request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DashboardConfig controls refresh rates and list sizes in the TUI.
type DashboardConfig struct {
	// PollInterval is how often /api/status is fetched while monitoring runs.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// ClockInterval is how often the header clock ticks.
	ClockInterval time.Duration `yaml:"clock_interval" mapstructure:"clock_interval"`

	// TopApps is the size of the overview's top apps list.
	TopApps int `yaml:"top_apps" mapstructure:"top_apps"`

	// AppsLimit is the size of the apps tab list.
	AppsLimit int `yaml:"apps_limit" mapstructure:"apps_limit"`

	// Period is the reporting window the apps tab opens with: "today" or "all".
	Period string `yaml:"period" mapstructure:"period"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	// File is the log path. Empty means $XDG_STATE_HOME/usagedash/usagedash.log.
	File string `yaml:"file" mapstructure:"file"`

	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	Debug      bool `yaml:"debug" mapstructure:"debug"`
}

// Defaults
const (
	DefaultServerURL     = "http://127.0.0.1:52847"
	DefaultTimeout       = 5 * time.Second
	DefaultPollInterval  = time.Second
	DefaultClockInterval = time.Second
	DefaultTopApps       = 5
	DefaultAppsLimit     = 20
	DefaultPeriod        = "today"
	DefaultLocale        = "en"

	// MinPollInterval keeps a misconfigured dashboard from hammering the tracker.
	MinPollInterval = 250 * time.Millisecond
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: DefaultTimeout,
		},
		Dashboard: DashboardConfig{
			PollInterval:  DefaultPollInterval,
			ClockInterval: DefaultClockInterval,
			TopApps:       DefaultTopApps,
			AppsLimit:     DefaultAppsLimit,
			Period:        DefaultPeriod,
		},
		Locale: DefaultLocale,
		Log: LogConfig{
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}
