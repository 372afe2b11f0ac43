package config

import (
	"fmt"
	"net/url"

	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/locale"
)

// Bounds for list sizes.
const (
	MaxTopApps   = 100
	MaxAppsLimit = 500
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but usagedash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade usagedash, or regenerate the file with 'usagedash init --force'")
	}

	if err := validateServer(cfg.Server); err != nil {
		return err
	}

	if err := validateDashboard(cfg.Dashboard); err != nil {
		return err
	}

	if !locale.Supported(cfg.Locale) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown locale '%s'", cfg.Locale),
			"Use 'en' or 'ru'")
	}

	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 {
		return errors.New(errors.ErrConfig,
			"Log rotation settings can't be negative",
			"Check 'log.max_size_mb' and 'log.max_backups'")
	}

	return nil
}

func validateServer(s ServerConfig) error {
	if s.URL == "" {
		return errors.New(errors.ErrConfig,
			"Server URL is empty",
			"Set 'server.url', e.g. "+DefaultServerURL)
	}

	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Server URL '%s' isn't an http(s) address", s.URL),
			"Use something like "+DefaultServerURL)
	}

	if s.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"Server timeout must be positive",
			"Set 'server.timeout' to a duration like 5s")
	}

	return nil
}

func validateDashboard(d DashboardConfig) error {
	if d.PollInterval < MinPollInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Poll interval %s is too short", d.PollInterval),
			fmt.Sprintf("Use at least %s for 'dashboard.poll_interval'", MinPollInterval))
	}

	if d.ClockInterval <= 0 {
		return errors.New(errors.ErrConfig,
			"Clock interval must be positive",
			"Set 'dashboard.clock_interval' to a duration like 1s")
	}

	if d.TopApps < 1 || d.TopApps > MaxTopApps {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("top_apps must be between 1 and %d, got %d", MaxTopApps, d.TopApps),
			"Check 'dashboard.top_apps'")
	}

	if d.AppsLimit < 1 || d.AppsLimit > MaxAppsLimit {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("apps_limit must be between 1 and %d, got %d", MaxAppsLimit, d.AppsLimit),
			"Check 'dashboard.apps_limit'")
	}

	if d.Period != "today" && d.Period != "all" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown period '%s'", d.Period),
			"Use 'today' or 'all' for 'dashboard.period'")
	}

	return nil
}
