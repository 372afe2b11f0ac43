package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the project-local config file name.
	ConfigFileName = ".usagedash.yaml"
	// AppDir is the directory name under the XDG base directories.
	AppDir = "usagedash"
	// GlobalConfigFile is the file name inside $XDG_CONFIG_HOME/usagedash.
	GlobalConfigFile = "config.yaml"
	// LogFileName is the file name inside $XDG_STATE_HOME/usagedash.
	LogFileName = "usagedash.log"
	// EnvPrefix prefixes environment overrides (USAGEDASH_SERVER_URL, ...).
	EnvPrefix = "USAGEDASH"
)

// Load reads config from the specified path. Environment overrides apply.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'usagedash init' to create one, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .usagedash.yaml in current directory
// 3. $XDG_CONFIG_HOME/usagedash/config.yaml (and the XDG config dirs)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if global, err := xdg.SearchConfigFile(filepath.Join(AppDir, GlobalConfigFile)); err == nil {
		return global, nil
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults
// (with environment overrides applied) if no file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// GlobalConfigPath returns where 'usagedash init' writes by default,
// creating the parent directory if needed.
func GlobalConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(AppDir, GlobalConfigFile))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot resolve the config directory",
			"Set XDG_CONFIG_HOME or pass --path")
	}
	return path, nil
}

// DefaultLogPath returns $XDG_STATE_HOME/usagedash/usagedash.log,
// creating the parent directory if needed.
func DefaultLogPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join(AppDir, LogFileName))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot resolve the log directory",
			"Set log.file in your config")
	}
	return path, nil
}

// newViper returns a viper instance with defaults and env overrides wired.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.timeout", d.Server.Timeout.String())
	v.SetDefault("dashboard.poll_interval", d.Dashboard.PollInterval.String())
	v.SetDefault("dashboard.clock_interval", d.Dashboard.ClockInterval.String())
	v.SetDefault("dashboard.top_apps", d.Dashboard.TopApps)
	v.SetDefault("dashboard.apps_limit", d.Dashboard.AppsLimit)
	v.SetDefault("dashboard.period", d.Dashboard.Period)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.debug", d.Log.Debug)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment overrides"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	cfg.Locale = strings.ToLower(strings.TrimSpace(cfg.Locale))
	cfg.Log.File = ExpandTilde(cfg.Log.File)

	return cfg, nil
}
