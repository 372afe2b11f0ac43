package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/usagedash/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations as strings, so the written
// file reads "5s" instead of nanosecond integers.
type fileConfig struct {
	Version   int    `yaml:"version"`
	Server    server `yaml:"server"`
	Dashboard board  `yaml:"dashboard"`
	Locale    string `yaml:"locale"`
	Log       logCfg `yaml:"log"`
}

type server struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type board struct {
	PollInterval  string `yaml:"poll_interval"`
	ClockInterval string `yaml:"clock_interval"`
	TopApps       int    `yaml:"top_apps"`
	AppsLimit     int    `yaml:"apps_limit"`
	Period        string `yaml:"period"`
}

type logCfg struct {
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Debug      bool   `yaml:"debug"`
}

const fileHeader = "# usagedash configuration\n# Every key can be overridden with USAGEDASH_<SECTION>_<KEY>, e.g. USAGEDASH_SERVER_URL.\n\n"

// Marshal renders cfg as the YAML written by 'usagedash init'.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version: cfg.Version,
		Server: server{
			URL:     cfg.Server.URL,
			Timeout: cfg.Server.Timeout.String(),
		},
		Dashboard: board{
			PollInterval:  cfg.Dashboard.PollInterval.String(),
			ClockInterval: cfg.Dashboard.ClockInterval.String(),
			TopApps:       cfg.Dashboard.TopApps,
			AppsLimit:     cfg.Dashboard.AppsLimit,
			Period:        cfg.Dashboard.Period,
		},
		Locale: cfg.Locale,
		Log: logCfg{
			File:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			Debug:      cfg.Log.Debug,
		},
	}

	body, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return append([]byte(fileHeader), body...), nil
}

// Write validates cfg and saves it to path. An existing file is only
// replaced when force is set.
func Write(path string, cfg *Config, force bool) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config already exists at "+path,
				"Use --force to overwrite it")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't render config", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create the config directory",
			"Check permissions on "+filepath.Dir(path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check file permissions")
	}
	return nil
}
