package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"future version", func(c *Config) { c.Version = 99 }, "from the future"},
		{"empty url", func(c *Config) { c.Server.URL = "" }, "Server URL is empty"},
		{"bad scheme", func(c *Config) { c.Server.URL = "ftp://host" }, "isn't an http(s) address"},
		{"no host", func(c *Config) { c.Server.URL = "http://" }, "isn't an http(s) address"},
		{"https ok", func(c *Config) { c.Server.URL = "https://tracker.local" }, ""},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "timeout must be positive"},
		{"poll too fast", func(c *Config) { c.Dashboard.PollInterval = 100 * time.Millisecond }, "too short"},
		{"poll at minimum", func(c *Config) { c.Dashboard.PollInterval = MinPollInterval }, ""},
		{"zero clock", func(c *Config) { c.Dashboard.ClockInterval = 0 }, "Clock interval"},
		{"top apps zero", func(c *Config) { c.Dashboard.TopApps = 0 }, "top_apps"},
		{"apps limit huge", func(c *Config) { c.Dashboard.AppsLimit = 10000 }, "apps_limit"},
		{"bad period", func(c *Config) { c.Dashboard.Period = "week" }, "Unknown period"},
		{"bad locale", func(c *Config) { c.Locale = "de" }, "Unknown locale"},
		{"negative backups", func(c *Config) { c.Log.MaxBackups = -1 }, "can't be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
