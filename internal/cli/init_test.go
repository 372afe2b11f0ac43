package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	apitesting "github.com/rileyhilliard/usagedash/internal/api/testing"
	"github.com/rileyhilliard/usagedash/internal/config"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_NonInteractiveWritesConfig(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	var buf bytes.Buffer
	err := initCommand(context.Background(), InitOptions{
		Path:           path,
		Server:         fake.URL() + "/",
		NonInteractive: true,
	}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, fake.URL(), cfg.Server.URL)
	assert.Equal(t, config.DefaultPollInterval, cfg.Dashboard.PollInterval)
	assert.Equal(t, "today", cfg.Dashboard.Period)
	assert.Equal(t, "en", cfg.Locale)
}

func TestInitCommand_ExistingFileNeedsForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	opts := InitOptions{Path: path, NonInteractive: true, SkipProbe: true}
	err := initCommand(context.Background(), opts, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	opts.Overwrite = true
	require.NoError(t, initCommand(context.Background(), opts, &bytes.Buffer{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "poll_interval")
}

func TestInitCommand_UnreachableTracker(t *testing.T) {
	fake := apitesting.NewFakeServer()
	url := fake.URL()
	fake.Close()

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := initCommand(context.Background(), InitOptions{
		Path:           path,
		Server:         url,
		NonInteractive: true,
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInitCommand_LocalPath(t *testing.T) {
	t.Chdir(t.TempDir())

	err := initCommand(context.Background(), InitOptions{Local: true, NonInteractive: true, SkipProbe: true}, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = os.Stat(config.ConfigFileName)
	assert.NoError(t, err)
}

func TestInitAnswers_Apply(t *testing.T) {
	tests := []struct {
		name    string
		answers initAnswers
		wantErr bool
	}{
		{name: "valid", answers: initAnswers{Server: "http://localhost:9000/", Interval: "2s", Period: "all", Locale: "ru"}},
		{name: "bad url", answers: initAnswers{Server: "localhost:9000", Interval: "1s", Period: "today", Locale: "en"}, wantErr: true},
		{name: "bad interval", answers: initAnswers{Server: "http://localhost", Interval: "soon", Period: "today", Locale: "en"}, wantErr: true},
		{name: "too fast", answers: initAnswers{Server: "http://localhost", Interval: "10ms", Period: "today", Locale: "en"}, wantErr: true},
		{name: "bad locale", answers: initAnswers{Server: "http://localhost", Interval: "1s", Period: "today", Locale: "de"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.answers.apply(config.DefaultConfig())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:9000", cfg.Server.URL)
			assert.Equal(t, 2*time.Second, cfg.Dashboard.PollInterval)
			assert.Equal(t, "all", cfg.Dashboard.Period)
			assert.Equal(t, "ru", cfg.Locale)
		})
	}
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validateServerURL("https://tracker.local"))
	assert.Error(t, validateServerURL("ftp://tracker.local"))
	assert.Error(t, validateServerURL(""))

	assert.NoError(t, validateInterval("500ms"))
	assert.Error(t, validateInterval("100ms"))
	assert.Error(t, validateInterval("x"))
}
