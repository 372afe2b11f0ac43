package cli

import (
	"io"
	"os"
	"strings"

	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/config"
	"github.com/rileyhilliard/usagedash/internal/locale"
	"github.com/rileyhilliard/usagedash/internal/logger"
)

// app bundles what every command needs: resolved config, labels, logger
// and an API client pointed at the configured tracker.
type app struct {
	cfg     *config.Config
	cfgPath string
	labels  locale.Labels
	log     logger.Logger
	client  *api.Client
	closer  io.Closer
}

// appOptions control how loadApp builds the logger.
type appOptions struct {
	// Interactive commands own the terminal, so logs always go to the file.
	Interactive bool

	// Locale overrides the configured locale when set.
	Locale string
}

// loadApp resolves config (file, env, then flags), validates it and wires
// the logger and API client.
func loadApp(opts appOptions) (*app, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg, opts)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	log, closer := newLogger(cfg, opts.Interactive)
	logger.SetDefault(log)
	if path != "" {
		log.Debug("using config %s", path)
	}

	client := api.NewClient(cfg.Server.URL,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithLogger(log),
	)

	return &app{
		cfg:     cfg,
		cfgPath: path,
		labels:  locale.Get(locale.Tag(cfg.Locale)),
		log:     log,
		client:  client,
		closer:  closer,
	}, nil
}

// applyFlagOverrides layers global and per-command flags over the config.
func applyFlagOverrides(cfg *config.Config, opts appOptions) {
	if serverFlag != "" {
		cfg.Server.URL = strings.TrimRight(serverFlag, "/")
	}
	if opts.Locale != "" {
		cfg.Locale = strings.ToLower(opts.Locale)
	}
	if verbose {
		cfg.Log.Debug = true
	}
}

// newLogger picks stderr for verbose one-shot commands and the rotated
// log file otherwise.
func newLogger(cfg *config.Config, interactive bool) (logger.Logger, io.Closer) {
	if verbose && !interactive {
		return logger.New(os.Stderr, "cli", true), nil
	}

	path := cfg.Log.File
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return logger.Noop(), nil
		}
		path = p
	}

	return logger.NewFile(logger.FileConfig{
		Path:       path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Debug:      cfg.Log.Debug,
	}, "cli")
}

// Close releases the log file.
func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}
