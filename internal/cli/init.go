package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/config"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Target file; empty means the XDG config path
	Local          bool   // Write ./.usagedash.yaml instead
	Server         string // Pre-filled tracker URL
	Overwrite      bool   // Replace an existing file without asking
	NonInteractive bool   // Skip prompts and use defaults plus flags
	SkipProbe      bool   // Don't contact the tracker before saving
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a usagedash config file",
	Long: `Write a config file with the tracker address and dashboard settings.

By default the file goes to $XDG_CONFIG_HOME/usagedash/config.yaml; --local
writes ./.usagedash.yaml instead. The tracker is contacted once so typos in
the address show up before the file is saved.

Examples:
  usagedash init
  usagedash init --local
  usagedash init --non-interactive --server http://127.0.0.1:52847 --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		if opts.Server == "" {
			opts.Server = serverFlag
		}
		return initCommand(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.Path, "path", "", "write the config to this file")
	initCmd.Flags().BoolVar(&initOpts.Local, "local", false, "write ./"+config.ConfigFileName)
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts")
	initCmd.Flags().BoolVar(&initOpts.SkipProbe, "skip-probe", false, "don't contact the tracker")
	rootCmd.AddCommand(initCmd)
}

// initAnswers are the form fields, kept as strings for huh inputs.
type initAnswers struct {
	Server   string
	Interval string
	Period   string
	Locale   string
}

// initCommand collects settings, checks the tracker answers and writes the
// config file.
func initCommand(ctx context.Context, opts InitOptions, w io.Writer) error {
	path, err := initTargetPath(opts)
	if err != nil {
		return err
	}

	force := opts.Overwrite
	if _, statErr := os.Stat(path); statErr == nil && !force {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("'%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
		force = true
	}

	defaults := config.DefaultConfig()
	answers := initAnswers{
		Server:   defaults.Server.URL,
		Interval: defaults.Dashboard.PollInterval.String(),
		Period:   defaults.Dashboard.Period,
		Locale:   defaults.Locale,
	}
	if opts.Server != "" {
		answers.Server = strings.TrimRight(opts.Server, "/")
	}

	if !opts.NonInteractive {
		if err := initForm(&answers).Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
	}

	cfg, err := answers.apply(defaults)
	if err != nil {
		return err
	}

	if !opts.SkipProbe {
		if err := probeTracker(ctx, cfg, w); err != nil {
			if opts.NonInteractive {
				return err
			}
			var saveAnyway bool
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title("Save config anyway? (You can start the tracker later)").
					Value(&saveAnyway),
			))
			if formErr := form.Run(); formErr != nil || !saveAnyway {
				return err
			}
		}
	}

	if err := config.Write(path, cfg, force); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Wrote %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), path)
	fmt.Fprintln(w, ui.MutedStyle.Render("Run 'usagedash' to open the dashboard."))
	return nil
}

func initTargetPath(opts InitOptions) (string, error) {
	switch {
	case opts.Path != "":
		return config.ExpandTilde(opts.Path), nil
	case opts.Local:
		return filepath.Join(".", config.ConfigFileName), nil
	default:
		return config.GlobalConfigPath()
	}
}

func initForm(a *initAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tracker address").
				Description("Base URL of the usage tracker API").
				Placeholder(config.DefaultServerURL).
				Value(&a.Server).
				Validate(validateServerURL),
			huh.NewInput().
				Title("Status refresh interval").
				Description("How often the dashboard polls while monitoring runs").
				Placeholder("1s").
				Value(&a.Interval).
				Validate(validateInterval),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Apps period").
				Options(
					huh.NewOption("Today", string(api.PeriodToday)),
					huh.NewOption("All time", string(api.PeriodAll)),
				).
				Value(&a.Period),
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("English", "en"),
					huh.NewOption("Русский", "ru"),
				).
				Value(&a.Locale),
		),
	)
}

func validateServerURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http(s) URL like %s", config.DefaultServerURL)
	}
	return nil
}

func validateInterval(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a duration like 1s or 500ms")
	}
	if d < config.MinPollInterval {
		return fmt.Errorf("use at least %s", config.MinPollInterval)
	}
	return nil
}

// apply copies the answers over defaults and validates the result.
func (a initAnswers) apply(cfg *config.Config) (*config.Config, error) {
	if err := validateServerURL(a.Server); err != nil {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' is not a valid tracker address", a.Server),
			"Use an http(s) URL like "+config.DefaultServerURL)
	}
	interval, err := time.ParseDuration(strings.TrimSpace(a.Interval))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", a.Interval),
			"Try something like 1s or 500ms.")
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(a.Server), "/")
	cfg.Dashboard.PollInterval = interval
	cfg.Dashboard.Period = a.Period
	cfg.Locale = a.Locale

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// probeTracker checks the tracker answers /api/status at cfg's address.
func probeTracker(ctx context.Context, cfg *config.Config, w io.Writer) error {
	spinner := ui.NewSpinner(w, "Contacting tracker at "+cfg.Server.URL, stdoutIsTerminal())
	spinner.Start()

	client := api.NewClient(cfg.Server.URL, api.WithTimeout(cfg.Server.Timeout))
	if _, err := client.Status(ctx); err != nil {
		spinner.Fail("")
		return errors.WrapWithCode(err, errors.ErrAPI,
			"The tracker didn't answer at "+cfg.Server.URL,
			"Start the tracker, check the address, or pass --skip-probe")
	}
	spinner.Success()
	return nil
}
