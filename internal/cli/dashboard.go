package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/config"
	"github.com/rileyhilliard/usagedash/internal/dashboard"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/spf13/cobra"
)

// dashboardFlags are shared by the root command and 'dashboard'.
type dashboardFlags struct {
	Interval string
	Period   string
	Locale   string
}

var dashboardOpts dashboardFlags

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "ui"},
	Short:   "Open the live dashboard",
	Long: `Open the full-screen dashboard. Status is polled while monitoring runs;
charts load when their tab is opened.

Keys: 1/2/3 switch tabs, space starts or stops monitoring, a toggles
autostart, p cycles the apps period, r reloads, ? shows all keys.

Examples:
  usagedash dashboard
  usagedash dashboard --interval 2s --period all
  usagedash dashboard --locale ru`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context(), dashboardOpts)
	},
}

func init() {
	addDashboardFlags(dashboardCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func addDashboardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dashboardOpts.Interval, "interval", "", "status poll interval (e.g., 1s, 500ms)")
	cmd.Flags().StringVar(&dashboardOpts.Period, "period", "", "initial apps period: today or all")
	cmd.Flags().StringVar(&dashboardOpts.Locale, "locale", "", "display language: en or ru")
}

// runDashboard starts the Bubble Tea program on the alternate screen and
// cancels every in-flight request when it exits.
func runDashboard(ctx context.Context, flags dashboardFlags) error {
	if !stdoutIsTerminal() {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'usagedash status' or 'usagedash apps' for piped output.")
	}

	a, err := loadApp(appOptions{Interactive: true, Locale: flags.Locale})
	if err != nil {
		return err
	}
	defer a.Close()

	opts, err := dashboardOptions(a, flags)
	if err != nil {
		return err
	}

	a.log.Info("dashboard starting against %s", a.cfg.Server.URL)
	model := dashboard.NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()

	if m, ok := final.(dashboard.Model); ok {
		m.Close()
	} else {
		model.Close()
	}
	a.log.Info("dashboard stopped")

	if err != nil && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "The dashboard exited unexpectedly", "")
	}
	return nil
}

// dashboardOptions merges config and flags into dashboard.Options.
func dashboardOptions(a *app, flags dashboardFlags) (dashboard.Options, error) {
	poll := a.cfg.Dashboard.PollInterval
	if flags.Interval != "" {
		d, err := time.ParseDuration(flags.Interval)
		if err != nil {
			return dashboard.Options{}, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid interval", flags.Interval),
				"Try something like 1s, 2s or 500ms.")
		}
		if d < config.MinPollInterval {
			return dashboard.Options{}, errors.New(errors.ErrConfig,
				fmt.Sprintf("Interval %s is too short", d),
				fmt.Sprintf("Use at least %s.", config.MinPollInterval))
		}
		poll = d
	}

	period := api.Period(a.cfg.Dashboard.Period)
	if flags.Period != "" {
		period = api.Period(flags.Period)
		if !period.Valid() {
			return dashboard.Options{}, errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown period '%s'", flags.Period),
				"Use 'today' or 'all'.")
		}
	}

	return dashboard.Options{
		Client:        a.client,
		Labels:        a.labels,
		Logger:        a.log,
		Period:        period,
		PollInterval:  poll,
		ClockInterval: a.cfg.Dashboard.ClockInterval,
		TopApps:       a.cfg.Dashboard.TopApps,
		AppsLimit:     a.cfg.Dashboard.AppsLimit,
	}, nil
}
