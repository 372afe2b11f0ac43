package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/dashboard"
	"github.com/rileyhilliard/usagedash/internal/format"
	"github.com/rileyhilliard/usagedash/internal/locale"
	"github.com/rileyhilliard/usagedash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current tracking session",
	Long: `Print a one-shot snapshot of the tracking session: whether monitoring
runs, time totals, the current app and productivity.

Examples:
  usagedash status
  usagedash status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return statusCommand(cmd.Context(), a, cmd.OutOrStdout(), statusJSON)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start monitoring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return monitoringCommand(cmd.Context(), a, cmd.OutOrStdout(), true)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop monitoring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return monitoringCommand(cmd.Context(), a, cmd.OutOrStdout(), false)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(statusCmd, startCmd, stopCmd)
}

// StatusOutput is the --json payload of 'status'.
type StatusOutput struct {
	Status api.Status        `json:"status"`
	Today  *api.TodaySummary `json:"today,omitempty"`
}

// statusCommand fetches the live status and today's saved totals together.
// The saved totals are best effort; only a status failure fails the command.
func statusCommand(ctx context.Context, a *app, w io.Writer, asJSON bool) error {
	var out StatusOutput
	var g errgroup.Group
	g.Go(func() (err error) {
		out.Status, err = a.client.Status(ctx)
		return err
	})
	g.Go(func() error {
		today, err := a.client.TodayStats(ctx)
		if err != nil {
			a.log.Warn("today stats unavailable: %v", err)
			return nil
		}
		out.Today = &today
		return nil
	})
	err := g.Wait()

	if asJSON {
		if err != nil {
			_ = WriteJSONFromError(w, err)
			return errReported
		}
		return WriteJSONSuccess(w, out)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(w, renderStatus(out.Status, a.labels))
	if out.Today != nil {
		fmt.Fprint(w, "\n"+renderToday(*out.Today, a.labels))
	}
	return nil
}

// renderToday prints the totals the tracker has already persisted for today.
func renderToday(t api.TodaySummary, l locale.Labels) string {
	return ui.BoldStyle.Render(l.PeriodToday) + "\n" + ui.RenderKeyValues([]ui.KeyValue{
		{Key: l.SummaryTotal, Value: format.Duration(t.TotalSeconds, l)},
		{Key: l.SummaryActive, Value: format.Duration(t.ActiveSeconds, l)},
		{Key: l.IdleTime, Value: format.Duration(t.IdleSeconds, l)},
		{Key: l.AppsCount, Value: fmt.Sprintf("%d", t.AppsUsed)},
		{Key: l.Productivity, Value: fmt.Sprintf("%d%%", t.Productivity)},
	})
}

// renderStatus prints the badge line followed by the overview's cards as
// key/value rows.
func renderStatus(st api.Status, l locale.Labels) string {
	sv := dashboard.StatusViewOf(st, l)

	badge := ui.ErrorStyle.Render(ui.SymbolStopped + " " + l.Stopped)
	if st.Running {
		badge = ui.SuccessStyle.Render(ui.SymbolRunning + " " + l.Active)
	}

	return badge + "\n\n" + ui.RenderKeyValues([]ui.KeyValue{
		{Key: l.TotalTime, Value: sv.TotalTime},
		{Key: l.ActiveTime, Value: sv.ActiveTime},
		{Key: l.IdleTime, Value: sv.IdleTime},
		{Key: l.AppsCount, Value: sv.AppsCount},
		{Key: l.CurrentApp, Value: sv.CurrentApp},
		{Key: l.Productivity, Value: fmt.Sprintf("%d%%", sv.Productivity)},
	})
}

// monitoringCommand posts start or stop and reports the new state. Any 2xx
// reply counts as confirmation.
func monitoringCommand(ctx context.Context, a *app, w io.Writer, start bool) error {
	label, call := "Starting monitoring", a.client.Start
	if !start {
		label, call = "Stopping monitoring", a.client.Stop
	}

	spinner := ui.NewSpinner(w, label, stdoutIsTerminal())
	spinner.Start()

	if err := call(ctx); err != nil {
		spinner.Fail("")
		a.log.Warn("%s failed: %v", label, err)
		return err
	}
	spinner.Success()

	st, err := a.client.Status(ctx)
	if err != nil {
		// The toggle itself went through; the follow-up read is best effort.
		a.log.Warn("status after toggle: %v", err)
		return nil
	}
	fmt.Fprint(w, "\n"+renderStatus(st, a.labels))
	return nil
}
