package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/config"
	"github.com/rileyhilliard/usagedash/internal/dashboard"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	appsPeriod string
	appsLimit  int
	appsJSON   bool
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List app usage and categories",
	Long: `Print the app usage table and the category breakdown for a period.

Examples:
  usagedash apps
  usagedash apps --period all --limit 50
  usagedash apps --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		period := api.Period(a.cfg.Dashboard.Period)
		if appsPeriod != "" {
			period = api.Period(appsPeriod)
		}
		limit := a.cfg.Dashboard.AppsLimit
		if cmd.Flags().Changed("limit") {
			limit = appsLimit
		}
		return appsCommand(cmd.Context(), a, cmd.OutOrStdout(), period, limit, appsJSON)
	},
}

func init() {
	appsCmd.Flags().StringVar(&appsPeriod, "period", "", "reporting period: today or all")
	appsCmd.Flags().IntVar(&appsLimit, "limit", config.DefaultAppsLimit, "maximum number of apps")
	appsCmd.Flags().BoolVar(&appsJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(appsCmd)
}

// AppsOutput is the --json payload of 'apps'.
type AppsOutput struct {
	Period     api.Period          `json:"period"`
	Apps       []api.AppUsage      `json:"apps"`
	Categories []api.CategorySlice `json:"categories"`
}

// appsCommand loads apps and categories together; either failing fails
// the command.
func appsCommand(ctx context.Context, a *app, w io.Writer, period api.Period, limit int, asJSON bool) error {
	if !period.Valid() {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown period '%s'", period),
			"Use 'today' or 'all'.")
	}
	if limit < 1 || limit > config.MaxAppsLimit {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Limit %d is out of range", limit),
			fmt.Sprintf("Pick a value between 1 and %d.", config.MaxAppsLimit))
	}

	out := AppsOutput{Period: period}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Apps, err = a.client.Apps(gctx, period, limit)
		return err
	})
	g.Go(func() (err error) {
		out.Categories, err = a.client.Categories(gctx, period)
		return err
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

	fmt.Fprint(w, renderApps(a, out))
	return nil
}

func renderApps(a *app, out AppsOutput) string {
	l := a.labels
	periodLabel := l.PeriodToday
	if out.Period == api.PeriodAll {
		periodLabel = l.PeriodAll
	}

	s := ui.BoldStyle.Render(fmt.Sprintf("%s (%s)", l.AllApps, periodLabel)) + "\n"
	rows := dashboard.AppRows(out.Apps)
	if len(rows) == 0 {
		s += ui.MutedStyle.Render(l.NoDataPeriod) + "\n"
	} else {
		cells := make([][]string, len(rows))
		for i, r := range rows {
			cells[i] = []string{strconv.Itoa(r.Rank), r.Name, r.Duration, r.Percent + "%", r.Category}
		}
		s += ui.RenderSimpleTable([]ui.TableColumn{
			{Title: "#", Width: 3},
			{Title: "App", Width: 28},
			{Title: "Time", Width: 10},
			{Title: "%", Width: 7},
			{Title: "Category", Width: 16},
		}, cells) + "\n"
	}

	s += "\n" + ui.BoldStyle.Render(l.Categories) + "\n"
	chart := dashboard.CategoryChart(out.Categories)
	if chart == nil {
		return s + ui.MutedStyle.Render(l.NoData) + "\n"
	}
	return s + chart.RenderLegend() + "\n"
}
