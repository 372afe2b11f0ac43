package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/dashboard"
	"github.com/rileyhilliard/usagedash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var weekJSON bool

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show weekday averages, the productivity trend and the week summary",
	Long: `Print the same three panels as the dashboard's stats tab.

Examples:
  usagedash week
  usagedash week --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return weekCommand(cmd.Context(), a, cmd.OutOrStdout(), weekJSON)
	},
}

func init() {
	weekCmd.Flags().BoolVar(&weekJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(weekCmd)
}

// WeekOutput is the --json payload of 'week'.
type WeekOutput struct {
	Comparison []api.WeekdayAverage `json:"week_comparison"`
	Trend      []api.TrendPoint     `json:"trend"`
	Summary    api.WeekSummary      `json:"summary"`
}

// Chart size for one-shot output, in cells.
const (
	weekChartWidth  = 56
	weekChartHeight = 8
)

// weekCommand loads the stats trio concurrently.
func weekCommand(ctx context.Context, a *app, w io.Writer, asJSON bool) error {
	var out WeekOutput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Comparison, err = a.client.WeekComparison(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Trend, err = a.client.Trend(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Summary, err = a.client.WeekStats(gctx)
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

	fmt.Fprint(w, renderWeek(a, out))
	return nil
}

func renderWeek(a *app, out WeekOutput) string {
	l := a.labels

	s := ui.BoldStyle.Render(fmt.Sprintf("%s (%s)", l.WeekComparison, l.UnitHours)) + "\n"
	s += chartOrNoData(dashboard.WeekChart(out.Comparison, l), l.NoData) + "\n\n"

	s += ui.BoldStyle.Render(l.Trend+" (%)") + "\n"
	s += chartOrNoData(dashboard.TrendChart(out.Trend), l.NoData) + "\n\n"

	s += ui.BoldStyle.Render(l.WeekSummary) + "\n"
	pairs := dashboard.WeekSummaryPairs(out.Summary, l)
	kv := make([]ui.KeyValue, len(pairs))
	for i, p := range pairs {
		kv[i] = ui.KeyValue{Key: p[0], Value: p[1]}
	}
	return s + ui.RenderKeyValues(kv)
}

func chartOrNoData(c *dashboard.Chart, noData string) string {
	if c == nil || len(c.Values) == 0 {
		return ui.MutedStyle.Render(noData)
	}
	return c.Render(weekChartWidth, weekChartHeight)
}
