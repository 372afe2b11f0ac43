package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/export"
	"github.com/rileyhilliard/usagedash/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportChart  string
	exportOut    string
	exportPeriod string
	exportWidth  int
	exportHeight int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render dashboard charts to PNG files",
	Long: `Render the hourly, categories, week and trend charts to PNG files
named after the chart (hourly.png, categories.png, ...). Charts without
data are skipped.

Examples:
  usagedash export
  usagedash export --chart trend --out ./charts
  usagedash export --period all --width 1600 --height 800`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := export.ParseName(exportChart)
		if err != nil {
			return err
		}

		a, err := loadApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		period := api.Period(a.cfg.Dashboard.Period)
		if exportPeriod != "" {
			period = api.Period(exportPeriod)
		}
		if !period.Valid() {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown period '%s'", period),
				"Use 'today' or 'all'.")
		}

		e := &export.Exporter{
			Client: a.client,
			Labels: a.labels,
			Period: period,
			Dir:    exportOut,
			Width:  exportWidth,
			Height: exportHeight,
			Logger: a.log,
		}
		return exportCommand(cmd.Context(), e, cmd.OutOrStdout(), names)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportChart, "chart", "all", "chart to export: hourly, categories, week, trend or all")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "", "categories period: today or all")
	exportCmd.Flags().IntVar(&exportWidth, "width", export.DefaultWidth, "image width in pixels")
	exportCmd.Flags().IntVar(&exportHeight, "height", export.DefaultHeight, "image height in pixels")
	rootCmd.AddCommand(exportCmd)
}

func exportCommand(ctx context.Context, e *export.Exporter, w io.Writer, names []export.Name) error {
	spinner := ui.NewSpinner(w, "Rendering charts", stdoutIsTerminal())
	spinner.Start()

	paths, err := e.Export(ctx, names)
	if err != nil {
		spinner.Fail("")
		return err
	}
	spinner.Success()

	if len(paths) == 0 {
		fmt.Fprintln(w, ui.MutedStyle.Render("No charts had data to export."))
		return nil
	}
	for _, p := range paths {
		fmt.Fprintf(w, "  %s %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), p)
	}
	return nil
}
