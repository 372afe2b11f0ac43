// Package export renders the dashboard charts to PNG files.
//
// Datasets and colors come from the dashboard's chart builders, so an
// exported chart matches what the terminal view draws.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/dashboard"
	dasherrors "github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/locale"
	"github.com/rileyhilliard/usagedash/internal/logger"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/sync/errgroup"
)

// Name identifies an exportable chart.
type Name string

const (
	Hourly     Name = "hourly"
	Categories Name = "categories"
	Week       Name = "week"
	Trend      Name = "trend"
)

// All lists every chart in export order.
var All = []Name{Hourly, Categories, Week, Trend}

// ErrNoData is wrapped when a chart has nothing to draw.
var ErrNoData = errors.New("no data to chart")

// ParseName validates a --chart value. "all" and "" select every chart.
func ParseName(s string) ([]Name, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return All, nil
	}
	for _, n := range All {
		if string(n) == s {
			return []Name{n}, nil
		}
	}
	return nil, dasherrors.New(dasherrors.ErrConfig,
		fmt.Sprintf("Unknown chart '%s'", s),
		"Pick one of: hourly, categories, week, trend, all")
}

// Size of the rendered images in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// Exporter fetches chart data from the tracker and writes PNG files.
type Exporter struct {
	Client *api.Client
	Labels locale.Labels
	Period api.Period
	Dir    string
	Width  int
	Height int
	Logger logger.Logger
}

// Data is everything the four charts need.
type Data struct {
	Hourly     []api.HourlyBucket
	Categories []api.CategorySlice
	Week       []api.WeekdayAverage
	Trend      []api.TrendPoint
}

// Fetch loads the datasets for names concurrently. Any failure aborts the
// whole fetch.
func (e *Exporter) Fetch(ctx context.Context, names []Name) (Data, error) {
	var d Data
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range names {
		switch n {
		case Hourly:
			g.Go(func() (err error) {
				d.Hourly, err = e.Client.Hourly(gctx)
				return err
			})
		case Categories:
			g.Go(func() (err error) {
				d.Categories, err = e.Client.Categories(gctx, e.Period)
				return err
			})
		case Week:
			g.Go(func() (err error) {
				d.Week, err = e.Client.WeekComparison(gctx)
				return err
			})
		case Trend:
			g.Go(func() (err error) {
				d.Trend, err = e.Client.Trend(gctx)
				return err
			})
		}
	}
	return d, g.Wait()
}

// Export fetches data and writes one <name>.png per chart into Dir.
// Charts without data are skipped with a warning. Returns the written paths.
func (e *Exporter) Export(ctx context.Context, names []Name) ([]string, error) {
	log := e.Logger
	if log == nil {
		log = logger.Noop()
	}

	data, err := e.Fetch(ctx, names)
	if err != nil {
		return nil, err
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, dasherrors.WrapWithCode(err, dasherrors.ErrConfig,
			"Couldn't create the output directory "+dir,
			"Check permissions or pick another --out")
	}

	var written []string
	for _, n := range names {
		var buf bytes.Buffer
		if err := e.Render(&buf, n, data); err != nil {
			if errors.Is(err, ErrNoData) {
				log.Warn("skipping %s chart: %v", n, err)
				continue
			}
			return written, err
		}

		path := filepath.Join(dir, string(n)+".png")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, dasherrors.WrapWithCode(err, dasherrors.ErrConfig,
				"Couldn't write "+path,
				"Check permissions on the output directory")
		}
		log.Info("wrote %s", path)
		written = append(written, path)
	}
	return written, nil
}

// Render draws chart n from data as PNG into buf.
func (e *Exporter) Render(buf *bytes.Buffer, n Name, data Data) error {
	w, h := e.Width, e.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	l := e.Labels
	if l.Tag == "" {
		l = locale.Get(locale.English)
	}

	var err error
	switch n {
	case Hourly:
		err = renderBars(buf, l.HourlyActivity, l.UnitMinutes, dashboard.HourlyChart(data.Hourly, l), w, h)
	case Categories:
		err = renderDonut(buf, l.Categories, dashboard.CategoryChart(data.Categories), w, h)
	case Week:
		err = renderBars(buf, l.WeekComparison, l.UnitHours, dashboard.WeekChart(data.Week, l), w, h)
	case Trend:
		err = renderLine(buf, l.Trend, dashboard.TrendChart(data.Trend), w, h)
	default:
		return fmt.Errorf("unknown chart %q", n)
	}
	if err != nil && !errors.Is(err, ErrNoData) {
		return dasherrors.WrapWithCode(err, dasherrors.ErrDecode, fmt.Sprintf("Couldn't render the %s chart", n), "")
	}
	return err
}

// hexColor converts a dashboard color to a go-chart color.
func hexColor(c lipgloss.Color) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(string(c), "#"))
}

func renderBars(buf *bytes.Buffer, title, unit string, c *dashboard.Chart, w, h int) error {
	if c == nil || len(c.Values) == 0 {
		return fmt.Errorf("%s: %w", title, ErrNoData)
	}

	maxValue := c.Max
	for _, v := range c.Values {
		if v > maxValue {
			maxValue = v
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	bars := make([]chart.Value, len(c.Values))
	for i, v := range c.Values {
		color := hexColor(dashboard.ColorIndigo)
		if i < len(c.Colors) {
			color = hexColor(c.Colors[i])
		}
		bars[i] = chart.Value{
			Label: c.Labels[i],
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
	}

	slot := (w - 120) / len(bars)
	barWidth := slot * 2 / 3
	if barWidth < 2 {
		barWidth = 2
	}
	spacing := slot - barWidth
	if spacing < 1 {
		spacing = 1
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  unit,
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, buf)
}

func renderDonut(buf *bytes.Buffer, title string, c *dashboard.Chart, w, h int) error {
	if c == nil {
		return fmt.Errorf("%s: %w", title, ErrNoData)
	}

	var values []chart.Value
	for i, v := range c.Values {
		if v <= 0 {
			continue
		}
		color := hexColor(dashboard.PaletteColor(i))
		values = append(values, chart.Value{
			Label: c.Legend[i].Label,
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", title, ErrNoData)
	}

	size := w
	if h < size {
		size = h
	}
	dc := chart.DonutChart{
		Title:  title,
		Width:  size,
		Height: size,
		Values: values,
	}
	return dc.Render(chart.PNG, buf)
}

func renderLine(buf *bytes.Buffer, title string, c *dashboard.Chart, w, h int) error {
	if c == nil || len(c.Values) == 0 {
		return fmt.Errorf("%s: %w", title, ErrNoData)
	}

	xs := make([]float64, len(c.Values))
	ticks := make([]chart.Tick, len(c.Values))
	for i := range c.Values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: c.Labels[i]}
	}
	ys := c.Values
	// A single point has no x range; stretch it into a flat segment.
	if len(xs) == 1 {
		xs = []float64{0, 1}
		ys = []float64{ys[0], ys[0]}
		ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
	}

	color := hexColor(dashboard.ColorIndigo)
	if len(c.Colors) > 0 {
		color = hexColor(c.Colors[0])
	}

	ch := chart.Chart{
		Title:  title,
		Width:  w,
		Height: h,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{
			Name:  "%",
			Range: &chart.ContinuousRange{Min: c.Min, Max: c.Max},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0"},
				{Value: 25, Label: "25"},
				{Value: 50, Label: "50"},
				{Value: 75, Label: "75"},
				{Value: 100, Label: "100"},
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 3,
					DotColor:    color,
					DotWidth:    5,
				},
			},
		},
	}
	return ch.Render(chart.PNG, buf)
}
