package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/format"
	"github.com/rileyhilliard/usagedash/internal/locale"
)

// ChartKind selects how a chart is drawn.
type ChartKind int

const (
	ChartBars ChartKind = iota
	ChartDonut
	ChartLine
)

// LegendEntry is one row of a chart legend.
type LegendEntry struct {
	Label string
	Color lipgloss.Color
}

// Chart is a drawable dataset bound to one chart slot. Once destroyed it
// renders nothing.
type Chart struct {
	Kind   ChartKind
	Labels []string
	Values []float64
	Colors []lipgloss.Color
	Legend []LegendEntry

	// Fixed value range. Max of zero means "scale to the data".
	Min, Max float64

	Unit string

	destroyed bool
}

// Destroy releases the chart. A destroyed chart renders as empty.
func (c *Chart) Destroy() {
	if c == nil {
		return
	}
	c.destroyed = true
	c.Values = nil
	c.Labels = nil
	c.Colors = nil
	c.Legend = nil
}

// Destroyed reports whether Destroy has been called.
func (c *Chart) Destroyed() bool {
	return c != nil && c.destroyed
}

// Render draws the chart into a width x height cell area.
func (c *Chart) Render(width, height int) string {
	if c == nil || c.destroyed || len(c.Values) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	switch c.Kind {
	case ChartDonut:
		canvas := NewCanvas(width, height)
		DrawDonut(canvas, c.Values)
		return canvas.Render()

	case ChartLine:
		canvas := NewCanvas(width, height)
		color := ColorIndigo
		if len(c.Colors) > 0 {
			color = c.Colors[0]
		}
		DrawLine(canvas, c.Values, c.Min, c.Max, color)
		out := canvas.Render()
		if len(c.Labels) > 0 {
			out += "\n" + spreadLabels(c.Labels[0], c.Labels[len(c.Labels)-1], width)
		}
		return out

	default:
		barWidth := (width+1)/len(c.Values) - 1
		if barWidth < 1 {
			barWidth = 1
		}
		maxValue := c.Max
		if maxValue == 0 {
			maxValue = maxOf(c.Values)
		}
		rows := height
		if len(c.Labels) > 0 && rows > 1 {
			rows--
		}
		out := RenderBars(c.Values, c.Colors, maxValue, barWidth, rows)
		if len(c.Labels) > 0 && height > 1 {
			out += "\n" + MutedStyle.Render(BarLabels(c.Labels, barWidth))
		}
		return out
	}
}

// RenderLegend renders one colored bullet per legend entry.
func (c *Chart) RenderLegend() string {
	if c == nil || c.destroyed || len(c.Legend) == 0 {
		return ""
	}
	lines := make([]string, len(c.Legend))
	for i, e := range c.Legend {
		lines[i] = lipgloss.NewStyle().Foreground(e.Color).Render("●") + " " + LabelStyle.Render(e.Label)
	}
	return strings.Join(lines, "\n")
}

// Slot holds at most one live chart. Installing a new chart always
// destroys the previous one first.
type Slot struct {
	chart *Chart
}

// Replace destroys the current chart, if any, and installs c.
// A nil c leaves the slot empty.
func (s *Slot) Replace(c *Chart) {
	if s.chart != nil {
		s.chart.Destroy()
	}
	s.chart = c
}

// Clear destroys the current chart and leaves the slot empty.
func (s *Slot) Clear() {
	s.Replace(nil)
}

// Chart returns the live chart, or nil.
func (s Slot) Chart() *Chart {
	return s.chart
}

// Charts has one named slot per chart area.
type Charts struct {
	Hourly         Slot
	Categories     Slot
	WeekComparison Slot
	Trend          Slot
}

// HourlyChart builds the hourly activity bars. Values are minute buckets
// and each bar is colored by its share of the busiest hour.
func HourlyChart(buckets []api.HourlyBucket, l locale.Labels) *Chart {
	values := make([]float64, len(buckets))
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		values[i] = float64(format.Minutes(b.Seconds))
		labels[i] = format.HourLabel(b.Hour)
	}

	maxValue := maxOf(values)
	if maxValue == 0 {
		maxValue = 1
	}
	colors := make([]lipgloss.Color, len(values))
	for i, v := range values {
		colors[i] = HourlyColor(v, maxValue)
	}

	return &Chart{
		Kind:   ChartBars,
		Labels: labels,
		Values: values,
		Colors: colors,
		Max:    maxValue,
		Unit:   l.UnitMinutes,
	}
}

// CategoryChart builds the category donut. Returns nil for an empty list,
// which leaves the slot empty after Replace.
func CategoryChart(categories []api.CategorySlice) *Chart {
	if len(categories) == 0 {
		return nil
	}
	c := &Chart{
		Kind:   ChartDonut,
		Labels: make([]string, len(categories)),
		Values: make([]float64, len(categories)),
		Colors: make([]lipgloss.Color, len(categories)),
		Legend: make([]LegendEntry, len(categories)),
	}
	for i, cat := range categories {
		c.Labels[i] = cat.Name
		c.Values[i] = float64(cat.Seconds)
		c.Colors[i] = PaletteColor(i)
		c.Legend[i] = LegendEntry{
			Label: fmt.Sprintf("%s: %s", cat.Name, cat.Formatted),
			Color: PaletteColor(i),
		}
	}
	return c
}

// WeekChart builds the average-hours-per-weekday bars in a single color.
func WeekChart(days []api.WeekdayAverage, l locale.Labels) *Chart {
	c := &Chart{
		Kind:   ChartBars,
		Labels: make([]string, len(days)),
		Values: make([]float64, len(days)),
		Colors: make([]lipgloss.Color, len(days)),
		Unit:   l.UnitHours,
	}
	for i, d := range days {
		c.Labels[i] = d.Day
		c.Values[i] = d.Hours
		c.Colors[i] = ColorIndigo
	}
	return c
}

// TrendChart builds the productivity line on a fixed 0-100 range.
func TrendChart(points []api.TrendPoint) *Chart {
	c := &Chart{
		Kind:   ChartLine,
		Labels: make([]string, len(points)),
		Values: make([]float64, len(points)),
		Colors: []lipgloss.Color{ColorIndigo},
		Min:    0,
		Max:    100,
		Unit:   "%",
	}
	for i, p := range points {
		c.Labels[i] = format.TrendLabel(p.Date)
		c.Values[i] = float64(p.Productivity)
	}
	return c
}

func maxOf(values []float64) float64 {
	var m float64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// spreadLabels puts first at the left edge and last at the right edge.
func spreadLabels(first, last string, width int) string {
	if first == last {
		return MutedStyle.Render(first)
	}
	gap := width - lipgloss.Width(first) - lipgloss.Width(last)
	if gap < 1 {
		return MutedStyle.Render(first)
	}
	return MutedStyle.Render(first + strings.Repeat(" ", gap) + last)
}
