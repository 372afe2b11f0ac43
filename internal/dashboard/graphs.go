package dashboard

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille rendering for the ring, donut and trend line.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// A terminal cell is roughly twice as tall as it is wide, so braille dots
// come out close to square and circles drawn in dot space stay round.

const brailleBase = '⠀'

// brailleDots maps [row][col] inside a cell to the pattern bit.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// blocks are the eighth-height characters used by the bar charts.
var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Canvas is a braille drawing surface. Each cell keeps the color of the
// last dot drawn into it.
type Canvas struct {
	width  int // cells
	height int // cells
	cells  [][]rune
	colors [][]lipgloss.Color
}

// NewCanvas returns a cleared canvas of width x height cells.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{width: width, height: height}
	c.Clear()
	return c
}

// Clear erases every dot.
func (c *Canvas) Clear() {
	c.cells = make([][]rune, c.height)
	c.colors = make([][]lipgloss.Color, c.height)
	for y := range c.cells {
		c.cells[y] = make([]rune, c.width)
		c.colors[y] = make([]lipgloss.Color, c.width)
		for x := range c.cells[y] {
			c.cells[y][x] = brailleBase
		}
	}
}

// DotWidth is the horizontal resolution in dots.
func (c *Canvas) DotWidth() int { return c.width * 2 }

// DotHeight is the vertical resolution in dots.
func (c *Canvas) DotHeight() int { return c.height * 4 }

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int, color lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return
	}
	col, row := x/2, y/4
	c.cells[row][col] |= rune(1 << brailleDots[y%4][x%2])
	c.colors[row][col] = color
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return false
	}
	return c.cells[y/4][x/2]&rune(1<<brailleDots[y%4][x%2]) != 0
}

// Line draws a straight line between two dots (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int, color lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Arc strokes a ring segment of the given thickness centred on (cx, cy).
// Angles are fractions of a full turn measured clockwise from 12 o'clock.
func (c *Canvas) Arc(cx, cy, radius, thickness float64, from, to float64, color lipgloss.Color) {
	if to <= from || radius <= 0 {
		return
	}
	if thickness < 1 {
		thickness = 1
	}
	for r := radius - thickness + 1; r <= radius; r += 0.5 {
		if r <= 0 {
			continue
		}
		// Step so neighbouring samples land at most half a dot apart.
		step := 1 / (2 * math.Pi * r * 2)
		for a := from; a < to; a += step {
			theta := a * 2 * math.Pi
			x := cx + r*math.Sin(theta)
			y := cy - r*math.Cos(theta)
			c.Set(int(math.Round(x)), int(math.Round(y)), color)
		}
	}
}

// Render converts the canvas to colored text rows.
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y := range c.cells {
		var b strings.Builder
		for x, ch := range c.cells[y] {
			if ch == brailleBase || c.colors[y][x] == "" {
				b.WriteRune(ch)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(c.colors[y][x]).Render(string(ch)))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// ringGeometry returns the centre, outer radius and stroke thickness for a
// ring that fills the canvas.
func ringGeometry(c *Canvas) (cx, cy, radius, thickness float64) {
	w, h := float64(c.DotWidth()), float64(c.DotHeight())
	cx, cy = (w-1)/2, (h-1)/2
	radius = math.Min(w, h)/2 - 1
	thickness = math.Max(2, math.Round(radius/4.5))
	return cx, cy, radius, thickness
}

// RenderRing draws the productivity ring: the canvas is cleared, a full
// background circle is stroked, then an arc from 12 o'clock clockwise
// proportional to percent in the ring color.
func RenderRing(percent, width, height int) string {
	c := NewCanvas(width, height)
	DrawRing(c, percent)
	return c.Render()
}

// DrawRing paints the productivity ring onto c.
func DrawRing(c *Canvas, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.Clear()
	cx, cy, r, t := ringGeometry(c)
	c.Arc(cx, cy, r, t, 0, 1, ColorBorder)
	c.Arc(cx, cy, r, t, 0, float64(percent)/100, RingColor(percent))
}

// DrawDonut paints one ring segment per value, colored by palette index.
// Zero and negative values take no space.
func DrawDonut(c *Canvas, values []float64) {
	c.Clear()
	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return
	}
	cx, cy, r, t := ringGeometry(c)
	pos := 0.0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		share := v / total
		c.Arc(cx, cy, r, t, pos, pos+share, PaletteColor(i))
		pos += share
	}
}

// RenderBars renders a vertical bar chart with eighth-block resolution.
// Each value gets barWidth columns plus one column of gap. Values are
// scaled against maxValue; a maxValue of zero behaves as one.
func RenderBars(values []float64, colors []lipgloss.Color, maxValue float64, barWidth, height int) string {
	if len(values) == 0 || height <= 0 {
		return ""
	}
	if barWidth < 1 {
		barWidth = 1
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	levels := height * 8
	rows := make([]strings.Builder, height)
	for i, v := range values {
		filled := int(math.Round(clamp(v/maxValue, 0, 1) * float64(levels)))
		if v > 0 && filled == 0 {
			filled = 1
		}
		style := lipgloss.NewStyle()
		if i < len(colors) && colors[i] != "" {
			style = style.Foreground(colors[i])
		}
		for row := 0; row < height; row++ {
			fromBottom := height - 1 - row
			level := clampInt(filled-fromBottom*8, 8)
			cell := strings.Repeat(string(blocks[level]), barWidth)
			if level > 0 {
				cell = style.Render(cell)
			}
			rows[row].WriteString(cell)
			if i < len(values)-1 {
				rows[row].WriteByte(' ')
			}
		}
	}

	lines := make([]string, height)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// BarLabels lays out one label per bar, truncated to the bar width. When
// labels don't fit, every step-th label is shown.
func BarLabels(labels []string, barWidth int) string {
	if len(labels) == 0 {
		return ""
	}
	slot := barWidth + 1
	step := 1
	for _, l := range labels {
		for lipgloss.Width(l)+1 > slot*step {
			step++
		}
	}

	var b strings.Builder
	for i := 0; i < len(labels); i += step {
		span := slot * step
		if i+step > len(labels) {
			span = slot*(len(labels)-i) - 1
		}
		l := truncate(labels[i], span)
		b.WriteString(l)
		if pad := span - lipgloss.Width(l); pad > 0 && i+step < len(labels) {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}

// DrawLine plots values as a connected line on c, scaled to [minVal, maxVal].
// Points are spread evenly across the full canvas width.
func DrawLine(c *Canvas, values []float64, minVal, maxVal float64, color lipgloss.Color) {
	c.Clear()
	if len(values) == 0 {
		return
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	w, h := c.DotWidth()-1, c.DotHeight()-1
	point := func(i int) (int, int) {
		x := 0
		if len(values) > 1 {
			x = int(math.Round(float64(i) * float64(w) / float64(len(values)-1)))
		}
		norm := clamp((values[i]-minVal)/(maxVal-minVal), 0, 1)
		y := h - int(math.Round(norm*float64(h)))
		return x, y
	}

	px, py := point(0)
	c.Set(px, py, color)
	for i := 1; i < len(values); i++ {
		x, y := point(i)
		c.Line(px, py, x, y, color)
		px, py = x, y
	}
}

// RenderSparkline renders a single-row sparkline on a fixed 0-100 scale.
func RenderSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	resampled := data
	if len(data) > width {
		resampled = resampleData(data, width)
	}

	var b strings.Builder
	for _, v := range resampled {
		idx := clampInt(int(clamp(v/100, 0, 1)*float64(len(blocks)-2))+1, len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// resampleData compresses data to targetSize buckets, keeping each bucket's
// peak so spikes survive.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) <= targetSize {
		return data
	}

	result := make([]float64, targetSize)
	bucketSize := float64(len(data)) / float64(targetSize)
	for i := 0; i < targetSize; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}
		peak := data[start]
		for j := start + 1; j < end; j++ {
			if data[j] > peak {
				peak = data[j]
			}
		}
		result[i] = peak
	}
	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampInt clamps an integer to [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// truncate shortens s to at most width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
