package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingColor(t *testing.T) {
	for p := 0; p <= 100; p++ {
		got := RingColor(p)
		switch {
		case p < 40:
			assert.Equal(t, ColorRed, got, "percent %d", p)
		case p < 70:
			assert.Equal(t, ColorYellow, got, "percent %d", p)
		default:
			assert.Equal(t, ColorGreen, got, "percent %d", p)
		}
	}
}

func TestHourlyColor(t *testing.T) {
	tests := []struct {
		value, max float64
		want       lipgloss.Color
	}{
		{71, 100, ColorGreen},
		{70, 100, ColorIndigo},
		{31, 100, ColorIndigo},
		{30, 100, ColorNeutral},
		{0, 0, ColorNeutral},
		{1, 0, ColorGreen},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HourlyColor(tt.value, tt.max), "%v of %v", tt.value, tt.max)
	}
}

func TestPaletteColor_Wraps(t *testing.T) {
	assert.Equal(t, Palette[0], PaletteColor(0))
	assert.Equal(t, Palette[0], PaletteColor(len(Palette)))
	assert.Equal(t, Palette[3], PaletteColor(len(Palette)+3))
}

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	assert.Equal(t, 4, c.DotWidth())
	assert.Equal(t, 4, c.DotHeight())

	c.Set(0, 0, ColorGreen)
	c.Set(3, 3, ColorGreen)
	c.Set(-1, 0, ColorGreen)
	c.Set(4, 0, ColorGreen)

	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(3, 3))
	assert.False(t, c.IsSet(1, 0))
	assert.Equal(t, '⠁', c.cells[0][0])
	assert.Equal(t, '⢀', c.cells[0][1])

	c.Clear()
	assert.False(t, c.IsSet(0, 0))
	assert.Equal(t, "⠀⠀", c.Render())
}

func TestCanvas_Line(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Line(0, 0, 7, 0, ColorIndigo)
	for x := 0; x < 8; x++ {
		assert.True(t, c.IsSet(x, 0), "dot %d", x)
		assert.False(t, c.IsSet(x, 1))
	}

	c.Clear()
	c.Line(0, 3, 3, 0, ColorIndigo)
	for i := 0; i < 4; i++ {
		assert.True(t, c.IsSet(i, 3-i))
	}
}

func countDots(c *Canvas) int {
	n := 0
	for y := 0; y < c.DotHeight(); y++ {
		for x := 0; x < c.DotWidth(); x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func arcDots(c *Canvas, color lipgloss.Color) int {
	n := 0
	for y := range c.colors {
		for x := range c.colors[y] {
			if c.colors[y][x] == color {
				n++
			}
		}
	}
	return n
}

func TestDrawRing(t *testing.T) {
	c := NewCanvas(ringWidth, ringHeight)

	DrawRing(c, 0)
	background := countDots(c)
	assert.Greater(t, background, 0, "background circle is always stroked")
	assert.Zero(t, arcDots(c, ColorRed), "0% draws no arc")

	DrawRing(c, 100)
	assert.Equal(t, background, countDots(c), "arc stays on the background circle")
	assert.Zero(t, arcDots(c, ColorBorder), "100% covers the whole ring")

	DrawRing(c, 50)
	quarter := arcDots(c, ColorYellow)
	assert.Greater(t, quarter, 0)
	assert.Greater(t, arcDots(c, ColorBorder), 0)

	// The arc starts at 12 o'clock and runs clockwise: at 25% the
	// top-right cell is lit and the top-left one is not.
	DrawRing(c, 25)
	top := c.colors[0]
	assert.Equal(t, ColorRed, top[ringWidth/2], "arc starts at the top")
	assert.NotEqual(t, ColorRed, top[ringWidth/2-2], "arc runs clockwise")
}

func TestDrawDonut(t *testing.T) {
	c := NewCanvas(donutWidth, donutHeight)

	DrawDonut(c, nil)
	assert.Zero(t, countDots(c))

	DrawDonut(c, []float64{3600})
	assert.Greater(t, arcDots(c, Palette[0]), 0)
	assert.Zero(t, arcDots(c, Palette[1]))

	DrawDonut(c, []float64{1, 0, 1})
	assert.Greater(t, arcDots(c, Palette[0]), 0)
	assert.Zero(t, arcDots(c, Palette[1]), "zero slices take no space")
	assert.Greater(t, arcDots(c, Palette[2]), 0)
}

func TestRenderBars(t *testing.T) {
	out := RenderBars([]float64{0, 5, 10}, nil, 10, 1, 2)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	bottom := []rune(lines[1])
	top := []rune(lines[0])
	assert.Equal(t, ' ', bottom[0], "zero value draws nothing")
	assert.Equal(t, '█', bottom[2], "half height fills the bottom row")
	assert.Equal(t, ' ', top[2])
	assert.Equal(t, '█', top[4], "max value fills every row")
}

func TestRenderBars_ZeroMaxBehavesAsOne(t *testing.T) {
	out := RenderBars([]float64{0, 0}, nil, 0, 1, 1)
	assert.Equal(t, "   ", out)
}

func TestRenderBars_SmallValueVisible(t *testing.T) {
	out := RenderBars([]float64{1}, nil, 1000, 1, 1)
	assert.Equal(t, "▁", out)
}

func TestBarLabels(t *testing.T) {
	assert.Equal(t, "00 01 02", BarLabels([]string{"00", "01", "02"}, 2))
	// One-column bars can't fit two-digit labels, so every other is shown.
	got := BarLabels([]string{"00", "01", "02", "03"}, 1)
	assert.True(t, strings.HasPrefix(got, "00"))
	assert.Contains(t, got, "02")
	assert.NotContains(t, got, "01")
}

func TestDrawLine_FixedRange(t *testing.T) {
	c := NewCanvas(2, 1)
	DrawLine(c, []float64{0, 100}, 0, 100, ColorIndigo)
	assert.True(t, c.IsSet(0, 3), "0 sits on the bottom row")
	assert.True(t, c.IsSet(3, 0), "100 sits on the top row")
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "", RenderSparkline(nil, 10, ColorIndigo))
	assert.Equal(t, "▁█", RenderSparkline([]float64{0, 100}, 10, ColorIndigo))
	assert.Equal(t, 5, lipgloss.Width(RenderSparkline(make([]float64, 50), 5, ColorIndigo)))
}

func TestResampleData_KeepsPeaks(t *testing.T) {
	got := resampleData([]float64{1, 9, 2, 3, 8, 1}, 3)
	assert.Equal(t, []float64{9, 3, 8}, got)
	assert.Equal(t, []float64{1, 2}, resampleData([]float64{1, 2}, 5))
	assert.Nil(t, resampleData(nil, 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Code", truncate("Code", 10))
	assert.Equal(t, "Visu…", truncate("Visual Studio", 5))
	assert.Equal(t, "", truncate("Code", 0))
}
