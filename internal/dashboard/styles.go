package dashboard

import "github.com/charmbracelet/lipgloss"

// Dashboard colors. The accent palette matches the tracker's web charts.
const (
	ColorDarkBg    = lipgloss.Color("#0f0f12")
	ColorSurfaceBg = lipgloss.Color("#18181d")
	ColorBorder    = lipgloss.Color("#2a2a32")

	ColorTextPrimary   = lipgloss.Color("#fafafa")
	ColorTextSecondary = lipgloss.Color("#a1a1aa")
	ColorTextMuted     = lipgloss.Color("#71717a")

	ColorIndigo = lipgloss.Color("#6366f1")
	ColorGreen  = lipgloss.Color("#22c55e")
	ColorYellow = lipgloss.Color("#eab308")
	ColorRed    = lipgloss.Color("#ef4444")

	// ColorNeutral is the hourly bar color for quiet hours.
	ColorNeutral = lipgloss.Color("#2a2a32")
)

// Palette assigns category colors by index, not identity.
var Palette = []lipgloss.Color{
	"#6366f1",
	"#22c55e",
	"#eab308",
	"#f97316",
	"#ef4444",
	"#a855f7",
	"#06b6d4",
	"#ec4899",
}

// PaletteColor returns the palette entry for index i, wrapping around.
func PaletteColor(i int) lipgloss.Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Productivity thresholds for the ring color.
const (
	RingGoodThreshold = 70
	RingFairThreshold = 40
)

// RingColor returns red below 40, yellow from 40 to 69 and green from 70.
func RingColor(percent int) lipgloss.Color {
	switch {
	case percent >= RingGoodThreshold:
		return ColorGreen
	case percent >= RingFairThreshold:
		return ColorYellow
	default:
		return ColorRed
	}
}

// Hourly intensity thresholds, as a fraction of the busiest visible hour.
const (
	HourlyHighFraction = 0.7
	HourlyMidFraction  = 0.3
)

// HourlyColor colors an hourly bar by its share of the visible maximum.
// A max of zero behaves as one.
func HourlyColor(value, maxValue float64) lipgloss.Color {
	if maxValue <= 0 {
		maxValue = 1
	}
	frac := value / maxValue
	switch {
	case frac > HourlyHighFraction:
		return ColorGreen
	case frac > HourlyMidFraction:
		return ColorIndigo
	default:
		return ColorNeutral
	}
}

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorIndigo).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true).
				MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorIndigo).
			Bold(true).
			Padding(0, 1)

	BadgeActiveStyle = lipgloss.NewStyle().
				Foreground(ColorDarkBg).
				Background(ColorGreen).
				Bold(true).
				Padding(0, 1)

	BadgeStoppedStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Background(ColorBorder).
				Padding(0, 1)

	ButtonStartStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	ButtonStopStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	StatusOnStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StatusOffStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)
)
