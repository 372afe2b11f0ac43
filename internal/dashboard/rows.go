package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/format"
)

// AppRow is the view-model for one line of an app list.
type AppRow struct {
	Rank     int
	Name     string
	Duration string
	Percent  string
	Category string
}

// AppRows converts API entries into numbered rows, preserving order.
func AppRows(entries []api.AppUsage) []AppRow {
	rows := make([]AppRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, AppRow{
			Rank:     i + 1,
			Name:     e.Name,
			Duration: e.DurationFmt,
			Percent:  format.Percent(e.Percent),
			Category: e.CategoryName,
		})
	}
	return rows
}

// AppList is a list region that is cleared and refilled as a whole.
type AppList struct {
	rows   []AppRow
	loaded bool
}

// Reset clears the list and appends rows in one step.
func (l *AppList) Reset(rows []AppRow) {
	l.rows = append(l.rows[:0:0], rows...)
	l.loaded = true
}

// Rows returns the current rows.
func (l AppList) Rows() []AppRow {
	return l.rows
}

// Loaded reports whether the list has been filled at least once.
func (l AppList) Loaded() bool {
	return l.loaded
}

var (
	rankStyle     = lipgloss.NewStyle().Foreground(ColorTextMuted)
	appNameStyle  = lipgloss.NewStyle().Foreground(ColorTextPrimary)
	durationStyle = lipgloss.NewStyle().Foreground(ColorIndigo).Bold(true)
	percentStyle  = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	categoryStyle = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
)

// Render draws the rows, or exactly the empty message when there are none.
func (l AppList) Render(empty string, width int) string {
	if len(l.rows) == 0 {
		return MutedStyle.Render(empty)
	}

	nameWidth := 0
	for _, r := range l.rows {
		if w := lipgloss.Width(r.Name); w > nameWidth {
			nameWidth = w
		}
	}
	maxName := width - 40
	if maxName < 8 {
		maxName = 8
	}
	if nameWidth > maxName {
		nameWidth = maxName
	}

	lines := make([]string, len(l.rows))
	for i, r := range l.rows {
		name := truncate(r.Name, nameWidth)
		name += strings.Repeat(" ", nameWidth-lipgloss.Width(name))

		line := rankStyle.Render(fmt.Sprintf("%2d.", r.Rank)) + " " +
			appNameStyle.Render(name) + "  " +
			durationStyle.Render(fmt.Sprintf("%-8s", r.Duration)) + " " +
			percentStyle.Render(fmt.Sprintf("%6s", r.Percent)) + "  " +
			categoryStyle.Render(r.Category)
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
