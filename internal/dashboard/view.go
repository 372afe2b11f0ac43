package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/format"
	"github.com/rileyhilliard/usagedash/internal/locale"
)

// Layout constants.
const (
	defaultWidth  = 100
	headerHeight  = 2
	footerHeight  = 2
	ringWidth     = 12 // cells
	ringHeight    = 6  // cells
	donutWidth    = 16
	donutHeight   = 8
	chartHeight   = 8
	statCardWidth = 18
)

// resize adopts a new terminal size and resizes the body viewport.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	vh := height - headerHeight - footerHeight
	if vh < 1 {
		vh = 1
	}
	if !m.viewportReady {
		m.viewport = viewport.New(width, vh)
		m.viewportReady = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vh
	}
}

// refreshViewport re-renders the body into the viewport so scrolling
// knows the current content height.
func (m *Model) refreshViewport() {
	if !m.viewportReady {
		return
	}
	m.viewport.SetContent(m.renderBody())
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.viewportReady {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderBody())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader draws the title, tab bar, status badge and clock.
func (m Model) renderHeader() string {
	l := m.labels
	title := TitleStyle.Render("usagedash")

	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, m.tabLabel(t))
		if t == m.state.Tab {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}

	badge := BadgeStoppedStyle.Render(l.Stopped)
	if m.state.Status.Running {
		badge = BadgeActiveStyle.Render(l.Active)
	}

	left := title + "  " + strings.Join(tabs, "")
	right := badge + "  " + ValueStyle.Render(format.Clock(m.clock))

	gap := m.contentWidth() - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return HeaderStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) tabLabel(t Tab) string {
	switch t {
	case TabApps:
		return m.labels.TabApps
	case TabStats:
		return m.labels.TabStats
	default:
		return m.labels.TabOverview
	}
}

// renderFooter draws the two toggles and the key hints.
func (m Model) renderFooter() string {
	l := m.labels

	btnStyle := ButtonStartStyle
	if m.state.Monitor.On && !m.state.Monitor.Pending {
		btnStyle = ButtonStopStyle
	}
	monitor := m.state.Monitor
	btnLabel := monitor.Label(l.Stop, l.Start, l.AutostartSaving, l.Error)
	if monitor.Failed {
		btnStyle = ErrorStyle
	}

	auto := m.state.Autostart
	autoLabel := auto.Label(l.AutostartOn, l.AutostartOff, l.AutostartSaving, l.Error)
	if !m.state.AutostartKnown && !auto.Pending && !auto.Failed {
		autoLabel = "…"
	}
	autoStyle := StatusOffStyle
	switch {
	case auto.Failed:
		autoStyle = ErrorStyle
	case auto.On && !auto.Pending:
		autoStyle = StatusOnStyle
	}

	check := "[ ]"
	if auto.On {
		check = "[x]"
	}

	controls := btnStyle.Render(btnLabel) + MutedStyle.Render(" (space)") + "   " +
		LabelStyle.Render(l.Autostart+" "+check+" ") + autoStyle.Render(autoLabel) + MutedStyle.Render(" (a)")

	return FooterStyle.Render(controls) + "\n" + FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderBody draws the active tab.
func (m Model) renderBody() string {
	switch m.state.Tab {
	case TabApps:
		return m.renderApps()
	case TabStats:
		return m.renderStats()
	default:
		return m.renderOverview()
	}
}

// StatusView holds the display strings derived from a status snapshot.
type StatusView struct {
	TotalTime    string
	ActiveTime   string
	IdleTime     string
	AppsCount    string
	CurrentApp   string
	Productivity int
}

// NewStatusView derives the overview's display strings from the last
// status snapshot.
func (m Model) NewStatusView() StatusView {
	return StatusViewOf(m.state.Status, m.labels)
}

// StatusViewOf derives display strings from a status snapshot. Missing
// formatted durations fall back to zero seconds, an empty app shows a dash
// and the idle suffix is added while the user is idle.
func StatusViewOf(s api.Status, l locale.Labels) StatusView {
	zero := "0" + l.Seconds
	orZero := func(v string) string {
		if v == "" {
			return zero
		}
		return v
	}

	app := s.CurrentApp
	if app == "" {
		app = "—"
	}
	if s.IsIdle {
		app = fmt.Sprintf("%s (%s)", app, l.Idle)
	}

	return StatusView{
		TotalTime:    orZero(s.TotalTimeFmt),
		ActiveTime:   orZero(s.ActiveTimeFmt),
		IdleTime:     orZero(s.IdleTimeFmt),
		AppsCount:    fmt.Sprintf("%d", s.AppsCount),
		CurrentApp:   app,
		Productivity: format.Productivity(s.ActiveTime, s.TotalTime),
	}
}

func statCard(label, value string, width int) string {
	return CardStyle.Width(width).Render(LabelStyle.Render(label) + "\n" + ValueStyle.Render(truncate(value, width-2)))
}

func section(title, body string) string {
	return SectionTitleStyle.Render(title) + "\n" + body
}

// renderOverview draws the stat cards, ring, hourly chart and top apps.
func (m Model) renderOverview() string {
	l := m.labels
	sv := m.NewStatusView()
	width := m.contentWidth()

	cardWidth := statCardWidth
	if per := width/5 - 3; per < cardWidth {
		cardWidth = per
		if cardWidth < 10 {
			cardWidth = 10
		}
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(l.TotalTime, sv.TotalTime, cardWidth),
		statCard(l.ActiveTime, sv.ActiveTime, cardWidth),
		statCard(l.IdleTime, sv.IdleTime, cardWidth),
		statCard(l.AppsCount, sv.AppsCount, cardWidth),
		statCard(l.CurrentApp, sv.CurrentApp, cardWidth),
	)

	value := lipgloss.NewStyle().Foreground(RingColor(sv.Productivity)).Bold(true).
		Render(fmt.Sprintf("%d%%", sv.Productivity))
	ring := lipgloss.JoinVertical(lipgloss.Center,
		RenderRing(sv.Productivity, ringWidth, ringHeight),
		value,
		RenderSparkline(m.history.Slice(), ringWidth, ColorTextMuted),
	)
	ringPanel := CardStyle.Render(section(l.Productivity, ring))

	hourlyWidth := width - lipgloss.Width(ringPanel) - 6
	if hourlyWidth < 24 {
		hourlyWidth = 24
	}
	hourly := m.state.Charts.Hourly.Chart().Render(hourlyWidth, chartHeight)
	if hourly == "" {
		hourly = MutedStyle.Render(l.NoData)
	}
	hourlyPanel := CardStyle.Render(section(fmt.Sprintf("%s (%s)", l.HourlyActivity, l.UnitMinutes), hourly))

	top := m.renderList(m.state.TopApps, l.NoData, width-4)
	topPanel := CardStyle.Render(section(l.TopApps, top))

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		lipgloss.JoinHorizontal(lipgloss.Top, ringPanel, hourlyPanel),
		topPanel,
	)
}

func (m Model) renderList(list AppList, empty string, width int) string {
	if !list.Loaded() {
		return MutedStyle.Render("…")
	}
	return list.Render(empty, width)
}

// renderApps draws the period selector, the full app list and the
// category donut with its legend.
func (m Model) renderApps() string {
	l := m.labels
	width := m.contentWidth()

	period := func(label string, on bool) string {
		if on {
			return ValueStyle.Render("● " + label)
		}
		return MutedStyle.Render("○ " + label)
	}
	selector := LabelStyle.Render(l.SummaryPeriod+": ") +
		period(l.PeriodToday, m.state.Period == api.PeriodToday) + "  " +
		period(l.PeriodAll, m.state.Period == api.PeriodAll) +
		MutedStyle.Render("  (p)")

	catChart := m.state.Charts.Categories.Chart()
	var cats string
	if donut := catChart.Render(donutWidth, donutHeight); donut != "" {
		cats = donut + "\n\n" + catChart.RenderLegend()
	} else {
		cats = MutedStyle.Render(l.NoData)
	}
	catPanel := CardStyle.Render(section(l.Categories, cats))

	listWidth := width - lipgloss.Width(catPanel) - 6
	list := m.renderList(m.state.Apps, l.NoDataPeriod, listWidth)
	listPanel := CardStyle.Render(section(l.AllApps, list))

	return lipgloss.JoinVertical(lipgloss.Left,
		selector,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, listPanel, catPanel),
	)
}

// renderStats draws the weekday bars, trend line and week summary.
func (m Model) renderStats() string {
	l := m.labels
	width := m.contentWidth()
	half := width/2 - 6
	if half < 24 {
		half = 24
	}

	chartOrEmpty := func(s Slot) string {
		if out := s.Chart().Render(half, chartHeight); out != "" {
			return out
		}
		return MutedStyle.Render(l.NoData)
	}

	week := CardStyle.Render(section(fmt.Sprintf("%s (%s)", l.WeekComparison, l.UnitHours), chartOrEmpty(m.state.Charts.WeekComparison)))
	trend := CardStyle.Render(section(l.Trend+" (%)", chartOrEmpty(m.state.Charts.Trend)))
	summary := CardStyle.Render(section(l.WeekSummary, m.renderWeekSummary()))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, week, trend),
		summary,
	)
}

// WeekSummaryRows returns the label/value pairs of the week summary panel,
// or nil before the summary has loaded.
func (m Model) WeekSummaryRows() [][2]string {
	if m.state.Week == nil {
		return nil
	}
	return WeekSummaryPairs(*m.state.Week, m.labels)
}

// WeekSummaryPairs formats a week summary as label/value pairs.
func WeekSummaryPairs(w api.WeekSummary, l locale.Labels) [][2]string {
	return [][2]string{
		{l.SummaryPeriod, w.Period},
		{l.SummaryTotal, format.Duration(w.TotalSeconds, l)},
		{l.SummaryActive, format.Duration(w.ActiveSeconds, l)},
		{l.SummaryAvgDaily, format.Duration(w.AvgDaily, l)},
		{l.SummaryDays, fmt.Sprintf("%d", w.DaysCount)},
	}
}

func (m Model) renderWeekSummary() string {
	rows := m.WeekSummaryRows()
	if rows == nil {
		return MutedStyle.Render("…")
	}
	labelWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(r[0]); w > labelWidth {
			labelWidth = w
		}
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = LabelStyle.Render(r[0]+strings.Repeat(" ", labelWidth-lipgloss.Width(r[0]))) + "  " + ValueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}
