package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/rileyhilliard/usagedash/internal/format"
	"github.com/rileyhilliard/usagedash/internal/locale"
	"github.com/rileyhilliard/usagedash/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultPollInterval  = time.Second
	DefaultClockInterval = time.Second
	DefaultTopApps       = 5
	DefaultAppsLimit     = 20
)

// Options configures a dashboard model.
type Options struct {
	Client        *api.Client
	Labels        locale.Labels
	Logger        logger.Logger
	Period        api.Period
	PollInterval  time.Duration
	ClockInterval time.Duration
	TopApps       int
	AppsLimit     int

	// Now overrides the wall clock, for tests.
	Now func() time.Time
}

// Model is the Bubble Tea model for the usage dashboard.
type Model struct {
	client *api.Client
	labels locale.Labels
	log    logger.Logger

	pollInterval  time.Duration
	clockInterval time.Duration
	topApps       int
	appsLimit     int
	now           func() time.Time

	// ctx parents every request and is cancelled on quit.
	ctx    context.Context
	cancel context.CancelFunc

	state   State
	history *History
	clock   time.Time

	boot tea.Cmd

	keys          keyMap
	help          help.Model
	viewport      viewport.Model
	viewportReady bool
	width         int
	height        int
	showHelp      bool
	quitting      bool
}

// NewModel creates a dashboard model. The overview load is registered
// here so Init can stay a pure function of the model.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Labels.Tag == "" {
		opts.Labels = locale.Get(locale.English)
	}
	if !opts.Period.Valid() {
		opts.Period = api.PeriodToday
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = DefaultClockInterval
	}
	if opts.TopApps <= 0 {
		opts.TopApps = DefaultTopApps
	}
	if opts.AppsLimit <= 0 {
		opts.AppsLimit = DefaultAppsLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		client:        opts.Client,
		labels:        opts.Labels,
		log:           opts.Logger,
		pollInterval:  opts.PollInterval,
		clockInterval: opts.ClockInterval,
		topApps:       opts.TopApps,
		appsLimit:     opts.AppsLimit,
		now:           opts.Now,
		ctx:           ctx,
		cancel:        cancel,
		history:       NewHistory(DefaultHistorySize),
		clock:         opts.Now(),
		keys:          defaultKeyMap(),
		help:          help.New(),
	}
	m.state.Tab = TabOverview
	m.state.Period = opts.Period
	m.boot = m.loadOverview()
	return m
}

// Init starts the clock and fires the startup checks: status, overview
// data and autostart.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.clockTickCmd(),
		m.checkStatusCmd(),
		m.boot,
		m.checkAutostartCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, keyCmd := m.HandleKeyMsg(msg)
		if handled {
			cmd = keyCmd
		} else if m.viewportReady {
			m.viewport, cmd = m.viewport.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case clockTickMsg:
		m.clock = time.Time(msg)
		cmd = m.clockTickCmd()

	case pollTickMsg:
		// Ticks from a torn-down loop die here instead of re-arming.
		if !m.state.livePoll(msg.epoch) {
			return m, nil
		}
		cmd = tea.Batch(m.pollStatusCmd(msg.epoch), m.pollTickCmd(msg.epoch))

	case statusMsg:
		cmd = m.applyStatus(msg)

	case monitorToggledMsg:
		cmd = m.settleMonitor(msg)

	case autostartMsg:
		if msg.err != nil {
			m.log.Warn("autostart check failed: %v", msg.err)
			break
		}
		m.state.Autostart.Set(msg.state.Enabled)
		m.state.AutostartKnown = true

	case autostartToggledMsg:
		m.settleAutostart(msg)

	case hourlyMsg:
		if m.fresh(TabOverview, msg.gen, msg.err, "hourly") {
			m.state.Charts.Hourly.Replace(HourlyChart(msg.buckets, m.labels))
		}

	case topAppsMsg:
		if m.fresh(TabOverview, msg.gen, msg.err, "top apps") {
			m.state.TopApps.Reset(AppRows(msg.apps))
		}

	case appsMsg:
		if m.fresh(TabApps, msg.gen, msg.err, "apps") {
			m.state.Apps.Reset(AppRows(msg.apps))
			m.state.Charts.Categories.Replace(CategoryChart(msg.categories))
		}

	case weekComparisonMsg:
		if m.fresh(TabStats, msg.gen, msg.err, "week comparison") {
			m.state.Charts.WeekComparison.Replace(WeekChart(msg.days, m.labels))
		}

	case trendMsg:
		if m.fresh(TabStats, msg.gen, msg.err, "trend") {
			m.state.Charts.Trend.Replace(TrendChart(msg.points))
		}

	case weekSummaryMsg:
		if m.fresh(TabStats, msg.gen, msg.err, "week summary") {
			summary := msg.summary
			m.state.Week = &summary
		}
	}

	m.refreshViewport()
	return m, cmd
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// State returns a copy of the dashboard state.
func (m Model) State() State {
	return m.state
}

// History returns the productivity samples collected from status polls.
func (m Model) History() []float64 {
	return m.history.Slice()
}

// fresh decides whether a tab response may be applied. Stale generations
// are dropped silently; errors are logged and leave the view untouched.
func (m *Model) fresh(t Tab, gen uint64, err error, what string) bool {
	if !m.state.current(t, gen) {
		m.log.Debug("dropping stale %s response (gen %d, now %d)", what, gen, m.state.Generation(t))
		return false
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			m.log.Warn("loading %s failed: %v", what, err)
		}
		return false
	}
	return true
}

// applyStatus installs a status snapshot. One-shot checks also record the
// running state and start polling when monitoring is on.
func (m *Model) applyStatus(msg statusMsg) tea.Cmd {
	if !msg.check && !m.state.livePoll(msg.epoch) {
		return nil
	}
	if msg.err != nil {
		m.log.Warn("status fetch failed: %v", msg.err)
		return nil
	}

	m.state.Status = msg.status
	m.state.HasStatus = true
	m.state.Monitor.Set(msg.status.Running)
	m.history.Push(float64(format.Productivity(msg.status.ActiveTime, msg.status.TotalTime)))

	if !msg.check {
		return nil
	}
	m.state.Running = msg.status.Running
	if m.state.Running {
		return m.StartPolling()
	}
	return nil
}

// StartPolling arms the status poll loop. Calling it while the loop is
// already running returns nil and changes nothing.
func (m *Model) StartPolling() tea.Cmd {
	epoch, started := m.state.StartPolling()
	if !started {
		return nil
	}
	m.log.Debug("status polling started (epoch %d)", epoch)
	return m.pollTickCmd(epoch)
}

// StopPolling tears down the status poll loop.
func (m *Model) StopPolling() {
	if m.state.Polling {
		m.log.Debug("status polling stopped (epoch %d)", m.state.PollEpoch())
	}
	m.state.StopPolling()
}

// ToggleMonitoring flips monitoring optimistically and posts start or stop.
func (m *Model) ToggleMonitoring() tea.Cmd {
	// Flip from the confirmed state, not from whatever the last poll showed.
	m.state.Monitor.Set(m.state.Running)
	want, ok := m.state.Monitor.Begin()
	if !ok {
		return nil
	}
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		var err error
		if want {
			err = client.Start(ctx)
		} else {
			err = client.Stop(ctx)
		}
		return monitorToggledMsg{want: want, err: err}
	}
}

// settleMonitor confirms or reverts the monitoring toggle. On success the
// poll loop follows the new state and status is re-checked right away so
// the tracker's value wins.
func (m *Model) settleMonitor(msg monitorToggledMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("monitoring toggle failed: %v", msg.err)
		m.state.Monitor.Revert()
		return nil
	}

	m.state.Monitor.Confirm()
	m.state.Running = msg.want

	var cmds []tea.Cmd
	if msg.want {
		cmds = append(cmds, m.StartPolling())
	} else {
		m.StopPolling()
	}
	cmds = append(cmds, m.checkStatusCmd())
	return tea.Batch(cmds...)
}

// ToggleAutostart flips autostart optimistically and posts enable or disable.
func (m *Model) ToggleAutostart() tea.Cmd {
	want, ok := m.state.Autostart.Begin()
	if !ok {
		return nil
	}
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		var (
			ack api.AutostartAck
			err error
		)
		if want {
			ack, err = client.EnableAutostart(ctx)
		} else {
			ack, err = client.DisableAutostart(ctx)
		}
		return autostartToggledMsg{want: want, ack: ack, err: err}
	}
}

// settleAutostart confirms the toggle only when the reply carries the
// matching confirmation field; anything else reverts it.
func (m *Model) settleAutostart(msg autostartToggledMsg) {
	switch {
	case msg.err != nil:
		m.log.Error("autostart toggle failed: %v", msg.err)
		m.state.Autostart.Revert()
	case msg.want && msg.ack.Enabled, !msg.want && msg.ack.Disabled:
		m.state.Autostart.Confirm()
		m.state.AutostartKnown = true
	default:
		m.log.Error("autostart toggle not confirmed by tracker (wanted enabled=%t)", msg.want)
		m.state.Autostart.Revert()
	}
}

// SwitchTab activates t. Leaving a lazy tab abandons its in-flight load;
// entering one always issues a fresh load.
func (m *Model) SwitchTab(t Tab) tea.Cmd {
	if t < 0 || t >= tabCount {
		return nil
	}
	if prev := m.state.Tab; prev != t && prev.lazy() {
		m.state.abandon(prev)
	}
	m.state.Tab = t
	if m.viewportReady {
		m.viewport.GotoTop()
	}

	switch t {
	case TabApps:
		return m.loadApps()
	case TabStats:
		return m.loadStats()
	}
	return nil
}

// CyclePeriod switches between today and all-time and reloads the apps tab
// when it is showing.
func (m *Model) CyclePeriod() tea.Cmd {
	m.state.Period = m.state.Period.Next()
	if m.state.Tab == TabApps {
		return m.loadApps()
	}
	return nil
}

// Reload re-checks status and reloads the current tab.
func (m *Model) Reload() tea.Cmd {
	var load tea.Cmd
	switch m.state.Tab {
	case TabOverview:
		load = m.loadOverview()
	case TabApps:
		load = m.loadApps()
	case TabStats:
		load = m.loadStats()
	}
	return tea.Batch(m.checkStatusCmd(), load)
}

func (m Model) clockTickCmd() tea.Cmd {
	return tea.Tick(m.clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m Model) pollTickCmd(epoch uint64) tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{epoch: epoch}
	})
}

// checkStatusCmd fetches status as a one-shot check.
func (m Model) checkStatusCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		s, err := client.Status(ctx)
		return statusMsg{status: s, err: err, check: true}
	}
}

// pollStatusCmd fetches status for the loop running under epoch.
func (m Model) pollStatusCmd(epoch uint64) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		s, err := client.Status(ctx)
		return statusMsg{status: s, err: err, epoch: epoch}
	}
}

func (m Model) checkAutostartCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		s, err := client.Autostart(ctx)
		return autostartMsg{state: s, err: err}
	}
}

// loadOverview fetches the hourly buckets and top apps independently.
func (m *Model) loadOverview() tea.Cmd {
	ctx, gen := m.state.beginLoad(m.ctx, TabOverview)
	client, limit := m.client, m.topApps
	return tea.Batch(
		func() tea.Msg {
			buckets, err := client.Hourly(ctx)
			return hourlyMsg{gen: gen, buckets: buckets, err: err}
		},
		func() tea.Msg {
			apps, err := client.Apps(ctx, "", limit)
			return topAppsMsg{gen: gen, apps: apps, err: err}
		},
	)
}

// loadApps fetches the apps list and categories together; either failing
// leaves both regions untouched.
func (m *Model) loadApps() tea.Cmd {
	ctx, gen := m.state.beginLoad(m.ctx, TabApps)
	client, period, limit := m.client, m.state.Period, m.appsLimit
	return func() tea.Msg {
		var (
			apps       []api.AppUsage
			categories []api.CategorySlice
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			apps, err = client.Apps(gctx, period, limit)
			return err
		})
		g.Go(func() error {
			var err error
			categories, err = client.Categories(gctx, period)
			return err
		})
		err := g.Wait()
		return appsMsg{gen: gen, period: period, apps: apps, categories: categories, err: err}
	}
}

// loadStats fetches the three stats regions independently.
func (m *Model) loadStats() tea.Cmd {
	ctx, gen := m.state.beginLoad(m.ctx, TabStats)
	client := m.client
	return tea.Batch(
		func() tea.Msg {
			days, err := client.WeekComparison(ctx)
			return weekComparisonMsg{gen: gen, days: days, err: err}
		},
		func() tea.Msg {
			points, err := client.Trend(ctx)
			return trendMsg{gen: gen, points: points, err: err}
		},
		func() tea.Msg {
			summary, err := client.WeekStats(ctx)
			return weekSummaryMsg{gen: gen, summary: summary, err: err}
		},
	)
}

// Close cancels every in-flight request. Call it after the program exits.
func (m Model) Close() {
	m.state.cancelAll()
	m.cancel()
}
