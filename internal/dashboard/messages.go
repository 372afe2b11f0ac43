package dashboard

import (
	"time"

	"github.com/rileyhilliard/usagedash/internal/api"
)

// clockTickMsg fires every clock interval for the header clock.
type clockTickMsg time.Time

// pollTickMsg fires every poll interval while the loop armed under epoch
// is alive.
type pollTickMsg struct {
	epoch uint64
}

// statusMsg carries a GET /api/status result. check marks the one-shot
// status checks (startup, after a toggle, manual reload), which may start
// the poll loop; poll results carry the epoch they were fetched under.
type statusMsg struct {
	status api.Status
	err    error
	check  bool
	epoch  uint64
}

// monitorToggledMsg settles a start/stop request.
type monitorToggledMsg struct {
	want bool
	err  error
}

// autostartMsg carries the initial GET /api/autostart result.
type autostartMsg struct {
	state api.AutostartState
	err   error
}

// autostartToggledMsg settles an enable/disable request.
type autostartToggledMsg struct {
	want bool
	ack  api.AutostartAck
	err  error
}

// hourlyMsg carries the overview's hourly buckets.
type hourlyMsg struct {
	gen     uint64
	buckets []api.HourlyBucket
	err     error
}

// topAppsMsg carries the overview's top apps.
type topAppsMsg struct {
	gen  uint64
	apps []api.AppUsage
	err  error
}

// appsMsg carries the apps tab's list and categories, fetched together.
type appsMsg struct {
	gen        uint64
	period     api.Period
	apps       []api.AppUsage
	categories []api.CategorySlice
	err        error
}

// weekComparisonMsg carries the stats tab's weekday averages.
type weekComparisonMsg struct {
	gen  uint64
	days []api.WeekdayAverage
	err  error
}

// trendMsg carries the stats tab's productivity trend.
type trendMsg struct {
	gen    uint64
	points []api.TrendPoint
	err    error
}

// weekSummaryMsg carries the stats tab's week summary.
type weekSummaryMsg struct {
	gen     uint64
	summary api.WeekSummary
	err     error
}
