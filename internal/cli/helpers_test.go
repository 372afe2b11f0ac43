package cli

import (
	"os"
	"testing"

	"github.com/rileyhilliard/usagedash/internal/api"
	apitesting "github.com/rileyhilliard/usagedash/internal/api/testing"
	"github.com/rileyhilliard/usagedash/internal/config"
	"github.com/rileyhilliard/usagedash/internal/locale"
	"github.com/rileyhilliard/usagedash/internal/logger"
)

// newTestApp wires an app against a fresh fake tracker.
func newTestApp(t *testing.T) (*app, *apitesting.FakeServer, *logger.BufferLogger) {
	t.Helper()
	fake := apitesting.NewFakeServer()
	t.Cleanup(fake.Close)

	cfg := config.DefaultConfig()
	cfg.Server.URL = fake.URL()
	log := logger.NewBufferLogger()

	return &app{
		cfg:    cfg,
		labels: locale.Get(locale.English),
		log:    log,
		client: fake.Client(api.WithLogger(log)),
	}, fake, log
}

func seedUsage(f *apitesting.FakeServer) {
	f.Update(func(f *apitesting.FakeServer) {
		f.Status = api.Status{
			Running:       true,
			TotalTime:     7200,
			ActiveTime:    5400,
			IdleTime:      1800,
			CurrentApp:    "Code",
			AppsCount:     3,
			TotalTimeFmt:  "2h 0m",
			ActiveTimeFmt: "1h 30m",
			IdleTimeFmt:   "30m",
		}
		f.Apps[api.PeriodToday] = []api.AppUsage{
			{Name: "Code", CategoryName: "Development", Duration: 3600, DurationFmt: "1h 0m", Percent: 66.7},
			{Name: "Firefox", CategoryName: "Browsing", Duration: 1800, DurationFmt: "30m", Percent: 33.3},
		}
		f.Categories[api.PeriodToday] = []api.CategorySlice{
			{ID: "dev", Name: "Development", Seconds: 3600, Formatted: "1h 0m"},
			{ID: "web", Name: "Browsing", Seconds: 1800, Formatted: "30m"},
		}
		f.WeekComparison = []api.WeekdayAverage{{Day: "Mon", Hours: 3}, {Day: "Tue", Hours: 5.5}}
		f.Trend = []api.TrendPoint{{Date: "2026-03-12", Productivity: 70}, {Date: "2026-03-13", Productivity: 80}}
		f.Today = api.TodaySummary{Date: "2026-03-14", TotalSeconds: 6000, ActiveSeconds: 4920, IdleSeconds: 1080, AppsUsed: 3, Productivity: 82}
		f.Week = api.WeekSummary{Period: "2026-03-08 - 2026-03-14", TotalSeconds: 36000, ActiveSeconds: 30000, AvgDaily: 5142, DaysCount: 7}
	})
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
