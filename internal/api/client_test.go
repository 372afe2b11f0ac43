package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rileyhilliard/usagedash/internal/api"
	apitesting "github.com/rileyhilliard/usagedash/internal/api/testing"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Status(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()

	fake.Status = api.Status{
		Running:      true,
		TotalTime:    3700,
		ActiveTime:   3000,
		IdleTime:     700,
		CurrentApp:   "Code",
		AppsCount:    4,
		TotalTimeFmt: "1h 1m",
	}

	st, err := fake.Client().Status(context.Background())
	require.NoError(t, err)

	assert.True(t, st.Running)
	assert.Equal(t, int64(3700), st.TotalTime)
	assert.Equal(t, int64(3000), st.ActiveTime)
	assert.Equal(t, "Code", st.CurrentApp)
	assert.Equal(t, 4, st.AppsCount)
	assert.Equal(t, "1h 1m", st.TotalTimeFmt)
}

func TestClient_StartStop(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()
	c := fake.Client()

	require.NoError(t, c.Start(context.Background()))
	assert.True(t, fake.Running())

	require.NoError(t, c.Stop(context.Background()))
	assert.False(t, fake.Running())

	assert.Equal(t, 1, fake.Count(http.MethodPost, api.PathStart))
	assert.Equal(t, 1, fake.Count(http.MethodPost, api.PathStop))
}

func TestClient_StartStopIgnoresBody(t *testing.T) {
	tests := []struct {
		name  string
		reply func(w http.ResponseWriter)
	}{
		{"no content", func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) }},
		{"empty 200", func(w http.ResponseWriter) { w.WriteHeader(http.StatusOK) }},
		{"plain text", func(w http.ResponseWriter) { _, _ = w.Write([]byte("ok")) }},
		{"broken json", func(w http.ResponseWriter) { _, _ = w.Write([]byte(`{"status": `)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.reply(w)
			}))
			defer srv.Close()

			c := api.NewClient(srv.URL)
			assert.NoError(t, c.Start(context.Background()))
			assert.NoError(t, c.Stop(context.Background()))
		})
	}
}

func TestClient_StartNon2xxFails(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()
	fake.FailStatus[api.PathStart] = http.StatusInternalServerError

	err := fake.Client().Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
	assert.False(t, fake.Running())
}

func TestClient_AppsQuery(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()

	fake.Apps[api.PeriodAll] = []api.AppUsage{
		{Name: "Code", DurationFmt: "2h 0m", Percent: 60, CategoryName: "Work"},
		{Name: "Firefox", DurationFmt: "1h 0m", Percent: 30, CategoryName: "Browsers"},
		{Name: "Telegram", DurationFmt: "20m", Percent: 10, CategoryName: "Communication"},
	}

	apps, err := fake.Client().Apps(context.Background(), api.PeriodAll, 2)
	require.NoError(t, err)

	require.Len(t, apps, 2)
	assert.Equal(t, "Code", apps[0].Name)

	q := fake.LastQuery(api.PathApps)
	assert.Equal(t, "all", q.Get("period"))
	assert.Equal(t, "2", q.Get("limit"))
}

func TestClient_AppsOmitsEmptyParams(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()

	apps, err := fake.Client().Apps(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, apps)

	q := fake.LastQuery(api.PathApps)
	assert.False(t, q.Has("period"))
	assert.False(t, q.Has("limit"))
}

func TestClient_Collections(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()

	fake.Hourly = []api.HourlyBucket{{Hour: 9, Seconds: 1800}}
	fake.Categories[api.PeriodToday] = []api.CategorySlice{{Name: "Work", Seconds: 3600, Formatted: "1h 0m"}}
	fake.WeekComparison = []api.WeekdayAverage{{Day: "Mon", Hours: 4.5}}
	fake.Trend = []api.TrendPoint{{Date: "2026-10-18", Productivity: 72}}
	fake.Week = api.WeekSummary{Period: "12.10 - 18.10.2026", TotalSeconds: 7200, ActiveSeconds: 3600, AvgDaily: 514, DaysCount: 2}
	fake.Today = api.TodaySummary{Date: "2026-10-18", Productivity: 80}

	c := fake.Client()
	ctx := context.Background()

	hourly, err := c.Hourly(ctx)
	require.NoError(t, err)
	assert.Equal(t, []api.HourlyBucket{{Hour: 9, Seconds: 1800}}, hourly)

	cats, err := c.Categories(ctx, api.PeriodToday)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(3600), cats[0].Seconds)

	week, err := c.WeekComparison(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.5, week[0].Hours)

	trend, err := c.Trend(ctx)
	require.NoError(t, err)
	assert.Equal(t, 72, trend[0].Productivity)

	summary, err := c.WeekStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.DaysCount)
	assert.Equal(t, int64(514), summary.AvgDaily)

	today, err := c.TodayStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80, today.Productivity)
}

func TestClient_Autostart(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()
	c := fake.Client()
	ctx := context.Background()

	st, err := c.Autostart(ctx)
	require.NoError(t, err)
	assert.False(t, st.Enabled)

	ack, err := c.EnableAutostart(ctx)
	require.NoError(t, err)
	assert.True(t, ack.Enabled)
	assert.False(t, ack.Disabled)

	ack, err = c.DisableAutostart(ctx)
	require.NoError(t, err)
	assert.True(t, ack.Disabled)

	fake.Update(func(f *apitesting.FakeServer) { f.RefuseAutostart = true })
	ack, err = c.EnableAutostart(ctx)
	require.NoError(t, err)
	assert.False(t, ack.Enabled)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *apitesting.FakeServer)
		code  string
	}{
		{
			name:  "http error status",
			setup: func(f *apitesting.FakeServer) { f.FailStatus[api.PathStatus] = http.StatusInternalServerError },
			code:  errors.ErrAPI,
		},
		{
			name:  "malformed json",
			setup: func(f *apitesting.FakeServer) { f.Malformed[api.PathStatus] = true },
			code:  errors.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := apitesting.NewFakeServer()
			defer fake.Close()
			tt.setup(fake)

			_, err := fake.Client().Status(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "want code %s, got %v", tt.code, err)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	fake := apitesting.NewFakeServer()
	url := fake.URL()
	fake.Close()

	_, err := api.NewClient(url).Status(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
	assert.Contains(t, err.Error(), "Is the tracker running")
}

func TestClient_ContextCancel(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()
	fake.Delay[api.PathTrend] = 2 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := fake.Client().Trend(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Timeout(t *testing.T) {
	fake := apitesting.NewFakeServer()
	defer fake.Close()
	fake.Delay[api.PathHourly] = time.Second

	_, err := fake.Client(api.WithTimeout(50 * time.Millisecond)).Hourly(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
}

func TestClient_RequestID(t *testing.T) {
	ids := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(api.RequestIDHeader)
		_, _ = w.Write([]byte(`{"enabled": true}`))
	}))
	defer srv.Close()

	buf := logger.NewBufferLogger()
	c := api.NewClient(srv.URL+"/", api.WithLogger(buf))
	assert.Equal(t, srv.URL, c.BaseURL(), "trailing slash is trimmed")

	st, err := c.Autostart(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Enabled)

	got := <-ids
	assert.Len(t, got, 36, "request id should be a uuid")
	require.True(t, buf.HasLevel("debug"))
	assert.Contains(t, buf.Snapshot()[0].Message, got)
}

func TestPeriod(t *testing.T) {
	assert.Equal(t, api.PeriodAll, api.PeriodToday.Next())
	assert.Equal(t, api.PeriodToday, api.PeriodAll.Next())
	assert.Equal(t, api.PeriodToday, api.Period("week").Next())

	assert.True(t, api.PeriodToday.Valid())
	assert.True(t, api.PeriodAll.Valid())
	assert.False(t, api.Period("week").Valid())
}
