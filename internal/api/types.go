package api

// Period is a reporting window passed to the usage endpoints.
// The tracker treats anything other than "today" as all-time.
type Period string

const (
	PeriodToday Period = "today"
	PeriodAll   Period = "all"
)

// Next cycles between the two periods.
func (p Period) Next() Period {
	if p == PeriodToday {
		return PeriodAll
	}
	return PeriodToday
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	return p == PeriodToday || p == PeriodAll
}

// Status is the live session snapshot from GET /api/status.
// Each poll replaces the previous snapshot wholesale.
type Status struct {
	Running    bool   `json:"running"`
	SessionID  *int64 `json:"session_id,omitempty"`
	TotalTime  int64  `json:"total_time"`
	ActiveTime int64  `json:"active_time"`
	IdleTime   int64  `json:"idle_time"`
	CurrentApp string `json:"current_app"`
	IsIdle     bool   `json:"is_idle"`
	AppsCount  int    `json:"apps_count"`

	TotalTimeFmt  string `json:"total_time_fmt"`
	ActiveTimeFmt string `json:"active_time_fmt"`
	IdleTimeFmt   string `json:"idle_time_fmt"`
}

// HourlyBucket is one hour of today's active time.
type HourlyBucket struct {
	Hour    int   `json:"hour"`
	Seconds int64 `json:"seconds"`
}

// AppUsage is one row of GET /api/apps, ordered by descending usage.
type AppUsage struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CategoryName string  `json:"category_name"`
	Duration     int64   `json:"duration"`
	DurationFmt  string  `json:"duration_fmt"`
	Percent      float64 `json:"percent"`
}

// CategorySlice is one category's share from GET /api/categories.
type CategorySlice struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seconds   int64  `json:"seconds"`
	Formatted string `json:"formatted"`
}

// WeekdayAverage is the average active time for one weekday.
type WeekdayAverage struct {
	Day     string  `json:"day"`
	Seconds int64   `json:"seconds"`
	Hours   float64 `json:"hours"`
}

// TrendPoint is one day's productivity percentage (0-100).
type TrendPoint struct {
	Date         string  `json:"date"`
	Productivity int     `json:"productivity"`
	ActiveHours  float64 `json:"active_hours"`
}

// DailyStats is one row of the week summary's daily breakdown.
type DailyStats struct {
	Date          string `json:"date_str"`
	TotalSeconds  int64  `json:"total_seconds"`
	ActiveSeconds int64  `json:"active_seconds"`
	IdleSeconds   int64  `json:"idle_seconds"`
	AppsUsed      int    `json:"apps_used"`
}

// WeekSummary is the rolling seven-day summary from GET /api/stats/week.
type WeekSummary struct {
	Period        string       `json:"period"`
	TotalSeconds  int64        `json:"total_seconds"`
	ActiveSeconds int64        `json:"active_seconds"`
	AvgDaily      int64        `json:"avg_daily"`
	DaysCount     int          `json:"days_count"`
	Daily         []DailyStats `json:"daily_data,omitempty"`
}

// TodaySummary is today's persisted totals from GET /api/stats/today.
type TodaySummary struct {
	Date          string `json:"date"`
	TotalSeconds  int64  `json:"total_seconds"`
	ActiveSeconds int64  `json:"active_seconds"`
	IdleSeconds   int64  `json:"idle_seconds"`
	AppsUsed      int    `json:"apps_used"`
	Productivity  int    `json:"productivity"`
}

// AutostartState is the reply to GET /api/autostart.
type AutostartState struct {
	Enabled bool `json:"enabled"`
}

// AutostartAck is the reply to the enable/disable endpoints. Enable sets
// Enabled, disable sets Disabled; the other field is absent.
type AutostartAck struct {
	Enabled  bool `json:"enabled"`
	Disabled bool `json:"disabled"`
}
