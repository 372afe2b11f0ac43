// Package locale holds the user-visible label tables for the dashboard.
//
// The tracker service reports durations and names in whatever language it
// was configured with; only the client-side chrome is translated here.
package locale

import "strings"

// Tag identifies a supported label table.
type Tag string

const (
	English Tag = "en"
	Russian Tag = "ru"
)

// Labels is the full set of translated strings used by the views.
type Labels struct {
	Tag Tag

	// Duration unit suffixes for format.Duration.
	Seconds string
	Minutes string
	Hours   string

	// Monitoring control and badge.
	Start   string
	Stop    string
	Active  string
	Stopped string
	Idle    string

	// Autostart control.
	AutostartOn     string
	AutostartOff    string
	AutostartSaving string
	Error           string

	NoData       string
	NoDataPeriod string

	// Tabs.
	TabOverview string
	TabApps     string
	TabStats    string

	// Periods.
	PeriodToday string
	PeriodAll   string

	// Stat cards.
	TotalTime    string
	ActiveTime   string
	IdleTime     string
	AppsCount    string
	CurrentApp   string
	Productivity string

	// Section titles.
	HourlyActivity string
	TopApps        string
	AllApps        string
	Categories     string
	WeekComparison string
	Trend          string
	WeekSummary    string
	Autostart      string

	// Week summary rows.
	SummaryPeriod   string
	SummaryTotal    string
	SummaryActive   string
	SummaryAvgDaily string
	SummaryDays     string

	// Axis units.
	UnitMinutes string
	UnitHours   string
}

var english = Labels{
	Tag:     English,
	Seconds: "s",
	Minutes: "m",
	Hours:   "h",

	Start:   "▶ Start",
	Stop:    "⏹ Stop",
	Active:  "Active",
	Stopped: "Stopped",
	Idle:    "idle",

	AutostartOn:     "On",
	AutostartOff:    "Off",
	AutostartSaving: "Saving...",
	Error:           "Error",

	NoData:       "No data",
	NoDataPeriod: "No data for the selected period",

	TabOverview: "Overview",
	TabApps:     "Apps",
	TabStats:    "Stats",

	PeriodToday: "Today",
	PeriodAll:   "All time",

	TotalTime:    "Total time",
	ActiveTime:   "Active time",
	IdleTime:     "Idle time",
	AppsCount:    "Apps",
	CurrentApp:   "Current app",
	Productivity: "Productivity",

	HourlyActivity: "Activity by hour",
	TopApps:        "Top apps",
	AllApps:        "Applications",
	Categories:     "Categories",
	WeekComparison: "Average by weekday",
	Trend:          "Productivity trend",
	WeekSummary:    "This week",
	Autostart:      "Autostart",

	SummaryPeriod:   "Period",
	SummaryTotal:    "Total time",
	SummaryActive:   "Active time",
	SummaryAvgDaily: "Daily average",
	SummaryDays:     "Days with data",

	UnitMinutes: "min",
	UnitHours:   "hours",
}

var russian = Labels{
	Tag:     Russian,
	Seconds: "с",
	Minutes: "м",
	Hours:   "ч",

	Start:   "▶ Начать",
	Stop:    "⏹ Остановить",
	Active:  "Активен",
	Stopped: "Остановлен",
	Idle:    "простой",

	AutostartOn:     "Включён",
	AutostartOff:    "Выключен",
	AutostartSaving: "Сохранение...",
	Error:           "Ошибка",

	NoData:       "Нет данных",
	NoDataPeriod: "Нет данных за выбранный период",

	TabOverview: "Обзор",
	TabApps:     "Приложения",
	TabStats:    "Статистика",

	PeriodToday: "Сегодня",
	PeriodAll:   "Всё время",

	TotalTime:    "Общее время",
	ActiveTime:   "Активное время",
	IdleTime:     "Простой",
	AppsCount:    "Приложений",
	CurrentApp:   "Текущее приложение",
	Productivity: "Продуктивность",

	HourlyActivity: "Активность по часам",
	TopApps:        "Топ приложений",
	AllApps:        "Приложения",
	Categories:     "Категории",
	WeekComparison: "Среднее по дням недели",
	Trend:          "Тренд продуктивности",
	WeekSummary:    "Эта неделя",
	Autostart:      "Автозапуск",

	SummaryPeriod:   "Период",
	SummaryTotal:    "Общее время",
	SummaryActive:   "Активное время",
	SummaryAvgDaily: "Среднее в день",
	SummaryDays:     "Дней с данными",

	UnitMinutes: "мин",
	UnitHours:   "часы",
}

// Get returns the label table for tag. Unknown tags fall back to English.
func Get(tag Tag) Labels {
	switch Tag(strings.ToLower(string(tag))) {
	case Russian:
		return russian
	default:
		return english
	}
}

// Supported reports whether tag has its own label table.
func Supported(tag string) bool {
	switch Tag(strings.ToLower(tag)) {
	case English, Russian:
		return true
	}
	return false
}
