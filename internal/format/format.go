// Package format turns raw tracker numbers into display strings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rileyhilliard/usagedash/internal/locale"
)

// Duration formats a number of seconds the way the tracker does:
//
//	sec < 60          -> "42s"
//	60 <= sec < 3600  -> "15m"      (floor)
//	sec >= 3600       -> "2h 5m"    (floor of hours, floor of remaining minutes)
//
// Unit suffixes come from the label table.
func Duration(sec int64, l locale.Labels) string {
	switch {
	case sec < 60:
		return fmt.Sprintf("%d%s", sec, l.Seconds)
	case sec < 3600:
		return fmt.Sprintf("%d%s", sec/60, l.Minutes)
	default:
		h := sec / 3600
		m := (sec % 3600) / 60
		return fmt.Sprintf("%d%s %d%s", h, l.Hours, m, l.Minutes)
	}
}

// Productivity returns round(active/total*100). A zero total counts as 1
// so an empty session reads 0% instead of dividing by zero.
func Productivity(active, total int64) int {
	if total == 0 {
		total = 1
	}
	return int(math.Round(float64(active) / float64(total) * 100))
}

// Minutes converts seconds to whole minutes, rounding to nearest.
func Minutes(sec int64) int {
	return int(math.Round(float64(sec) / 60))
}

// HourLabel renders an hour bucket as two digits ("07").
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d", hour)
}

// TrendLabel shortens a YYYY-MM-DD date to MM-DD.
func TrendLabel(date string) string {
	if len(date) > 5 {
		return date[5:]
	}
	return date
}

// Percent renders a percentage with as many decimals as it carries ("12.5%", "100%").
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// Clock renders a wall-clock time as 24h HH:MM:SS.
func Clock(t time.Time) string {
	return t.Format("15:04:05")
}
