package dashboard

import (
	"testing"

	"github.com/rileyhilliard/usagedash/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppRows(t *testing.T) {
	rows := AppRows([]api.AppUsage{
		{Name: "Code", DurationFmt: "1h 2m", Percent: 62.5, CategoryName: "Development"},
		{Name: "Slack", DurationFmt: "5m", Percent: 5, CategoryName: "Communication"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, AppRow{Rank: 1, Name: "Code", Duration: "1h 2m", Percent: "62.5%", Category: "Development"}, rows[0])
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, "5%", rows[1].Percent)

	assert.Empty(t, AppRows(nil))
}

func TestAppList_ResetReplacesAtomically(t *testing.T) {
	var l AppList
	assert.False(t, l.Loaded())

	l.Reset(AppRows(sampleApps()))
	assert.True(t, l.Loaded())
	assert.Len(t, l.Rows(), 6)

	l.Reset(nil)
	assert.True(t, l.Loaded())
	assert.Empty(t, l.Rows())
}

func TestAppList_Render(t *testing.T) {
	var l AppList
	l.Reset(nil)
	assert.Equal(t, MutedStyle.Render("No data"), l.Render("No data", 80), "empty list is exactly the message")

	l.Reset(AppRows(sampleApps()[:2]))
	out := l.Render("No data", 80)
	assert.NotContains(t, out, "No data")
	assert.Contains(t, out, " 1. Code")
	assert.Contains(t, out, " 2. Firefox")
	assert.Contains(t, out, "60%")
	assert.Contains(t, out, "Browsing")
}
