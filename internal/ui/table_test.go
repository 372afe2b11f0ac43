package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "App", Width: 20},
		{Title: "Time", Width: 10},
	}
	rows := []table.Row{
		{"Code", "1h 2m"},
		{"Firefox", "20m"},
	}

	view := NewTable(columns, rows).View()
	assert.Contains(t, view, "App")
	assert.Contains(t, view, "Time")
	assert.Contains(t, view, "Code")
	assert.Contains(t, view, "Firefox")
}

func TestNewTable_EmptyRows(t *testing.T) {
	view := NewTable([]TableColumn{{Title: "App", Width: 20}}, []table.Row{}).View()
	assert.Contains(t, view, "App")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "#", Width: 3},
		{Title: "App", Width: 15},
	}

	out := RenderSimpleTable(columns, [][]string{{"1", "Code"}, {"2", "Slack"}})
	assert.Contains(t, out, "Code")
	assert.Contains(t, out, "Slack")
	assert.Less(t, strings.Index(out, "Code"), strings.Index(out, "Slack"))
}

func TestRenderSimpleTable_NoRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "App", Width: 10}}, nil))
}

func TestRenderKeyValues(t *testing.T) {
	out := RenderKeyValues([]KeyValue{
		{Key: "Total time", Value: "2h 0m"},
		{Key: "Apps", Value: "4"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "2h 0m")
	assert.Contains(t, lines[1], "4")
	// Values line up after the longest key.
	assert.Equal(t, strings.Index(lines[0], "2h"), strings.Index(lines[1], "4"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}
