// Package ui renders the non-interactive CLI output: tables, key/value
// summaries, and a spinner for requests that may take a while.
//
// Colors are ANSI codes so output degrades cleanly on basic terminals.
// DisableColors switches lipgloss to the ASCII profile for --no-color and
// for output that isn't a terminal.
package ui
