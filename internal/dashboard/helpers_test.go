package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/usagedash/internal/api"
	apitesting "github.com/rileyhilliard/usagedash/internal/api/testing"
	"github.com/rileyhilliard/usagedash/internal/locale"
	"github.com/rileyhilliard/usagedash/internal/logger"
)

// newTestModel returns a model wired to a fresh fake tracker with
// millisecond timers so tick commands return immediately.
func newTestModel(t *testing.T, setup func(f *apitesting.FakeServer)) (Model, *apitesting.FakeServer, *logger.BufferLogger) {
	t.Helper()
	fake := apitesting.NewFakeServer()
	t.Cleanup(fake.Close)
	if setup != nil {
		fake.Update(setup)
	}

	log := logger.NewBufferLogger()
	m := NewModel(Options{
		Client:        fake.Client(api.WithTimeout(2 * time.Second)),
		Labels:        locale.Get(locale.English),
		Logger:        log,
		PollInterval:  time.Millisecond,
		ClockInterval: time.Millisecond,
		Now:           func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) },
	})
	t.Cleanup(m.Close)
	return m, fake, log
}

// run executes cmd and every command batched inside it, returning the
// leaf messages in order. Commands are not fed back into the model.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed applies msgs in order and returns the model plus the commands
// Update produced.
func feed(m Model, msgs ...tea.Msg) (Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, cmds
}

// settle runs cmds and feeds their results back, skipping timer ticks so
// the loop terminates.
func settle(m Model, cmds ...tea.Cmd) Model {
	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = cmds[1:]
		for _, msg := range run(cmd) {
			switch msg.(type) {
			case clockTickMsg, pollTickMsg:
				continue
			}
			var more []tea.Cmd
			m, more = feed(m, msg)
			cmds = append(cmds, more...)
		}
	}
	return m
}

// boot runs Init to completion, ignoring timers.
func boot(m Model) Model {
	return settle(m, m.Init())
}

// ofType returns the messages of type T.
func ofType[T any](msgs []tea.Msg) []T {
	var out []T
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and returns the resulting command.
func press(m Model, s string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyMsg(s))
	return next.(Model), cmd
}
