package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap is the dashboard's full set of bindings.
type keyMap struct {
	Overview  key.Binding
	Apps      key.Binding
	Stats     key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Period    key.Binding
	Reload    key.Binding
	Monitor   key.Binding
	Autostart key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Overview:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview")),
		Apps:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "apps")),
		Stats:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "stats")),
		NextTab:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "previous tab")),
		Period:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "period")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Monitor:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
		Autostart: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autostart")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is the footer hint line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Monitor, k.Autostart, k.Period, k.Reload, k.Help, k.Quit}
}

// FullHelp is the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Overview, k.Apps, k.Stats, k.NextTab, k.PrevTab},
		{k.Monitor, k.Autostart, k.Period, k.Reload},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Close, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input. It returns true when the key was
// consumed by the dashboard.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key.Matches(msg, m.keys.Close) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.state.cancelAll()
		m.cancel()
		return true, tea.Quit

	case key.Matches(msg, m.keys.Overview):
		return true, m.SwitchTab(TabOverview)

	case key.Matches(msg, m.keys.Apps):
		return true, m.SwitchTab(TabApps)

	case key.Matches(msg, m.keys.Stats):
		return true, m.SwitchTab(TabStats)

	case key.Matches(msg, m.keys.NextTab):
		return true, m.SwitchTab(m.state.Tab.Next())

	case key.Matches(msg, m.keys.PrevTab):
		return true, m.SwitchTab(m.state.Tab.Prev())

	case key.Matches(msg, m.keys.Period):
		return true, m.CyclePeriod()

	case key.Matches(msg, m.keys.Reload):
		return true, m.Reload()

	case key.Matches(msg, m.keys.Monitor):
		return true, m.ToggleMonitoring()

	case key.Matches(msg, m.keys.Autostart):
		return true, m.ToggleAutostart()
	}

	return false, nil
}
