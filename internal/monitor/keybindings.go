package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap lists every binding of the dashboard. It satisfies help.KeyMap.
type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Left     key.Binding
	Right    key.Binding
	Copy     key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next row"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "previous page"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "next page"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first row"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last row"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		// Reserved for column scrolling; currently inert.
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithDisabled(),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithDisabled(),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy row"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp is shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.NextTab, k.Up, k.Down, k.Help}
}

// FullHelp is shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.NextTab, k.PrevTab, k.Copy, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes one key and reports whether it was consumed.
// Keys only change navigation, tab or overlay state; the result is drawn
// at the next tick.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	k := m.keys

	// A status message lasts until the next key.
	m.status = ""

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return true, nil

	case key.Matches(msg, k.NextTab):
		m.tabs.Next()
		return true, nil

	case key.Matches(msg, k.PrevTab):
		m.tabs.Prev()
		return true, nil

	case key.Matches(msg, k.Up):
		m.tabs.ActiveView().PreviousItem()
		return true, nil

	case key.Matches(msg, k.Down):
		m.tabs.ActiveView().NextItem()
		return true, nil

	case key.Matches(msg, k.PageUp):
		m.tabs.ActiveView().PreviousPage()
		return true, nil

	case key.Matches(msg, k.PageDown):
		m.tabs.ActiveView().NextPage()
		return true, nil

	case key.Matches(msg, k.Home):
		m.tabs.ActiveView().FirstItem()
		return true, nil

	case key.Matches(msg, k.End):
		m.tabs.ActiveView().LastItem()
		return true, nil

	case key.Matches(msg, k.Copy):
		m.copySelectedRow()
		return true, nil

	case msg.String() == "left" || msg.String() == "right":
		return true, nil
	}

	return false, nil
}

// copySelectedRow puts the active view's selected row on the clipboard as
// tab-separated cells.
func (m *Model) copySelectedRow() {
	row, ok := m.tabs.ActiveView().SelectedRow()
	if !ok {
		m.setStatus(statusWarn, "nothing selected")
		return
	}
	if err := m.copy(strings.Join(row, "\t")); err != nil {
		m.log.Warn("copy to clipboard failed: %v", err)
		m.setStatus(statusFail, "copy failed: "+err.Error())
		return
	}
	m.setStatus(statusOK, "copied row to clipboard")
}

func (m *Model) setStatus(level statusLevel, msg string) {
	m.level = level
	m.status = msg
}
