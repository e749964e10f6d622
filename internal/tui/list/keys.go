package listview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/renderwave/internal/wave"
)

// KeyMap binds terminal keys to navigation keys.
type KeyMap struct {
	PageDown key.Binding
	PageUp   key.Binding
	Down     key.Binding
	Up       key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns arrow/page keys plus vim-style alternatives.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn/f", "page down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "bottom")),
	}
}

// NavKey translates msg into the navigation key it is bound to.
func (k KeyMap) NavKey(msg tea.KeyMsg) (wave.NavKey, bool) {
	switch {
	case key.Matches(msg, k.PageDown):
		return wave.KeyPageDown, true
	case key.Matches(msg, k.PageUp):
		return wave.KeyPageUp, true
	case key.Matches(msg, k.Down):
		return wave.KeyArrowDown, true
	case key.Matches(msg, k.Up):
		return wave.KeyArrowUp, true
	case key.Matches(msg, k.Home):
		return wave.KeyHome, true
	case key.Matches(msg, k.End):
		return wave.KeyEnd, true
	default:
		return "", false
	}
}

// ShortHelp lists the bindings for a help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End}
}
