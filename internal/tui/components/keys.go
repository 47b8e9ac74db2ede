package components

import "github.com/charmbracelet/bubbles/key"

// ListKeyMap holds the bindings a ListColumn handles on its own
type ListKeyMap struct {
	// Cursor movement
	Up, Down         key.Binding
	First, Last      key.Binding
	HalfUp, HalfDown key.Binding
	PageUp, PageDown key.Binding

	// Local filter
	Filter       key.Binding
	AcceptFilter key.Binding
	ClearFilter  key.Binding
	EraseFilter  key.Binding // Backspace on an empty filter closes it
}

func bind(keys []string, helpKey, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// DefaultListKeyMap returns vim-style list bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:       bind([]string{"k", "up"}, "k/↑", "previous"),
		Down:     bind([]string{"j", "down"}, "j/↓", "next"),
		First:    bind([]string{"g", "home"}, "g", "first"),
		Last:     bind([]string{"G", "end"}, "G", "last"),
		HalfUp:   bind([]string{"ctrl+u"}, "C-u", "half page up"),
		HalfDown: bind([]string{"ctrl+d"}, "C-d", "half page down"),
		PageUp:   bind([]string{"pgup"}, "PgUp", "page up"),
		PageDown: bind([]string{"pgdown"}, "PgDn", "page down"),

		Filter:       bind([]string{"/"}, "/", "filter"),
		AcceptFilter: bind([]string{"enter"}, "enter", "keep filter"),
		ClearFilter:  bind([]string{"esc"}, "esc", "clear filter"),
		EraseFilter:  bind([]string{"backspace"}, "⌫", "close filter"),
	}
}

// FilterHelp returns the bindings shown while a filter is being typed
func (k ListKeyMap) FilterHelp() []key.Binding {
	return []key.Binding{k.AcceptFilter, k.ClearFilter}
}

// ListKeys is shared by every list column
var ListKeys = DefaultListKeyMap()
