package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search    key.Binding
	Clear     key.Binding
	Upload    key.Binding
	Reload    key.Binding
	LimitUp   key.Binding
	LimitDown key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	JumpPage  key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Upload:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		LimitUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more results")),
		LimitDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer results")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		FirstPage: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first page")),
		LastPage:  key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last page")),
		JumpPage:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to page")),
		ScrollUp:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDn:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Upload, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Clear, k.LimitUp, k.LimitDown},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.JumpPage},
		{k.ScrollUp, k.ScrollDn, k.Upload, k.Reload},
		{k.Help, k.Quit},
	}
}
