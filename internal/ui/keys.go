package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	GoHome     key.Binding
	GoAdd      key.Binding
	Menu       key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding

	// List
	Search key.Binding
	Sort   key.Binding
	Delete key.Binding
	Open   key.Binding
	Reload key.Binding

	// Forms and editors
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Edit   key.Binding
	Back   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Theme"),
		),
		GoHome: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Home"),
		),
		GoAdd: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Add Book"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Menu"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("<", "h", "left"),
			key.WithHelp("</>", "Column"),
		),
		Right: key.NewBinding(
			key.WithKeys(">", "l", "right"),
			key.WithHelp(">", "Next column"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "Edit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GoHome, k.GoAdd, k.Menu},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Search, k.Left, k.Sort, k.Delete, k.Open, k.Reload},
		{k.Next, k.Prev, k.Submit, k.Edit, k.Back},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

// routeHelp returns the bindings shown in the command bar for r.
func (k keyMap) routeHelp(r Route) []key.Binding {
	switch r.Kind {
	case RouteBooks:
		return []key.Binding{k.Search, k.Left, k.Sort, k.Open, k.Delete, k.Reload, k.GoAdd, k.Help}
	case RouteAddBook:
		return []key.Binding{k.Next, k.Submit, k.Back, k.Help}
	case RouteBookDetail:
		return []key.Binding{k.Left, k.Edit, k.Back, k.GoHome, k.Help}
	default:
		return []key.Binding{k.GoHome, k.GoAdd, k.Help, k.Quit}
	}
}
