package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Back        key.Binding // esc: leave the media view
	Select      key.Binding // enter: open media, run a setting or play
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Favourite   key.Binding // f: toggle favourite
	Hide        key.Binding // x: hide thread
	Refresh     key.Binding
	LoadMore    key.Binding // m: load the next page now
	Open        key.Binding // o: open the thread page in the browser
	Thumbnail   key.Binding // t: open the OP thumbnail in the browser
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Favourite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favourite"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hide"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Thumbnail: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "thumbnail"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
	}
}

// ShortHelp is shown in the footer until hints are expanded.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Favourite, k.Hide, k.Refresh, k.ToggleHints, k.Quit}
}

// FullHelp lists every binding of the browse view.
func (k KeyMap) FullHelp() []key.Binding {
	return []key.Binding{
		k.Left, k.Right, k.Up, k.Down, k.Select, k.Favourite, k.Hide,
		k.Refresh, k.LoadMore, k.Open, k.Thumbnail, k.ToggleHints, k.Quit,
	}
}

// HelpLine renders bindings as "key action" pairs.
func HelpLine(bindings []key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return joinDot(parts)
}
