package tui

import "github.com/charmbracelet/bubbles/key"

// MenuKeyMap defines the key bindings for the main menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("up/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("down/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShopKeyMap defines the key bindings for the shop.
type ShopKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	NextRow   key.Binding
	PrevRow   key.Binding
	Select    key.Binding
	Clear     key.Binding
	Reroll    key.Binding
	LunchTime key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextRow, k.Select, k.Clear, k.Reroll, k.LunchTime, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.NextRow, k.PrevRow},
		{k.Select, k.Clear, k.Reroll},
		{k.LunchTime, k.Back, k.Quit},
	}
}

// DefaultShopKeyMap returns default shop bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("left/h", "prev card")),
		Right:     key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("right/l", "next card")),
		NextRow:   key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("down/tab", "next row")),
		PrevRow:   key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("up/S-tab", "prev row")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pick/place")),
		Clear:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Reroll:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reroll")),
		LunchTime: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "lunch time!")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// BattleKeyMap defines the key bindings for the battle viewer.
type BattleKeyMap struct {
	Step        key.Binding
	FastForward key.Binding
	Reset       key.Binding
	Continue    key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BattleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.FastForward, k.Reset, k.Continue, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BattleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

// DefaultBattleKeyMap returns default battle bindings.
func DefaultBattleKeyMap() BattleKeyMap {
	return BattleKeyMap{
		Step:        key.NewBinding(key.WithKeys("n", " ", "right"), key.WithHelp("n/space", "step")),
		FastForward: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fast-forward")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Continue:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// TeamsKeyMap defines the key bindings for the team manager.
type TeamsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Spar   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k TeamsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Right, k.Spar, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k TeamsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Spar, k.Delete, k.Clear},
		{k.Back, k.Quit},
	}
}

// DefaultTeamsKeyMap returns default team manager bindings.
func DefaultTeamsKeyMap() TeamsKeyMap {
	return TeamsKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Left:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left/h", "prev tab")),
		Right:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("tab", "next tab")),
		Spar:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "practice vs team")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
