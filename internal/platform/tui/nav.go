package tui

import tea "github.com/charmbracelet/bubbletea"

// Screen identifies one top-level view of a session.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenShop
	ScreenBattle
	ScreenTeams
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenShop:
		return "shop"
	case ScreenBattle:
		return "battle"
	case ScreenTeams:
		return "teams"
	default:
		return "unknown"
	}
}

// Entry is one frame of the navigation stack.
type Entry struct {
	Screen Screen
	Params any
}

// Navigator is a stack of screens. The bottom entry is never popped.
type Navigator struct {
	stack []Entry
}

// NewNavigator returns a navigator rooted at the given screen.
func NewNavigator(root Screen) Navigator {
	return Navigator{stack: []Entry{{Screen: root}}}
}

// Current returns the top of the stack.
func (n Navigator) Current() Entry {
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of entries on the stack.
func (n Navigator) Depth() int {
	return len(n.stack)
}

// Navigate pushes a screen.
func (n Navigator) Navigate(s Screen, params any) Navigator {
	n.stack = append(n.stack[:len(n.stack):len(n.stack)], Entry{Screen: s, Params: params})
	return n
}

// Replace swaps the top of the stack for another screen.
func (n Navigator) Replace(s Screen, params any) Navigator {
	next := make([]Entry, len(n.stack))
	copy(next, n.stack)
	next[len(next)-1] = Entry{Screen: s, Params: params}
	n.stack = next
	return n
}

// Back pops the top screen unless it is the root.
func (n Navigator) Back() Navigator {
	if len(n.stack) > 1 {
		n.stack = n.stack[: len(n.stack)-1 : len(n.stack)-1]
	}
	return n
}

// Reset discards the stack and starts over at the given screen.
func (n Navigator) Reset(s Screen, params any) Navigator {
	n.stack = []Entry{{Screen: s, Params: params}}
	return n
}

// navMsg is a navigation request emitted by a screen.
type navMsg interface {
	navMsg()
}

type (
	navigateMsg Entry
	replaceMsg  Entry
	resetMsg    Entry
	backMsg     struct{}
)

func (navigateMsg) navMsg() {}
func (replaceMsg) navMsg()  {}
func (resetMsg) navMsg()    {}
func (backMsg) navMsg()     {}

func navigate(s Screen, params any) tea.Cmd {
	return func() tea.Msg { return navigateMsg{Screen: s, Params: params} }
}

func replace(s Screen, params any) tea.Cmd {
	return func() tea.Msg { return replaceMsg{Screen: s, Params: params} }
}

func reset(s Screen) tea.Cmd {
	return func() tea.Msg { return resetMsg{Screen: s} }
}

func back() tea.Msg {
	return backMsg{}
}

// apply runs a navigation request against the stack.
func (n Navigator) apply(msg navMsg) Navigator {
	switch msg := msg.(type) {
	case navigateMsg:
		return n.Navigate(msg.Screen, msg.Params)
	case replaceMsg:
		return n.Replace(msg.Screen, msg.Params)
	case resetMsg:
		return n.Reset(msg.Screen, msg.Params)
	case backMsg:
		return n.Back()
	default:
		return n
	}
}
