package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/loopyfoods/internal/storage"
)

// menuChoice is one main-menu entry.
type menuChoice int

const (
	choicePlay menuChoice = iota
	choiceNewRun
	choiceTeams
	choiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice menuChoice
	Title  string
}

// newRunMsg asks the session to discard the current run.
type newRunMsg struct{}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	record *storage.Record
	keys   MenuKeyMap
	help   help.Model
}

// NewMenuModel creates a new menu model. activeRun switches the first entry
// between starting and continuing a run.
func NewMenuModel(store *storage.Store, activeRun bool, width int) MenuModel {
	play := "Start Run"
	if activeRun {
		play = "Continue Run"
	}
	items := []MenuItem{{Choice: choicePlay, Title: play}}
	if activeRun {
		items = append(items, MenuItem{Choice: choiceNewRun, Title: "New Run"})
	}
	items = append(items,
		MenuItem{Choice: choiceTeams, Title: "Team Manager"},
		MenuItem{Choice: choiceQuit, Title: "Quit"},
	)

	m := MenuModel{
		items: items,
		width: width,
		keys:  DefaultMenuKeyMap(),
		help:  help.New(),
	}

	if store != nil {
		if rec, err := store.Record(); err == nil {
			m.record = &rec
		}
	}

	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Select):
			return m, m.choose(m.items[m.cursor].Choice)
		}
	}

	return m, nil
}

func (m MenuModel) choose(c menuChoice) tea.Cmd {
	switch c {
	case choicePlay:
		return navigate(ScreenShop, nil)
	case choiceNewRun:
		return tea.Sequence(
			func() tea.Msg { return newRunMsg{} },
			navigate(ScreenShop, nil),
		)
	case choiceTeams:
		return navigate(ScreenTeams, nil)
	default:
		return tea.Quit
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  L O O P Y   F O O D S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(mutedStyle.Render("Build a tray. Line up the kids. Out-eat the other table."), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		line := item.Title
		if i == m.cursor {
			cursor = "> "
			line = titleStyle.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	if m.record != nil && m.record.Total() > 0 {
		b.WriteString("\n")
		rec := fmt.Sprintf("Record  W %d  L %d  T %d", m.record.Wins, m.record.Losses, m.record.Ties)
		b.WriteString(centerText(mutedStyle.Render(rec), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(renderHelp(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}
