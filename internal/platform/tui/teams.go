package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/loopyfoods/internal/cards"
	"github.com/vovakirdan/loopyfoods/internal/storage"
)

// Team manager layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the tab sidebar
	sidebarWidth       = 16
	maxBattles         = 100
)

// teamsTab is a page of the team manager.
type teamsTab int

const (
	tabSnapshots teamsTab = iota
	tabBattles
	teamsTabCount
)

func (t teamsTab) String() string {
	if t == tabBattles {
		return "Battles"
	}
	return "Teams"
}

// TeamsModel is the Bubble Tea model for browsing saved teams and past battles.
type TeamsModel struct {
	game        *Game
	store       *storage.Store
	tab         teamsTab
	snapshots   []storage.Snapshot
	battles     []storage.BattleResult
	record      storage.Record
	table       table.Model
	help        help.Model
	keys        TeamsKeyMap
	status      string
	isError     bool
	width       int
	height      int
	showSidebar bool
}

// NewTeamsModel creates the team manager. game supplies the player's team
// for practice battles; a nil store shows an empty manager.
func NewTeamsModel(game *Game, store *storage.Store, width, height int) TeamsModel {
	h := help.New()
	h.Width = width

	m := TeamsModel{
		game:        game,
		store:       store,
		keys:        DefaultTeamsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table with the columns of the current tab.
func (m *TeamsModel) createTable() table.Model {
	var columns []table.Column
	if m.tab == tabBattles {
		columns = []table.Column{
			{Title: "Round", Width: 6},
			{Title: "Result", Width: 14},
			{Title: "Stars", Width: 8},
			{Title: "Steps", Width: 6},
			{Title: "Date", Width: 14},
		}
	} else {
		columns = []table.Column{
			{Title: "Round", Width: 6},
			{Title: "HP", Width: 4},
			{Title: "TR", Width: 4},
			{Title: "Tray", Width: 30},
			{Title: "Kids", Width: 5},
			{Title: "Saved", Width: 14},
		}

		// Give the tray summary whatever room is left.
		tableWidth := m.width - 8
		if m.showSidebar {
			tableWidth -= sidebarWidth + 3
		}
		if extra := tableWidth - 73; extra > 0 {
			columns[3].Width += min(extra, 30)
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current tab's rows from storage.
func (m *TeamsModel) load() {
	m.snapshots, m.battles = nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	var err error
	if m.tab == tabBattles {
		m.battles, err = m.store.RecentBattles(maxBattles)
	} else {
		m.snapshots, err = m.store.ListSnapshots()
	}
	if err != nil {
		m.setStatus("", err)
	}
	if rec, err := m.store.Record(); err == nil {
		m.record = rec
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded rows.
func (m *TeamsModel) updateTableRows() {
	var rows []table.Row
	if m.tab == tabBattles {
		rows = make([]table.Row, len(m.battles))
		for i, r := range m.battles {
			rows[i] = table.Row{
				fmt.Sprintf("%d", r.Round),
				r.Winner.String(),
				fmt.Sprintf("%d-%d", r.PlayerStars, r.OpponentStars),
				fmt.Sprintf("%d", r.Steps),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.snapshots))
		for i, s := range m.snapshots {
			rows[i] = table.Row{
				fmt.Sprintf("%d", s.Round),
				fmt.Sprintf("%d", s.Health),
				fmt.Sprintf("%d", s.Trophies),
				traySummary(s.Tray),
				fmt.Sprintf("%d", len(s.Kids)),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// traySummary lists a tray's food in slot order, marking empty slots.
func traySummary(t cards.Tray) string {
	names := make([]string, len(t))
	for i, f := range t {
		if f == nil {
			names[i] = "-"
			continue
		}
		names[i] = f.Title
	}
	return strings.Join(names, ", ")
}

func (m *TeamsModel) setStatus(s string, err error) {
	if err != nil {
		m.status = err.Error()
		m.isError = true
		return
	}
	m.status = s
	m.isError = false
}

// selected returns the highlighted snapshot, if any.
func (m TeamsModel) selected() (storage.Snapshot, bool) {
	i := m.table.Cursor()
	if m.tab != tabSnapshots || i < 0 || i >= len(m.snapshots) {
		return storage.Snapshot{}, false
	}
	return m.snapshots[i], true
}

// Init initializes the team manager.
func (m TeamsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the team manager.
func (m TeamsModel) Update(msg tea.Msg) (TeamsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			return m, back

		case key.Matches(msg, m.keys.Right):
			m.switchTab((m.tab + 1) % teamsTabCount)
			return m, nil

		case key.Matches(msg, m.keys.Left):
			m.switchTab((m.tab + teamsTabCount - 1) % teamsTabCount)
			return m, nil

		case key.Matches(msg, m.keys.Spar):
			return m, m.spar()

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.clearTab()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *TeamsModel) switchTab(t teamsTab) {
	m.tab = t
	m.setStatus("", nil)
	m.table = m.createTable()
	m.load()
}

// spar starts a practice battle of the current shop team against the
// highlighted snapshot.
func (m *TeamsModel) spar() tea.Cmd {
	snap, ok := m.selected()
	if !ok {
		return nil
	}
	if m.game == nil || !m.game.Shop.Ready() {
		m.setStatus("", errors.New("build a team in the shop before practicing"))
		return nil
	}
	return navigate(ScreenBattle, BattleParams{
		Player:     m.game.Shop.Team(),
		Opponent:   snap.Team(),
		OpponentID: snap.ID,
	})
}

func (m *TeamsModel) deleteSelected() {
	snap, ok := m.selected()
	if !ok {
		return
	}
	if err := m.store.DeleteSnapshot(snap.ID); err != nil {
		m.setStatus("", err)
		return
	}
	m.load()
	m.setStatus(fmt.Sprintf("Deleted round %d team.", snap.Round), nil)
}

func (m *TeamsModel) clearTab() {
	if m.store == nil {
		return
	}
	var err error
	if m.tab == tabBattles {
		err = m.store.ClearBattleResults()
	} else {
		err = m.store.ClearSnapshots()
	}
	if err != nil {
		m.setStatus("", err)
		return
	}
	m.load()
	m.setStatus("Cleared.", nil)
}

// View renders the team manager.
func (m TeamsModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("TEAM MANAGER - %s", m.tab)
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render(fmt.Sprintf(
		"W %d  L %d  T %d", m.record.Wins, m.record.Losses, m.record.Ties,
	)), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}
	b.WriteString("\n")

	if m.status != "" {
		style := mutedStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(renderHelp(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the tab list beside the table.
func (m TeamsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	for t := range teamsTabCount {
		cursor := "  "
		style := lipgloss.NewStyle()
		if t == m.tab {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + t.String()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders tabs above the table.
func (m TeamsModel) renderNarrowLayout() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, teamsTabCount)
	for t := range teamsTabCount {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return centerText(strings.Join(tabs, " "), m.width) + "\n\n" + tableStyle.Render(m.renderTableContent())
}

// renderTableContent renders the table or an empty message.
func (m TeamsModel) renderTableContent() string {
	empty := m.tab == tabSnapshots && len(m.snapshots) == 0 ||
		m.tab == tabBattles && len(m.battles) == 0
	if !empty {
		return m.table.View()
	}

	msg := "No teams saved yet.\nEvery Lunch Time saves your tray here."
	if m.tab == tabBattles {
		msg = "No battles recorded yet."
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4).
		Render(msg)
}
