package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// shopRow is the focused row of the shop screen.
type shopRow int

const (
	rowOffers shopRow = iota
	rowTray
	rowKidOffers
	rowLine
	shopRowCount
)

func (r shopRow) String() string {
	switch r {
	case rowOffers:
		return "Cafeteria Counter"
	case rowTray:
		return "Hot Lunch Tray"
	case rowKidOffers:
		return "Kids Waiting"
	default:
		return "Lunch Line"
	}
}

// held is a card picked up with Select, waiting to be placed.
type held struct {
	row   shopRow
	index int
}

// ShopModel is the Bubble Tea model for building a team between battles.
type ShopModel struct {
	game    *Game
	row     shopRow
	cursors [shopRowCount]int
	held    *held
	status  string
	isError bool
	width   int
	keys    ShopKeyMap
	help    help.Model
}

// NewShopModel creates a shop screen over the given run.
func NewShopModel(game *Game, width int) ShopModel {
	h := help.New()
	h.Width = width
	return ShopModel{
		game:  game,
		width: width,
		keys:  DefaultShopKeyMap(),
		help:  h,
	}
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// rowLen returns the number of cards in a row.
func (m ShopModel) rowLen(r shopRow) int {
	switch r {
	case rowOffers:
		return len(m.game.Shop.Offers())
	case rowTray:
		return len(m.game.Shop.Tray())
	case rowKidOffers:
		return len(m.game.Shop.KidOffers())
	default:
		return len(m.game.Shop.Line())
	}
}

// clampCursors keeps every cursor inside its row after cards move.
func (m *ShopModel) clampCursors() {
	for r := range shopRowCount {
		n := m.rowLen(r)
		if m.cursors[r] >= n {
			m.cursors[r] = max(n-1, 0)
		}
	}
}

func (m *ShopModel) setStatus(s string, err error) {
	if err != nil {
		m.status = err.Error()
		m.isError = true
		return
	}
	m.status = s
	m.isError = false
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (ShopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m ShopModel) handleKey(msg tea.KeyMsg) (ShopModel, tea.Cmd) {
	if m.game.Run.Over() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
			return m, tea.Sequence(func() tea.Msg { return newRunMsg{} }, reset(ScreenMenu))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.held != nil {
			m.held = nil
			m.setStatus("", nil)
			return m, nil
		}
		return m, back

	case key.Matches(msg, m.keys.Left):
		if m.cursors[m.row] > 0 {
			m.cursors[m.row]--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursors[m.row] < m.rowLen(m.row)-1 {
			m.cursors[m.row]++
		}

	case key.Matches(msg, m.keys.NextRow):
		m.row = (m.row + 1) % shopRowCount

	case key.Matches(msg, m.keys.PrevRow):
		m.row = (m.row + shopRowCount - 1) % shopRowCount

	case key.Matches(msg, m.keys.Select):
		m.selectCard()

	case key.Matches(msg, m.keys.Clear):
		m.removeCard()

	case key.Matches(msg, m.keys.Reroll):
		m.game.Shop.Reroll()
		m.held = nil
		m.setStatus("Fresh food on the counter.", nil)

	case key.Matches(msg, m.keys.LunchTime):
		if !m.game.Shop.Ready() {
			m.setStatus("", errors.New("put food on the tray and a kid in line first"))
			return m, nil
		}
		return m, replace(ScreenBattle, m.game.LunchTime())
	}

	m.clampCursors()
	return m, nil
}

// selectCard picks up or drops a card depending on what is held.
func (m *ShopModel) selectCard() {
	cur := m.cursors[m.row]
	s := m.game.Shop

	switch m.row {
	case rowOffers:
		if cur < m.rowLen(rowOffers) {
			m.held = &held{row: rowOffers, index: cur}
			m.row = rowTray
			m.setStatus("Pick a tray slot.", nil)
		}

	case rowTray:
		switch {
		case m.held != nil && m.held.row == rowOffers:
			err := s.Place(m.held.index, cur)
			if err == nil {
				m.held = nil
			}
			m.setStatus("Placed.", err)
		case m.held != nil && m.held.row == rowTray:
			err := s.Swap(m.held.index, cur)
			m.held = nil
			m.setStatus("Swapped.", err)
		case s.Tray()[cur] != nil:
			m.held = &held{row: rowTray, index: cur}
			m.setStatus("Pick a slot to swap with.", nil)
		}

	case rowKidOffers:
		m.setStatus("Drafted.", s.DraftKid(cur))
	}
}

// removeCard clears a tray slot or dismisses a kid.
func (m *ShopModel) removeCard() {
	cur := m.cursors[m.row]
	switch m.row {
	case rowTray:
		m.setStatus("Tossed.", m.game.Shop.Clear(cur))
	case rowLine:
		m.setStatus("Sent back to class.", m.game.Shop.DismissKid(cur))
	}
	m.held = nil
}

// mark returns the highlight of a card in the shop grid.
func (m ShopModel) mark(r shopRow, i int) cardMark {
	if m.held != nil && m.held.row == r && m.held.index == i {
		return markHeld
	}
	if m.row == r && m.cursors[r] == i {
		return markCursor
	}
	return markNone
}

// View renders the shop.
func (m ShopModel) View() string {
	var b strings.Builder
	s := m.game.Shop

	b.WriteString(titleStyle.Render("SHOP"))
	b.WriteString("   ")
	b.WriteString(mutedStyle.Render(m.game.Run.String()))
	b.WriteString("\n\n")

	if m.game.Run.Over() {
		msg := "Out of health. The run is over."
		if m.game.Run.Won() {
			msg = "Every trophy collected. You run the cafeteria!"
		}
		b.WriteString(titleStyle.Render(msg))
		b.WriteString("\n\n")
		b.WriteString(renderHelp("enter/esc: back to menu"))
		return b.String()
	}

	var offers []string
	for i, f := range s.Offers() {
		offers = append(offers, renderFood(&f, 0, m.mark(rowOffers, i)))
	}
	m.writeSection(&b, rowOffers, offers, "Sold out. Press r to reroll.")

	var tray []string
	for i, f := range s.Tray() {
		tray = append(tray, renderFood(f, i+1, m.mark(rowTray, i)))
	}
	m.writeSection(&b, rowTray, tray, "")

	var kidOffers []string
	for i, k := range s.KidOffers() {
		kidOffers = append(kidOffers, renderKid(k, m.mark(rowKidOffers, i)))
	}
	m.writeSection(&b, rowKidOffers, kidOffers, "Nobody else is hungry. Press r to reroll.")

	var line []string
	for i, k := range s.Line() {
		line = append(line, renderKid(k, m.mark(rowLine, i)))
	}
	m.writeSection(&b, rowLine, line, "No kids drafted yet.")

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

func (m ShopModel) writeSection(b *strings.Builder, r shopRow, rendered []string, empty string) {
	label := r.String()
	if m.row == r {
		label = "> " + label
	} else {
		label = "  " + label
	}
	b.WriteString(labelStyle.Render(label))
	b.WriteString("\n")

	if len(rendered) == 0 {
		b.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  " + empty))
	} else {
		b.WriteString(renderRow(rendered))
	}
	b.WriteString("\n")
}
