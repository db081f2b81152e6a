package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/loopyfoods/internal/cards"
)

const cardWidth = 14

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Height(3).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	emptySlotStyle = cardStyle.
			Foreground(lipgloss.Color("240"))

	cursorBorder = lipgloss.Color("229")
	heldBorder   = lipgloss.Color("57")
)

// typeColors maps food types to badge colors.
var typeColors = map[cards.FoodType]lipgloss.Color{
	cards.Sweet:  lipgloss.Color("13"),
	cards.Meat:   lipgloss.Color("9"),
	cards.Veggie: lipgloss.Color("10"),
	cards.Starch: lipgloss.Color("11"),
	cards.Gross:  lipgloss.Color("245"),
}

// cardMark selects the border highlight of a rendered card.
type cardMark int

const (
	markNone cardMark = iota
	markCursor
	markHeld
	markEaten
)

// typeBadge renders a food type in its color.
func typeBadge(ft cards.FoodType) string {
	return lipgloss.NewStyle().Foreground(typeColors[ft]).Render(string(ft))
}

// stars renders a star value as a short gauge.
func stars(n int) string {
	return strings.Repeat("*", n)
}

func markStyle(s lipgloss.Style, mark cardMark) lipgloss.Style {
	switch mark {
	case markCursor:
		return s.BorderForeground(cursorBorder)
	case markHeld:
		return s.BorderForeground(heldBorder).BorderStyle(lipgloss.DoubleBorder())
	case markEaten:
		return s.Faint(true).Strikethrough(true)
	}
	return s
}

// renderFood renders a food card with its catalog color, or an empty slot.
func renderFood(f *cards.Food, slot int, mark cardMark) string {
	if f == nil {
		label := "empty"
		if slot > 0 {
			label = fmt.Sprintf("slot %d", slot)
		}
		return markStyle(emptySlotStyle, mark).Render(label)
	}

	style := cardStyle
	if f.Color != "" {
		style = style.Foreground(lipgloss.Color(f.Color))
	}
	body := fmt.Sprintf("%s\n%s %s", truncate(f.Title, cardWidth-2), typeBadge(f.FoodType), stars(f.BaseStarValue))
	return markStyle(style, mark).Render(body)
}

// renderKid renders a kid card.
func renderKid(k cards.Kid, mark cardMark) string {
	body := fmt.Sprintf("%s\neats %s", truncate(k.Title, cardWidth-2), typeBadge(k.FoodType))
	return markStyle(cardStyle, mark).Render(body)
}

// renderRow lays out rendered cards side by side.
func renderRow(cardsRendered []string) string {
	if len(cardsRendered) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cardsRendered...)
}

// renderHelp renders a help bar line.
func renderHelp(view string) string {
	return helpStyle.Render(view)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
