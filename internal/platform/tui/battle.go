package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/loopyfoods/internal/battle"
	"github.com/vovakirdan/loopyfoods/internal/telemetry"
)

// logLines is how many bites the battle log shows.
const logLines = 6

// BattleModel is the Bubble Tea model for watching a battle play out.
type BattleModel struct {
	game   *Game
	params BattleParams
	state  battle.State

	interval time.Duration
	autoPlay bool
	gen      uint64 // Bumped whenever auto-play stops; older ticks are dropped

	tracer   trace.Tracer
	span     trace.Span
	spanOpen bool

	finished bool
	status   string
	width    int
	keys     BattleKeyMap
	help     help.Model
}

// NewBattleModel starts a battle between the two teams in params.
// A nil tracer disables tracing.
func NewBattleModel(game *Game, params BattleParams, interval time.Duration, tracer trace.Tracer, width int) BattleModel {
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}
	if interval <= 0 {
		interval = time.Second
	}
	h := help.New()
	h.Width = width

	m := BattleModel{
		game:     game,
		params:   params,
		state:    battle.New(params.Player, params.Opponent),
		interval: interval,
		gen:      uint64(time.Now().UnixNano()), // Ticks left over from an earlier battle never match
		tracer:   tracer,
		width:    width,
		keys:     DefaultBattleKeyMap(),
		help:     h,
	}
	m.openSpan()
	return m
}

func (m BattleModel) mode() string {
	if m.params.Ranked {
		return "ranked"
	}
	return "practice"
}

// openSpan starts tracing the current state. A battle that is already over
// is closed right away.
func (m *BattleModel) openSpan() {
	_, m.span = telemetry.StartBattle(context.Background(), m.tracer, m.state, m.mode())
	m.spanOpen = true
	if m.state.Ended {
		m.closeSpan()
	}
}

func (m *BattleModel) closeSpan() {
	if !m.spanOpen {
		return
	}
	telemetry.EndBattle(m.span, m.state)
	m.spanOpen = false
}

// State returns the battle as currently shown.
func (m BattleModel) State() battle.State {
	return m.state
}

// AutoPlaying reports whether fast-forward is running.
func (m BattleModel) AutoPlaying() bool {
	return m.autoPlay
}

// Init initializes the battle model.
func (m BattleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the battle screen.
func (m BattleModel) Update(msg tea.Msg) (BattleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case autoPlayTickMsg:
		if !m.autoPlay || msg.Gen != m.gen {
			return m, nil
		}
		m.step()
		if m.state.Ended {
			m.stopAutoPlay()
			return m, nil
		}
		return m, autoPlayCmd(m.interval, m.gen)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m BattleModel) handleKey(msg tea.KeyMsg) (BattleModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopAutoPlay()
		m.closeSpan()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Step):
		if m.autoPlay {
			m.stopAutoPlay()
		}
		m.step()

	case key.Matches(msg, m.keys.FastForward):
		if m.autoPlay {
			m.stopAutoPlay()
			return m, nil
		}
		if m.state.Ended {
			return m, nil
		}
		m.autoPlay = true
		return m, autoPlayCmd(m.interval, m.gen)

	case key.Matches(msg, m.keys.Reset):
		m.stopAutoPlay()
		m.closeSpan()
		m.state = battle.Reduce(m.state, battle.Reset{})
		m.status = "Trays refilled."
		m.openSpan()

	case key.Matches(msg, m.keys.Continue):
		return m.leave()

	case key.Matches(msg, m.keys.Back):
		if m.params.Ranked && !m.state.Ended {
			m.status = "Finish lunch first. Press f to fast-forward."
			return m, nil
		}
		return m.leave()
	}

	return m, nil
}

// leave hands an ended battle back to the run and closes the screen.
func (m BattleModel) leave() (BattleModel, tea.Cmd) {
	if !m.params.Ranked {
		m.stopAutoPlay()
		m.closeSpan()
		return m, back
	}
	if !m.state.Ended || m.finished {
		return m, nil
	}

	m.finished = true
	if m.game != nil {
		m.game.Finish(m.state, m.params)
	}
	return m, replace(ScreenShop, nil)
}

// step applies one battle step and traces its bites.
func (m *BattleModel) step() {
	if m.state.Ended {
		return
	}
	m.state = battle.Reduce(m.state, battle.Step{})
	m.status = ""
	if m.spanOpen {
		telemetry.StepEvent(m.span, m.state)
	}
	if m.state.Ended {
		m.closeSpan()
	}
}

// stopAutoPlay invalidates any pending tick.
func (m *BattleModel) stopAutoPlay() {
	m.autoPlay = false
	m.gen++
}

// View renders the battle.
func (m BattleModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LUNCH TIME"))
	b.WriteString("   ")
	if m.game != nil && m.params.Ranked {
		b.WriteString(mutedStyle.Render(m.game.Run.String()))
	} else {
		b.WriteString(mutedStyle.Render("practice"))
	}
	b.WriteString("\n\n")

	b.WriteString(renderSide("Opponent", m.state.Opponent, m.state.OpponentStars))
	b.WriteString("\n")
	b.WriteString(renderSide("You", m.state.Player, m.state.PlayerStars))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Step %d", m.state.Steps)))
	if m.autoPlay {
		b.WriteString(mutedStyle.Render("  >> fast-forward"))
	}
	b.WriteString("\n")

	entries := m.state.Log
	if len(entries) > logLines {
		entries = entries[len(entries)-logLines:]
	}
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("Nobody has eaten yet."))
		b.WriteString("\n")
	}
	for _, e := range entries {
		b.WriteString(mutedStyle.Render(battle.FormatEntry(e)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.state.Ended {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %d - %d", m.state.Winner, m.state.PlayerStars, m.state.OpponentStars)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(renderHelp(m.help.View(m.keys)))

	return b.String()
}

// renderSide draws one team's tray and line. Eaten food and kids who have
// left the line are faded; the next bite is highlighted.
func renderSide(label string, side battle.Side, score int) string {
	var b strings.Builder

	b.WriteString(labelStyle.Render(fmt.Sprintf("%s  %d stars", label, score)))
	b.WriteString("\n")

	if len(side.Tray) == 0 && len(side.Kids) == 0 {
		b.WriteString(mutedStyle.Render("  Nobody showed up."))
		b.WriteString("\n")
		return b.String()
	}

	tray := make([]string, 0, len(side.Tray))
	for i, f := range side.Tray {
		mark := markNone
		switch {
		case side.Consumed[i]:
			mark = markEaten
		case !side.Done && i == side.SlotCursor:
			mark = markCursor
		}
		tray = append(tray, renderFood(f, i+1, mark))
	}
	b.WriteString(renderRow(tray))
	b.WriteString("\n")

	line := make([]string, 0, len(side.Kids))
	for i, k := range side.Kids {
		mark := markNone
		switch {
		case side.Done || i < side.KidCursor:
			mark = markEaten
		case i == side.KidCursor:
			mark = markCursor
		}
		line = append(line, renderKid(k, mark))
	}
	b.WriteString(renderRow(line))
	b.WriteString("\n")

	return b.String()
}
