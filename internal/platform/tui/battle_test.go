package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vovakirdan/loopyfoods/internal/battle"
	"github.com/vovakirdan/loopyfoods/internal/cards"
	"github.com/vovakirdan/loopyfoods/internal/config"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// twoStepTeam eats Tater Tots then a Hot Dog Roller: 8 stars in 2 steps.
func twoStepTeam() cards.Team {
	starch, _ := cards.KidByTitle("Stacker Seth")
	meat, _ := cards.KidByTitle("Scooter Sage")
	return cards.Team{
		Tray: cards.Tray{cards.FoodByTitle("Tater Tots"), cards.FoodByTitle("Hot Dog Roller")},
		Kids: []cards.Kid{starch, meat},
	}
}

func newTestBattle(t *testing.T, ranked bool) (BattleModel, *Game, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { tp.Shutdown(t.Context()) })

	g := NewGame(config.DefaultConfig().Game, nil, 1, nil)
	params := BattleParams{Player: twoStepTeam(), Ranked: ranked}
	m := NewBattleModel(g, params, 10*time.Millisecond, tp.Tracer("test"), 80)
	return m, g, rec
}

func TestBattleManualStep(t *testing.T) {
	m, _, rec := newTestBattle(t, true)

	m, _ = m.Update(runeKey("n"))
	if m.State().Steps != 1 || m.State().PlayerStars != 2 {
		t.Fatalf("after one step: steps %d stars %d", m.State().Steps, m.State().PlayerStars)
	}
	if len(rec.Ended()) != 0 {
		t.Error("span should stay open until the battle ends")
	}

	m, _ = m.Update(runeKey("n"))
	if !m.State().Ended || m.State().Winner != battle.WinnerPlayer {
		t.Fatalf("battle should be won after two steps, got %+v", m.State())
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if n := len(spans[0].Events()); n != 2 {
		t.Errorf("bite events = %d, want 2", n)
	}

	// Stepping a finished battle changes nothing.
	m, _ = m.Update(runeKey("n"))
	if m.State().Steps != 2 {
		t.Errorf("steps after end = %d, want 2", m.State().Steps)
	}
}

func TestBattleAutoPlay(t *testing.T) {
	m, _, _ := newTestBattle(t, true)

	m, cmd := m.Update(runeKey("f"))
	if !m.AutoPlaying() || cmd == nil {
		t.Fatal("fast-forward should schedule a tick")
	}
	gen := m.gen

	m, cmd = m.Update(autoPlayTickMsg{Gen: gen})
	if m.State().Steps != 1 || cmd == nil {
		t.Fatalf("tick should step and reschedule, steps %d", m.State().Steps)
	}

	m, cmd = m.Update(autoPlayTickMsg{Gen: gen})
	if !m.State().Ended || cmd != nil {
		t.Fatalf("final tick should end the battle and stop, ended %v", m.State().Ended)
	}
	if m.AutoPlaying() {
		t.Error("auto-play should stop once the battle ends")
	}

	m, cmd = m.Update(runeKey("f"))
	if m.AutoPlaying() || cmd != nil {
		t.Error("fast-forward on an ended battle should do nothing")
	}
}

func TestBattleStaleTickIgnored(t *testing.T) {
	m, _, _ := newTestBattle(t, true)

	m, _ = m.Update(runeKey("f"))
	stale := m.gen
	m, _ = m.Update(runeKey("f")) // stop

	m, cmd := m.Update(autoPlayTickMsg{Gen: stale})
	if m.State().Steps != 0 || cmd != nil {
		t.Error("tick from a stopped run must be dropped")
	}

	m, _ = m.Update(runeKey("f"))
	m, _ = m.Update(autoPlayTickMsg{Gen: stale})
	if m.State().Steps != 0 {
		t.Error("tick from an earlier run must not drive a new one")
	}
	m, _ = m.Update(autoPlayTickMsg{Gen: m.gen})
	if m.State().Steps != 1 {
		t.Error("tick from the current run should step")
	}
}

func TestBattleResetRestarts(t *testing.T) {
	m, _, rec := newTestBattle(t, true)

	m, _ = m.Update(runeKey("f"))
	m, _ = m.Update(autoPlayTickMsg{Gen: m.gen})
	gen := m.gen

	m, _ = m.Update(runeKey("r"))
	if m.State().Steps != 0 || m.State().PlayerStars != 0 || m.AutoPlaying() {
		t.Fatalf("reset should rebuild the battle and stop auto-play: %+v", m.State())
	}
	if m.gen == gen {
		t.Error("reset should invalidate pending ticks")
	}

	spans := rec.Ended()
	if len(spans) != 1 || spans[0].Status().Description != "battle interrupted" {
		t.Errorf("reset should end the interrupted span, got %d spans", len(spans))
	}
}

func TestBattleContinueFinishesRound(t *testing.T) {
	m, g, _ := newTestBattle(t, true)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || g.Run.Round != 1 {
		t.Fatal("continue before the end should be ignored")
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || !strings.Contains(m.View(), "Finish lunch first") {
		t.Error("leaving a ranked battle early should be refused")
	}

	m, _ = m.Update(runeKey("n"))
	m, _ = m.Update(runeKey("n"))

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("continue should navigate")
	}
	if msg, ok := cmd().(replaceMsg); !ok || msg.Screen != ScreenShop {
		t.Errorf("continue emitted %T, want replaceMsg to the shop", cmd())
	}
	if g.Run.Round != 2 || g.Run.Trophies != 1 {
		t.Errorf("run after win = %s", g.Run)
	}

	// A second press before navigation lands must not count the battle twice.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || g.Run.Round != 2 {
		t.Error("battle applied to the run twice")
	}
}

func TestPracticeBattleGoesBack(t *testing.T) {
	m, g, rec := newTestBattle(t, false)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("practice battles can be left at any time")
	}
	if _, ok := cmd().(backMsg); !ok {
		t.Error("leaving practice should go back")
	}
	if g.Run.Round != 1 {
		t.Error("practice battles must not touch the run")
	}
	if len(rec.Ended()) != 1 {
		t.Error("leaving should end the span")
	}
}

func TestBattleAgainstNobodyEndsImmediately(t *testing.T) {
	m := NewBattleModel(nil, BattleParams{Ranked: true}, 0, nil, 80)
	if !m.State().Ended || m.State().Winner != battle.WinnerTie {
		t.Errorf("empty battle = %+v", m.State())
	}
	if !strings.Contains(m.View(), "Nobody showed up") {
		t.Error("empty sides should be labeled")
	}
}
