package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/loopyfoods/internal/config"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	return NewSessionModel(Deps{
		Config:        config.DefaultConfig(),
		Seed:          1,
		Width:         100,
		Height:        40,
		ScreenshotDir: t.TempDir(),
	})
}

// send feeds msg to the session and, when the reply is a navigation
// request, feeds that too.
func send(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(SessionModel)
	if cmd == nil {
		return m
	}
	if nav, ok := cmd().(navMsg); ok {
		next, _ = m.Update(nav)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionRoundTrip(t *testing.T) {
	m := newTestSession(t)
	if m.Screen() != ScreenMenu {
		t.Fatalf("session should open on the menu, got %v", m.Screen())
	}
	if !strings.Contains(m.View(), "Start Run") {
		t.Error("fresh session should offer to start a run")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != ScreenShop {
		t.Fatalf("Start Run should open the shop, got %v", m.Screen())
	}

	g := m.Game()
	if err := g.Shop.Place(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.Shop.DraftKid(0); err != nil {
		t.Fatal(err)
	}

	m = send(t, m, runeKey("g"))
	if m.Screen() != ScreenBattle {
		t.Fatalf("Lunch Time should open the battle, got %v", m.Screen())
	}
	if m.nav.Depth() != 2 {
		t.Errorf("battle should replace the shop, depth %d", m.nav.Depth())
	}

	for i := 0; i < 20 && !m.battle.State().Ended; i++ {
		m = send(t, m, runeKey("n"))
	}
	if !m.battle.State().Ended {
		t.Fatal("battle did not end")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != ScreenShop {
		t.Fatalf("continue should return to the shop, got %v", m.Screen())
	}
	if g.Run.Round != 2 {
		t.Errorf("round = %d, want 2", g.Run.Round)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != ScreenMenu {
		t.Fatalf("esc should return to the menu, got %v", m.Screen())
	}
	if !strings.Contains(m.View(), "Continue Run") {
		t.Error("menu should offer to continue the run")
	}
}

func TestSessionNewRun(t *testing.T) {
	m := newTestSession(t)
	old := m.Game()
	old.Run.Round = 4

	m = send(t, m, newRunMsg{})
	if m.Game() == old || m.Game().Run.Round != 1 {
		t.Error("newRunMsg should start a fresh run")
	}
}

func TestSessionTeamsAndBack(t *testing.T) {
	m := newTestSession(t)

	m = send(t, m, navigateMsg{Screen: ScreenTeams})
	if m.Screen() != ScreenTeams {
		t.Fatalf("screen = %v, want teams", m.Screen())
	}
	if !strings.Contains(m.View(), "No teams saved yet") {
		t.Error("team manager without a store should be empty")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != ScreenMenu {
		t.Errorf("esc should go back to the menu, got %v", m.Screen())
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)

	next, cmd := m.Update(runeKey("q"))
	m = next.(SessionModel)
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestSessionScreenshot(t *testing.T) {
	m := newTestSession(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.deps.ScreenshotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "menu_") {
		t.Fatalf("screenshots = %v", entries)
	}

	data, err := os.ReadFile(m.deps.ScreenshotDir + "/" + entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Error("screenshot should be plain text")
	}
	if !strings.Contains(string(data), "Start Run") {
		t.Error("screenshot should capture the menu")
	}
}
