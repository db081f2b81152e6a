package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/loopyfoods/internal/config"
	"github.com/vovakirdan/loopyfoods/internal/storage"
)

// Deps are the collaborators a session runs against.
type Deps struct {
	Store  *storage.Store // Optional; nil plays without persistence
	Config config.Config
	Logger *log.Logger
	Tracer trace.Tracer

	// Seed drives the shop. Zero picks one from the clock.
	Seed int64

	Width  int
	Height int

	// ScreenshotDir receives ctrl+s captures. Empty disables them.
	ScreenshotDir string
}

// SessionModel manages the full flow of one player: menu, shop, battle and
// team manager, switched through a Navigator stack.
type SessionModel struct {
	deps Deps
	nav  Navigator
	game *Game
	runs int64

	menu   MenuModel
	shop   ShopModel
	battle BattleModel
	teams  TeamsModel

	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a session that opens on the main menu.
func NewSessionModel(deps Deps) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Seed == 0 {
		deps.Seed = time.Now().UnixNano()
	}

	m := SessionModel{
		deps:   deps,
		nav:    NewNavigator(ScreenMenu),
		width:  deps.Width,
		height: deps.Height,
	}
	m.game = m.newGame()
	m.enter()
	return m
}

func (m *SessionModel) newGame() *Game {
	g := NewGame(m.deps.Config.Game, m.deps.Store, m.deps.Seed+m.runs, m.deps.Logger)
	m.runs++
	return g
}

// Game returns the run in progress.
func (m SessionModel) Game() *Game {
	return m.game
}

// Screen returns the screen on top of the stack.
func (m SessionModel) Screen() Screen {
	return m.nav.Current().Screen
}

// enter builds a fresh model for the screen on top of the stack.
func (m *SessionModel) enter() {
	entry := m.nav.Current()
	switch entry.Screen {
	case ScreenShop:
		m.shop = NewShopModel(m.game, m.width)
	case ScreenBattle:
		params, _ := entry.Params.(BattleParams)
		m.battle = NewBattleModel(m.game, params, m.deps.Config.Battle.FastForwardInterval, m.deps.Tracer, m.width)
	case ScreenTeams:
		m.teams = NewTeamsModel(m.game, m.deps.Store, m.width, m.height)
	default:
		m.menu = NewMenuModel(m.deps.Store, m.game.Started(), m.width)
	}
	m.deps.Logger.Debug("screen", "name", entry.Screen, "depth", m.nav.Depth())
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update routes navigation requests and hands everything else to the
// current screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case navMsg:
		m.nav = m.nav.apply(msg)
		m.enter()
		return m, nil

	case newRunMsg:
		m.game = m.newGame()
		m.deps.Logger.Info("new run", "seed", m.deps.Seed+m.runs-1)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
	}

	cmd := m.updateScreen(msg)
	if k, ok := msg.(tea.KeyMsg); ok && cmd != nil {
		// Every screen binds q and ctrl+c to quit.
		if s := k.String(); s == "q" || s == "ctrl+c" {
			m.quitting = true
		}
	}
	return m, cmd
}

func (m *SessionModel) updateScreen(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.Screen() {
	case ScreenShop:
		m.shop, cmd = m.shop.Update(msg)
	case ScreenBattle:
		m.battle, cmd = m.battle.Update(msg)
	case ScreenTeams:
		m.teams, cmd = m.teams.Update(msg)
	default:
		m.menu, cmd = m.menu.Update(msg)
	}
	return cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.Screen() {
	case ScreenShop:
		return m.shop.View()
	case ScreenBattle:
		return m.battle.View()
	case ScreenTeams:
		return m.teams.View()
	default:
		return m.menu.View()
	}
}

// saveScreenshot writes the current screen as plain text.
func (m SessionModel) saveScreenshot() {
	if m.deps.ScreenshotDir == "" {
		return
	}
	if err := os.MkdirAll(m.deps.ScreenshotDir, 0o755); err != nil {
		m.deps.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.Screen(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.deps.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(ansi.Strip(m.View())), 0o600); err != nil {
		m.deps.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.deps.Logger.Info("screenshot saved", "path", path)
}

// Run starts a local session with the given dependencies.
func Run(deps Deps) error {
	p := tea.NewProgram(
		NewSessionModel(deps),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
