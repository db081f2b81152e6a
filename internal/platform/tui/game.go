package tui

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/loopyfoods/internal/battle"
	"github.com/vovakirdan/loopyfoods/internal/cards"
	"github.com/vovakirdan/loopyfoods/internal/config"
	"github.com/vovakirdan/loopyfoods/internal/run"
	"github.com/vovakirdan/loopyfoods/internal/shop"
	"github.com/vovakirdan/loopyfoods/internal/storage"
)

// BattleParams are the inputs of the battle screen.
type BattleParams struct {
	Player     cards.Team
	Opponent   cards.Team
	OpponentID string // Snapshot the opponent came from, empty if none
	Ranked     bool   // Result counts toward the run
}

// Game is the state of one player's run shared by the shop and battle screens.
type Game struct {
	Run  run.Run
	Shop *shop.Shop

	cfg    config.GameConfig
	rng    *rand.Rand
	store  *storage.Store
	logger *log.Logger
}

// NewGame starts a fresh run. A nil store plays without persistence.
func NewGame(cfg config.GameConfig, store *storage.Store, seed int64, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := rand.New(rand.NewSource(seed))
	return &Game{
		Run:    run.New(cfg),
		Shop:   shop.New(cfg, rng.Int63()),
		cfg:    cfg,
		rng:    rng,
		store:  store,
		logger: logger,
	}
}

// Started reports whether the run has progressed past an untouched shop.
func (g *Game) Started() bool {
	t := g.Shop.Team()
	return g.Run.Round > 1 || t.Tray.Filled() > 0 || len(t.Kids) > 0
}

// LunchTime snapshots the player's team and draws an opponent from the
// snapshot pool. Storage problems are logged and the battle goes ahead
// against an empty opponent.
func (g *Game) LunchTime() BattleParams {
	params := BattleParams{
		Player: g.Shop.Team(),
		Ranked: true,
	}
	if g.store == nil {
		return params
	}

	// Draw before saving so a fresh snapshot never faces itself.
	opp, err := g.store.RandomOpponent(g.Run.ID, g.rng)
	if err != nil {
		g.logger.Warn("could not draw opponent", "error", err)
	} else if opp != nil {
		params.Opponent = opp.Team()
		params.OpponentID = opp.ID
	}

	snap, err := g.store.SaveSnapshot(storage.SnapshotInput{
		Round:    g.Run.Round,
		Health:   g.Run.Health,
		Trophies: g.Run.Trophies,
		Team:     params.Player,
	})
	if err != nil {
		g.logger.Warn("could not save team snapshot", "error", err)
	} else {
		g.Run.ID = snap.ID
	}

	return params
}

// Finish applies a finished battle to the run, records it, and restocks
// the shop for the next round.
func (g *Game) Finish(s battle.State, params BattleParams) {
	if !s.Ended || !params.Ranked {
		return
	}

	if g.store != nil {
		if _, err := g.store.SaveBattleResult(storage.ResultFromState(s, params.OpponentID, g.Run.Round)); err != nil {
			g.logger.Warn("could not save battle result", "error", err)
		}
	}

	g.Run = g.Run.Apply(s.Winner)
	g.Shop.Reroll()
	g.logger.Debug("round finished", "winner", s.Winner, "run", g.Run.String())
}
