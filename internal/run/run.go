// Package run tracks a player's progression across battles: which round
// they are on, how much health is left, and how many trophies they hold.
package run

import (
	"fmt"

	"github.com/vovakirdan/loopyfoods/internal/battle"
	"github.com/vovakirdan/loopyfoods/internal/config"
)

// Run is the progression state of one player.
type Run struct {
	ID       string // Snapshot ID of the player's team, empty until first saved
	Round    int
	Health   int
	Trophies int

	MaxHealth     int
	TrophiesToWin int
}

// New starts a run at round 1 with the configured health.
func New(cfg config.GameConfig) Run {
	return Run{
		Round:         1,
		Health:        cfg.StartingHealth,
		MaxHealth:     cfg.MaxHealth,
		TrophiesToWin: cfg.TrophiesToWin,
	}
}

// Apply records a battle outcome and advances to the next round.
// A loss costs one health, a win earns a trophy, a tie changes neither.
// Applying to a finished run returns it unchanged.
func (r Run) Apply(w battle.Winner) Run {
	if r.Over() || w == battle.WinnerUndetermined {
		return r
	}

	switch w {
	case battle.WinnerPlayer:
		r.Trophies = min(r.Trophies+1, r.TrophiesToWin)
	case battle.WinnerOpponent:
		r.Health = max(r.Health-1, 0)
	}
	r.Round++
	return r
}

// Over reports whether the run has ended, by victory or by running out of health.
func (r Run) Over() bool {
	return r.Won() || r.Health <= 0
}

// Won reports whether the player collected every trophy.
func (r Run) Won() bool {
	return r.TrophiesToWin > 0 && r.Trophies >= r.TrophiesToWin
}

// String renders the run counters the way the team manager shows them.
func (r Run) String() string {
	return fmt.Sprintf("R%d  HP %d/%d  TR %d/%d", r.Round, r.Health, r.MaxHealth, r.Trophies, r.TrophiesToWin)
}
