package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/loopyfoods/internal/battle"
	"github.com/vovakirdan/loopyfoods/internal/cards"
	"github.com/vovakirdan/loopyfoods/internal/config"
	"github.com/vovakirdan/loopyfoods/internal/storage"
	"github.com/vovakirdan/loopyfoods/internal/telemetry"
)

var (
	flagPlayer      string
	flagOpponent    string
	flagOpponentID  string
	flagFastForward bool
	flagInterval    time.Duration
	flagJSON        bool
	flagNoSave      bool
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Resolve a battle between two teams",
	Long: `Resolve a battle and print the bite log.

The player team comes from a YAML team file. The opponent is either another
team file, a saved snapshot by ID, or a random snapshot from the database.
With no snapshots saved the opponent table is empty.

Team file format:
  tray:
    - Tater Tots
    - null            # empty slot
    - Hot Dog Roller
  kids:
    - Stacker Seth
    - Scooter Sage

Examples:
  loopyfoods battle --player mine.yaml
  loopyfoods battle --player mine.yaml --opponent theirs.yaml
  loopyfoods battle --player mine.yaml --fast-forward --interval 250ms
  loopyfoods battle --player mine.yaml --json > bites.jsonl`,
	RunE: runBattle,
}

func init() {
	battleCmd.Flags().StringVarP(&flagPlayer, "player", "p", "", "Player team file (required)")
	battleCmd.Flags().StringVarP(&flagOpponent, "opponent", "o", "", "Opponent team file")
	battleCmd.Flags().StringVar(&flagOpponentID, "opponent-id", "", "Saved snapshot to battle")
	battleCmd.Flags().BoolVarP(&flagFastForward, "fast-forward", "f", false, "Play steps on a timer instead of all at once")
	battleCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Fast-forward interval (default from config)")
	battleCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the bite log as JSON lines")
	battleCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the result")
	_ = battleCmd.MarkFlagRequired("player")
	battleCmd.MarkFlagsMutuallyExclusive("opponent", "opponent-id")
}

// battleOptions drive one command-line battle.
type battleOptions struct {
	Player     cards.Team
	Opponent   cards.Team
	OpponentID string

	FastForward bool
	Interval    time.Duration
	JSON        bool

	Tracer trace.Tracer
	Logger *log.Logger
}

func runBattle(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger("loopyfoods")

	player, err := config.LoadTeam(flagPlayer)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoSave || flagOpponent == "" {
		store, err = openStore(cfg, logger)
		if err != nil {
			logger.Warn("could not open snapshot database", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	opts := battleOptions{
		Player:      player,
		FastForward: flagFastForward,
		Interval:    flagInterval,
		JSON:        flagJSON,
		Tracer:      telemetry.Tracer("cli"),
		Logger:      logger,
	}
	if opts.Interval <= 0 {
		opts.Interval = cfg.Battle.FastForwardInterval
	}

	if err := pickOpponent(&opts, store); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	final, err := resolveBattle(ctx, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if store != nil && !flagNoSave {
		if _, err := store.SaveBattleResult(storage.ResultFromState(final, opts.OpponentID, 0)); err != nil {
			logger.Warn("could not save battle result", "error", err)
		}
	}
	return nil
}

// pickOpponent fills in the opponent from a file, a snapshot ID or the pool.
func pickOpponent(opts *battleOptions, store *storage.Store) error {
	switch {
	case flagOpponent != "":
		team, err := config.LoadTeam(flagOpponent)
		if err != nil {
			return err
		}
		opts.Opponent = team

	case flagOpponentID != "":
		if store == nil {
			return fmt.Errorf("snapshot %s: no database available", flagOpponentID)
		}
		snap, err := store.SnapshotByID(flagOpponentID)
		if err != nil {
			return err
		}
		if snap == nil {
			return fmt.Errorf("snapshot %s not found", flagOpponentID)
		}
		opts.Opponent, opts.OpponentID = snap.Team(), snap.ID

	case store != nil:
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		snap, err := store.RandomOpponent("", rand.New(rand.NewSource(seed)))
		if err != nil {
			opts.Logger.Warn("could not draw opponent", "error", err)
		} else if snap != nil {
			opts.Opponent, opts.OpponentID = snap.Team(), snap.ID
		}
	}

	if opts.OpponentID == "" && opts.Opponent.Empty() {
		opts.Logger.Info("no opponent found; the other table is empty")
	}
	return nil
}

// resolveBattle plays a battle to the end and writes the log to w.
// In fast-forward mode steps are played by a Driver and printed as they land.
func resolveBattle(ctx context.Context, opts battleOptions, w io.Writer) (battle.State, error) {
	if opts.Tracer == nil {
		opts.Tracer = telemetry.NoopTracer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	state := battle.New(opts.Player, opts.Opponent)
	_, span := telemetry.StartBattle(ctx, opts.Tracer, state, "cli")

	onStep := func(s battle.State) {
		telemetry.StepEvent(span, s)
		if !opts.JSON {
			for _, e := range s.EntriesAt(s.Steps) {
				fmt.Fprintln(w, battle.FormatEntry(e))
			}
		}
	}

	var err error
	if opts.FastForward {
		d := battle.NewDriver(state, opts.Interval,
			battle.WithOnChange(onStep),
			battle.WithLogger(opts.Logger),
		)
		d.StartAutoPlay()
		state, err = d.Wait(ctx)
		d.Close()
	} else {
		for !state.Ended {
			state = battle.Reduce(state, battle.Step{})
			onStep(state)
		}
	}

	telemetry.EndBattle(span, state)
	if err != nil {
		return state, fmt.Errorf("battle interrupted after %d steps: %w", state.Steps, err)
	}

	if opts.JSON {
		if err := battle.WriteJSONLines(w, state.Log); err != nil {
			return state, err
		}
		return state, nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "You %d - %d Opponent   %s after %d steps\n",
		state.PlayerStars, state.OpponentStars, state.Winner, state.Steps)
	return state, nil
}
