package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/loopyfoods/internal/config"
	"github.com/vovakirdan/loopyfoods/internal/platform/tui"
	"github.com/vovakirdan/loopyfoods/internal/telemetry"
)

var flagLength string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run in the shop. Buy food for your tray, draft kids into the
lunch line, then press g for Lunch Time to battle a team another player
saved earlier.

Controls (shop):
  Left/Right   - Move along a row
  Tab/Up/Down  - Switch rows
  Enter        - Pick up / place a card, draft a kid
  X            - Toss food or dismiss a kid
  R            - Reroll the counter
  G            - Lunch Time!

Controls (battle):
  N/Space      - Step
  F            - Fast-forward on/off
  R            - Restart the battle
  Enter        - Continue after the battle

Ctrl+S saves a text screenshot to ~/.loopyfoods/screenshots.

Run length options:
  short    - 3 health, 5 trophies to win
  standard - values from the configuration (default)
  long     - 8 health, 15 trophies to win

Examples:
  loopyfoods play
  loopyfoods play --length short
  loopyfoods play --seed 42 --db ./loopy.db`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLength, "length", "", "Run length preset: short, standard, long")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	preset, err := config.ParseRunPreset(flagLength)
	if err != nil {
		return err
	}
	config.ApplyRunPreset(&cfg, preset)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger := newLogger("loopyfoods")

	store, err := openStore(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open snapshot database: %v\n", err)
		// Continue without storage - the run still works against empty tables
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var shots string
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		shots = filepath.Join(home, ".loopyfoods", "screenshots")
	}

	if err := tui.Run(tui.Deps{
		Store:         store,
		Config:        cfg,
		Logger:        logger,
		Tracer:        telemetry.Tracer("tui"),
		Seed:          flagSeed,
		Width:         width,
		Height:        height,
		ScreenshotDir: shots,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
