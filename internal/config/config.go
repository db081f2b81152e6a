// Package config provides YAML-based configuration loading for loopyfoods:
// game rules, battle pacing, storage location, and team files.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Battle  BattleConfig  `yaml:"battle"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig holds the team-building and run rules.
type GameConfig struct {
	TraySize       int `yaml:"tray_size"`
	ShopOffers     int `yaml:"shop_offers"`
	MaxKids        int `yaml:"max_kids"`
	MaxHealth      int `yaml:"max_health"`
	StartingHealth int `yaml:"starting_health"`
	TrophiesToWin  int `yaml:"trophies_to_win"`
}

// BattleConfig controls battle pacing.
type BattleConfig struct {
	FastForwardInterval time.Duration `yaml:"fast_forward_interval"` // Delay between auto-play steps
}

// MarshalYAML writes durations as "1s" rather than nanoseconds.
func (b BattleConfig) MarshalYAML() (any, error) {
	return struct {
		FastForwardInterval string `yaml:"fast_forward_interval"`
	}{b.FastForwardInterval.String()}, nil
}

// StorageConfig locates the snapshot database.
type StorageConfig struct {
	Path         string `yaml:"path"`
	MaxSnapshots int    `yaml:"max_snapshots"`
}

// Validate reports every invalid value in the configuration.
func (c Config) Validate() error {
	var errs []error

	if c.Game.TraySize < 1 {
		errs = append(errs, fmt.Errorf("game.tray_size must be positive, got %d", c.Game.TraySize))
	}
	if c.Game.ShopOffers < 1 {
		errs = append(errs, fmt.Errorf("game.shop_offers must be positive, got %d", c.Game.ShopOffers))
	}
	if c.Game.MaxKids < 1 {
		errs = append(errs, fmt.Errorf("game.max_kids must be positive, got %d", c.Game.MaxKids))
	}
	if c.Game.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("game.max_health must be positive, got %d", c.Game.MaxHealth))
	}
	if c.Game.StartingHealth < 1 || c.Game.StartingHealth > c.Game.MaxHealth {
		errs = append(errs, fmt.Errorf("game.starting_health must be in 1..%d, got %d", c.Game.MaxHealth, c.Game.StartingHealth))
	}
	if c.Game.TrophiesToWin < 1 {
		errs = append(errs, fmt.Errorf("game.trophies_to_win must be positive, got %d", c.Game.TrophiesToWin))
	}
	if c.Battle.FastForwardInterval <= 0 {
		errs = append(errs, fmt.Errorf("battle.fast_forward_interval must be positive, got %s", c.Battle.FastForwardInterval))
	}
	if c.Storage.MaxSnapshots < 1 {
		errs = append(errs, fmt.Errorf("storage.max_snapshots must be positive, got %d", c.Storage.MaxSnapshots))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
