package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/loopyfoods.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			TraySize:       5,
			ShopOffers:     5,
			MaxKids:        5,
			MaxHealth:      5,
			StartingHealth: 5,
			TrophiesToWin:  10,
		},
		Battle: BattleConfig{
			FastForwardInterval: time.Second,
		},
		Storage: StorageConfig{
			Path:         "~/.loopyfoods/loopyfoods.db",
			MaxSnapshots: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
