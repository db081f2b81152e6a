package config

import "fmt"

// RunPreset is a named run length.
type RunPreset string

const (
	RunShort    RunPreset = "short"
	RunStandard RunPreset = "standard"
	RunLong     RunPreset = "long"
)

// RunPresets lists the accepted presets in display order.
var RunPresets = []RunPreset{RunShort, RunStandard, RunLong}

// ParseRunPreset validates a preset name. An empty name means standard.
func ParseRunPreset(s string) (RunPreset, error) {
	switch p := RunPreset(s); p {
	case "":
		return RunStandard, nil
	case RunShort, RunStandard, RunLong:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown run preset %q", s)
	}
}

// ApplyRunPreset adjusts health and trophy targets for a preset.
// Standard leaves the loaded configuration as is.
func ApplyRunPreset(cfg *Config, preset RunPreset) {
	switch preset {
	case RunShort:
		cfg.Game.MaxHealth = 3
		cfg.Game.StartingHealth = 3
		cfg.Game.TrophiesToWin = 5
	case RunLong:
		cfg.Game.MaxHealth = 8
		cfg.Game.StartingHealth = 8
		cfg.Game.TrophiesToWin = 15
	}
}
