package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/loopyfoods/internal/cards"
)

// TeamFile is the on-disk form of a team. Foods and kids are referenced by
// catalog title; a null tray entry is an empty slot.
//
//	tray:
//	  - Tater Tots
//	  - null
//	  - Hot Dog Roller
//	kids:
//	  - Stacker Seth
//	  - Scooter Sage
type TeamFile struct {
	Tray []*string `yaml:"tray"`
	Kids []string  `yaml:"kids"`
}

// LoadTeam reads and resolves a team file.
func LoadTeam(path string) (cards.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cards.Team{}, fmt.Errorf("config: failed to read team %s: %w", path, err)
	}
	team, err := ParseTeam(data)
	if err != nil {
		return cards.Team{}, fmt.Errorf("config: team %s: %w", path, err)
	}
	return team, nil
}

// ParseTeam decodes a team document and resolves every title against the catalog.
func ParseTeam(data []byte) (cards.Team, error) {
	var tf TeamFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return cards.Team{}, err
	}
	return tf.Resolve()
}

// Resolve looks up every referenced card.
func (tf TeamFile) Resolve() (cards.Team, error) {
	team := cards.Team{Tray: cards.NewTray(len(tf.Tray))}

	for i, title := range tf.Tray {
		if title == nil || strings.TrimSpace(*title) == "" {
			continue
		}
		f := cards.FoodByTitle(*title)
		if f == nil {
			return cards.Team{}, fmt.Errorf("tray slot %d: unknown food %q", i+1, *title)
		}
		team.Tray[i] = f
	}

	for i, title := range tf.Kids {
		k, ok := cards.KidByTitle(title)
		if !ok {
			return cards.Team{}, fmt.Errorf("kid %d: unknown kid %q", i+1, title)
		}
		team.Kids = append(team.Kids, k)
	}

	return team, nil
}

// MarshalTeam encodes a team in the TeamFile format.
func MarshalTeam(team cards.Team) ([]byte, error) {
	tf := TeamFile{Tray: make([]*string, len(team.Tray))}
	for i, f := range team.Tray {
		if f != nil {
			title := f.Title
			tf.Tray[i] = &title
		}
	}
	for _, k := range team.Kids {
		tf.Kids = append(tf.Kids, k.Title)
	}
	return yaml.Marshal(tf)
}
