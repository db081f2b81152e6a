// Package cards defines the food and kid cards of the lunch line and the
// teams built from them. Cards are plain values with no behavior beyond
// lookup, so the battle engine and the shop can share them freely.
package cards

import (
	"fmt"
	"strings"
)

// FoodType is the closed set of food categories. A kid eats exactly one type.
type FoodType string

const (
	Sweet  FoodType = "sweet"
	Meat   FoodType = "meat"
	Veggie FoodType = "veggie"
	Starch FoodType = "starch"
	Gross  FoodType = "gross"
)

// FoodTypes lists every food type in display order.
var FoodTypes = []FoodType{Sweet, Meat, Veggie, Starch, Gross}

// ParseFoodType converts a case-insensitive name into a FoodType.
func ParseFoodType(s string) (FoodType, error) {
	ft := FoodType(strings.ToLower(strings.TrimSpace(s)))
	if !ft.Valid() {
		return "", fmt.Errorf("cards: unknown food type %q", s)
	}
	return ft, nil
}

// Valid reports whether ft is one of the five known food types.
func (ft FoodType) Valid() bool {
	switch ft {
	case Sweet, Meat, Veggie, Starch, Gross:
		return true
	default:
		return false
	}
}

// Food is a tray card. BaseStarValue is awarded to the side whose kid eats it.
type Food struct {
	Title         string   `json:"title" yaml:"title"`
	FoodType      FoodType `json:"foodType" yaml:"food_type"`
	BaseStarValue int      `json:"baseStarValue" yaml:"base_star_value"`
	Color         string   `json:"color,omitempty" yaml:"color,omitempty"` // Hex display color
}

// Kid is a consumer waiting in the lunch line.
type Kid struct {
	Title    string   `json:"title" yaml:"title"`
	FoodType FoodType `json:"foodType" yaml:"food_type"`
}

// Eats reports whether the kid will eat the given food.
func (k Kid) Eats(f *Food) bool {
	return f != nil && f.FoodType == k.FoodType
}

// Tray is an ordered row of slots. A nil entry is an empty slot.
type Tray []*Food

// NewTray returns a tray with size empty slots.
func NewTray(size int) Tray {
	if size < 0 {
		size = 0
	}
	return make(Tray, size)
}

// Clone returns a copy of the tray. Foods are shared since they are immutable.
func (t Tray) Clone() Tray {
	if t == nil {
		return nil
	}
	out := make(Tray, len(t))
	copy(out, t)
	return out
}

// Filled returns the number of non-empty slots.
func (t Tray) Filled() int {
	n := 0
	for _, f := range t {
		if f != nil {
			n++
		}
	}
	return n
}

// TotalStars sums the star value of every food on the tray.
func (t Tray) TotalStars() int {
	total := 0
	for _, f := range t {
		if f != nil {
			total += f.BaseStarValue
		}
	}
	return total
}

// Team is one side's input to a battle: a tray and a lunch line.
type Team struct {
	Tray Tray  `json:"tray" yaml:"tray"`
	Kids []Kid `json:"kids" yaml:"kids"`
}

// Clone returns a deep-enough copy of the team for independent mutation.
func (t Team) Clone() Team {
	kids := make([]Kid, len(t.Kids))
	copy(kids, t.Kids)
	return Team{Tray: t.Tray.Clone(), Kids: kids}
}

// Empty reports whether the team has nothing that could ever produce a bite.
func (t Team) Empty() bool {
	return t.Tray.Filled() == 0 || len(t.Kids) == 0
}
