// Package shop builds a team between battles: foods are placed from a row of
// offers onto a fixed-size tray and kids are drafted into the lunch line.
package shop

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/loopyfoods/internal/cards"
	"github.com/vovakirdan/loopyfoods/internal/config"
)

var (
	ErrOutOfRange   = errors.New("shop: index out of range")
	ErrSlotOccupied = errors.New("shop: tray slot is occupied")
	ErrSlotEmpty    = errors.New("shop: tray slot is empty")
	ErrLineFull     = errors.New("shop: lunch line is full")
)

// Shop is the mutable team builder for one player.
// It is not safe for concurrent use.
type Shop struct {
	rng *rand.Rand

	tray      cards.Tray
	line      []cards.Kid
	offers    []cards.Food
	kidOffers []cards.Kid

	offerCount int
	maxKids    int
}

// New creates a shop with an empty tray and a first roll of offers.
func New(cfg config.GameConfig, seed int64) *Shop {
	s := &Shop{
		rng:        rand.New(rand.NewSource(seed)),
		tray:       cards.NewTray(cfg.TraySize),
		offerCount: cfg.ShopOffers,
		maxKids:    cfg.MaxKids,
	}
	s.Reroll()
	return s
}

// Load replaces the tray and line with an existing team, truncating or
// padding the tray to the shop's size.
func (s *Shop) Load(team cards.Team) {
	tray := cards.NewTray(len(s.tray))
	copy(tray, team.Tray)
	s.tray = tray

	s.line = nil
	for _, k := range team.Kids {
		if len(s.line) == s.maxKids {
			break
		}
		s.line = append(s.line, k)
	}
}

// Reroll replaces every food and kid offer.
func (s *Shop) Reroll() {
	s.offers = make([]cards.Food, s.offerCount)
	for i := range s.offers {
		s.offers[i] = cards.Foods[s.rng.Intn(len(cards.Foods))]
	}

	s.kidOffers = make([]cards.Kid, s.offerCount)
	for i := range s.kidOffers {
		s.kidOffers[i] = cards.Kids[s.rng.Intn(len(cards.Kids))]
	}
}

// Tray returns a copy of the tray.
func (s *Shop) Tray() cards.Tray {
	return s.tray.Clone()
}

// Line returns a copy of the drafted kids in line order.
func (s *Shop) Line() []cards.Kid {
	return append([]cards.Kid(nil), s.line...)
}

// Offers returns the foods currently for sale.
func (s *Shop) Offers() []cards.Food {
	return append([]cards.Food(nil), s.offers...)
}

// KidOffers returns the kids currently available to draft.
func (s *Shop) KidOffers() []cards.Kid {
	return append([]cards.Kid(nil), s.kidOffers...)
}

// Place moves a food offer onto an empty tray slot.
func (s *Shop) Place(offer, slot int) error {
	if offer < 0 || offer >= len(s.offers) {
		return fmt.Errorf("%w: offer %d", ErrOutOfRange, offer)
	}
	if slot < 0 || slot >= len(s.tray) {
		return fmt.Errorf("%w: slot %d", ErrOutOfRange, slot)
	}
	if s.tray[slot] != nil {
		return fmt.Errorf("%w: slot %d", ErrSlotOccupied, slot+1)
	}

	f := s.offers[offer]
	s.tray[slot] = &f
	s.offers = append(s.offers[:offer], s.offers[offer+1:]...)
	return nil
}

// Swap exchanges two tray slots. Either may be empty.
func (s *Shop) Swap(a, b int) error {
	if a < 0 || a >= len(s.tray) || b < 0 || b >= len(s.tray) {
		return fmt.Errorf("%w: swap %d and %d", ErrOutOfRange, a, b)
	}
	s.tray[a], s.tray[b] = s.tray[b], s.tray[a]
	return nil
}

// Clear discards the food in a tray slot.
func (s *Shop) Clear(slot int) error {
	if slot < 0 || slot >= len(s.tray) {
		return fmt.Errorf("%w: slot %d", ErrOutOfRange, slot)
	}
	if s.tray[slot] == nil {
		return fmt.Errorf("%w: slot %d", ErrSlotEmpty, slot+1)
	}
	s.tray[slot] = nil
	return nil
}

// DraftKid moves a kid offer to the back of the lunch line.
func (s *Shop) DraftKid(offer int) error {
	if offer < 0 || offer >= len(s.kidOffers) {
		return fmt.Errorf("%w: kid offer %d", ErrOutOfRange, offer)
	}
	if len(s.line) >= s.maxKids {
		return ErrLineFull
	}

	s.line = append(s.line, s.kidOffers[offer])
	s.kidOffers = append(s.kidOffers[:offer], s.kidOffers[offer+1:]...)
	return nil
}

// DismissKid removes a kid from the lunch line.
func (s *Shop) DismissKid(i int) error {
	if i < 0 || i >= len(s.line) {
		return fmt.Errorf("%w: kid %d", ErrOutOfRange, i)
	}
	s.line = append(s.line[:i], s.line[i+1:]...)
	return nil
}

// Team returns the current tray and line as battle input.
func (s *Shop) Team() cards.Team {
	return cards.Team{Tray: s.Tray(), Kids: s.Line()}
}

// Ready reports whether the team can take at least one bite.
func (s *Shop) Ready() bool {
	return !s.Team().Empty()
}
