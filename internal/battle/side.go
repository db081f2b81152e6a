// Package battle implements the lunch-line battle resolution engine.
//
// A battle pits two fixed teams against each other. Each step, every side
// lets the kid at the front of its line take at most one bite from its own
// tray. Stars from eaten food accumulate per side and the side with more
// stars wins once neither side can eat anything else.
//
// Everything in this package is a pure function over values: no timers, no
// I/O, no shared state. The Driver in driver.go is the only piece that
// touches the clock, and it only ever calls Reduce.
package battle

import "github.com/vovakirdan/loopyfoods/internal/cards"

// Side is the runtime state of one team during a battle.
// Tray and Kids are fixed for the whole battle and must not be modified.
type Side struct {
	Tray     cards.Tray
	Kids     []cards.Kid
	Consumed []bool // One flag per tray slot

	KidCursor  int // Kid at the front of the line
	SlotCursor int // Next slot to examine for that kid
	Done       bool
}

// Bite is one resolved match of a kid and a tray slot.
type Bite struct {
	KidIndex  int
	SlotIndex int
	Food      cards.Food
}

// NewSide builds the runtime state for a team and aligns it on the first
// possible bite. Empty trays or lines produce a side that is already done.
func NewSide(team cards.Team) Side {
	s := Side{
		Tray:     team.Tray.Clone(),
		Kids:     append([]cards.Kid(nil), team.Kids...),
		Consumed: make([]bool, len(team.Tray)),
	}
	return Align(s, 0, 0)
}

// FindNextBite returns the first bite available to the kid at the front of
// the line, scanning forward from the slot cursor. It never moves on to the
// next kid; that only happens in Align.
func FindNextBite(s Side) (Bite, bool) {
	if s.Done || s.KidCursor < 0 || s.KidCursor >= len(s.Kids) {
		return Bite{}, false
	}

	slot, ok := s.matchFrom(s.KidCursor, s.SlotCursor)
	if !ok {
		return Bite{}, false
	}

	return Bite{
		KidIndex:  s.KidCursor,
		SlotIndex: slot,
		Food:      *s.Tray[slot],
	}, true
}

// Align moves the cursors to the next position where a bite is possible,
// starting with kid at slot and then every later kid from slot 0.
// If no later kid can eat anything the side is marked done.
func Align(s Side, kid, slot int) Side {
	if kid < 0 {
		kid = 0
	}
	if slot < 0 {
		slot = 0
	}

	for k := kid; k < len(s.Kids); k++ {
		start := 0
		if k == kid {
			start = slot
		}
		if i, ok := s.matchFrom(k, start); ok {
			s.KidCursor = k
			s.SlotCursor = i
			s.Done = false
			return s
		}
	}

	s.KidCursor = 0
	s.SlotCursor = 0
	s.Done = true
	return s
}

// ApplyBite marks the bitten slot consumed and re-aligns the side, starting
// with the same kid at the slot right after the one just eaten. A kid keeps
// eating while matching slots remain, so one kid may eat several foods.
// The input side is left untouched.
func ApplyBite(s Side, b Bite) Side {
	if b.SlotIndex < 0 || b.SlotIndex >= len(s.Consumed) {
		return s
	}

	consumed := make([]bool, len(s.Consumed))
	copy(consumed, s.Consumed)
	consumed[b.SlotIndex] = true
	s.Consumed = consumed

	return Align(s, b.KidIndex, b.SlotIndex+1)
}

// ConsumedStars sums the stars of every slot eaten so far.
func (s Side) ConsumedStars() int {
	total := 0
	for i, eaten := range s.Consumed {
		if eaten && s.Tray[i] != nil {
			total += s.Tray[i].BaseStarValue
		}
	}
	return total
}

// Remaining returns the number of non-empty slots not yet eaten.
func (s Side) Remaining() int {
	n := 0
	for i, f := range s.Tray {
		if f != nil && !s.Consumed[i] {
			n++
		}
	}
	return n
}

// CurrentKid returns the kid at the front of the line, if any.
func (s Side) CurrentKid() (cards.Kid, bool) {
	if s.Done || s.KidCursor < 0 || s.KidCursor >= len(s.Kids) {
		return cards.Kid{}, false
	}
	return s.Kids[s.KidCursor], true
}

// matchFrom returns the first unconsumed slot at or after start that kid k eats.
func (s Side) matchFrom(k, start int) (int, bool) {
	kid := s.Kids[k]
	for i := start; i < len(s.Tray); i++ {
		if s.Consumed[i] {
			continue
		}
		if kid.Eats(s.Tray[i]) {
			return i, true
		}
	}
	return 0, false
}
