package battle

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/loopyfoods/internal/cards"
)

func team(tray cards.Tray, kids ...cards.Kid) cards.Team {
	return cards.Team{Tray: tray, Kids: kids}
}

func TestBattleScenarios(t *testing.T) {
	tests := []struct {
		name          string
		player        cards.Team
		opponent      cards.Team
		steps         int
		wantPlayer    int
		wantOpponent  int
		wantEnded     bool
		wantWinner    Winner
		wantLogLength int
	}{
		{
			name:          "lone starch eater beats empty side",
			player:        team(cards.Tray{food(cards.Starch, 2)}, kid(cards.Starch)),
			opponent:      team(nil),
			steps:         1,
			wantPlayer:    2,
			wantEnded:     true,
			wantWinner:    WinnerPlayer,
			wantLogLength: 1,
		},
		{
			name:          "mirror match ties",
			player:        team(cards.Tray{food(cards.Meat, 3)}, kid(cards.Meat)),
			opponent:      team(cards.Tray{food(cards.Meat, 3)}, kid(cards.Meat)),
			steps:         1,
			wantPlayer:    3,
			wantOpponent:  3,
			wantEnded:     true,
			wantWinner:    WinnerTie,
			wantLogLength: 2,
		},
		{
			name:          "non-matching slot is skipped",
			player:        team(cards.Tray{food(cards.Veggie, 1), food(cards.Sweet, 5)}, kid(cards.Sweet)),
			opponent:      team(nil),
			steps:         1,
			wantPlayer:    5,
			wantEnded:     true,
			wantWinner:    WinnerPlayer,
			wantLogLength: 1,
		},
		{
			name:       "no kids on either side ends at construction",
			player:     team(cards.Tray{food(cards.Meat, 3)}),
			opponent:   team(cards.Tray{food(cards.Sweet, 4)}),
			steps:      0,
			wantEnded:  true,
			wantWinner: WinnerTie,
		},
		{
			name:          "opponent wins on stars",
			player:        team(cards.Tray{food(cards.Meat, 1), food(cards.Meat, 1)}, kid(cards.Meat)),
			opponent:      team(cards.Tray{food(cards.Gross, 6)}, kid(cards.Gross)),
			steps:         2,
			wantPlayer:    2,
			wantOpponent:  6,
			wantEnded:     true,
			wantWinner:    WinnerOpponent,
			wantLogLength: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.player, tt.opponent)
			for range tt.steps {
				s = Reduce(s, Step{})
			}

			if s.PlayerStars != tt.wantPlayer || s.OpponentStars != tt.wantOpponent {
				t.Errorf("stars = %d:%d, want %d:%d", s.PlayerStars, s.OpponentStars, tt.wantPlayer, tt.wantOpponent)
			}
			if s.Ended != tt.wantEnded {
				t.Errorf("Ended = %v, want %v", s.Ended, tt.wantEnded)
			}
			if s.Winner != tt.wantWinner {
				t.Errorf("Winner = %q, want %q", s.Winner, tt.wantWinner)
			}
			if len(s.Log) != tt.wantLogLength {
				t.Errorf("len(Log) = %d, want %d", len(s.Log), tt.wantLogLength)
			}
		})
	}
}

func TestSkippedSlotSideIsDoneAfterOneStep(t *testing.T) {
	s := New(team(cards.Tray{food(cards.Veggie, 1), food(cards.Sweet, 5)}, kid(cards.Sweet)), team(nil))
	s = Reduce(s, Step{})

	if !s.Player.Done {
		t.Error("player side should be done after its single kid ate")
	}
	if got := s.Log[0].SlotIndex; got != 1 {
		t.Errorf("bite slot = %d, want 1", got)
	}
}

func TestStepResolvesSidesSimultaneously(t *testing.T) {
	s := New(
		team(cards.Tray{food(cards.Meat, 2), food(cards.Meat, 4)}, kid(cards.Meat)),
		team(cards.Tray{food(cards.Sweet, 1), food(cards.Sweet, 3)}, kid(cards.Sweet)),
	)

	s = Reduce(s, Step{})
	entries := s.EntriesAt(1)
	if len(entries) != 2 {
		t.Fatalf("step 1 produced %d entries, want 2", len(entries))
	}
	if entries[0].Team != TeamPlayer || entries[1].Team != TeamOpponent {
		t.Errorf("entries should be ordered player then opponent, got %v then %v", entries[0].Team, entries[1].Team)
	}
	if s.Ended {
		t.Fatal("battle should not end after the first step")
	}

	s = Reduce(s, Step{})
	if !s.Ended || s.Winner != WinnerPlayer {
		t.Errorf("after step 2: ended=%v winner=%q, want ended player win", s.Ended, s.Winner)
	}
	if s.PlayerStars != 6 || s.OpponentStars != 4 {
		t.Errorf("stars = %d:%d, want 6:4", s.PlayerStars, s.OpponentStars)
	}
}

func TestSecondKidCannotEatConsumedSlot(t *testing.T) {
	s := New(team(cards.Tray{food(cards.Meat, 3)}, kid(cards.Meat), kid(cards.Meat)), team(nil))
	s = RunToEnd(s)

	if s.PlayerStars != 3 {
		t.Errorf("PlayerStars = %d, want 3", s.PlayerStars)
	}
	if len(s.Log) != 1 {
		t.Errorf("len(Log) = %d, want 1", len(s.Log))
	}
}

func TestLineAdvancesToNextKid(t *testing.T) {
	s := New(team(cards.Tray{food(cards.Meat, 3), food(cards.Sweet, 2), food(cards.Meat, 5)}, kid(cards.Sweet), kid(cards.Meat)), team(nil))
	s = RunToEnd(s)

	if s.Steps != 3 {
		t.Errorf("Steps = %d, want 3", s.Steps)
	}
	if s.PlayerStars != 10 {
		t.Errorf("PlayerStars = %d, want 10", s.PlayerStars)
	}

	wantKids := []int{0, 1, 1}
	wantSlots := []int{1, 0, 2}
	for i, e := range s.Log {
		if e.KidIndex != wantKids[i] || e.SlotIndex != wantSlots[i] {
			t.Errorf("entry %d = kid %d slot %d, want kid %d slot %d", i, e.KidIndex, e.SlotIndex, wantKids[i], wantSlots[i])
		}
	}
}

func TestStepAfterEndIsIdempotent(t *testing.T) {
	s := RunToEnd(New(
		team(cards.Tray{food(cards.Meat, 3)}, kid(cards.Meat)),
		team(cards.Tray{food(cards.Sweet, 1)}, kid(cards.Sweet)),
	))
	if !s.Ended {
		t.Fatal("expected an ended battle")
	}

	again := Reduce(s, Step{})
	if !reflect.DeepEqual(s, again) {
		t.Error("Step on an ended battle must return an equal state")
	}
}

func TestReducePreservesPriorState(t *testing.T) {
	s0 := New(
		team(cards.Tray{food(cards.Meat, 3), food(cards.Meat, 2)}, kid(cards.Meat)),
		team(cards.Tray{food(cards.Sweet, 1)}, kid(cards.Sweet)),
	)
	s1 := Reduce(s0, Step{})
	_ = Reduce(s1, Step{})

	if s0.Steps != 0 || len(s0.Log) != 0 || s0.PlayerStars != 0 {
		t.Errorf("initial state changed: steps=%d log=%d stars=%d", s0.Steps, len(s0.Log), s0.PlayerStars)
	}
	if s0.Player.Consumed[0] || s0.Player.Consumed[1] {
		t.Error("initial consumed flags changed")
	}
	if s1.Steps != 1 || len(s1.Log) != 2 {
		t.Errorf("intermediate state changed: steps=%d log=%d", s1.Steps, len(s1.Log))
	}
	if s1.Player.Consumed[1] {
		t.Error("intermediate consumed flags changed")
	}
}

func TestResetReusesStoredTeams(t *testing.T) {
	s0 := New(
		team(cards.Tray{food(cards.Meat, 3)}, kid(cards.Meat)),
		team(cards.Tray{food(cards.Sweet, 1)}, kid(cards.Sweet)),
	)
	played := RunToEnd(s0)

	reset := Reduce(played, Reset{})
	if !reflect.DeepEqual(reset, s0) {
		t.Error("Reset without teams should rebuild the initial state")
	}
}

func TestResetWithNewTeams(t *testing.T) {
	s := RunToEnd(New(
		team(cards.Tray{food(cards.Meat, 3)}, kid(cards.Meat)),
		team(nil),
	))

	opponent := team(cards.Tray{food(cards.Gross, 6)}, kid(cards.Gross))
	s = Reduce(s, Reset{Opponent: &opponent})

	if s.Ended || s.Steps != 0 || len(s.Log) != 0 {
		t.Fatalf("reset state should be fresh, got ended=%v steps=%d log=%d", s.Ended, s.Steps, len(s.Log))
	}

	s = RunToEnd(s)
	if s.Winner != WinnerOpponent {
		t.Errorf("Winner = %q, want opponent", s.Winner)
	}
	if s.PlayerStars != 3 || s.OpponentStars != 6 {
		t.Errorf("stars = %d:%d, want 3:6", s.PlayerStars, s.OpponentStars)
	}
}

func TestDecideWinner(t *testing.T) {
	tests := []struct {
		player, opponent int
		want             Winner
	}{
		{5, 3, WinnerPlayer},
		{3, 5, WinnerOpponent},
		{4, 4, WinnerTie},
		{0, 0, WinnerTie},
	}

	for _, tt := range tests {
		if got := DecideWinner(tt.player, tt.opponent); got != tt.want {
			t.Errorf("DecideWinner(%d, %d) = %q, want %q", tt.player, tt.opponent, got, tt.want)
		}
	}
}

func TestWinnerString(t *testing.T) {
	if got := WinnerTie.String(); got != "Tie" {
		t.Errorf("String() = %q, want Tie", got)
	}
	if got := WinnerUndetermined.String(); got != "Undetermined" {
		t.Errorf("String() = %q, want Undetermined", got)
	}
}

func randomTeam(rng *rand.Rand) cards.Team {
	tray := cards.NewTray(rng.Intn(7))
	for i := range tray {
		if rng.Intn(4) == 0 {
			continue
		}
		tray[i] = food(cards.FoodTypes[rng.Intn(len(cards.FoodTypes))], 1+rng.Intn(6))
	}

	kids := make([]cards.Kid, rng.Intn(5))
	for i := range kids {
		kids[i] = kid(cards.FoodTypes[rng.Intn(len(cards.FoodTypes))])
	}
	return cards.Team{Tray: tray, Kids: kids}
}

// Properties checked over many random battles.
func TestRandomBattleProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := range 500 {
		player, opponent := randomTeam(rng), randomTeam(rng)
		s := New(player, opponent)
		limit := max(len(player.Tray), len(opponent.Tray))

		prevSteps := s.Steps
		for !s.Ended {
			next := Reduce(s, Step{})

			if next.Steps != prevSteps+1 {
				t.Fatalf("battle %d: steps went %d -> %d", i, prevSteps, next.Steps)
			}
			added := next.Log[len(s.Log):]
			perTeam := map[Team]int{}
			for _, e := range added {
				if e.Step != next.Steps {
					t.Fatalf("battle %d: entry tagged step %d during step %d", i, e.Step, next.Steps)
				}
				perTeam[e.Team]++
			}
			if perTeam[TeamPlayer] > 1 || perTeam[TeamOpponent] > 1 {
				t.Fatalf("battle %d: more than one bite per side in step %d", i, next.Steps)
			}
			if !reflect.DeepEqual(next.Log[:len(s.Log)], s.Log) && len(s.Log) > 0 {
				t.Fatalf("battle %d: log prefix rewritten", i)
			}

			s = next
			prevSteps = s.Steps
			if s.Steps > limit {
				t.Fatalf("battle %d: ran %d steps, bound is %d", i, s.Steps, limit)
			}
		}

		if s.PlayerStars != s.Player.ConsumedStars() {
			t.Errorf("battle %d: player stars %d, consumed %d", i, s.PlayerStars, s.Player.ConsumedStars())
		}
		if s.OpponentStars != s.Opponent.ConsumedStars() {
			t.Errorf("battle %d: opponent stars %d, consumed %d", i, s.OpponentStars, s.Opponent.ConsumedStars())
		}
		if s.PlayerStars > player.Tray.TotalStars() || s.OpponentStars > opponent.Tray.TotalStars() {
			t.Errorf("battle %d: scored more than the tray holds", i)
		}

		bites := map[Team]map[int]bool{TeamPlayer: {}, TeamOpponent: {}}
		for _, e := range s.Log {
			if bites[e.Team][e.SlotIndex] {
				t.Errorf("battle %d: %s slot %d eaten twice", i, e.Team, e.SlotIndex)
			}
			bites[e.Team][e.SlotIndex] = true
		}

		if s.Winner != DecideWinner(s.PlayerStars, s.OpponentStars) {
			t.Errorf("battle %d: winner %q inconsistent with %d:%d", i, s.Winner, s.PlayerStars, s.OpponentStars)
		}
		if !reflect.DeepEqual(Reduce(s, Step{}), s) {
			t.Errorf("battle %d: terminal step changed state", i)
		}
	}
}

func TestRunToEndMatchesManualSteps(t *testing.T) {
	p := team(cards.Tray{food(cards.Meat, 3), food(cards.Sweet, 2), food(cards.Meat, 5)}, kid(cards.Sweet), kid(cards.Meat))
	o := team(cards.Tray{food(cards.Gross, 1), nil, food(cards.Gross, 2)}, kid(cards.Gross))

	manual := New(p, o)
	for !manual.Ended {
		manual = Reduce(manual, Step{})
	}

	if got := RunToEnd(New(p, o)); !reflect.DeepEqual(got, manual) {
		t.Error("RunToEnd differs from stepping by hand")
	}
}
