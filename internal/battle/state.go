package battle

import "github.com/vovakirdan/loopyfoods/internal/cards"

// Team identifies one of the two sides of a battle.
type Team string

const (
	TeamPlayer   Team = "player"
	TeamOpponent Team = "opponent"
)

// Winner is the outcome of a battle.
type Winner string

const (
	WinnerUndetermined Winner = ""
	WinnerPlayer       Winner = "player"
	WinnerOpponent     Winner = "opponent"
	WinnerTie          Winner = "tie"
)

// String returns a human-readable outcome.
func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "Player wins"
	case WinnerOpponent:
		return "Opponent wins"
	case WinnerTie:
		return "Tie"
	default:
		return "Undetermined"
	}
}

// LogEntry records one bite. Entries are append-only.
type LogEntry struct {
	Step      int    `json:"step"`
	Team      Team   `json:"team"`
	Kid       string `json:"kid"`
	Food      string `json:"food"`
	Stars     int    `json:"stars"`
	SlotIndex int    `json:"slotIndex"`
	KidIndex  int    `json:"kidIndex"`
}

// State is a complete, immutable battle snapshot. Every transition returns
// a new State and leaves the previous one usable.
type State struct {
	Player   Side
	Opponent Side

	PlayerStars   int
	OpponentStars int

	Log   []LogEntry
	Steps int // Number of Step transitions applied

	Ended  bool
	Winner Winner

	// Inputs the state was built from, reused by Reset.
	PlayerTeam   cards.Team
	OpponentTeam cards.Team
}

// New constructs the initial battle state. Each side is aligned on its own;
// if neither side can take a bite the battle is over before the first step.
func New(player, opponent cards.Team) State {
	s := State{
		Player:       NewSide(player),
		Opponent:     NewSide(opponent),
		PlayerTeam:   player.Clone(),
		OpponentTeam: opponent.Clone(),
	}
	s.finishIfDone()
	return s
}

// DecideWinner compares final star totals. Equal totals are a tie.
func DecideWinner(playerStars, opponentStars int) Winner {
	switch {
	case playerStars > opponentStars:
		return WinnerPlayer
	case opponentStars > playerStars:
		return WinnerOpponent
	default:
		return WinnerTie
	}
}

// Action is a transition the engine accepts. The set is closed: Step and Reset.
type Action interface {
	action()
}

// Step advances the battle by one synchronized tick.
type Step struct{}

// Reset rebuilds the battle from scratch. Nil teams reuse the inputs the
// current state was built from.
type Reset struct {
	Player   *cards.Team
	Opponent *cards.Team
}

func (Step) action()  {}
func (Reset) action() {}

// Reduce applies an action to a state and returns the next state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Step:
		return step(s)
	case Reset:
		player, opponent := s.PlayerTeam, s.OpponentTeam
		if a.Player != nil {
			player = *a.Player
		}
		if a.Opponent != nil {
			opponent = *a.Opponent
		}
		return New(player, opponent)
	default:
		return s
	}
}

// step resolves both sides simultaneously: both searches read the state as
// it was before this step.
func step(s State) State {
	if s.Ended {
		return s
	}

	playerBite, playerOK := FindNextBite(s.Player)
	opponentBite, opponentOK := FindNextBite(s.Opponent)

	next := s
	next.Log = make([]LogEntry, len(s.Log), len(s.Log)+2)
	copy(next.Log, s.Log)
	next.Steps++

	next.resolve(TeamPlayer, playerBite, playerOK)
	next.resolve(TeamOpponent, opponentBite, opponentOK)
	next.finishIfDone()

	return next
}

// resolve applies one side's outcome for the current step.
func (s *State) resolve(team Team, b Bite, ok bool) {
	side, stars := s.sideOf(team)

	if !ok {
		side.Done = true
		return
	}

	eater := side.Kids[b.KidIndex]
	*side = ApplyBite(*side, b)
	*stars += b.Food.BaseStarValue

	s.Log = append(s.Log, LogEntry{
		Step:      s.Steps,
		Team:      team,
		Kid:       eater.Title,
		Food:      b.Food.Title,
		Stars:     b.Food.BaseStarValue,
		SlotIndex: b.SlotIndex,
		KidIndex:  b.KidIndex,
	})
}

// sideOf returns pointers to the runtime side and star total of a team.
func (s *State) sideOf(team Team) (*Side, *int) {
	if team == TeamOpponent {
		return &s.Opponent, &s.OpponentStars
	}
	return &s.Player, &s.PlayerStars
}

// finishIfDone ends the battle once both sides are exhausted.
func (s *State) finishIfDone() {
	if s.Player.Done && s.Opponent.Done {
		s.Ended = true
		s.Winner = DecideWinner(s.PlayerStars, s.OpponentStars)
	}
}

// Stars returns the running star total of a team.
func (s State) Stars(team Team) int {
	if team == TeamOpponent {
		return s.OpponentStars
	}
	return s.PlayerStars
}

// EntriesAt returns the log entries recorded during the given step.
func (s State) EntriesAt(step int) []LogEntry {
	var out []LogEntry
	for _, e := range s.Log {
		if e.Step == step {
			out = append(out, e)
		}
	}
	return out
}

// MaxSteps is an upper bound on the number of steps this battle can take
// before ending: every step that does not end the battle eats a slot.
func (s State) MaxSteps() int {
	return max(len(s.Player.Tray), len(s.Opponent.Tray)) + 1
}

// RunToEnd applies Step until the battle ends.
func RunToEnd(s State) State {
	limit := s.Steps + s.MaxSteps()
	for !s.Ended && s.Steps < limit {
		s = Reduce(s, Step{})
	}
	return s
}
