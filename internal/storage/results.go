package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/loopyfoods/internal/battle"
)

// BattleResult is the recorded outcome of one finished battle.
type BattleResult struct {
	ID            int64
	OpponentID    string // Snapshot the opponent was drawn from, empty for ad hoc teams
	Round         int
	PlayerStars   int
	OpponentStars int
	Winner        battle.Winner
	Steps         int
	CreatedAt     time.Time
}

// ResultFromState builds a result record from an ended battle.
func ResultFromState(s battle.State, opponentID string, round int) BattleResult {
	return BattleResult{
		OpponentID:    opponentID,
		Round:         round,
		PlayerStars:   s.PlayerStars,
		OpponentStars: s.OpponentStars,
		Winner:        s.Winner,
		Steps:         s.Steps,
	}
}

// Record is a win/loss/tie tally.
type Record struct {
	Wins   int
	Losses int
	Ties   int
}

// Total returns the number of recorded battles.
func (r Record) Total() int {
	return r.Wins + r.Losses + r.Ties
}

// SaveBattleResult records the result of a battle.
// Returns the ID of the inserted record.
func (s *Store) SaveBattleResult(r BattleResult) (int64, error) {
	if r.Winner == battle.WinnerUndetermined {
		return 0, fmt.Errorf("storage: cannot save a battle without a winner")
	}

	res, err := s.db.Exec(
		`INSERT INTO battle_results (opponent_id, round, player_stars, opponent_stars, winner, steps)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sql.NullString{String: r.OpponentID, Valid: r.OpponentID != ""},
		r.Round,
		r.PlayerStars,
		r.OpponentStars,
		string(r.Winner),
		r.Steps,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentBattles retrieves the most recent battle results, newest first.
func (s *Store) RecentBattles(limit int) ([]BattleResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, opponent_id, round, player_stars, opponent_stars, winner, steps, created_at
		 FROM battle_results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle results: %w", err)
	}
	defer rows.Close()

	var results []BattleResult
	for rows.Next() {
		var (
			r          BattleResult
			opponentID sql.NullString
			winner     string
			createdAt  any
		)
		if err := rows.Scan(
			&r.ID,
			&opponentID,
			&r.Round,
			&r.PlayerStars,
			&r.OpponentStars,
			&winner,
			&r.Steps,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.OpponentID = opponentID.String
		r.Winner = battle.Winner(winner)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Record tallies every recorded battle from the player's side.
func (s *Store) Record() (Record, error) {
	rows, err := s.db.Query("SELECT winner, COUNT(*) FROM battle_results GROUP BY winner")
	if err != nil {
		return Record{}, fmt.Errorf("storage: cannot query record: %w", err)
	}
	defer rows.Close()

	var rec Record
	for rows.Next() {
		var (
			winner string
			n      int
		)
		if err := rows.Scan(&winner, &n); err != nil {
			return Record{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch battle.Winner(winner) {
		case battle.WinnerPlayer:
			rec.Wins = n
		case battle.WinnerOpponent:
			rec.Losses = n
		case battle.WinnerTie:
			rec.Ties = n
		}
	}

	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// ClearBattleResults deletes every recorded battle.
func (s *Store) ClearBattleResults() error {
	if _, err := s.db.Exec("DELETE FROM battle_results"); err != nil {
		return fmt.Errorf("storage: cannot clear battle results: %w", err)
	}
	return nil
}
