package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/loopyfoods/internal/cards"
)

// Snapshot is a saved team together with the run it came from.
// Snapshots are the pool random opponents are drawn from.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Round     int
	Health    int
	Trophies  int
	Tray      cards.Tray
	Kids      []cards.Kid
}

// Team returns the snapshot as battle input.
func (s Snapshot) Team() cards.Team {
	return cards.Team{Tray: s.Tray.Clone(), Kids: append([]cards.Kid(nil), s.Kids...)}
}

// SnapshotInput describes a snapshot to save. An empty ID gets a fresh one.
type SnapshotInput struct {
	ID       string
	Round    int
	Health   int
	Trophies int
	Team     cards.Team
}

// SaveSnapshot stores a team snapshot as the newest entry. A snapshot with
// the same ID is replaced, and the pool is trimmed to the configured size.
func (s *Store) SaveSnapshot(in SnapshotInput) (Snapshot, error) {
	snap := Snapshot{
		ID:        in.ID,
		CreatedAt: s.now(),
		Round:     in.Round,
		Health:    in.Health,
		Trophies:  in.Trophies,
		Tray:      in.Team.Tray.Clone(),
		Kids:      append([]cards.Kid(nil), in.Team.Kids...),
	}
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.Tray == nil {
		snap.Tray = cards.Tray{}
	}
	if snap.Kids == nil {
		snap.Kids = []cards.Kid{}
	}

	tray, err := json.Marshal(snap.Tray)
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot encode tray: %w", err)
	}
	kids, err := json.Marshal(snap.Kids)
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot encode kids: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM team_snapshots WHERE id = ?", snap.ID); err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot replace snapshot: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO team_snapshots (id, created_at, round, health, trophies, tray, kids)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UnixMilli(), snap.Round, snap.Health, snap.Trophies, string(tray), string(kids),
	); err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	if _, err := tx.Exec(
		`DELETE FROM team_snapshots
		 WHERE seq NOT IN (SELECT seq FROM team_snapshots ORDER BY seq DESC LIMIT ?)`,
		s.maxSnapshots,
	); err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot trim snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot commit snapshot: %w", err)
	}

	snap.CreatedAt = time.UnixMilli(snap.CreatedAt.UnixMilli())
	return snap, nil
}

// ListSnapshots returns every stored snapshot, newest first.
// Rows that cannot be decoded are skipped.
func (s *Store) ListSnapshots() ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, round, health, trophies, tray, kids
		 FROM team_snapshots
		 ORDER BY seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var (
			snap       Snapshot
			createdAt  int64
			tray, kids string
		)
		if err := rows.Scan(&snap.ID, &createdAt, &snap.Round, &snap.Health, &snap.Trophies, &tray, &kids); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		snap.CreatedAt = time.UnixMilli(createdAt)

		if err := json.Unmarshal([]byte(tray), &snap.Tray); err != nil {
			s.logger.Warn("skipping snapshot with unreadable tray", "id", snap.ID, "error", err)
			continue
		}
		if err := json.Unmarshal([]byte(kids), &snap.Kids); err != nil {
			s.logger.Warn("skipping snapshot with unreadable kids", "id", snap.ID, "error", err)
			continue
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snaps, nil
}

// SnapshotByID returns one snapshot, or nil if it does not exist.
func (s *Store) SnapshotByID(id string) (*Snapshot, error) {
	var (
		snap       Snapshot
		createdAt  int64
		tray, kids string
	)
	err := s.db.QueryRow(
		`SELECT id, created_at, round, health, trophies, tray, kids
		 FROM team_snapshots
		 WHERE id = ?`,
		id,
	).Scan(&snap.ID, &createdAt, &snap.Round, &snap.Health, &snap.Trophies, &tray, &kids)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	snap.CreatedAt = time.UnixMilli(createdAt)
	if err := json.Unmarshal([]byte(tray), &snap.Tray); err != nil {
		return nil, fmt.Errorf("storage: cannot decode tray of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(kids), &snap.Kids); err != nil {
		return nil, fmt.Errorf("storage: cannot decode kids of %s: %w", id, err)
	}
	return &snap, nil
}

// RandomOpponent picks a snapshot uniformly from the pool, skipping
// excludeID. It returns nil when the pool is empty.
func (s *Store) RandomOpponent(excludeID string, rng *rand.Rand) (*Snapshot, error) {
	snaps, err := s.ListSnapshots()
	if err != nil {
		return nil, err
	}

	pool := snaps[:0]
	for _, snap := range snaps {
		if snap.ID != excludeID {
			pool = append(pool, snap)
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	pick := pool[rng.Intn(len(pool))]
	return &pick, nil
}

// DeleteSnapshot removes one snapshot. An empty ID is a no-op.
func (s *Store) DeleteSnapshot(id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM team_snapshots WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	return nil
}

// ClearSnapshots removes every snapshot.
func (s *Store) ClearSnapshots() error {
	if _, err := s.db.Exec("DELETE FROM team_snapshots"); err != nil {
		return fmt.Errorf("storage: cannot clear snapshots: %w", err)
	}
	return nil
}
