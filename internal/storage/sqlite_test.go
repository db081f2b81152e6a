package storage

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/loopyfoods/internal/battle"
	"github.com/vovakirdan/loopyfoods/internal/cards"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testTeam() cards.Team {
	return cards.Team{
		Tray: cards.Tray{cards.FoodByTitle("Tater Tots"), nil, cards.FoodByTitle("Hot Dog Roller")},
		Kids: []cards.Kid{{Title: "Stacker Seth", FoodType: cards.Starch}, {Title: "Scooter Sage", FoodType: cards.Meat}},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveAndListSnapshots(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveSnapshot(SnapshotInput{Round: 3, Health: 4, Trophies: 2, Team: testTeam()})
	if err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveSnapshot() should assign an ID")
	}

	snaps, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snaps))
	}

	got := snaps[0]
	if got.ID != saved.ID || got.Round != 3 || got.Health != 4 || got.Trophies != 2 {
		t.Errorf("snapshot = %+v", got)
	}
	if len(got.Tray) != 3 || got.Tray[1] != nil {
		t.Fatalf("tray = %v, want 3 slots with an empty middle", got.Tray)
	}
	if got.Tray[2].Title != "Hot Dog Roller" || got.Tray[2].BaseStarValue != 6 {
		t.Errorf("slot 3 = %+v", got.Tray[2])
	}
	if len(got.Kids) != 2 || got.Kids[1].FoodType != cards.Meat {
		t.Errorf("kids = %+v", got.Kids)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestSnapshotsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 3; i++ {
		if _, err := store.SaveSnapshot(SnapshotInput{ID: fmt.Sprintf("snap-%d", i), Round: i}); err != nil {
			t.Fatalf("SaveSnapshot() failed: %v", err)
		}
	}

	snaps, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}

	want := []string{"snap-3", "snap-2", "snap-1"}
	for i, id := range want {
		if snaps[i].ID != id {
			t.Errorf("snaps[%d] = %s, want %s", i, snaps[i].ID, id)
		}
	}
}

func TestSaveSnapshotReplacesSameID(t *testing.T) {
	store := openTestStore(t)

	store.SaveSnapshot(SnapshotInput{ID: "a", Round: 1})
	store.SaveSnapshot(SnapshotInput{ID: "b", Round: 1})
	if _, err := store.SaveSnapshot(SnapshotInput{ID: "a", Round: 2}); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	snaps, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].ID != "a" || snaps[0].Round != 2 {
		t.Errorf("replaced snapshot should be newest with round 2, got %+v", snaps[0])
	}
}

func TestSnapshotPoolIsTrimmed(t *testing.T) {
	store := openTestStore(t, WithMaxSnapshots(5))

	for i := range 8 {
		if _, err := store.SaveSnapshot(SnapshotInput{ID: fmt.Sprintf("snap-%d", i)}); err != nil {
			t.Fatalf("SaveSnapshot() failed: %v", err)
		}
	}

	snaps, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}
	if len(snaps) != 5 {
		t.Fatalf("Expected 5 snapshots, got %d", len(snaps))
	}
	if snaps[0].ID != "snap-7" || snaps[4].ID != "snap-3" {
		t.Errorf("kept %s..%s, want snap-7..snap-3", snaps[0].ID, snaps[4].ID)
	}
}

func TestSnapshotByID(t *testing.T) {
	store := openTestStore(t)
	store.SaveSnapshot(SnapshotInput{ID: "keep", Team: testTeam()})

	snap, err := store.SnapshotByID("keep")
	if err != nil {
		t.Fatalf("SnapshotByID() failed: %v", err)
	}
	if snap == nil || len(snap.Team().Kids) != 2 {
		t.Errorf("SnapshotByID() = %+v", snap)
	}

	missing, err := store.SnapshotByID("nope")
	if err != nil || missing != nil {
		t.Errorf("SnapshotByID(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestRandomOpponent(t *testing.T) {
	store := openTestStore(t)
	rng := rand.New(rand.NewSource(1))

	snap, err := store.RandomOpponent("", rng)
	if err != nil || snap != nil {
		t.Fatalf("empty pool: got %v, %v; want nil, nil", snap, err)
	}

	store.SaveSnapshot(SnapshotInput{ID: "mine"})
	snap, err = store.RandomOpponent("mine", rng)
	if err != nil || snap != nil {
		t.Fatalf("only excluded snapshot: got %v, %v; want nil, nil", snap, err)
	}

	store.SaveSnapshot(SnapshotInput{ID: "theirs"})
	for range 20 {
		snap, err = store.RandomOpponent("mine", rng)
		if err != nil {
			t.Fatalf("RandomOpponent() failed: %v", err)
		}
		if snap == nil || snap.ID != "theirs" {
			t.Fatalf("RandomOpponent() = %v, want theirs", snap)
		}
	}
}

func TestDeleteAndClearSnapshots(t *testing.T) {
	store := openTestStore(t)
	store.SaveSnapshot(SnapshotInput{ID: "a"})
	store.SaveSnapshot(SnapshotInput{ID: "b"})

	if err := store.DeleteSnapshot(""); err != nil {
		t.Fatalf("DeleteSnapshot(\"\") failed: %v", err)
	}
	if err := store.DeleteSnapshot("a"); err != nil {
		t.Fatalf("DeleteSnapshot() failed: %v", err)
	}

	snaps, _ := store.ListSnapshots()
	if len(snaps) != 1 || snaps[0].ID != "b" {
		t.Errorf("after delete: %v", snaps)
	}

	if err := store.ClearSnapshots(); err != nil {
		t.Fatalf("ClearSnapshots() failed: %v", err)
	}
	snaps, _ = store.ListSnapshots()
	if len(snaps) != 0 {
		t.Errorf("Expected no snapshots after clear, got %d", len(snaps))
	}
}

func TestCorruptSnapshotIsSkipped(t *testing.T) {
	store := openTestStore(t)
	store.SaveSnapshot(SnapshotInput{ID: "good"})

	if _, err := store.db.Exec(
		"INSERT INTO team_snapshots (id, created_at, tray, kids) VALUES ('bad', 0, 'not json', '[]')",
	); err != nil {
		t.Fatal(err)
	}

	snaps, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}
	if len(snaps) != 1 || snaps[0].ID != "good" {
		t.Errorf("ListSnapshots() = %v, want only the good snapshot", snaps)
	}
}

func TestBattleResults(t *testing.T) {
	store := openTestStore(t)

	results := []BattleResult{
		{OpponentID: "a", Round: 1, PlayerStars: 9, OpponentStars: 4, Winner: battle.WinnerPlayer, Steps: 3},
		{Round: 2, PlayerStars: 2, OpponentStars: 8, Winner: battle.WinnerOpponent, Steps: 4},
		{Round: 3, PlayerStars: 5, OpponentStars: 5, Winner: battle.WinnerTie, Steps: 2},
		{Round: 4, PlayerStars: 7, OpponentStars: 1, Winner: battle.WinnerPlayer, Steps: 2},
	}
	for _, r := range results {
		if _, err := store.SaveBattleResult(r); err != nil {
			t.Fatalf("SaveBattleResult() failed: %v", err)
		}
	}

	rec, err := store.Record()
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if rec != (Record{Wins: 2, Losses: 1, Ties: 1}) {
		t.Errorf("Record() = %+v", rec)
	}
	if rec.Total() != 4 {
		t.Errorf("Total() = %d, want 4", rec.Total())
	}

	recent, err := store.RecentBattles(2)
	if err != nil {
		t.Fatalf("RecentBattles() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	if recent[0].Round != 4 || recent[1].Round != 3 {
		t.Errorf("RecentBattles() rounds = %d, %d; want 4, 3", recent[0].Round, recent[1].Round)
	}

	all, _ := store.RecentBattles(0)
	if last := all[len(all)-1]; last.OpponentID != "a" || last.Winner != battle.WinnerPlayer {
		t.Errorf("oldest result = %+v", last)
	}

	if err := store.ClearBattleResults(); err != nil {
		t.Fatalf("ClearBattleResults() failed: %v", err)
	}
	rec, _ = store.Record()
	if rec.Total() != 0 {
		t.Errorf("Record() after clear = %+v", rec)
	}
}

func TestSaveBattleResultRequiresWinner(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveBattleResult(BattleResult{}); err == nil {
		t.Error("expected an error for an undetermined winner")
	}
}

func TestResultFromState(t *testing.T) {
	s := battle.RunToEnd(battle.New(testTeam(), cards.Team{}))
	r := ResultFromState(s, "opp", 5)

	if r.Winner != battle.WinnerPlayer || r.PlayerStars != 8 || r.Round != 5 || r.OpponentID != "opp" {
		t.Errorf("ResultFromState() = %+v", r)
	}
}
