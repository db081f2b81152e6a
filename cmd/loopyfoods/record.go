package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopyfoods/internal/storage"
)

var (
	flagRecent int
	flagReset  bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Show the win/loss record and recent battles",
	Long: `Display the win/loss/tie record and the most recent battles.

Examples:
  loopyfoods record
  loopyfoods record --recent 20
  loopyfoods record --reset`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().IntVarP(&flagRecent, "recent", "n", 10, "Number of recent battles to show")
	recordCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete every recorded battle")
}

func runRecord(cmd *cobra.Command, _ []string) error {
	return withStore(func(store *storage.Store) error {
		out := cmd.OutOrStdout()
		if flagReset {
			if err := store.ClearBattleResults(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Record cleared.")
			return nil
		}

		rec, err := store.Record()
		if err != nil {
			return fmt.Errorf("error retrieving record: %w", err)
		}
		results, err := store.RecentBattles(flagRecent)
		if err != nil {
			return fmt.Errorf("error retrieving battles: %w", err)
		}

		fmt.Fprintf(out, "Record - %d wins, %d losses, %d ties\n", rec.Wins, rec.Losses, rec.Ties)
		fmt.Fprintln(out)

		if len(results) == 0 {
			fmt.Fprintln(out, "No battles recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "  %-5s  %-14s  %-7s  %-5s  %s\n", "Round", "Result", "Stars", "Steps", "Date")
		fmt.Fprintf(out, "  %-5s  %-14s  %-7s  %-5s  %s\n", "-----", "------", "-----", "-----", "----")
		for _, r := range results {
			fmt.Fprintf(out, "  %-5d  %-14s  %-7s  %-5d  %s\n",
				r.Round, r.Winner, fmt.Sprintf("%d-%d", r.PlayerStars, r.OpponentStars), r.Steps,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	})
}
