package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopyfoods/internal/config"
	"github.com/vovakirdan/loopyfoods/internal/storage"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Manage saved team snapshots",
	Long: `Every Lunch Time saves the player's team as a snapshot. Snapshots are
the pool opponents are drawn from.

Examples:
  loopyfoods teams list
  loopyfoods teams show <id> > team.yaml
  loopyfoods teams import team.yaml
  loopyfoods teams delete <id>
  loopyfoods teams clear`,
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved teams, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			snaps, err := store.ListSnapshots()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(snaps) == 0 {
				fmt.Fprintln(out, "No teams saved yet.")
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Play 'loopyfoods play' and press g for Lunch Time to save one.")
				return nil
			}

			fmt.Fprintf(out, "  %-36s  %-5s  %-3s  %-3s  %-5s  %-4s  %s\n", "ID", "Round", "HP", "TR", "Food", "Kids", "Saved")
			fmt.Fprintf(out, "  %-36s  %-5s  %-3s  %-3s  %-5s  %-4s  %s\n", "--", "-----", "--", "--", "----", "----", "-----")
			for _, s := range snaps {
				fmt.Fprintf(out, "  %-36s  %-5d  %-3d  %-3d  %-5d  %-4d  %s\n",
					s.ID, s.Round, s.Health, s.Trophies, s.Tray.Filled(), len(s.Kids),
					s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var teamsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved team as a team file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			snap, err := store.SnapshotByID(args[0])
			if err != nil {
				return err
			}
			if snap == nil {
				return fmt.Errorf("snapshot %s not found", args[0])
			}
			data, err := config.MarshalTeam(snap.Team())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		})
	},
}

var teamsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add a team file to the opponent pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		team, err := config.LoadTeam(args[0])
		if err != nil {
			return err
		}
		if team.Empty() {
			return fmt.Errorf("team %s can never take a bite", args[0])
		}
		return withStore(func(store *storage.Store) error {
			snap, err := store.SaveSnapshot(storage.SnapshotInput{Round: 1, Team: team})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d food, %d kids)\n", snap.ID, snap.Tray.Filled(), len(snap.Kids))
			return nil
		})
	},
}

var teamsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			return store.DeleteSnapshot(args[0])
		})
	},
}

var teamsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved team",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			return store.ClearSnapshots()
		})
	},
}

func init() {
	teamsCmd.AddCommand(teamsListCmd, teamsShowCmd, teamsImportCmd, teamsDeleteCmd, teamsClearCmd)
}

// withStore opens the configured database for the duration of fn.
func withStore(fn func(*storage.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg, newLogger("loopyfoods"))
	if err != nil {
		return fmt.Errorf("error opening snapshot database: %w", err)
	}
	defer store.Close()
	return fn(store)
}
