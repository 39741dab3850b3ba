package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/report"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tracked roster",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	players, err := db.ListPlayers()
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No players tracked yet. Run 'milbstats add <mlb-id>' to add one.")
		return nil
	}

	counts := make(map[int]int, len(players))
	for _, p := range players {
		n, err := db.CountGameEntries(p.ID)
		if err != nil {
			return fmt.Errorf("count games for %d: %w", p.ID, err)
		}
		counts[p.ID] = n
	}
	report.PrintPlayers(os.Stdout, players, counts)
	return nil
}
