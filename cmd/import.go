package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/mlb"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <stats-dir>",
	Short: "Import month-partitioned stats files",
	Long:  "Import a season of month-partitioned JSON stats files (dir/{year}/{MM}.json) into the database.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importYear int

func init() {
	importCmd.Flags().IntVar(&importYear, "year", currentSeason(), "season year to import")
}

func runImport(cmd *cobra.Command, args []string) error {
	source := mlb.NewMonthlySource(args[0], nil)
	seasons, err := source.Load(importYear)
	if err != nil {
		return fmt.Errorf("load stats files: %w", err)
	}
	if len(seasons) == 0 {
		return fmt.Errorf("no month files found for %d under %s", importYear, args[0])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var total int
	for _, ps := range seasons {
		if err := db.UpsertPlayer(ps.Player); err != nil {
			return fmt.Errorf("save player %d: %w", ps.Player.ID, err)
		}
		if err := db.InsertGameEntries(ps.Player.ID, ps.Games); err != nil {
			return fmt.Errorf("save games for %d: %w", ps.Player.ID, err)
		}
		total += len(ps.Games)
	}
	fmt.Fprintf(os.Stdout, "Imported %d games for %d players.\n", total, len(seasons))
	return nil
}
