package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/leaderboard"
	"github.com/comcgovern/go-milb-metrics/internal/report"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Active consecutive-game streaks",
	Args:  cobra.NoArgs,
	RunE:  runStreaks,
}

var streaksMin int

func init() {
	streaksCmd.Flags().IntVar(&streaksMin, "min", leaderboard.DefaultThresholds.StreakMin, "shortest streak to report")
}

func runStreaks(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	seasons, err := db.GetAllPlayerSeasons()
	if err != nil {
		return fmt.Errorf("load seasons: %w", err)
	}

	thresholds := leaderboard.DefaultThresholds
	thresholds.StreakMin = streaksMin
	engine := leaderboard.NewEngine(thresholds)

	report.PrintStreaks(os.Stdout, engine.Streaks(seasons))
	return nil
}
