package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/leaderboard"
	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/report"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Daily and trailing-7-day leaderboards",
	Args:  cobra.NoArgs,
	RunE:  runLeaders,
}

var (
	leadersDate string
	leadersTop  int
)

func init() {
	leadersCmd.Flags().StringVar(&leadersDate, "date", "", "board date (default today)")
	leadersCmd.Flags().IntVar(&leadersTop, "top", leaderboard.DefaultThresholds.MaxEntries, "entries per board")
}

func runLeaders(cmd *cobra.Command, args []string) error {
	day, err := parseDay(leadersDate)
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	seasons, err := db.GetAllPlayerSeasons()
	if err != nil {
		return fmt.Errorf("load seasons: %w", err)
	}
	if len(seasons) == 0 {
		fmt.Fprintln(os.Stdout, "No players tracked yet.")
		return nil
	}

	thresholds := leaderboard.DefaultThresholds
	thresholds.MaxEntries = leadersTop
	engine := leaderboard.NewEngine(thresholds)

	fmt.Fprintf(os.Stdout, "Leaderboards for %s\n", model.Day(day).Format("Mon Jan 2 2006"))

	report.PrintBoard(os.Stdout, "Home Runs", engine.HomeRuns(seasons, day))
	report.PrintBoard(os.Stdout, "RBI Kings", engine.RBIKings(seasons, day))
	report.PrintBoard(os.Stdout, "Perfect Day", engine.PerfectDay(seasons, day))
	report.PrintBoard(os.Stdout, "Quality Starts", engine.QualityStart(seasons, day))

	fmt.Fprintln(os.Stdout, "\nTrailing 7 days")
	report.PrintWindowBoards(os.Stdout, engine.Windows(seasons, day))
	return nil
}
