package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/leaderboard"
	"github.com/comcgovern/go-milb-metrics/internal/report"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var promotionsCmd = &cobra.Command{
	Use:   "promotions",
	Short: "Level debuts since a cutoff date",
	Args:  cobra.NoArgs,
	RunE:  runPromotions,
}

var promotionsSince string

func init() {
	promotionsCmd.Flags().StringVar(&promotionsSince, "since", "", "cutoff date (default today)")
}

func runPromotions(cmd *cobra.Command, args []string) error {
	cutoff, err := parseDay(promotionsSince)
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

	engine := leaderboard.NewEngine(leaderboard.DefaultThresholds)
	report.PrintPromotions(os.Stdout, engine.Promotions(seasons, cutoff))
	return nil
}
