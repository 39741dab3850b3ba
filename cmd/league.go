package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/league"
	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/report"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var leagueCmd = &cobra.Command{
	Use:   "league",
	Short: "Per-level league-average baselines",
	Long:  "Pool every qualifying tracked player's games per level and print the aggregate baseline.",
	Args:  cobra.NoArgs,
	RunE:  runLeague,
}

var leagueType string

func init() {
	leagueCmd.Flags().StringVar(&leagueType, "type", "batting", "batting or pitching")
}

func runLeague(cmd *cobra.Command, args []string) error {
	typ := model.StatType(leagueType)
	if typ != model.Batting && typ != model.Pitching {
		return fmt.Errorf("invalid type %q (want batting or pitching)", leagueType)
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

	avgs := league.BuildLeagueAverages(seasons)
	if len(avgs) == 0 {
		fmt.Fprintln(os.Stdout, "No level has enough qualifying players yet.")
		return nil
	}
	report.PrintLeagueAverages(os.Stdout, avgs, typ)
	return nil
}
