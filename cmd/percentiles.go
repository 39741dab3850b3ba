package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/percentile"
	"github.com/comcgovern/go-milb-metrics/internal/report"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var percentilesCmd = &cobra.Command{
	Use:   "percentiles <mlb-id>",
	Short: "Percentile card for a player vs the tracked pool",
	Long: `Rank a player's season rates against the qualified tracked pool,
at their level and across all levels. Higher display percentile is
always better; ERA-family stats invert automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runPercentiles,
}

var percentilesLevel string

func init() {
	percentilesCmd.Flags().StringVar(&percentilesLevel, "level", "", "compare only against this level (CPX, A, A+, AA, AAA, ALL)")
}

func runPercentiles(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid MLB id %q: %w", args[0], err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	player, err := db.GetPlayer(id)
	if err != nil {
		return fmt.Errorf("query player %d: %w", id, err)
	}
	if player == nil {
		return fmt.Errorf("player %d is not tracked", id)
	}

	seasons, err := db.GetAllPlayerSeasons()
	if err != nil {
		return fmt.Errorf("load seasons: %w", err)
	}
	dists := percentile.BuildDistributions(seasons)

	games, err := db.GetGameEntries(id)
	if err != nil {
		return fmt.Errorf("load game log for %d: %w", id, err)
	}
	agg, ok := aggregator.Aggregate(gamesOfType(games, player.Type), player.Type)
	if !ok {
		return fmt.Errorf("no %s games stored for %s", player.Type, player.Name)
	}

	label := fmt.Sprintf("%s (%s)", player.Name, player.TeamLabel())
	if percentilesLevel != "" {
		report.PrintPercentileCard(os.Stdout, label, agg, dists, model.Level(percentilesLevel))
		return nil
	}
	report.PrintPercentileCard(os.Stdout, label, agg, dists, model.LevelAll)
	if player.Level != "" && player.Level != model.LevelAll {
		report.PrintPercentileCard(os.Stdout, label, agg, dists, player.Level)
	}
	return nil
}

func gamesOfType(games []model.GameEntry, typ model.StatType) []model.GameEntry {
	var out []model.GameEntry
	for _, g := range games {
		if g.Type == typ {
			out = append(out, g)
		}
	}
	return out
}
