package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/report"
	"github.com/comcgovern/go-milb-metrics/internal/splits"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var playerCmd = &cobra.Command{
	Use:   "player <mlb-id> [<mlb-id>...]",
	Short: "Aggregated stat line for one or more players",
	Long: `Aggregated stat line for one or more players over a split.

Splits: season (default), today, yesterday, last7, last14, last30,
home, away, vsLeft, vsRight, or a custom range via --from/--to.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

var (
	playerSplit string
	playerFrom  string
	playerTo    string
	playerDate  string
)

func init() {
	playerCmd.Flags().StringVar(&playerSplit, "split", "season", "split to aggregate over")
	playerCmd.Flags().StringVar(&playerFrom, "from", "", "custom range start (YYYY-MM-DD)")
	playerCmd.Flags().StringVar(&playerTo, "to", "", "custom range end (YYYY-MM-DD)")
	playerCmd.Flags().StringVar(&playerDate, "date", "", "reference date for relative splits (default today)")
}

// splitSpec builds the split specifier from the shared flags.
func splitSpec() (splits.Spec, error) {
	if playerFrom != "" || playerTo != "" {
		start, err := parseDay(playerFrom)
		if err != nil {
			return splits.Spec{}, err
		}
		end, err := parseDay(playerTo)
		if err != nil {
			return splits.Spec{}, err
		}
		return splits.Spec{Kind: splits.Custom, Start: start, End: end}, nil
	}
	return splits.Spec{Kind: splits.Kind(playerSplit)}, nil
}

func runPlayer(cmd *cobra.Command, args []string) error {
	spec, err := splitSpec()
	if err != nil {
		return err
	}
	ref, err := parseDay(playerDate)
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid MLB id %q: %w", arg, err)
		}
		player, err := db.GetPlayer(id)
		if err != nil {
			return fmt.Errorf("query player %d: %w", id, err)
		}
		if player == nil {
			fmt.Fprintf(os.Stderr, "Player %d is not tracked.\n", id)
			continue
		}
		games, err := db.GetGameEntries(id)
		if err != nil {
			return fmt.Errorf("load game log for %d: %w", id, err)
		}

		filtered, err := splits.Apply(spec, ref, games)
		if errors.Is(err, splits.ErrDataUnavailable) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", player.Name, err)
			continue
		}
		if err != nil {
			return err
		}

		agg, ok := aggregator.Aggregate(filtered, player.Type)
		if !ok {
			fmt.Fprintf(os.Stdout, "\n%s (%s): no games in this split.\n",
				player.Name, player.TeamLabel())
			continue
		}
		report.PrintSeasonLine(os.Stdout,
			fmt.Sprintf("%s (%s) — %s", player.Name, player.TeamLabel(), splitLabel(spec)), agg)
	}
	return nil
}

func splitLabel(spec splits.Spec) string {
	if spec.Kind == splits.Custom {
		return fmt.Sprintf("%s to %s",
			spec.Start.Format("2006-01-02"), spec.End.Format("2006-01-02"))
	}
	return string(spec.Kind)
}
