package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <mlb-id>",
	Short: "Export a player's game log and season line as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

// exportPayload is the JSON export shape.
type exportPayload struct {
	Player model.Player           `json:"player"`
	Season *model.SeasonAggregate `json:"season,omitempty"`
	Games  []model.GameEntry      `json:"games"`
}

func runExport(cmd *cobra.Command, args []string) error {
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
	games, err := db.GetGameEntries(id)
	if err != nil {
		return fmt.Errorf("load game log for %d: %w", id, err)
	}

	payload := exportPayload{Player: *player, Games: games}
	if agg, ok := aggregator.Aggregate(gamesOfType(games, player.Type), player.Type); ok {
		payload.Season = &agg
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}
