package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/mlb"
	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

const fetchWorkers = 4

var fetchCmd = &cobra.Command{
	Use:   "fetch [<mlb-id>...]",
	Short: "Fetch game logs from the MLB Stats API",
	Long:  "Fetch the season game log for the given players, or for the whole roster with --all.",
	RunE:  runFetch,
}

var (
	fetchAll    bool
	fetchSeason int
)

func init() {
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every tracked player")
	fetchCmd.Flags().IntVar(&fetchSeason, "season", currentSeason(), "season year")
}

func currentSeason() int {
	return time.Now().UTC().Year()
}

func runFetch(cmd *cobra.Command, args []string) error {
	if !fetchAll && len(args) == 0 {
		return fmt.Errorf("give at least one MLB id or --all")
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var players []model.Player
	if fetchAll {
		players, err = db.ListPlayers()
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
	} else {
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid MLB id %q: %w", arg, err)
			}
			p, err := db.GetPlayer(id)
			if err != nil {
				return fmt.Errorf("query player %d: %w", id, err)
			}
			if p == nil {
				return fmt.Errorf("player %d is not tracked; run 'milbstats add %d' first", id, id)
			}
			players = append(players, *p)
		}
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "Nothing to fetch.")
		return nil
	}

	client := mlb.NewClient()
	ctx := context.Background()

	type result struct {
		player model.Player
		games  []model.GameEntry
		err    error
	}

	jobs := make(chan model.Player)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < fetchWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				games, err := client.FetchGameLog(ctx, p.ID, fetchSeason, p.Type)
				results <- result{player: p, games: games, err: err}
			}
		}()
	}
	go func() {
		for _, p := range players {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// Writes stay on this goroutine; the SQLite connection is not shared.
	var failed int
	for r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "fetch %s: %v\n", r.player.Name, r.err)
			continue
		}
		if err := db.InsertGameEntries(r.player.ID, r.games); err != nil {
			return fmt.Errorf("save games for %s: %w", r.player.Name, err)
		}
		fmt.Fprintf(os.Stdout, "%-28s %d games\n", r.player.Name, len(r.games))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fetches failed", failed, len(players))
	}
	return nil
}
