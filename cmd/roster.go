package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comcgovern/go-milb-metrics/internal/mlb"
	"github.com/comcgovern/go-milb-metrics/internal/storage"
)

var addCmd = &cobra.Command{
	Use:   "add <mlb-id> [<mlb-id>...]",
	Short: "Add players to the tracked roster",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var dropCmd = &cobra.Command{
	Use:   "drop <mlb-id>",
	Short: "Remove a player and their stored game log",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrop,
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search for players by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var (
	searchRemote bool
	searchSeason int
)

func init() {
	searchCmd.Flags().BoolVar(&searchRemote, "remote", false, "search the MLB player pools instead of the local roster")
	searchCmd.Flags().IntVar(&searchSeason, "season", currentSeason(), "season year for --remote search")
}

func runAdd(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	client := mlb.NewClient()
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid MLB id %q: %w", arg, err)
		}
		player, err := client.LookupPlayer(context.Background(), id)
		if err != nil {
			return fmt.Errorf("look up player %d: %w", id, err)
		}
		if err := db.UpsertPlayer(player); err != nil {
			return fmt.Errorf("save player %d: %w", id, err)
		}
		fmt.Fprintf(os.Stdout, "Added %s (%s, %s)\n", player.Name, player.TeamLabel(), player.Type)
	}
	return nil
}

func runDrop(cmd *cobra.Command, args []string) error {
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
	if err := db.DeletePlayer(id); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	fmt.Fprintf(os.Stdout, "Dropped %s and their game log.\n", player.Name)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchRemote {
		client := mlb.NewClient()
		hits, err := client.SearchPlayers(context.Background(), query, searchSeason)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if len(hits) == 0 {
			fmt.Fprintln(os.Stdout, "No players found.")
			return nil
		}
		for _, h := range hits {
			fmt.Fprintf(os.Stdout, "%8d  %-28s  %-4s  %s\n", h.ID, h.Name, h.Position, h.Level)
		}
		return nil
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	players, err := db.SearchPlayers(query)
	if err != nil {
		return fmt.Errorf("search roster: %w", err)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No tracked players match. Try --remote to search MLB player pools.")
		return nil
	}
	for _, p := range players {
		fmt.Fprintf(os.Stdout, "%8d  %-28s  %-4s  %s\n", p.ID, p.Name, p.Position, p.TeamLabel())
	}
	return nil
}
