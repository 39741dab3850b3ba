package leaderboard

import (
	"fmt"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/model"
)

// WindowBoard defines one trailing-7-day leaderboard: which aggregate key
// it ranks, in which direction, and the qualifying threshold. Rate boards
// additionally gate on the window sample (PA or IP minimums).
type WindowBoard struct {
	Name      string
	Type      model.StatType
	Key       model.StatKey
	Ascending bool    // lower values rank first
	Threshold float64 // asc boards admit value ≤ Threshold, desc boards value ≥ Threshold
	RateGated bool
}

// WindowBoards is the shipped board set, in display order.
var WindowBoards = []WindowBoard{
	{Name: "Hottest Bats", Type: model.Batting, Key: model.AVG, Threshold: 0.300, RateGated: true},
	{Name: "Power Surge", Type: model.Batting, Key: model.HR, Threshold: 2},
	{Name: "Best Eyes", Type: model.Batting, Key: model.BBPct, Threshold: 0.15, RateGated: true},
	{Name: "Contact Kings", Type: model.Batting, Key: model.KPct, Ascending: true, Threshold: 0.10, RateGated: true},
	{Name: "Ice Cold", Type: model.Batting, Key: model.AVG, Ascending: true, Threshold: 0.150, RateGated: true},
	{Name: "Lights Out", Type: model.Pitching, Key: model.ERA, Ascending: true, Threshold: 2.00, RateGated: true},
	{Name: "K Leaders", Type: model.Pitching, Key: model.SO, Threshold: 7},
	{Name: "WHIP Kings", Type: model.Pitching, Key: model.WHIP, Ascending: true, Threshold: 1.00, RateGated: true},
	{Name: "Command Aces", Type: model.Pitching, Key: model.BBPer9, Ascending: true, Threshold: 2.0, RateGated: true},
	{Name: "Best K/BB", Type: model.Pitching, Key: model.KPerBB, Threshold: 4.0, RateGated: true},
	{Name: "Rough Stretch", Type: model.Pitching, Key: model.ERA, Threshold: 7.00, RateGated: true},
}

// BoardResult couples a board with its ranked entries.
type BoardResult struct {
	Board   WindowBoard
	Entries []Entry
}

// Windows computes every WindowBoard over the trailing 7-day window
// ending at ref. Boards with no qualifying player return empty entry
// lists, not absent results, so display order is stable.
func (e *Engine) Windows(players []model.PlayerSeason, ref time.Time) []BoardResult {
	out := make([]BoardResult, 0, len(WindowBoards))
	for _, board := range WindowBoards {
		out = append(out, BoardResult{Board: board, Entries: e.window(players, ref, board)})
	}
	return out
}

func (e *Engine) window(players []model.PlayerSeason, ref time.Time, board WindowBoard) []Entry {
	var out []Entry
	for _, ps := range players {
		agg, ok := lastSevenDays(ps, ref, board.Type)
		if !ok {
			continue
		}
		if board.RateGated && !e.windowQualified(agg) {
			continue
		}
		v, ok := agg.Stats.Get(board.Key)
		if !ok {
			continue
		}
		if board.Ascending && v > board.Threshold {
			continue
		}
		if !board.Ascending && v < board.Threshold {
			continue
		}
		out = append(out, Entry{
			PlayerID:  ps.Player.ID,
			Name:      ps.Player.Name,
			TeamLabel: ps.Player.TeamLabel(),
			Value:     v,
			Display:   windowDisplay(board, agg, v),
		})
	}
	return e.rank(out, board.Ascending)
}

// windowQualified applies the minimum-sample gate for rate boards.
func (e *Engine) windowQualified(agg model.SeasonAggregate) bool {
	switch agg.Type {
	case model.Batting:
		return agg.Stats[model.PA] >= e.T.WindowPAMin
	case model.Pitching:
		ip, ok := agg.Stats.Get(model.IP)
		return ok && aggregator.IPToOuts(ip) >= e.T.WindowIPMinOuts
	}
	return false
}

// windowDisplay renders the ranking value plus the window sample that
// produced it.
func windowDisplay(board WindowBoard, agg model.SeasonAggregate, v float64) string {
	val := model.FormatStat(board.Key, v)
	if board.Key != model.AVG && board.Key != model.HR && board.Key != model.SO {
		val = string(board.Key) + " " + val
	} else if board.Key == model.HR {
		val = val + " HR"
	} else if board.Key == model.SO {
		val = val + " K"
	}
	switch agg.Type {
	case model.Batting:
		return fmt.Sprintf("%s (%d PA, %dG)", val, int(agg.Stats[model.PA]), agg.Games)
	default:
		return fmt.Sprintf("%s (%s IP, %dG)", val,
			model.FormatStat(model.IP, agg.Stats[model.IP]), agg.Games)
	}
}
