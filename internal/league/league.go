// Package league computes per-level league-average baselines by pooling
// the raw games of every qualifying player and aggregating the pool once.
// Averaging per-player averages instead would over-represent low-sample
// players.
package league

import (
	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/percentile"
)

// AveragesByLevel maps level → stat type → the pooled aggregate.
type AveragesByLevel map[model.Level]map[model.StatType]model.SeasonAggregate

// BuildLeagueAverages pools qualifying player-games per level (plus the
// LevelAll pseudo-level) and runs the aggregator over each combined pool.
// Qualification uses the same sample minimums as the percentile engine.
func BuildLeagueAverages(players []model.PlayerSeason) AveragesByLevel {
	pools := make(map[model.Level]map[model.StatType][]model.GameEntry)

	pour := func(level model.Level, typ model.StatType, games []model.GameEntry) {
		agg, ok := aggregator.Aggregate(games, typ)
		if !ok || !percentile.Qualified(agg) {
			return
		}
		if pools[level] == nil {
			pools[level] = make(map[model.StatType][]model.GameEntry)
		}
		pools[level][typ] = append(pools[level][typ], games...)
	}

	for _, ps := range players {
		for _, typ := range []model.StatType{model.Batting, model.Pitching} {
			games := ps.GamesOfType(typ)
			if len(games) == 0 {
				continue
			}
			pour(model.LevelAll, typ, games)
			for _, level := range model.Levels {
				var atLevel []model.GameEntry
				for _, g := range games {
					if g.Level == level {
						atLevel = append(atLevel, g)
					}
				}
				pour(level, typ, atLevel)
			}
		}
	}

	out := make(AveragesByLevel)
	for level, byType := range pools {
		for typ, games := range byType {
			agg, ok := aggregator.Aggregate(games, typ)
			if !ok {
				continue
			}
			if out[level] == nil {
				out[level] = make(map[model.StatType]model.SeasonAggregate)
			}
			out[level][typ] = agg
		}
	}
	return out
}
