// Package percentile builds per-level value distributions from a
// qualified-player pool and ranks values against them.
package percentile

import (
	"math"
	"sort"

	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/model"
)

// Qualification minimums. A player's aggregate joins a level's pool only
// when its sample clears these; a pool is kept only with enough players to
// make the distribution meaningful.
const (
	MinBattingPA  = 50
	MinPitchingIP = 10.0 // true innings
	MinPoolSize   = 5
)

// ByLevel holds ascending-sorted value pools keyed by level, stat type,
// and stat key. Levels with too few qualifying players carry no pool for
// the affected keys.
type ByLevel map[model.Level]map[model.StatType]map[model.StatKey][]float64

// Qualified reports whether an aggregate clears the minimum sample size
// for its type.
func Qualified(agg model.SeasonAggregate) bool {
	switch agg.Type {
	case model.Batting:
		pa, _ := agg.Stats.Get(model.PA)
		return pa >= MinBattingPA
	case model.Pitching:
		ip, ok := agg.Stats.Get(model.IP)
		if !ok {
			return false
		}
		return aggregator.TrueInnings(aggregator.IPToOuts(ip)) >= MinPitchingIP
	default:
		return false
	}
}

// BuildDistributions aggregates every player per level (plus the pooled
// LevelAll pseudo-level), admits qualifying aggregates into the pools,
// sorts each pool ascending, and drops pools with fewer than MinPoolSize
// values.
func BuildDistributions(players []model.PlayerSeason) ByLevel {
	pools := make(ByLevel)

	add := func(level model.Level, agg model.SeasonAggregate) {
		if !Qualified(agg) {
			return
		}
		if pools[level] == nil {
			pools[level] = make(map[model.StatType]map[model.StatKey][]float64)
		}
		if pools[level][agg.Type] == nil {
			pools[level][agg.Type] = make(map[model.StatKey][]float64)
		}
		for k, v := range agg.Stats {
			pools[level][agg.Type][k] = append(pools[level][agg.Type][k], v)
		}
	}

	for _, ps := range players {
		for _, typ := range []model.StatType{model.Batting, model.Pitching} {
			games := ps.GamesOfType(typ)
			if len(games) == 0 {
				continue
			}
			if agg, ok := aggregator.Aggregate(games, typ); ok {
				add(model.LevelAll, agg)
			}
			for _, level := range model.Levels {
				var atLevel []model.GameEntry
				for _, g := range games {
					if g.Level == level {
						atLevel = append(atLevel, g)
					}
				}
				if agg, ok := aggregator.Aggregate(atLevel, typ); ok {
					add(level, agg)
				}
			}
		}
	}

	for level, byType := range pools {
		for typ, byKey := range byType {
			for key, vals := range byKey {
				if len(vals) < MinPoolSize {
					delete(byKey, key)
					continue
				}
				sort.Float64s(vals)
			}
			if len(byKey) == 0 {
				delete(byType, typ)
			}
		}
		if len(byType) == 0 {
			delete(pools, level)
		}
	}
	return pools
}

// Rank returns round(100 · count(values ≤ v) / n) against the pool for
// (level, typ, key). ok is false when no distribution exists, which
// callers must treat as "insufficient sample", not zero.
func Rank(d ByLevel, level model.Level, key model.StatKey, value float64, typ model.StatType) (int, bool) {
	byType, ok := d[level]
	if !ok {
		return 0, false
	}
	byKey, ok := byType[typ]
	if !ok {
		return 0, false
	}
	vals, ok := byKey[key]
	if !ok || len(vals) == 0 {
		return 0, false
	}
	// Upper bound: first index with vals[i] > value.
	n := sort.Search(len(vals), func(i int) bool { return vals[i] > value })
	return int(math.Round(100 * float64(n) / float64(len(vals)))), true
}

// lowerIsBetter are the keys where a smaller raw value is better for
// either subject type.
var lowerIsBetter = map[model.StatKey]bool{
	model.ERA:    true,
	model.WHIP:   true,
	model.BBPer9: true,
	model.HRPer9: true,
	model.FIP:    true,
	model.XFIP:   true,
}

// LowerIsBetter reports whether the displayed percentile for key should be
// inverted (100 − p). Strikeout rate inverts for batters, walk rate for
// pitchers; the rest are fixed.
func LowerIsBetter(key model.StatKey, typ model.StatType) bool {
	if lowerIsBetter[key] {
		return true
	}
	switch key {
	case model.KPct:
		return typ == model.Batting
	case model.BBPct:
		return typ == model.Pitching
	}
	return false
}

// DisplayRank converts a raw percentile into the display percentile,
// inverting polarity where lower raw values are better.
func DisplayRank(p int, key model.StatKey, typ model.StatType) int {
	if LowerIsBetter(key, typ) {
		return 100 - p
	}
	return p
}

// Band partitions the 0–100 percentile range into fixed deciles, 0 (cold)
// through 9 (hot), independent of the underlying statistic.
func Band(p int) int {
	if p < 0 {
		p = 0
	}
	if p > 99 {
		p = 99
	}
	return p / 10
}
