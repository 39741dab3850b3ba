package leaderboard

import (
	"fmt"
	"sort"

	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/model"
)

// StreakKind names one consecutive-game streak definition.
type StreakKind string

const (
	HittingStreak   StreakKind = "hitting"
	OnBaseStreak    StreakKind = "on-base"
	MultiHitStreak  StreakKind = "multi-hit"
	HitlessStreak   StreakKind = "hitless"
	ScorelessStreak StreakKind = "scoreless"
)

// Streak is a display-ready consecutive-game streak.
type Streak struct {
	PlayerID  int
	Name      string
	TeamLabel string
	Kind      StreakKind
	Length    int
	Display   string
}

// streakRule defines the scan for one kind: a game that skip() matches is
// passed over without breaking the streak (no real participation), a game
// that fails qualifies() breaks it.
type streakRule struct {
	kind      StreakKind
	typ       model.StatType
	skip      func(model.StatLine) bool
	qualifies func(model.StatLine) bool
}

func noPA(s model.StatLine) bool { return s[model.PA] < 1 }
func noAB(s model.StatLine) bool { return s[model.AB] < 1 }
func noIP(s model.StatLine) bool { return aggregator.IPToOuts(s[model.IP]) < 1 }

var streakRules = []streakRule{
	{HittingStreak, model.Batting, noPA,
		func(s model.StatLine) bool { return s[model.Hits] >= 1 }},
	{OnBaseStreak, model.Batting, noPA,
		func(s model.StatLine) bool { return s[model.Hits]+s[model.BB]+s[model.HBP] >= 1 }},
	{MultiHitStreak, model.Batting, noPA,
		func(s model.StatLine) bool { return s[model.Hits] >= 2 }},
	{HitlessStreak, model.Batting, noAB,
		func(s model.StatLine) bool { return s[model.Hits] == 0 }},
	{ScorelessStreak, model.Pitching, noIP,
		func(s model.StatLine) bool { return s[model.ER] == 0 }},
}

// Streaks scans every player's full game log newest-first and reports all
// active streaks of at least StreakMin games, longest first.
func (e *Engine) Streaks(players []model.PlayerSeason) []Streak {
	var out []Streak
	for _, ps := range players {
		for _, rule := range streakRules {
			length := scanStreak(ps.GamesOfType(rule.typ), rule)
			if length < e.T.StreakMin {
				continue
			}
			out = append(out, Streak{
				PlayerID:  ps.Player.ID,
				Name:      ps.Player.Name,
				TeamLabel: ps.Player.TeamLabel(),
				Kind:      rule.kind,
				Length:    length,
				Display:   fmt.Sprintf("%d-game %s streak", length, rule.kind),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Length != out[j].Length {
			return out[i].Length > out[j].Length
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// scanStreak walks games newest-first, counting qualifying games,
// skipping zero-participation games, and stopping at the first game that
// fails the qualifying condition.
func scanStreak(games []model.GameEntry, rule streakRule) int {
	sorted := make([]model.GameEntry, len(games))
	copy(sorted, games)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].GameID > sorted[j].GameID
	})

	length := 0
	for _, g := range sorted {
		if rule.skip(g.Stats) {
			continue
		}
		if !rule.qualifies(g.Stats) {
			break
		}
		length++
	}
	return length
}
