package leaderboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

// Promotion is a detected level debut: the player's first-ever game at a
// level strictly above where they played in the lookback window.
type Promotion struct {
	PlayerID  int
	Name      string
	TeamLabel string
	From      model.Level
	To        model.Level
	Date      time.Time
	Display   string
}

// Promotions finds level debuts at or after the cutoff date. The baseline
// is the highest level the player appeared at inside the trailing
// LookbackDays window before the cutoff; a debut must be at a strictly
// higher level and be the player's first game at that level anywhere in
// the log, so a player with prior time at a level is never re-flagged.
func (e *Engine) Promotions(players []model.PlayerSeason, cutoff time.Time) []Promotion {
	cutoffDay := model.Day(cutoff)
	lookbackStart := cutoffDay.AddDate(0, 0, -e.T.LookbackDays)

	var out []Promotion
	for _, ps := range players {
		games := make([]model.GameEntry, len(ps.Games))
		copy(games, ps.Games)
		sort.Slice(games, func(i, j int) bool { return games[i].Date.Before(games[j].Date) })

		// Baseline: highest level played in [cutoff−lookback, cutoff).
		baseline := model.Level("")
		for _, g := range games {
			d := model.Day(g.Date)
			if d.Before(lookbackStart) || !d.Before(cutoffDay) {
				continue
			}
			if g.Level.Rank() > baseline.Rank() {
				baseline = g.Level
			}
		}
		if baseline.Rank() == 0 {
			continue
		}

		// Forward scan from the cutoff for a first-ever higher-level game.
		for _, g := range games {
			if model.Day(g.Date).Before(cutoffDay) {
				continue
			}
			if g.Level.Rank() <= baseline.Rank() {
				continue
			}
			if playedAtLevelBefore(games, g.Level, g.Date) {
				continue
			}
			out = append(out, Promotion{
				PlayerID:  ps.Player.ID,
				Name:      ps.Player.Name,
				TeamLabel: ps.Player.TeamLabel(),
				From:      baseline,
				To:        g.Level,
				Date:      model.Day(g.Date),
				Display: fmt.Sprintf("%s → %s debut on %s: %s",
					baseline, g.Level, g.Date.Format("Jan 2"), gameLine(g)),
			})
			break
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// playedAtLevelBefore reports whether any game strictly before day took
// place at the given level.
func playedAtLevelBefore(games []model.GameEntry, level model.Level, day time.Time) bool {
	for _, g := range games {
		if g.Level == level && model.Day(g.Date).Before(model.Day(day)) {
			return true
		}
	}
	return false
}

// gameLine renders a single game's stat line for debut display.
func gameLine(g model.GameEntry) string {
	s := g.Stats
	if g.Type == model.Pitching {
		return fmt.Sprintf("%s IP, %d ER, %d K",
			model.FormatStat(model.IP, s[model.IP]), int(s[model.ER]), int(s[model.SO]))
	}
	parts := []string{fmt.Sprintf("%d-for-%d", int(s[model.Hits]), int(s[model.AB]))}
	if hr := int(s[model.HR]); hr > 0 {
		parts = append(parts, fmt.Sprintf("%d HR", hr))
	}
	if rbi := int(s[model.RBI]); rbi > 0 {
		parts = append(parts, fmt.Sprintf("%d RBI", rbi))
	}
	return strings.Join(parts, ", ")
}
