// Package leaderboard scans a roster's game logs for ranked daily and
// 7-day boards, consecutive-game streaks, and level-promotion events.
// Everything here is recomputed per request and never persisted.
package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/aggregator"
	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/splits"
)

// Entry is one display-ready leaderboard row.
type Entry struct {
	PlayerID  int
	Name      string
	TeamLabel string
	Value     float64 // machine value, used for ranking
	Display   string
}

// Thresholds collects the product-tuned gates. They have no principled
// derivation; override fields off DefaultThresholds rather than editing
// the defaults.
type Thresholds struct {
	RBIMin          int // daily RBI board minimum
	RBIPAMin        int // PA floor on the RBI board, waived when the player homered
	PerfectDayABMin int
	QSMinOuts       int // quality start: at least 6 full innings
	QSMaxER         int
	WindowPAMin     float64 // 7-day batting rate boards
	WindowIPMinOuts int     // 7-day pitching rate boards (8 IP)
	StreakMin       int     // shortest streak worth reporting
	LookbackDays    int     // promotion detection window before the cutoff
	MaxEntries      int
}

// DefaultThresholds are the tracker's shipped values.
var DefaultThresholds = Thresholds{
	RBIMin:          3,
	RBIPAMin:        3,
	PerfectDayABMin: 4,
	QSMinOuts:       18,
	QSMaxER:         3,
	WindowPAMin:     15,
	WindowIPMinOuts: 24,
	StreakMin:       5,
	LookbackDays:    7,
	MaxEntries:      5,
}

// Engine computes boards with a fixed set of thresholds.
type Engine struct {
	T Thresholds
}

func NewEngine(t Thresholds) *Engine {
	return &Engine{T: t}
}

// dayLine aggregates a player's games of the given type on one civil day
// (doubleheaders fold into a single line).
func dayLine(ps model.PlayerSeason, day time.Time, typ model.StatType) (model.StatLine, bool) {
	var games []model.GameEntry
	for _, g := range ps.Games {
		if g.Type == typ && model.SameDay(g.Date, day) {
			games = append(games, g)
		}
	}
	agg, ok := aggregator.Aggregate(games, typ)
	if !ok {
		return nil, false
	}
	return agg.Stats, true
}

// HomeRuns lists every player with at least one home run on the given
// day, most homers first. No plate-appearance minimum applies.
func (e *Engine) HomeRuns(players []model.PlayerSeason, day time.Time) []Entry {
	var out []Entry
	for _, ps := range players {
		line, ok := dayLine(ps, day, model.Batting)
		if !ok {
			continue
		}
		hr := line[model.HR]
		if hr < 1 {
			continue
		}
		out = append(out, Entry{
			PlayerID:  ps.Player.ID,
			Name:      ps.Player.Name,
			TeamLabel: ps.Player.TeamLabel(),
			Value:     hr,
			Display:   fmt.Sprintf("%d HR", int(hr)),
		})
	}
	return e.rank(out, false)
}

// RBIKings lists players with RBIMin or more runs batted in on the day.
// The RBIPAMin floor filters pinch-hit appearances but is waived when the
// player homered.
func (e *Engine) RBIKings(players []model.PlayerSeason, day time.Time) []Entry {
	var out []Entry
	for _, ps := range players {
		line, ok := dayLine(ps, day, model.Batting)
		if !ok {
			continue
		}
		rbi := line[model.RBI]
		if int(rbi) < e.T.RBIMin {
			continue
		}
		if int(line[model.PA]) < e.T.RBIPAMin && line[model.HR] < 1 {
			continue
		}
		out = append(out, Entry{
			PlayerID:  ps.Player.ID,
			Name:      ps.Player.Name,
			TeamLabel: ps.Player.TeamLabel(),
			Value:     rbi,
			Display:   fmt.Sprintf("%d RBI", int(rbi)),
		})
	}
	return e.rank(out, false)
}

// PerfectDay lists players who converted every at-bat into a hit, with at
// least PerfectDayABMin at-bats.
func (e *Engine) PerfectDay(players []model.PlayerSeason, day time.Time) []Entry {
	var out []Entry
	for _, ps := range players {
		line, ok := dayLine(ps, day, model.Batting)
		if !ok {
			continue
		}
		ab, h := line[model.AB], line[model.Hits]
		if int(ab) < e.T.PerfectDayABMin || h != ab {
			continue
		}
		out = append(out, Entry{
			PlayerID:  ps.Player.ID,
			Name:      ps.Player.Name,
			TeamLabel: ps.Player.TeamLabel(),
			Value:     h,
			Display:   fmt.Sprintf("%d-for-%d", int(h), int(ab)),
		})
	}
	return e.rank(out, false)
}

// QualityStart lists starters with six-plus innings and at most QSMaxER
// earned runs on the day. Ties break by innings pitched descending, then
// earned runs ascending.
func (e *Engine) QualityStart(players []model.PlayerSeason, day time.Time) []Entry {
	type qs struct {
		entry Entry
		outs  int
		er    int
	}
	var rows []qs
	for _, ps := range players {
		line, ok := dayLine(ps, day, model.Pitching)
		if !ok {
			continue
		}
		outs := aggregator.IPToOuts(line[model.IP])
		er := int(line[model.ER])
		if line[model.GS] < 1 || outs < e.T.QSMinOuts || er > e.T.QSMaxER {
			continue
		}
		rows = append(rows, qs{
			entry: Entry{
				PlayerID:  ps.Player.ID,
				Name:      ps.Player.Name,
				TeamLabel: ps.Player.TeamLabel(),
				Value:     aggregator.TrueInnings(outs),
				Display: fmt.Sprintf("%s IP, %d ER, %d K",
					model.FormatStat(model.IP, aggregator.OutsToIP(outs)), er, int(line[model.SO])),
			},
			outs: outs,
			er:   er,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].outs != rows[j].outs {
			return rows[i].outs > rows[j].outs
		}
		if rows[i].er != rows[j].er {
			return rows[i].er < rows[j].er
		}
		return less(rows[i].entry, rows[j].entry)
	})
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entry)
	}
	return e.cap(out)
}

// rank sorts entries by value (descending unless asc), breaking ties by
// name then player id so output is deterministic, and caps the list.
func (e *Engine) rank(entries []Entry, asc bool) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			if asc {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Value > entries[j].Value
		}
		return less(entries[i], entries[j])
	})
	return e.cap(entries)
}

func (e *Engine) cap(entries []Entry) []Entry {
	if e.T.MaxEntries > 0 && len(entries) > e.T.MaxEntries {
		entries = entries[:e.T.MaxEntries]
	}
	return entries
}

func less(a, b Entry) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.PlayerID < b.PlayerID
}

// lastSevenDays aggregates a player's trailing 7-day window ending at ref.
func lastSevenDays(ps model.PlayerSeason, ref time.Time, typ model.StatType) (model.SeasonAggregate, bool) {
	pred, err := splits.Resolve(splits.Spec{Kind: splits.Last7}, ref)
	if err != nil {
		return model.SeasonAggregate{}, false
	}
	var games []model.GameEntry
	for _, g := range ps.Games {
		if g.Type == typ && pred(g) {
			games = append(games, g)
		}
	}
	return aggregator.Aggregate(games, typ)
}
