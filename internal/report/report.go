// Package report renders engine output as terminal tables. Absent values
// print as "—", never as zero.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/comcgovern/go-milb-metrics/internal/leaderboard"
	"github.com/comcgovern/go-milb-metrics/internal/league"
	"github.com/comcgovern/go-milb-metrics/internal/model"
)

const absent = "—"

// battingOrder is the display order for batting aggregates.
var battingOrder = []model.StatKey{
	model.PA, model.AB, model.Runs, model.Hits, model.Doubles, model.Triples,
	model.HR, model.RBI, model.BB, model.SO, model.HBP, model.SB, model.CS,
	model.AVG, model.OBP, model.SLG, model.OPS, model.ISO,
	model.BBPct, model.KPct, model.BABIP, model.WOBA, model.WRCPlus,
	model.GBPct, model.FBPct, model.LDPct, model.HRPerFB,
	model.PullPct, model.SwingPct, model.ContactPct,
}

// pitchingOrder is the display order for pitching aggregates.
var pitchingOrder = []model.StatKey{
	model.GS, model.IP, model.W, model.L, model.SV,
	model.Hits, model.ER, model.BB, model.SO, model.HR,
	model.ERA, model.WHIP, model.KPer9, model.BBPer9, model.HRPer9,
	model.KPct, model.BBPct, model.KMinusBB, model.KPerBB,
	model.BABIP, model.FIP, model.XFIP,
	model.GBPct, model.FBPct, model.LDPct, model.HRPerFB,
	model.SwingPct, model.ContactPct, model.CSWPct,
}

// StatOrder returns the display key order for a stat type.
func StatOrder(typ model.StatType) []model.StatKey {
	if typ == model.Pitching {
		return pitchingOrder
	}
	return battingOrder
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintPlayers lists the tracked roster with stored-game counts.
func PrintPlayers(w io.Writer, players []model.Player, gameCounts map[int]int) {
	table := newTable(w)
	table.Header("ID", "NAME", "ORG", "LEVEL", "POS", "TYPE", "GAMES")
	for _, p := range players {
		level := string(p.Level)
		if level == "" {
			level = absent
		}
		table.Append(
			strconv.Itoa(p.ID),
			p.Name,
			orDash(p.Org),
			level,
			orDash(p.Position),
			string(p.Type),
			strconv.Itoa(gameCounts[p.ID]),
		)
	}
	table.Render()
}

// PrintSeasonLine prints one aggregate as a header/value table under a
// label such as "Season" or "Last 7 days".
func PrintSeasonLine(w io.Writer, label string, agg model.SeasonAggregate) {
	fmt.Fprintf(w, "\n%s (%d G, %s)\n", label, agg.Games, agg.Type)

	var headers, values []string
	headers = append(headers, "G")
	values = append(values, strconv.Itoa(agg.Games))
	for _, key := range StatOrder(agg.Type) {
		v, ok := agg.Stats.Get(key)
		headers = append(headers, string(key))
		if !ok {
			values = append(values, absent)
			continue
		}
		values = append(values, model.FormatStat(key, v))
	}

	// Wide stat lines wrap into chunks so the table stays readable.
	const chunk = 15
	for start := 0; start < len(headers); start += chunk {
		end := start + chunk
		if end > len(headers) {
			end = len(headers)
		}
		table := newTable(w)
		table.Header(toAny(headers[start:end])...)
		table.Append(toAny(values[start:end])...)
		table.Render()
	}
}

// PrintBoard prints one ranked leaderboard. Empty boards still print
// their title so the daily digest has a stable shape.
func PrintBoard(w io.Writer, title string, entries []leaderboard.Entry) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (no qualifiers)")
		return
	}
	table := newTable(w)
	table.Header("#", "NAME", "TEAM", "LINE")
	for i, e := range entries {
		table.Append(strconv.Itoa(i+1), e.Name, orDash(e.TeamLabel), e.Display)
	}
	table.Render()
}

// PrintWindowBoards prints every trailing-window board in order.
func PrintWindowBoards(w io.Writer, results []leaderboard.BoardResult) {
	for _, r := range results {
		PrintBoard(w, r.Board.Name, r.Entries)
	}
}

// PrintStreaks prints active streaks, longest first.
func PrintStreaks(w io.Writer, streaks []leaderboard.Streak) {
	if len(streaks) == 0 {
		fmt.Fprintln(w, "No active streaks.")
		return
	}
	table := newTable(w)
	table.Header("NAME", "TEAM", "STREAK", "GAMES")
	for _, s := range streaks {
		table.Append(s.Name, orDash(s.TeamLabel), string(s.Kind), strconv.Itoa(s.Length))
	}
	table.Render()
}

// PrintPromotions prints detected level debuts.
func PrintPromotions(w io.Writer, promos []leaderboard.Promotion) {
	if len(promos) == 0 {
		fmt.Fprintln(w, "No promotions detected.")
		return
	}
	table := newTable(w)
	table.Header("NAME", "TEAM", "FROM", "TO", "DEBUT")
	for _, p := range promos {
		table.Append(p.Name, orDash(p.TeamLabel), string(p.From), string(p.To), p.Display)
	}
	table.Render()
}

// PrintLeagueAverages prints the pooled baseline for each level that has
// one, ALL first, then the ladder bottom-up.
func PrintLeagueAverages(w io.Writer, avgs league.AveragesByLevel, typ model.StatType) {
	levels := append([]model.Level{model.LevelAll}, model.Levels...)
	for _, level := range levels {
		byType, ok := avgs[level]
		if !ok {
			continue
		}
		agg, ok := byType[typ]
		if !ok {
			continue
		}
		PrintSeasonLine(w, fmt.Sprintf("League average — %s", level), agg)
	}
}

func orDash(s string) string {
	if s == "" {
		return absent
	}
	return s
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
