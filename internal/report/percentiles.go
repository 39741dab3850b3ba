package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/comcgovern/go-milb-metrics/internal/model"
	"github.com/comcgovern/go-milb-metrics/internal/percentile"
)

// cardKeys are the stats shown on a percentile card, per type. Counting
// totals stay off the card; it compares rates and run-value stats.
var cardKeys = map[model.StatType][]model.StatKey{
	model.Batting: {
		model.AVG, model.OBP, model.SLG, model.OPS, model.ISO,
		model.BBPct, model.KPct, model.BABIP, model.WOBA, model.WRCPlus,
		model.GBPct, model.FBPct, model.LDPct, model.HRPerFB,
		model.PullPct, model.SwingPct, model.ContactPct,
	},
	model.Pitching: {
		model.ERA, model.WHIP, model.KPer9, model.BBPer9, model.HRPer9,
		model.KPct, model.BBPct, model.KMinusBB, model.KPerBB,
		model.BABIP, model.FIP, model.XFIP,
		model.GBPct, model.FBPct, model.HRPerFB, model.CSWPct,
	},
}

// bandColors runs cold (decile 0, blue) through neutral to hot (decile 9,
// red), savant-style.
var bandColors = [10]*color.Color{
	color.New(color.FgHiBlue),
	color.New(color.FgBlue),
	color.New(color.FgCyan),
	color.New(color.FgHiCyan),
	color.New(color.FgWhite),
	color.New(color.FgHiWhite),
	color.New(color.FgYellow),
	color.New(color.FgHiYellow),
	color.New(color.FgRed),
	color.New(color.FgHiRed),
}

// percentileBar renders a 10-cell decile bar with the player's cell lit.
func percentileBar(p int) string {
	band := percentile.Band(p)
	var b strings.Builder
	for i := 0; i < 10; i++ {
		cell := "·"
		if i == band {
			cell = "█"
		}
		b.WriteString(bandColors[i].Sprint(cell))
	}
	return b.String()
}

// PrintPercentileCard prints one aggregate's stats ranked against the
// pool for level. Stats whose pool was suppressed print a dash in the
// percentile column.
func PrintPercentileCard(w io.Writer, label string, agg model.SeasonAggregate, dists percentile.ByLevel, level model.Level) {
	fmt.Fprintf(w, "\n%s — percentiles vs %s (%d G)\n", label, level, agg.Games)

	if !percentile.Qualified(agg) {
		fmt.Fprintln(w, "  Sample below qualification minimums; no ranks shown.")
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("STAT", "VALUE", "PCTL", "")

	for _, key := range cardKeys[agg.Type] {
		v, ok := agg.Stats.Get(key)
		if !ok {
			continue
		}
		raw, ok := percentile.Rank(dists, level, key, v, agg.Type)
		pctl, bar := absent, ""
		if ok {
			p := percentile.DisplayRank(raw, key, agg.Type)
			pctl = fmt.Sprintf("%d", p)
			bar = percentileBar(p)
		}
		table.Append(string(key), model.FormatStat(key, v), pctl, bar)
	}
	table.Render()
}
