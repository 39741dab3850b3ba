// Package aggregator folds per-game stat lines into season aggregates.
// Every rate it emits is re-derived from summed counting stats; per-game
// rates are never averaged, because per-game sample sizes differ.
package aggregator

import (
	"math"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

// battingCounting and pitchingCounting are the keys summed directly.
// IP is handled separately through out-count conversion.
var battingCounting = []model.StatKey{
	model.PA, model.AB, model.Runs, model.Hits, model.Doubles, model.Triples,
	model.HR, model.RBI, model.BB, model.SO, model.HBP, model.SF,
	model.SB, model.CS,
}

var pitchingCounting = []model.StatKey{
	model.GS, model.ER, model.Runs, model.Hits, model.BB, model.SO,
	model.HR, model.HBP, model.W, model.L, model.SV,
}

// weightedRate pairs a rate key with the accessor for its per-game weight.
// The aggregate value is Σ(value·weight)/Σ(weight) over games carrying both.
type weightedRate struct {
	key    model.StatKey
	weight func(model.StatLine) (float64, bool)
}

func bipWeight(s model.StatLine) (float64, bool) { return s.Get(model.BIP) }
func paWeight(s model.StatLine) (float64, bool)  { return s.Get(model.PA) }
func ipWeight(s model.StatLine) (float64, bool) {
	ip, ok := s.Get(model.IP)
	if !ok {
		return 0, false
	}
	return float64(IPToOuts(ip)), true
}

var battingWeighted = []weightedRate{
	{model.GBPct, bipWeight},
	{model.FBPct, bipWeight},
	{model.LDPct, bipWeight},
	{model.HRPerFB, bipWeight},
	{model.PullPct, bipWeight},
	{model.SwingPct, paWeight},
	{model.ContactPct, paWeight},
}

var pitchingWeighted = []weightedRate{
	{model.GBPct, bipWeight},
	{model.FBPct, bipWeight},
	{model.LDPct, bipWeight},
	{model.HRPerFB, bipWeight},
	{model.SwingPct, ipWeight},
	{model.ContactPct, ipWeight},
	{model.CSWPct, ipWeight},
}

// Aggregate folds the entries of the given type into one season aggregate.
// The second return is false when no entry matches. It never errors:
// missing fields and zero denominators just mean fewer output keys.
func Aggregate(entries []model.GameEntry, typ model.StatType) (model.SeasonAggregate, bool) {
	var matched []model.GameEntry
	for _, g := range entries {
		if g.Type == typ {
			matched = append(matched, g)
		}
	}
	if len(matched) == 0 {
		return model.SeasonAggregate{}, false
	}

	counting := battingCounting
	weighted := battingWeighted
	if typ == model.Pitching {
		counting = pitchingCounting
		weighted = pitchingWeighted
	}

	// Pass 1: sum counting keys. sums carries every tracked total
	// (including zeros, which the derivations need); only non-zero totals
	// make it into the output line, mirroring the tracked-vs-absent
	// semantics of the source data.
	sums := make(model.StatLine)
	for _, g := range matched {
		for _, k := range counting {
			if v, ok := g.Stats.Get(k); ok {
				sums[k] += v
			}
		}
	}

	out := make(model.StatLine)
	for k, v := range sums {
		if v != 0 {
			out[k] = v
		}
	}

	// Pass 2: innings pitched via out counts.
	outs := 0
	if typ == model.Pitching {
		for _, g := range matched {
			if ip, ok := g.Stats.Get(model.IP); ok {
				outs += IPToOuts(ip)
			}
		}
		if outs > 0 {
			out[model.IP] = OutsToIP(outs)
		}
	}

	// Pass 3: derived rates from the summed counts.
	if typ == model.Batting {
		deriveBatting(sums, out)
	} else {
		derivePitching(sums, outs, out)
	}

	// Pass 4: weighted batted-ball and discipline rates.
	for _, wr := range weighted {
		if v, ok := weightedMean(matched, wr.key, wr.weight); ok {
			out[wr.key] = roundTo(v, 3)
		}
	}

	return model.SeasonAggregate{Type: typ, Games: len(matched), Stats: out}, true
}

func deriveBatting(sums, out model.StatLine) {
	pa := sums[model.PA]
	ab := sums[model.AB]
	h := sums[model.Hits]
	d2 := sums[model.Doubles]
	d3 := sums[model.Triples]
	hr := sums[model.HR]
	bb := sums[model.BB]
	so := sums[model.SO]
	hbp := sums[model.HBP]
	sf := sums[model.SF]

	totalBases := h + d2 + 2*d3 + 3*hr
	singles := h - d2 - d3 - hr

	avg, avgOK := ratio(h, ab)
	if avgOK {
		out[model.AVG] = roundTo(avg, 3)
	}
	obp, obpOK := ratio(h+bb+hbp, pa)
	if obpOK {
		out[model.OBP] = roundTo(obp, 3)
	}
	slg, slgOK := ratio(totalBases, ab)
	if slgOK {
		out[model.SLG] = roundTo(slg, 3)
	}
	if obpOK && slgOK {
		out[model.OPS] = roundTo(obp+slg, 3)
	}
	if avgOK && slgOK {
		out[model.ISO] = roundTo(slg-avg, 3)
	}
	if v, ok := ratio(bb, pa); ok {
		out[model.BBPct] = roundTo(v, 3)
	}
	if v, ok := ratio(so, pa); ok {
		out[model.KPct] = roundTo(v, 3)
	}
	if v, ok := ratio(h-hr, ab-so-hr+sf); ok {
		out[model.BABIP] = roundTo(v, 3)
	}

	wobaNum := wobaBB*bb + wobaHBP*hbp + woba1B*singles + woba2B*d2 + woba3B*d3 + wobaHR*hr
	if woba, ok := ratio(wobaNum, ab+bb+sf+hbp); ok {
		out[model.WOBA] = roundTo(woba, 3)
		wrc := ((woba-leagueWOBA)/wobaScale + leagueRunsPerPA) / leagueRunsPerPA * 100
		out[model.WRCPlus] = roundTo(wrc, 0)
	}
}

func derivePitching(sums model.StatLine, outs int, out model.StatLine) {
	ip := TrueInnings(outs)
	er := sums[model.ER]
	h := sums[model.Hits]
	bb := sums[model.BB]
	so := sums[model.SO]
	hr := sums[model.HR]
	hbp := sums[model.HBP]

	if v, ok := ratio(9*er, ip); ok {
		out[model.ERA] = roundTo(v, 2)
	}
	if v, ok := ratio(bb+h, ip); ok {
		out[model.WHIP] = roundTo(v, 2)
	}
	if v, ok := ratio(9*so, ip); ok {
		out[model.KPer9] = roundTo(v, 1)
	}
	if v, ok := ratio(9*bb, ip); ok {
		out[model.BBPer9] = roundTo(v, 1)
	}
	if v, ok := ratio(9*hr, ip); ok {
		out[model.HRPer9] = roundTo(v, 1)
	}

	// Batters faced is not tracked per game; the tracker estimates it as
	// H+BB+SO+HBP for the percentage rates.
	estBF := h + bb + so + hbp
	kPct, kOK := ratio(so, estBF)
	if kOK {
		out[model.KPct] = roundTo(kPct, 3)
	}
	bbPct, bbOK := ratio(bb, estBF)
	if bbOK {
		out[model.BBPct] = roundTo(bbPct, 3)
	}
	if kOK && bbOK {
		out[model.KMinusBB] = roundTo(kPct-bbPct, 3)
	}

	// Estimated at-bats for BABIP: recorded outs plus hits allowed.
	estAB := 3*ip + h
	if v, ok := ratio(h-hr, estAB-so-hr); ok {
		out[model.BABIP] = roundTo(v, 3)
	}

	if v, ok := ratio(so, bb); ok {
		out[model.KPerBB] = roundTo(v, 1)
	}

	if fip, ok := ratio(13*hr+3*(bb+hbp)-2*so, ip); ok {
		out[model.FIP] = roundTo(fip+fipConstant, 2)
	}

	// xFIP replaces actual HR with an expectation from estimated balls in
	// play and fixed league fly-ball rates.
	estBIP := estAB - so - hr
	if estBIP > 0 {
		expHR := estBIP * xfipFlyBallRate * xfipHRPerFlyBall
		if xfip, ok := ratio(13*expHR+3*(bb+hbp)-2*so, ip); ok {
			out[model.XFIP] = roundTo(xfip+fipConstant, 2)
		}
	}
}

// weightedMean computes Σ(value·weight)/Σ(weight) over entries where both
// the rate value and its weight are present. ok is false when no entry
// supplies a positive weight.
func weightedMean(entries []model.GameEntry, key model.StatKey, weight func(model.StatLine) (float64, bool)) (float64, bool) {
	var num, den float64
	for _, g := range entries {
		v, vok := g.Stats.Get(key)
		w, wok := weight(g.Stats)
		if !vok || !wok || w <= 0 {
			continue
		}
		num += v * w
		den += w
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// ratio guards a division: ok is false when the denominator is zero, so
// callers omit the field instead of emitting NaN or Inf.
func ratio(num, den float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
