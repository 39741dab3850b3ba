package aggregator

import "math"

// Innings pitched use baseball fractional notation: 5.2 means five innings
// plus two outs. Summing the decimal values directly is wrong (1.2 + 1.2
// must give 3.1, not 2.4), so all IP arithmetic goes through out counts.

// IPToOuts converts fractional-notation innings to a whole out count.
func IPToOuts(ip float64) int {
	whole := math.Floor(ip)
	frac := math.Round((ip - whole) * 10)
	return int(whole)*3 + int(frac)
}

// OutsToIP converts a whole out count back to fractional notation.
func OutsToIP(outs int) float64 {
	return float64(outs/3) + float64(outs%3)/10
}

// TrueInnings converts a whole out count to real innings (outs / 3),
// the denominator for ERA, WHIP, and the per-9 rates.
func TrueInnings(outs int) float64 {
	return float64(outs) / 3
}
