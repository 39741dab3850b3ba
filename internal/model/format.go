package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatStat renders a stat value the way box scores print it: averages
// without the leading zero (.455), ERA-family to two decimals, per-9
// rates to one, percentages from their decimal form, counting stats as
// integers.
func FormatStat(key StatKey, v float64) string {
	switch key {
	case AVG, OBP, SLG, OPS, ISO, BABIP, WOBA:
		s := fmt.Sprintf("%.3f", v)
		if strings.HasPrefix(s, "0.") {
			return s[1:]
		}
		if strings.HasPrefix(s, "-0.") {
			return "-" + s[2:]
		}
		return s
	case ERA, WHIP, FIP, XFIP:
		return fmt.Sprintf("%.2f", v)
	case KPer9, BBPer9, HRPer9, KPerBB:
		return fmt.Sprintf("%.1f", v)
	case BBPct, KPct, KMinusBB, GBPct, FBPct, LDPct, HRPerFB, PullPct,
		SwingPct, ContactPct, CSWPct:
		return fmt.Sprintf("%.1f%%", v*100)
	case IP:
		return fmt.Sprintf("%.1f", v)
	case WRCPlus:
		return strconv.Itoa(int(v))
	default:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return fmt.Sprintf("%.1f", v)
	}
}
