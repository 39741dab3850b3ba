package model

import "time"

// StatType tags a game entry or aggregate as a batting line or a pitching
// line. The tag is assigned at ingest time; nothing downstream infers it
// from the presence of particular stat keys.
type StatType string

const (
	Batting  StatType = "batting"
	Pitching StatType = "pitching"
)

// StatKey identifies one statistic inside a StatLine.
type StatKey string

// Counting keys. Shared keys (H, BB, SO, HR, HBP) mean "recorded by the
// batter" on a batting line and "allowed by the pitcher" on a pitching
// line; a single line never mixes the two interpretations.
const (
	PA      StatKey = "PA"
	AB      StatKey = "AB"
	Runs    StatKey = "R"
	Hits    StatKey = "H"
	Doubles StatKey = "2B"
	Triples StatKey = "3B"
	HR      StatKey = "HR"
	RBI     StatKey = "RBI"
	BB      StatKey = "BB"
	SO      StatKey = "SO"
	HBP     StatKey = "HBP"
	SF      StatKey = "SF"
	SB      StatKey = "SB"
	CS      StatKey = "CS"

	IP StatKey = "IP" // fractional notation: .1 = one out, .2 = two outs
	GS StatKey = "GS"
	ER StatKey = "ER"
	W  StatKey = "W"
	L  StatKey = "L"
	SV StatKey = "SV"
)

// Derived rate keys, computed by the aggregator from summed counting keys.
const (
	AVG      StatKey = "AVG"
	OBP      StatKey = "OBP"
	SLG      StatKey = "SLG"
	OPS      StatKey = "OPS"
	ISO      StatKey = "ISO"
	BBPct    StatKey = "BB%"
	KPct     StatKey = "K%"
	BABIP    StatKey = "BABIP"
	WOBA     StatKey = "wOBA"
	WRCPlus  StatKey = "wRC+"
	ERA      StatKey = "ERA"
	WHIP     StatKey = "WHIP"
	KPer9    StatKey = "K/9"
	BBPer9   StatKey = "BB/9"
	HRPer9   StatKey = "HR/9"
	KMinusBB StatKey = "K-BB%"
	KPerBB   StatKey = "K/BB"
	FIP      StatKey = "FIP"
	XFIP     StatKey = "xFIP"
)

// Weighted rate keys. These cannot be re-derived from counting sums; each
// game carries its own value plus a sample-size weight (BIP, PA, or
// innings), and the aggregate is the weighted mean across games.
const (
	GBPct      StatKey = "GB%"
	FBPct      StatKey = "FB%"
	LDPct      StatKey = "LD%"
	HRPerFB    StatKey = "HR/FB"
	PullPct    StatKey = "Pull%"
	SwingPct   StatKey = "Swing%"
	ContactPct StatKey = "Contact%"
	CSWPct     StatKey = "CSW%"

	// BIP is the per-game balls-in-play count, the weight for batted-ball
	// rates. Discipline rates weight by PA (batters) or innings (pitchers).
	BIP StatKey = "BIP"
)

// StatLine is a sparse stat-key → value mapping. A missing key means the
// statistic was not tracked for this line, which is distinct from a
// tracked value of zero.
type StatLine map[StatKey]float64

// Get returns the value for key and whether it is present.
func (s StatLine) Get(key StatKey) (float64, bool) {
	v, ok := s[key]
	return v, ok
}

// Has reports whether key is present.
func (s StatLine) Has(key StatKey) bool {
	_, ok := s[key]
	return ok
}

// Clone returns a copy of the line.
func (s StatLine) Clone() StatLine {
	out := make(StatLine, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Level is a minor-league competition level.
type Level string

const (
	LevelCPX   Level = "CPX"
	LevelA     Level = "A"
	LevelAPlus Level = "A+"
	LevelAA    Level = "AA"
	LevelAAA   Level = "AAA"

	// LevelAll is the pooled pseudo-level used by the percentile and
	// league-average engines. It is not part of the promotion ladder.
	LevelAll Level = "ALL"
)

// Levels lists the real competition levels in ascending order.
var Levels = []Level{LevelCPX, LevelA, LevelAPlus, LevelAA, LevelAAA}

// Rank returns the level's position on the ladder, lowest first.
// LevelAll and unknown levels rank 0.
func (l Level) Rank() int {
	switch l {
	case LevelCPX:
		return 1
	case LevelA:
		return 2
	case LevelAPlus:
		return 3
	case LevelAA:
		return 4
	case LevelAAA:
		return 5
	default:
		return 0
	}
}

// GameEntry is one player's line in one contest.
type GameEntry struct {
	Date         time.Time // civil day; time-of-day is ignored everywhere
	GameID       string
	Opponent     string
	Team         string
	Home         *bool // nil when home/away was not recorded
	Level        Level
	OpponentHand string // "L", "R", or "" when not recorded
	Type         StatType
	Stats        StatLine
}

// Day normalizes a time to its civil day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same civil day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SeasonAggregate is the result of folding game entries of one type for
// one player. Every rate key it carries was derived from the folded
// counting keys, never averaged from per-game rates.
type SeasonAggregate struct {
	Type  StatType
	Games int
	Stats StatLine
}

// Player is a tracked roster record.
type Player struct {
	ID       int
	Name     string
	Org      string
	Level    Level
	Position string
	Type     StatType
}

// TeamLabel is the display context used on leaderboard rows.
func (p Player) TeamLabel() string {
	if p.Org == "" {
		return string(p.Level)
	}
	if p.Level == "" {
		return p.Org
	}
	return p.Org + " (" + string(p.Level) + ")"
}

// PlayerSeason couples a roster record with its full game log.
type PlayerSeason struct {
	Player Player
	Games  []GameEntry
}

// GamesOfType returns the player's entries matching the given type.
func (ps PlayerSeason) GamesOfType(t StatType) []GameEntry {
	var out []GameEntry
	for _, g := range ps.Games {
		if g.Type == t {
			out = append(out, g)
		}
	}
	return out
}
