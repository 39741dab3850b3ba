package leaderboard

import (
	"testing"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func battingGame(date string, stats model.StatLine) model.GameEntry {
	return model.GameEntry{Date: day(date), Level: model.LevelAA, Type: model.Batting, Stats: stats}
}

func pitchingGame(date string, stats model.StatLine) model.GameEntry {
	return model.GameEntry{Date: day(date), Level: model.LevelAA, Type: model.Pitching, Stats: stats}
}

func season(id int, name string, typ model.StatType, games ...model.GameEntry) model.PlayerSeason {
	return model.PlayerSeason{
		Player: model.Player{ID: id, Name: name, Org: "NYY", Level: model.LevelAA, Type: typ},
		Games:  games,
	}
}

func defaultEngine() *Engine {
	return NewEngine(DefaultThresholds)
}

// ---- Daily boards ----

func TestHomeRunsBoardNeedsNoPAMinimum(t *testing.T) {
	players := []model.PlayerSeason{
		season(1, "slugger", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 1, model.AB: 1, model.Hits: 1, model.HR: 1})),
		season(2, "bench", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 1})),
	}
	got := defaultEngine().HomeRuns(players, day("2025-06-10"))
	if len(got) != 1 || got[0].PlayerID != 1 {
		t.Fatalf("board = %+v, want only the 1-PA homer", got)
	}
}

func TestRBIBoardPAGateWaivedByHomer(t *testing.T) {
	players := []model.PlayerSeason{
		// 3 RBI in 2 PA without a homer: filtered by the PA floor.
		season(1, "pinch", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 2, model.AB: 2, model.Hits: 1, model.RBI: 3})),
		// 3 RBI in 3 PA: qualifies.
		season(2, "starter", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 3, model.AB: 3, model.Hits: 2, model.RBI: 3})),
		// 3 RBI in 1 PA with a homer: the homer waives the floor.
		season(3, "pinchhr", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 1, model.AB: 1, model.Hits: 1, model.HR: 1, model.RBI: 3})),
	}
	got := defaultEngine().RBIKings(players, day("2025-06-10"))
	ids := make(map[int]bool)
	for _, e := range got {
		ids[e.PlayerID] = true
	}
	if ids[1] {
		t.Error("2-PA, no-homer player made the RBI board")
	}
	if !ids[2] || !ids[3] {
		t.Errorf("board = %+v, want players 2 and 3", got)
	}
}

func TestPerfectDayRequiresEveryABConverted(t *testing.T) {
	players := []model.PlayerSeason{
		season(1, "perfect", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 4})),
		season(2, "nearly", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 5, model.AB: 4, model.Hits: 3})),
		season(3, "short", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 3, model.AB: 3, model.Hits: 3})),
	}
	got := defaultEngine().PerfectDay(players, day("2025-06-10"))
	if len(got) != 1 || got[0].PlayerID != 1 {
		t.Fatalf("board = %+v, want only the 4-for-4", got)
	}
}

func TestQualityStartGatesAndTieBreak(t *testing.T) {
	players := []model.PlayerSeason{
		season(1, "seven", model.Pitching,
			pitchingGame("2025-06-10", model.StatLine{model.GS: 1, model.IP: 7, model.ER: 2, model.SO: 6})),
		season(2, "six", model.Pitching,
			pitchingGame("2025-06-10", model.StatLine{model.GS: 1, model.IP: 6, model.ER: 1, model.SO: 8})),
		// 6 IP but 4 ER: not a quality start.
		season(3, "rocked", model.Pitching,
			pitchingGame("2025-06-10", model.StatLine{model.GS: 1, model.IP: 6, model.ER: 4, model.SO: 5})),
		// 5.2 IP (17 outs): one out short.
		season(4, "pulled", model.Pitching,
			pitchingGame("2025-06-10", model.StatLine{model.GS: 1, model.IP: 5.2, model.ER: 0, model.SO: 9})),
		// Reliever, no start.
		season(5, "bullpen", model.Pitching,
			pitchingGame("2025-06-10", model.StatLine{model.IP: 6, model.ER: 0, model.SO: 7})),
	}
	got := defaultEngine().QualityStart(players, day("2025-06-10"))
	if len(got) != 2 {
		t.Fatalf("board has %d entries, want 2: %+v", len(got), got)
	}
	// More innings ranks first.
	if got[0].PlayerID != 1 || got[1].PlayerID != 2 {
		t.Errorf("order = [%d %d], want [1 2]", got[0].PlayerID, got[1].PlayerID)
	}
}

func TestDoubleheaderFoldsIntoOneDayLine(t *testing.T) {
	players := []model.PlayerSeason{
		season(1, "twinbill", model.Batting,
			model.GameEntry{Date: day("2025-06-10"), GameID: "g1", Type: model.Batting,
				Stats: model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 2, model.RBI: 2}},
			model.GameEntry{Date: day("2025-06-10"), GameID: "g2", Type: model.Batting,
				Stats: model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 2, model.RBI: 2}},
		),
	}
	got := defaultEngine().RBIKings(players, day("2025-06-10"))
	if len(got) != 1 {
		t.Fatalf("board = %+v, want one folded entry", got)
	}
	if got[0].Value != 4 {
		t.Errorf("folded RBI = %v, want 4", got[0].Value)
	}
}

func TestBoardCapAndOrdering(t *testing.T) {
	var players []model.PlayerSeason
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, n := range names {
		players = append(players, season(i+1, n, model.Batting,
			battingGame("2025-06-10", model.StatLine{
				model.PA: 4, model.AB: 4, model.Hits: 1, model.HR: float64(i%3 + 1),
			})))
	}
	got := defaultEngine().HomeRuns(players, day("2025-06-10"))
	if len(got) != DefaultThresholds.MaxEntries {
		t.Fatalf("board has %d entries, want %d", len(got), DefaultThresholds.MaxEntries)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Value > got[i-1].Value {
			t.Errorf("board not sorted descending at %d", i)
		}
	}
}

// ---- 7-day window boards ----

func TestWindowBoardGatesOnPA(t *testing.T) {
	players := []model.PlayerSeason{
		// .500 over 16 PA inside the window: qualifies for Hottest Bats.
		season(1, "hot", model.Batting,
			battingGame("2025-06-09", model.StatLine{model.PA: 8, model.AB: 8, model.Hits: 4}),
			battingGame("2025-06-10", model.StatLine{model.PA: 8, model.AB: 8, model.Hits: 4})),
		// .600 but only 5 PA: under the window floor.
		season(2, "small", model.Batting,
			battingGame("2025-06-10", model.StatLine{model.PA: 5, model.AB: 5, model.Hits: 3})),
		// .500 but outside the window.
		season(3, "stale", model.Batting,
			battingGame("2025-05-20", model.StatLine{model.PA: 20, model.AB: 20, model.Hits: 10})),
	}
	results := defaultEngine().Windows(players, day("2025-06-10"))

	var hottest []Entry
	for _, r := range results {
		if r.Board.Name == "Hottest Bats" {
			hottest = r.Entries
		}
	}
	if len(hottest) != 1 || hottest[0].PlayerID != 1 {
		t.Fatalf("Hottest Bats = %+v, want only player 1", hottest)
	}
}

func TestWindowBoardAscending(t *testing.T) {
	players := []model.PlayerSeason{
		// 1 ER over 9 IP in the window: ERA 1.00, makes Lights Out.
		season(1, "ace", model.Pitching,
			pitchingGame("2025-06-08", model.StatLine{model.IP: 9, model.ER: 1, model.Hits: 4, model.BB: 1, model.SO: 11})),
		// ERA 5.00: excluded from Lights Out.
		season(2, "meh", model.Pitching,
			pitchingGame("2025-06-08", model.StatLine{model.IP: 9, model.ER: 5, model.Hits: 9, model.BB: 3, model.SO: 6})),
	}
	results := defaultEngine().Windows(players, day("2025-06-10"))

	for _, r := range results {
		if r.Board.Name != "Lights Out" {
			continue
		}
		if len(r.Entries) != 1 || r.Entries[0].PlayerID != 1 {
			t.Fatalf("Lights Out = %+v, want only the ace", r.Entries)
		}
	}
}

func TestWindowsReturnsEveryBoardInOrder(t *testing.T) {
	results := defaultEngine().Windows(nil, day("2025-06-10"))
	if len(results) != len(WindowBoards) {
		t.Fatalf("got %d boards, want %d", len(results), len(WindowBoards))
	}
	for i, r := range results {
		if r.Board.Name != WindowBoards[i].Name {
			t.Errorf("board %d = %s, want %s", i, r.Board.Name, WindowBoards[i].Name)
		}
	}
}

// ---- Streaks ----

func TestStreakSkipsZeroPAGamesButBreaksOnOhfer(t *testing.T) {
	// Newest-first: hit, 0-PA (skip), hit, 0-for-4 (break), hit, hit.
	games := []model.GameEntry{
		battingGame("2025-06-10", model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 1}),
		battingGame("2025-06-09", model.StatLine{model.PA: 0}),
		battingGame("2025-06-08", model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 2}),
		battingGame("2025-06-07", model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 0}),
		battingGame("2025-06-06", model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 1}),
		battingGame("2025-06-05", model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 1}),
	}
	got := scanStreak(games, streakRules[0]) // hitting
	if got != 2 {
		t.Errorf("hitting streak = %d, want 2", got)
	}
}

func TestStreaksReportOnlyAtMinimumLength(t *testing.T) {
	var games []model.GameEntry
	for d := 1; d <= 5; d++ {
		games = append(games, battingGame(
			time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 1}))
	}
	players := []model.PlayerSeason{season(1, "steady", model.Batting, games...)}

	got := defaultEngine().Streaks(players)
	var hitting *Streak
	for i := range got {
		if got[i].Kind == HittingStreak {
			hitting = &got[i]
		}
	}
	if hitting == nil || hitting.Length != 5 {
		t.Fatalf("streaks = %+v, want a 5-game hitting streak", got)
	}

	// One game fewer stays unreported.
	players[0].Games = games[:4]
	for _, s := range defaultEngine().Streaks(players) {
		if s.Kind == HittingStreak {
			t.Errorf("4-game hitting streak reported: %+v", s)
		}
	}
}

func TestScorelessStreakSkipsNoIPAppearances(t *testing.T) {
	games := []model.GameEntry{
		pitchingGame("2025-06-10", model.StatLine{model.IP: 2, model.ER: 0}),
		pitchingGame("2025-06-09", model.StatLine{model.IP: 0}),
		pitchingGame("2025-06-08", model.StatLine{model.IP: 1.2, model.ER: 0}),
		pitchingGame("2025-06-07", model.StatLine{model.IP: 1, model.ER: 1}),
	}
	got := scanStreak(games, streakRules[4]) // scoreless
	if got != 2 {
		t.Errorf("scoreless streak = %d, want 2", got)
	}
}

// ---- Promotions ----

func promoPlayer(id int, games ...model.GameEntry) model.PlayerSeason {
	return season(id, "riser", model.Batting, games...)
}

func levelGame(date string, level model.Level) model.GameEntry {
	g := battingGame(date, model.StatLine{model.PA: 4, model.AB: 4, model.Hits: 1})
	g.Level = level
	return g
}

func TestPromotionDetectsFirstHigherLevelGame(t *testing.T) {
	players := []model.PlayerSeason{promoPlayer(1,
		levelGame("2025-06-05", model.LevelAA),
		levelGame("2025-06-07", model.LevelAA),
		levelGame("2025-06-10", model.LevelAAA),
	)}
	got := defaultEngine().Promotions(players, day("2025-06-10"))
	if len(got) != 1 {
		t.Fatalf("promotions = %+v, want one", got)
	}
	p := got[0]
	if p.From != model.LevelAA || p.To != model.LevelAAA {
		t.Errorf("promotion %s → %s, want AA → AAA", p.From, p.To)
	}
	if !p.Date.Equal(day("2025-06-10")) {
		t.Errorf("date = %v, want 2025-06-10", p.Date)
	}
}

func TestPromotionIdempotentAcrossReruns(t *testing.T) {
	// After a week at AAA the baseline is AAA itself, and the debut game is
	// no longer the first at that level: later runs stay quiet.
	players := []model.PlayerSeason{promoPlayer(1,
		levelGame("2025-06-05", model.LevelAA),
		levelGame("2025-06-10", model.LevelAAA),
		levelGame("2025-06-12", model.LevelAAA),
		levelGame("2025-06-14", model.LevelAAA),
	)}
	if got := defaultEngine().Promotions(players, day("2025-06-15")); len(got) != 0 {
		t.Errorf("rerun reported %+v, want none", got)
	}
}

func TestPromotionIgnoresReturnToFormerLevel(t *testing.T) {
	// Prior AAA time in April: a June AAA game is not a debut.
	players := []model.PlayerSeason{promoPlayer(1,
		levelGame("2025-04-05", model.LevelAAA),
		levelGame("2025-06-05", model.LevelAA),
		levelGame("2025-06-10", model.LevelAAA),
	)}
	if got := defaultEngine().Promotions(players, day("2025-06-10")); len(got) != 0 {
		t.Errorf("re-promotion reported %+v, want none", got)
	}
}

func TestPromotionNeedsBaselineInLookback(t *testing.T) {
	// No games in the week before the cutoff: no baseline, no detection.
	players := []model.PlayerSeason{promoPlayer(1,
		levelGame("2025-05-01", model.LevelAA),
		levelGame("2025-06-10", model.LevelAAA),
	)}
	if got := defaultEngine().Promotions(players, day("2025-06-10")); len(got) != 0 {
		t.Errorf("promotions = %+v, want none without a baseline", got)
	}
}
