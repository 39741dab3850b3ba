package splits

import (
	"errors"
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

func gameOn(date string) model.GameEntry {
	return model.GameEntry{Date: day(date), Type: model.Batting, Stats: model.StatLine{}}
}

func homeGame(date string, home bool) model.GameEntry {
	g := gameOn(date)
	g.Home = &home
	return g
}

func vsHand(date, hand string) model.GameEntry {
	g := gameOn(date)
	g.OpponentHand = hand
	return g
}

func TestSeasonMatchesEverything(t *testing.T) {
	pred, err := Resolve(Spec{Kind: Season}, day("2025-07-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !pred(gameOn("2023-01-01")) {
		t.Error("season split rejected an entry")
	}
}

func TestLast7IsInclusiveOfBothEnds(t *testing.T) {
	ref := day("2025-07-10")
	pred, err := Resolve(Spec{Kind: Last7}, ref)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		date string
		want bool
	}{
		{"2025-07-10", true},  // the reference day itself
		{"2025-07-04", true},  // 6 days back, still inside
		{"2025-07-03", false}, // 7 days back, outside
		{"2025-07-11", false}, // future
	}
	for _, c := range cases {
		if got := pred(gameOn(c.date)); got != c.want {
			t.Errorf("last7 on %s = %v, want %v", c.date, got, c.want)
		}
	}
}

func TestTodayAndYesterday(t *testing.T) {
	ref := day("2025-07-10")
	today, _ := Resolve(Spec{Kind: Today}, ref)
	yesterday, _ := Resolve(Spec{Kind: Yesterday}, ref)
	if !today(gameOn("2025-07-10")) || today(gameOn("2025-07-09")) {
		t.Error("today predicate wrong")
	}
	if !yesterday(gameOn("2025-07-09")) || yesterday(gameOn("2025-07-10")) {
		t.Error("yesterday predicate wrong")
	}
}

func TestCustomRangeValidation(t *testing.T) {
	_, err := Resolve(Spec{
		Kind: Custom, Start: day("2025-07-10"), End: day("2025-07-01"),
	}, day("2025-07-15"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}

	pred, err := Resolve(Spec{
		Kind: Custom, Start: day("2025-07-01"), End: day("2025-07-01"),
	}, day("2025-07-15"))
	if err != nil {
		t.Fatalf("single-day range rejected: %v", err)
	}
	if !pred(gameOn("2025-07-01")) || pred(gameOn("2025-07-02")) {
		t.Error("single-day range predicate wrong")
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := Resolve(Spec{Kind: "fortnight"}, day("2025-07-01")); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestApplyHandednessSplit(t *testing.T) {
	entries := []model.GameEntry{
		vsHand("2025-06-01", "L"),
		vsHand("2025-06-02", "R"),
		vsHand("2025-06-03", "L"),
	}
	got, err := Apply(Spec{Kind: VsLeft}, day("2025-07-01"), entries)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("vsLeft matched %d entries, want 2", len(got))
	}
}

func TestApplyDataUnavailable(t *testing.T) {
	// No entry records handedness: that is "data not collected", not an
	// empty split.
	entries := []model.GameEntry{gameOn("2025-06-01"), gameOn("2025-06-02")}
	_, err := Apply(Spec{Kind: VsRight}, day("2025-07-01"), entries)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}

	_, err = Apply(Spec{Kind: Home}, day("2025-07-01"), entries)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("home err = %v, want ErrDataUnavailable", err)
	}
}

func TestApplyHomeAwayWhenTracked(t *testing.T) {
	entries := []model.GameEntry{
		homeGame("2025-06-01", true),
		homeGame("2025-06-02", false),
		gameOn("2025-06-03"), // home flag missing on this one game
	}
	home, err := Apply(Spec{Kind: Home}, day("2025-07-01"), entries)
	if err != nil {
		t.Fatal(err)
	}
	if len(home) != 1 {
		t.Errorf("home matched %d entries, want 1", len(home))
	}
	away, err := Apply(Spec{Kind: Away}, day("2025-07-01"), entries)
	if err != nil {
		t.Fatal(err)
	}
	if len(away) != 1 {
		t.Errorf("away matched %d entries, want 1", len(away))
	}
}

func TestApplyEmptyResultIsNotAnError(t *testing.T) {
	entries := []model.GameEntry{vsHand("2025-06-01", "R")}
	got, err := Apply(Spec{Kind: VsLeft}, day("2025-07-01"), entries)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("matched %d entries, want 0", len(got))
	}
}
