package model

import "testing"

func TestFormatStat(t *testing.T) {
	cases := []struct {
		key  StatKey
		v    float64
		want string
	}{
		{AVG, 0.4545, ".455"},
		{AVG, 1.0, "1.000"},
		{OBP, 0.4, ".400"},
		{ISO, -0.05, "-.050"},
		{ERA, 3.375, "3.38"},
		{WHIP, 1.0, "1.00"},
		{KPer9, 11.17, "11.2"},
		{BBPct, 0.152, "15.2%"},
		{IP, 5.2, "5.2"},
		{WRCPlus, 155, "155"},
		{HR, 3, "3"},
		{PA, 412, "412"},
	}
	for _, c := range cases {
		if got := FormatStat(c.key, c.v); got != c.want {
			t.Errorf("FormatStat(%s, %v) = %q, want %q", c.key, c.v, got, c.want)
		}
	}
}

func TestLevelRankOrdering(t *testing.T) {
	for i := 1; i < len(Levels); i++ {
		if Levels[i].Rank() <= Levels[i-1].Rank() {
			t.Errorf("%s does not outrank %s", Levels[i], Levels[i-1])
		}
	}
	if LevelAll.Rank() != 0 {
		t.Errorf("ALL rank = %d, want 0", LevelAll.Rank())
	}
	if Level("rookie-ball").Rank() != 0 {
		t.Errorf("unknown level rank = %d, want 0", Level("rookie-ball").Rank())
	}
}

func TestTeamLabel(t *testing.T) {
	cases := []struct {
		p    Player
		want string
	}{
		{Player{Org: "NYY", Level: LevelAA}, "NYY (AA)"},
		{Player{Org: "NYY"}, "NYY"},
		{Player{Level: LevelAA}, "AA"},
	}
	for _, c := range cases {
		if got := c.p.TeamLabel(); got != c.want {
			t.Errorf("TeamLabel(%+v) = %q, want %q", c.p, got, c.want)
		}
	}
}
