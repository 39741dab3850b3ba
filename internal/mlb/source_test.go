package mlb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

const juneFile = `{
  "year": 2025, "month": 6,
  "players": {
    "695578": {
      "id": 695578, "name": "Jasson Dominguez", "org": "NYY",
      "level": "AAA", "position": "CF", "type": "batting",
      "games": [
        {"date": "2025-06-01", "gameId": "g1", "opponent": "Syracuse Mets",
         "home": true, "stats": {"PA": 4, "AB": 4, "H": 2, "HR": 1}},
        {"date": "2025-06-02", "gameId": "g2",
         "stats": {"PA": 3, "AB": 3, "H": 0}}
      ]
    }
  }
}`

const julyFile = `{
  "year": 2025, "month": 7,
  "players": {
    "695578": {
      "id": 695578, "name": "Jasson Dominguez", "org": "NYY",
      "level": "AAA", "position": "CF", "type": "batting",
      "games": [
        {"date": "2025-07-01", "gameId": "g3", "stats": {"PA": 5, "AB": 4, "H": 1, "BB": 1}}
      ]
    }
  }
}`

func writeSeason(t *testing.T, withManifest bool) string {
	t.Helper()
	dir := t.TempDir()
	year := filepath.Join(dir, "2025")
	if err := os.MkdirAll(year, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{"06.json": juneFile, "07.json": julyFile}
	if withManifest {
		files["manifest.json"] = `{"year": 2025, "months": ["06", "07"]}`
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(year, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestMonthlySourceMergesMonths(t *testing.T) {
	source := NewMonthlySource(writeSeason(t, true), nil)

	seasons, err := source.Load(2025)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("got %d players, want 1", len(seasons))
	}
	ps := seasons[0]
	if ps.Player.Name != "Jasson Dominguez" || ps.Player.Level != model.LevelAAA {
		t.Errorf("player = %+v", ps.Player)
	}
	if len(ps.Games) != 3 {
		t.Fatalf("got %d games across months, want 3", len(ps.Games))
	}
	// Date order across month boundaries.
	if ps.Games[0].GameID != "g1" || ps.Games[2].GameID != "g3" {
		t.Errorf("games out of order: %s .. %s", ps.Games[0].GameID, ps.Games[2].GameID)
	}
	// Entry-level fields and the sparse stat line survive decoding.
	g := ps.Games[0]
	if g.Home == nil || !*g.Home || g.Opponent != "Syracuse Mets" {
		t.Errorf("game fields lost: %+v", g)
	}
	if g.Stats[model.HR] != 1 || g.Stats.Has(model.RBI) {
		t.Errorf("stat line wrong: %+v", g.Stats)
	}
	// Game without its own level inherits the player's.
	if ps.Games[1].Level != model.LevelAAA {
		t.Errorf("level not inherited: %s", ps.Games[1].Level)
	}
}

func TestMonthlySourceWorksWithoutManifest(t *testing.T) {
	source := NewMonthlySource(writeSeason(t, false), nil)

	seasons, err := source.Load(2025)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(seasons) != 1 || len(seasons[0].Games) != 3 {
		t.Fatalf("seasons = %+v, want 1 player with 3 games", seasons)
	}
}

func TestMonthlySourceMissingYear(t *testing.T) {
	source := NewMonthlySource(t.TempDir(), nil)
	seasons, err := source.Load(2025)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(seasons) != 0 {
		t.Errorf("got %d players from an empty dir", len(seasons))
	}
}

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	dir := writeSeason(t, true)
	cache := NewCache()
	source := NewMonthlySource(dir, cache)

	if _, err := source.Load(2025); err != nil {
		t.Fatalf("first Load: %v", err)
	}

	// Overwrite June on disk; the cached copy must still be served.
	june := filepath.Join(dir, "2025", "06.json")
	if err := os.WriteFile(june, []byte(`{"year":2025,"month":6,"players":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	seasons, err := source.Load(2025)
	if err != nil {
		t.Fatalf("cached Load: %v", err)
	}
	if len(seasons) != 1 || len(seasons[0].Games) != 3 {
		t.Fatalf("cache not used: %+v", seasons)
	}

	cache.Invalidate()
	seasons, err = source.Load(2025)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(seasons) != 1 || len(seasons[0].Games) != 1 {
		t.Fatalf("invalidate did not reread disk: %+v", seasons)
	}
}
