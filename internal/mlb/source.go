package mlb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

// Season months: April through September.
const (
	firstSeasonMonth = 4
	lastSeasonMonth  = 9
)

// Cache holds decoded month files keyed by path. It is safe for
// concurrent use and can be dropped wholesale after a fresh fetch.
type Cache struct {
	mu     sync.RWMutex
	months map[string]*monthFile
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{months: make(map[string]*monthFile)}
}

func (c *Cache) get(path string) (*monthFile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mf, ok := c.months[path]
	return mf, ok
}

func (c *Cache) put(path string, mf *monthFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.months[path] = mf
}

// Invalidate discards every cached month so the next load rereads disk.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.months = make(map[string]*monthFile)
}

// MonthlySource reads the tracker's month-partitioned stats files from
// dir/{year}/{MM}.json, with a manifest listing the available months.
type MonthlySource struct {
	dir   string
	cache *Cache
}

// NewMonthlySource creates a source over dir. A nil cache gets a fresh
// private one.
func NewMonthlySource(dir string, cache *Cache) *MonthlySource {
	if cache == nil {
		cache = NewCache()
	}
	return &MonthlySource{dir: dir, cache: cache}
}

// manifest lists the month files present for a season year.
type manifest struct {
	Year   int      `json:"year"`
	Months []string `json:"months"` // "04".."09"
}

// monthFile is one month's stats for every tracked player.
type monthFile struct {
	Year    int                    `json:"year"`
	Month   int                    `json:"month"`
	Players map[string]monthPlayer `json:"players"` // keyed by player id
}

type monthPlayer struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Org      string           `json:"org,omitempty"`
	Level    string           `json:"level,omitempty"`
	Position string           `json:"position,omitempty"`
	Type     string           `json:"type"`
	Games    []monthGameEntry `json:"games"`
}

type monthGameEntry struct {
	Date         string             `json:"date"`
	GameID       string             `json:"gameId,omitempty"`
	Opponent     string             `json:"opponent,omitempty"`
	Team         string             `json:"team,omitempty"`
	Home         *bool              `json:"home,omitempty"`
	Level        string             `json:"level,omitempty"`
	OpponentHand string             `json:"opponentHand,omitempty"`
	Stats        map[string]float64 `json:"stats"`
}

// monthsFor returns the month file paths for year, preferring the
// manifest and falling back to the fixed season range.
func (s *MonthlySource) monthsFor(year int) []string {
	dir := filepath.Join(s.dir, fmt.Sprintf("%d", year))

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err == nil {
		var m manifest
		if err := json.Unmarshal(data, &m); err == nil && len(m.Months) > 0 {
			paths := make([]string, 0, len(m.Months))
			for _, mm := range m.Months {
				paths = append(paths, filepath.Join(dir, mm+".json"))
			}
			return paths
		}
	}

	var paths []string
	for m := firstSeasonMonth; m <= lastSeasonMonth; m++ {
		paths = append(paths, filepath.Join(dir, fmt.Sprintf("%02d.json", m)))
	}
	return paths
}

// loadMonth reads and decodes one month file, consulting the cache first.
// A missing file is not an error; it returns nil.
func (s *MonthlySource) loadMonth(path string) (*monthFile, error) {
	if mf, ok := s.cache.get(path); ok {
		return mf, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var mf monthFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	s.cache.put(path, &mf)
	return &mf, nil
}

// Load merges a season year's month files into per-player seasons.
// Players appearing in several months keep one record with their games
// concatenated in date order.
func (s *MonthlySource) Load(year int) ([]model.PlayerSeason, error) {
	seasons := make(map[int]*model.PlayerSeason)

	for _, path := range s.monthsFor(year) {
		mf, err := s.loadMonth(path)
		if err != nil {
			return nil, err
		}
		if mf == nil {
			continue
		}
		for _, mp := range mf.Players {
			games, err := decodeGames(mp)
			if err != nil {
				return nil, fmt.Errorf("%s: player %d: %w", path, mp.ID, err)
			}
			ps, ok := seasons[mp.ID]
			if !ok {
				ps = &model.PlayerSeason{Player: model.Player{
					ID:       mp.ID,
					Name:     mp.Name,
					Org:      mp.Org,
					Level:    model.Level(mp.Level),
					Position: mp.Position,
					Type:     model.StatType(mp.Type),
				}}
				seasons[mp.ID] = ps
			}
			ps.Games = append(ps.Games, games...)
		}
	}

	out := make([]model.PlayerSeason, 0, len(seasons))
	for _, ps := range seasons {
		sort.Slice(ps.Games, func(i, j int) bool {
			if !ps.Games[i].Date.Equal(ps.Games[j].Date) {
				return ps.Games[i].Date.Before(ps.Games[j].Date)
			}
			return ps.Games[i].GameID < ps.Games[j].GameID
		})
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player.Name < out[j].Player.Name })
	return out, nil
}

// decodeGames converts a month player's raw entries to model entries.
func decodeGames(mp monthPlayer) ([]model.GameEntry, error) {
	typ := model.StatType(mp.Type)
	out := make([]model.GameEntry, 0, len(mp.Games))
	for _, g := range mp.Games {
		date, err := time.ParseInLocation("2006-01-02", g.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", g.Date, err)
		}
		line := make(model.StatLine, len(g.Stats))
		for k, v := range g.Stats {
			line[model.StatKey(k)] = v
		}
		level := model.Level(g.Level)
		if level == "" {
			level = model.Level(mp.Level)
		}
		out = append(out, model.GameEntry{
			Date:         date,
			GameID:       g.GameID,
			Opponent:     g.Opponent,
			Team:         g.Team,
			Home:         g.Home,
			Level:        level,
			OpponentHand: g.OpponentHand,
			Type:         typ,
			Stats:        line,
		})
	}
	return out, nil
}
