// Package mlb loads player and game-log data from the MLB Stats API and
// from the tracker's month-partitioned stats files.
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

const (
	// BaseURL is the public MLB Stats API root.
	BaseURL = "https://statsapi.mlb.com/api/v1"

	requestTimeout = 60 * time.Second
	maxRetries     = 3
	retryDelay     = 2 * time.Second
)

// SportIDs maps minor-league levels to MLB Stats API sport ids.
var SportIDs = map[model.Level]int{
	model.LevelAAA:   11,
	model.LevelAA:    12,
	model.LevelAPlus: 13,
	model.LevelA:     14,
	model.LevelCPX:   16,
}

// LevelForSportID is the reverse of SportIDs.
func LevelForSportID(id int) model.Level {
	for level, sid := range SportIDs {
		if sid == id {
			return level
		}
	}
	return ""
}

// Client is a minimal JSON client for the MLB Stats API with retry.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against the public API.
func NewClient() *Client {
	return New(BaseURL)
}

// New creates a client with a custom base URL (tests point this at a
// local server).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// get fetches endpoint with params and decodes the JSON response into v,
// retrying transient failures with linear backoff.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v interface{}) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "milbstats/1.0")

		resp, err := c.http.Do(req)
		if err == nil {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr == nil && resp.StatusCode == http.StatusOK {
				if err := json.Unmarshal(body, v); err != nil {
					return fmt.Errorf("decode %s: %w", endpoint, err)
				}
				return nil
			}
			if readErr != nil {
				err = readErr
			} else {
				err = fmt.Errorf("status %d", resp.StatusCode)
			}
		}
		lastErr = err
		log.Printf("[mlb] GET %s failed (attempt %d/%d): %v", endpoint, attempt, maxRetries, err)
		if attempt < maxRetries {
			select {
			case <-time.After(retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("GET %s: %w", endpoint, lastErr)
}

// personResponse mirrors the /people/{id} payload.
type personResponse struct {
	People []struct {
		ID              int    `json:"id"`
		FullName        string `json:"fullName"`
		PrimaryPosition struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"primaryPosition"`
		CurrentTeam struct {
			Name          string `json:"name"`
			ParentOrgName string `json:"parentOrgName"`
			Sport         struct {
				ID int `json:"id"`
			} `json:"sport"`
		} `json:"currentTeam"`
	} `json:"people"`
}

// LookupPlayer fetches the roster record for an MLB person id. Pitchers
// get the pitching stat type; everyone else bats.
func (c *Client) LookupPlayer(ctx context.Context, id int) (model.Player, error) {
	var resp personResponse
	params := url.Values{"hydrate": {"currentTeam"}}
	if err := c.get(ctx, fmt.Sprintf("/people/%d", id), params, &resp); err != nil {
		return model.Player{}, err
	}
	if len(resp.People) == 0 {
		return model.Player{}, fmt.Errorf("player %d not found", id)
	}
	p := resp.People[0]
	typ := model.Batting
	if p.PrimaryPosition.Abbreviation == "P" {
		typ = model.Pitching
	}
	org := p.CurrentTeam.ParentOrgName
	if org == "" {
		org = p.CurrentTeam.Name
	}
	return model.Player{
		ID:       p.ID,
		Name:     p.FullName,
		Org:      org,
		Level:    LevelForSportID(p.CurrentTeam.Sport.ID),
		Position: p.PrimaryPosition.Abbreviation,
		Type:     typ,
	}, nil
}

// gameLogResponse mirrors the stats=gameLog payload. Stat values decode
// into a loose map because the API mixes numbers and strings
// (inningsPitched is "5.2").
type gameLogResponse struct {
	Stats []struct {
		Splits []struct {
			Date     string `json:"date"`
			IsHome   *bool  `json:"isHome"`
			Opponent struct {
				Name string `json:"name"`
			} `json:"opponent"`
			Team struct {
				Name string `json:"name"`
			} `json:"team"`
			Sport struct {
				ID int `json:"id"`
			} `json:"sport"`
			Game struct {
				GamePk int `json:"gamePk"`
			} `json:"game"`
			Stat map[string]interface{} `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

// apiStatKeys maps MLB Stats API field names to stat keys, per type.
var apiStatKeys = map[model.StatType]map[string]model.StatKey{
	model.Batting: {
		"plateAppearances": model.PA,
		"atBats":           model.AB,
		"runs":             model.Runs,
		"hits":             model.Hits,
		"doubles":          model.Doubles,
		"triples":          model.Triples,
		"homeRuns":         model.HR,
		"rbi":              model.RBI,
		"baseOnBalls":      model.BB,
		"strikeOuts":       model.SO,
		"hitByPitch":       model.HBP,
		"sacFlies":         model.SF,
		"stolenBases":      model.SB,
		"caughtStealing":   model.CS,
	},
	model.Pitching: {
		"inningsPitched": model.IP,
		"gamesStarted":   model.GS,
		"earnedRuns":     model.ER,
		"runs":           model.Runs,
		"hits":           model.Hits,
		"baseOnBalls":    model.BB,
		"strikeOuts":     model.SO,
		"homeRuns":       model.HR,
		"hitBatsmen":     model.HBP,
		"wins":           model.W,
		"losses":         model.L,
		"saves":          model.SV,
	},
}

// statGroup maps a stat type to the API's group parameter.
func statGroup(typ model.StatType) string {
	if typ == model.Pitching {
		return "pitching"
	}
	return "hitting"
}

// FetchGameLog pulls a player's per-game log for one season and type.
func (c *Client) FetchGameLog(ctx context.Context, playerID, season int, typ model.StatType) ([]model.GameEntry, error) {
	params := url.Values{
		"stats":  {"gameLog"},
		"group":  {statGroup(typ)},
		"season": {fmt.Sprintf("%d", season)},
	}
	var resp gameLogResponse
	if err := c.get(ctx, fmt.Sprintf("/people/%d/stats", playerID), params, &resp); err != nil {
		return nil, err
	}

	keys := apiStatKeys[typ]
	var out []model.GameEntry
	for _, block := range resp.Stats {
		for _, split := range block.Splits {
			date, err := time.ParseInLocation("2006-01-02", split.Date, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("parse game date %q: %w", split.Date, err)
			}
			line := make(model.StatLine)
			for apiKey, key := range keys {
				raw, ok := split.Stat[apiKey]
				if !ok {
					continue
				}
				if v, ok := statValue(raw); ok {
					line[key] = v
				}
			}
			entry := model.GameEntry{
				Date:     date,
				Opponent: split.Opponent.Name,
				Team:     split.Team.Name,
				Home:     split.IsHome,
				Level:    LevelForSportID(split.Sport.ID),
				Type:     typ,
				Stats:    line,
			}
			if split.Game.GamePk != 0 {
				entry.GameID = fmt.Sprintf("%d", split.Game.GamePk)
			}
			out = append(out, entry)
		}
	}
	return out, nil
}

// statValue coerces an API stat value to float64. Innings pitched and a
// few averages arrive as strings.
func statValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// searchResponse mirrors /sports/{id}/players.
type searchResponse struct {
	People []struct {
		ID              int    `json:"id"`
		FullName        string `json:"fullName"`
		PrimaryPosition struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"primaryPosition"`
	} `json:"people"`
}

// SearchResult is one hit from SearchPlayers.
type SearchResult struct {
	ID       int
	Name     string
	Position string
	Level    model.Level
}

// SearchPlayers scans every minor-league level's player pool for names
// containing the query, case-insensitively.
func (c *Client) SearchPlayers(ctx context.Context, query string, season int) ([]SearchResult, error) {
	var out []SearchResult
	for _, level := range model.Levels {
		sportID := SportIDs[level]
		params := url.Values{"season": {fmt.Sprintf("%d", season)}}
		var resp searchResponse
		if err := c.get(ctx, fmt.Sprintf("/sports/%d/players", sportID), params, &resp); err != nil {
			return nil, fmt.Errorf("search level %s: %w", level, err)
		}
		for _, p := range resp.People {
			if !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(query)) {
				continue
			}
			out = append(out, SearchResult{
				ID:       p.ID,
				Name:     p.FullName,
				Position: p.PrimaryPosition.Abbreviation,
				Level:    level,
			})
		}
	}
	return out, nil
}
