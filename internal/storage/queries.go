package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

const dateLayout = "2006-01-02"

// UpsertPlayer inserts or replaces a roster record.
func (db *DB) UpsertPlayer(p model.Player) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO players(id, name, org, level, position, stat_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Org, string(p.Level), p.Position, string(p.Type),
	)
	return err
}

// DeletePlayer removes a player and, via the foreign key, their game log.
func (db *DB) DeletePlayer(id int) error {
	_, err := db.conn.Exec(`DELETE FROM players WHERE id = ?`, id)
	return err
}

// GetPlayer returns the roster record for id, or nil when not tracked.
func (db *DB) GetPlayer(id int) (*model.Player, error) {
	var p model.Player
	var level, typ string
	err := db.conn.QueryRow(`
		SELECT id, name, org, level, position, stat_type
		FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Org, &level, &p.Position, &typ)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Level = model.Level(level)
	p.Type = model.StatType(typ)
	return &p, nil
}

// ListPlayers returns every tracked player ordered by name.
func (db *DB) ListPlayers() ([]model.Player, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, org, level, position, stat_type
		FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		var level, typ string
		if err := rows.Scan(&p.ID, &p.Name, &p.Org, &level, &p.Position, &typ); err != nil {
			return nil, err
		}
		p.Level = model.Level(level)
		p.Type = model.StatType(typ)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SearchPlayers returns tracked players whose name contains the query,
// case-insensitively.
func (db *DB) SearchPlayers(query string) ([]model.Player, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, org, level, position, stat_type
		FROM players WHERE name LIKE ? ORDER BY name`, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		var level, typ string
		if err := rows.Scan(&p.ID, &p.Name, &p.Org, &level, &p.Position, &typ); err != nil {
			return nil, err
		}
		p.Level = model.Level(level)
		p.Type = model.StatType(typ)
		out = append(out, p)
	}
	return out, rows.Err()
}

// InsertGameEntries bulk-upserts a player's game entries in one
// transaction. Re-importing the same dates is idempotent.
func (db *DB) InsertGameEntries(playerID int, entries []model.GameEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_entries(
			player_id, game_date, game_id, opponent, team, home,
			level, opponent_hand, stat_type, stats
		) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range entries {
		statsJSON, err := json.Marshal(g.Stats)
		if err != nil {
			return fmt.Errorf("marshal stats for %d on %s: %w",
				playerID, g.Date.Format(dateLayout), err)
		}
		var home interface{}
		if g.Home != nil {
			home = boolInt(*g.Home)
		}
		_, err = stmt.Exec(
			playerID, g.Date.Format(dateLayout), g.GameID, g.Opponent, g.Team,
			home, string(g.Level), g.OpponentHand, string(g.Type), string(statsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert game entry for %d: %w", playerID, err)
		}
	}
	return tx.Commit()
}

// GetGameEntries returns a player's full game log ordered by date.
func (db *DB) GetGameEntries(playerID int) ([]model.GameEntry, error) {
	rows, err := db.conn.Query(`
		SELECT game_date, game_id, opponent, team, home, level, opponent_hand, stat_type, stats
		FROM game_entries WHERE player_id = ? ORDER BY game_date, game_id`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameEntry
	for rows.Next() {
		var g model.GameEntry
		var dateStr, level, typ, statsJSON string
		var home sql.NullInt64
		if err := rows.Scan(&dateStr, &g.GameID, &g.Opponent, &g.Team,
			&home, &level, &g.OpponentHand, &typ, &statsJSON); err != nil {
			return nil, err
		}
		g.Date, err = time.ParseInLocation(dateLayout, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse game date %q: %w", dateStr, err)
		}
		if home.Valid {
			h := home.Int64 != 0
			g.Home = &h
		}
		g.Level = model.Level(level)
		g.Type = model.StatType(typ)
		if err := json.Unmarshal([]byte(statsJSON), &g.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats for %d on %s: %w", playerID, dateStr, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetAllPlayerSeasons loads every tracked player with their full game
// log, the input shape for the percentile, league-average, and
// leaderboard engines.
func (db *DB) GetAllPlayerSeasons() ([]model.PlayerSeason, error) {
	players, err := db.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	out := make([]model.PlayerSeason, 0, len(players))
	for _, p := range players {
		games, err := db.GetGameEntries(p.ID)
		if err != nil {
			return nil, fmt.Errorf("load game log for %d: %w", p.ID, err)
		}
		out = append(out, model.PlayerSeason{Player: p, Games: games})
	}
	return out, nil
}

// CountGameEntries returns the number of stored games for a player.
func (db *DB) CountGameEntries(playerID int) (int, error) {
	var n int
	err := db.conn.QueryRow(
		`SELECT COUNT(1) FROM game_entries WHERE player_id = ?`, playerID).Scan(&n)
	return n, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
