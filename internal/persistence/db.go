// Package persistence provides SQLite-based snapshot storage. Saving is a
// side observer of every state change: a failed save is logged by the
// caller and never interrupts the simulation. Loading is best-effort
// merge: any missing or corrupt field falls back to a fresh game's value,
// and warehouse capacity is always recomputed, never trusted from disk.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/madangkara/internal/game"
)

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		player_json TEXT,
		resources_json TEXT,
		buildings_json TEXT,
		troops_json TEXT,
		timers_json TEXT,
		researched_json TEXT,
		achievements_json TEXT,
		current_quest TEXT,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS save_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// saveRow mirrors the single save table row.
type saveRow struct {
	Player       sql.NullString `db:"player_json"`
	Resources    sql.NullString `db:"resources_json"`
	Buildings    sql.NullString `db:"buildings_json"`
	Troops       sql.NullString `db:"troops_json"`
	Timers       sql.NullString `db:"timers_json"`
	Researched   sql.NullString `db:"researched_json"`
	Achievements sql.NullString `db:"achievements_json"`
	CurrentQuest sql.NullString `db:"current_quest"`
	SavedAt      string         `db:"saved_at"`
}

// SaveState writes the complete snapshot (full replace of the single row).
func (db *DB) SaveState(s *game.State) error {
	playerJSON, _ := json.Marshal(s.Player)
	resourcesJSON, _ := json.Marshal(s.Resources)
	buildingsJSON, _ := json.Marshal(s.Buildings)
	troopsJSON, _ := json.Marshal(s.Troops)
	timersJSON, _ := json.Marshal(s.Timers)
	researchedJSON, _ := json.Marshal(s.ResearchedTechnologies)
	achievementsJSON, _ := json.Marshal(s.CompletedAchievements)

	var quest any
	if s.CurrentQuestID != nil {
		quest = *s.CurrentQuestID
	}

	_, err := db.conn.Exec(`INSERT OR REPLACE INTO save
		(id, player_json, resources_json, buildings_json, troops_json,
		 timers_json, researched_json, achievements_json, current_quest, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(playerJSON), string(resourcesJSON), string(buildingsJSON),
		string(troopsJSON), string(timersJSON), string(researchedJSON),
		string(achievementsJSON), quest, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// LoadState restores the saved snapshot, merged over a fresh game so new
// fields introduced after the save was written come up with defaults.
// Returns (nil, nil) when no save exists. Corrupt fields are skipped with
// a warning rather than failing the whole load.
func (db *DB) LoadState(catalog *game.Catalog, playerName string) (*game.State, error) {
	var row saveRow
	err := db.conn.Get(&row, "SELECT player_json, resources_json, buildings_json, troops_json, timers_json, researched_json, achievements_json, current_quest, saved_at FROM save WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	s := catalog.NewState(playerName)

	mergeField(row.Player, "player", &s.Player)
	mergeField(row.Resources, "resources", &s.Resources)
	mergeField(row.Troops, "troops", &s.Troops)
	mergeTroops(s, catalog)
	mergeField(row.Timers, "timers", &s.Timers)
	mergeField(row.Researched, "researched", &s.ResearchedTechnologies)
	mergeField(row.Achievements, "achievements", &s.CompletedAchievements)

	if row.Buildings.Valid {
		var buildings []*game.Building
		if err := json.Unmarshal([]byte(row.Buildings.String), &buildings); err != nil {
			slog.Warn("discarding corrupt saved field", "field", "buildings", "error", err)
		} else {
			mergeBuildings(s, buildings, catalog)
		}
	}

	// A saved NULL quest means the chain was finished, which is distinct
	// from "field absent" only because the save row always writes it.
	if row.CurrentQuest.Valid {
		id := row.CurrentQuest.String
		s.CurrentQuestID = &id
	} else {
		s.CurrentQuestID = nil
	}

	// Never trust stored capacity; the save doesn't even carry it.
	catalog.RecomputeCapacity(s)
	return s, nil
}

func mergeField[T any](col sql.NullString, name string, dst *T) {
	if !col.Valid {
		return
	}
	var v T
	if err := json.Unmarshal([]byte(col.String), &v); err != nil {
		slog.Warn("discarding corrupt saved field", "field", name, "error", err)
		return
	}
	*dst = v
}

// mergeBuildings replaces the fresh template list with the saved one, then
// appends any template buildings the save predates.
func mergeBuildings(s *game.State, saved []*game.Building, catalog *game.Catalog) {
	seen := make(map[int]bool, len(saved))
	for _, b := range saved {
		seen[b.ID] = true
	}
	merged := saved
	for _, tmpl := range catalog.Buildings {
		if !seen[tmpl.ID] {
			b := tmpl
			merged = append(merged, &b)
		}
	}
	s.Buildings = merged
}

// mergeTroops appends roster entries for any troop kind the save predates.
func mergeTroops(s *game.State, catalog *game.Catalog) {
	for _, tt := range game.AllTroopTypes() {
		if s.Troop(tt) == nil {
			stats := catalog.Troops[tt]
			s.Troops = append(s.Troops, &game.Troop{Type: tt, Attack: stats.Attack, Defense: stats.Defense})
		}
	}
}

// SaveMeta stores a key-value pair alongside the snapshot.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO save_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM save_meta WHERE key = ?", key)
	return value, err
}
