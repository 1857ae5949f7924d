package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema: the POI catalog plus the
// travel-result cache table.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPOICacheQuery := `
	CREATE TABLE IF NOT EXISTS poi_cache (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		raw_category TEXT NOT NULL DEFAULT '',
		friendly_category TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		avg_dwell_minutes INTEGER NOT NULL DEFAULT 15,
		rating REAL NOT NULL DEFAULT 0
	);
	`

	createTravelCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		mode TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		distance_meters INTEGER NOT NULL,
		PRIMARY KEY (origin, destination, mode)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_poi_cache_name
	ON poi_cache(name);
	`

	statements := []string{
		createPOICacheQuery,
		createTravelCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type POISeed struct {
	Name             string  `json:"name"`
	RawCategory      string  `json:"raw_category"`
	FriendlyCategory string  `json:"friendly_category"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	AvgDwellMinutes  int     `json:"avg_dwell_minutes"`
	Rating           float64 `json:"rating"`
}

// Populate the POI catalog from a JSON seed file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed pois: read %q: %w", jsonPath, err)
	}

	var data []POISeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed pois: parse json: %w", err)
	}

	rows := make([]POISeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed pois: item at index %d: name cannot be empty", i+1)
		}

		dwell := item.AvgDwellMinutes
		if dwell <= 0 {
			dwell = 15
		}

		item.Name = name
		item.AvgDwellMinutes = dwell
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed pois: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO poi_cache (name, raw_category, friendly_category, lat, lon, avg_dwell_minutes, rating)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET raw_category = excluded.raw_category,
		friendly_category = excluded.friendly_category,
		lat = excluded.lat,
		lon = excluded.lon,
		avg_dwell_minutes = excluded.avg_dwell_minutes,
		rating = excluded.rating;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed pois: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		if _, err := stmt.Exec(
			p.Name, p.RawCategory, p.FriendlyCategory,
			p.Lat, p.Lon, p.AvgDwellMinutes, p.Rating,
		); err != nil {
			return fmt.Errorf("seed pois: insert name=%q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed pois: commit tx: %w", err)
	}

	return nil
}
