package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// SQLite-backed cache for (origin, destination, mode) travel results.
// Coordinate keys are formatted by the caller's Coordinates.String, so
// lookups are exact-match on the normalized representation.
type SqliteTravelCache struct {
	DB *sql.DB
}

func NewSqliteTravelCache(db *sql.DB) *SqliteTravelCache {
	return &SqliteTravelCache{DB: db}
}

func (s *SqliteTravelCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
) (ports.TravelResult, bool, error) {
	if s.DB == nil {
		return ports.TravelResult{}, false, errors.New("travel cache: db is nil")
	}

	q := `
	SELECT duration_seconds, distance_meters
	FROM travel_cache
	WHERE origin = ?
		AND destination = ?
		AND mode = ?;
	`

	var seconds, meters int
	err := s.DB.QueryRowContext(ctx, q, origin.String(), destination.String(), string(mode)).
		Scan(&seconds, &meters)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.TravelResult{}, false, nil
	}
	if err != nil {
		return ports.TravelResult{}, false, fmt.Errorf("get travel cache: query travel_cache table: %w", err)
	}

	return ports.TravelResult{DurationSeconds: seconds, DistanceMeters: meters}, true, nil
}

func (s *SqliteTravelCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
	result ports.TravelResult,
) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}

	q := `
	INSERT OR REPLACE INTO travel_cache (
		origin,
		destination,
		mode,
		duration_seconds,
		distance_meters
	)
	VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q,
		origin.String(), destination.String(), string(mode),
		result.DurationSeconds, result.DistanceMeters,
	); err != nil {
		return fmt.Errorf("insert travel cache %s -> %s: %w", origin, destination, err)
	}

	return nil
}
