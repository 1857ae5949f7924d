package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
)

// SQLTravelCache is a postgres-backed cache for travel results, used when
// the service runs against a shared database instead of a local sqlite file.
type SQLTravelCache struct {
	DB *sql.DB
}

func NewSQLTravelCache(db *sql.DB) *SQLTravelCache {
	return &SQLTravelCache{DB: db}
}

// InitTravelCacheSchema creates the travel_cache table when the service is
// pointed at a fresh postgres database.
func InitTravelCacheSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS travel_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		mode TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		distance_meters INTEGER NOT NULL,
		PRIMARY KEY (origin, destination, mode)
	);
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init travel cache schema: %w", err)
	}

	return nil
}

func (s *SQLTravelCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
) (_ ports.TravelResult, _ bool, err error) {
	defer obs.Time(ctx, "travel.cache.Get")(&err)

	if s.DB == nil {
		return ports.TravelResult{}, false, errors.New("travel cache: db is nil")
	}

	q := `
	SELECT duration_seconds, distance_meters
	FROM travel_cache
	WHERE origin = $1
		AND destination = $2
		AND mode = $3;
	`

	var seconds, meters int
	err = s.DB.QueryRowContext(ctx, q, origin.String(), destination.String(), string(mode)).
		Scan(&seconds, &meters)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return ports.TravelResult{}, false, nil
	}
	if err != nil {
		err = fmt.Errorf("get travel cache: query travel_cache table: %w", err)
		return ports.TravelResult{}, false, err
	}

	return ports.TravelResult{DurationSeconds: seconds, DistanceMeters: meters}, true, nil
}

func (s *SQLTravelCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
	result ports.TravelResult,
) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}

	q := `
	INSERT INTO travel_cache (origin, destination, mode, duration_seconds, distance_meters)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination, mode) DO UPDATE
	SET duration_seconds = EXCLUDED.duration_seconds,
		distance_meters = EXCLUDED.distance_meters;
	`

	if _, err := s.DB.ExecContext(ctx, q,
		origin.String(), destination.String(), string(mode),
		result.DurationSeconds, result.DistanceMeters,
	); err != nil {
		return fmt.Errorf("insert travel cache %s -> %s: %w", origin, destination, err)
	}

	return nil
}
