package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"itinerary-planner-service/internal/domain"
)

// SQLite-backed implementation of the POIRepository port.
type SqlitePOIRepository struct{ DB *sql.DB }

func NewSqlitePOIRepository(db *sql.DB) *SqlitePOIRepository {
	return &SqlitePOIRepository{DB: db}
}

// Return all catalog entries ordered by id.
func (s *SqlitePOIRepository) ListPOIs(ctx context.Context) ([]domain.POIRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite poi repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		raw_category,
		friendly_category,
		lat,
		lon,
		avg_dwell_minutes,
		rating
	FROM poi_cache
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pois: query poi_cache table: %w", err)
	}
	defer rows.Close()

	pois := make([]domain.POIRecord, 0, 64)
	for rows.Next() {
		var rec domain.POIRecord
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.RawCategory, &rec.FriendlyCategory,
			&rec.Coords.Lat, &rec.Coords.Lon, &rec.AvgDwellMinutes, &rec.Rating,
		); err != nil {
			return nil, fmt.Errorf("list pois: scan row: %w", err)
		}
		pois = append(pois, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: row iteration: %w", err)
	}

	return pois, nil
}

// Case-insensitive partial-name lookup. A miss is not an error.
func (s *SqlitePOIRepository) FindByName(ctx context.Context, name string) (domain.POIRecord, bool, error) {
	if s.DB == nil {
		return domain.POIRecord{}, false, errors.New("sqlite poi repository: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.POIRecord{}, false, nil
	}

	query := `
	SELECT
		id,
		name,
		raw_category,
		friendly_category,
		lat,
		lon,
		avg_dwell_minutes,
		rating
	FROM poi_cache
	WHERE LOWER(name) LIKE LOWER(?)
	ORDER BY id
	LIMIT 1;
	`

	var rec domain.POIRecord
	err := s.DB.QueryRowContext(ctx, query, "%"+name+"%").Scan(
		&rec.ID, &rec.Name, &rec.RawCategory, &rec.FriendlyCategory,
		&rec.Coords.Lat, &rec.Coords.Lon, &rec.AvgDwellMinutes, &rec.Rating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.POIRecord{}, false, nil
	}
	if err != nil {
		return domain.POIRecord{}, false, fmt.Errorf("find poi %q: %w", name, err)
	}

	return rec, true, nil
}

// Insert or refresh a catalog entry keyed by name.
func (s *SqlitePOIRepository) Upsert(ctx context.Context, rec domain.POIRecord) error {
	if s.DB == nil {
		return errors.New("sqlite poi repository: DB is nil")
	}

	if strings.TrimSpace(rec.Name) == "" {
		return errors.New("upsert poi: name must be non-empty")
	}

	query := `
	INSERT INTO poi_cache (name, raw_category, friendly_category, lat, lon, avg_dwell_minutes, rating)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET lat = excluded.lat,
		lon = excluded.lon,
		avg_dwell_minutes = excluded.avg_dwell_minutes,
		rating = excluded.rating;
	`

	if _, err := s.DB.ExecContext(ctx, query,
		rec.Name, rec.RawCategory, rec.FriendlyCategory,
		rec.Coords.Lat, rec.Coords.Lon, rec.AvgDwellMinutes, rec.Rating,
	); err != nil {
		return fmt.Errorf("upsert poi %q: %w", rec.Name, err)
	}

	return nil
}
