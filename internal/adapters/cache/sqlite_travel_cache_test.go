package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

func TestSqliteTravelCacheRoundTrip(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	c := NewSqliteTravelCache(db)
	ctx := context.Background()

	origin := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	dest := domain.Coordinates{Lat: 12.9507, Lon: 77.5848}

	if _, found, err := c.Get(ctx, origin, dest, domain.ModeDriving); err != nil || found {
		t.Fatalf("empty cache: found=%v err=%v", found, err)
	}

	want := ports.TravelResult{DurationSeconds: 840, DistanceMeters: 4200}
	if err := c.Put(ctx, origin, dest, domain.ModeDriving, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := c.Get(ctx, origin, dest, domain.ModeDriving)
	if err != nil || !found {
		t.Fatalf("get after put: found=%v err=%v", found, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// INSERT OR REPLACE refreshes stale entries in place.
	want.DurationSeconds = 900
	if err := c.Put(ctx, origin, dest, domain.ModeDriving, want); err != nil {
		t.Fatalf("second put: %v", err)
	}
	got, _, _ = c.Get(ctx, origin, dest, domain.ModeDriving)
	if got.DurationSeconds != 900 {
		t.Fatalf("duration = %d, want refreshed 900", got.DurationSeconds)
	}
}
