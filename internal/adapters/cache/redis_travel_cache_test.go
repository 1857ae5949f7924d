package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

func testRedisCache(t *testing.T) (*RedisTravelCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisTravelCache(client), mr
}

func TestRedisTravelCacheRoundTrip(t *testing.T) {
	c, _ := testRedisCache(t)

	origin := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	dest := domain.Coordinates{Lat: 12.9507, Lon: 77.5848}

	if _, found, err := c.Get(context.Background(), origin, dest, domain.ModeDriving); err != nil || found {
		t.Fatalf("empty cache: found=%v err=%v", found, err)
	}

	want := ports.TravelResult{DurationSeconds: 840, DistanceMeters: 4200}
	if err := c.Put(context.Background(), origin, dest, domain.ModeDriving, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := c.Get(context.Background(), origin, dest, domain.ModeDriving)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected a hit after put")
	}
	if got.DurationSeconds != want.DurationSeconds || got.DistanceMeters != want.DistanceMeters {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// Same pair, different mode is a distinct entry.
	if _, found, _ := c.Get(context.Background(), origin, dest, domain.ModeWalking); found {
		t.Fatal("walking must not hit the driving entry")
	}
}

func TestRedisTravelCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := testRedisCache(t)

	origin := domain.Coordinates{Lat: 1, Lon: 1}
	dest := domain.Coordinates{Lat: 2, Lon: 2}

	mr.Set(travelKey(origin, dest, domain.ModeDriving), "not json")

	_, found, err := c.Get(context.Background(), origin, dest, domain.ModeDriving)
	if err != nil {
		t.Fatalf("corrupt entry must not error: %v", err)
	}
	if found {
		t.Fatal("corrupt entry must read as a miss")
	}
}

func TestRedisTravelCacheEntriesExpire(t *testing.T) {
	c, mr := testRedisCache(t)

	origin := domain.Coordinates{Lat: 1, Lon: 1}
	dest := domain.Coordinates{Lat: 2, Lon: 2}

	if err := c.Put(context.Background(), origin, dest, domain.ModeDriving, ports.TravelResult{DurationSeconds: 60, DistanceMeters: 500}); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(c.TTL + 1)

	if _, found, _ := c.Get(context.Background(), origin, dest, domain.ModeDriving); found {
		t.Fatal("entry survived past its TTL")
	}
}
