package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// Default lifetime for cached travel results. Long enough to cover the
// repeated timing evaluations of a planning session across processes, short
// enough that traffic-sensitive durations do not go completely stale.
const defaultTravelTTL = 6 * time.Hour

// RedisTravelCache is a redis-backed cache for travel results, shared
// across service instances.
type RedisTravelCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTravelCache(client *redis.Client) *RedisTravelCache {
	return &RedisTravelCache{Client: client, TTL: defaultTravelTTL}
}

type cachedTravel struct {
	DurationSeconds int `json:"duration_seconds"`
	DistanceMeters  int `json:"distance_meters"`
}

func travelKey(origin, destination domain.Coordinates, mode domain.TravelMode) string {
	return "travel:" + origin.String() + "|" + destination.String() + "|" + string(mode)
}

func (c *RedisTravelCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
) (ports.TravelResult, bool, error) {
	if c.Client == nil {
		return ports.TravelResult{}, false, errors.New("travel cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, travelKey(origin, destination, mode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.TravelResult{}, false, nil
	}
	if err != nil {
		return ports.TravelResult{}, false, fmt.Errorf("get travel cache: %w", err)
	}

	var cached cachedTravel
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A corrupt entry is a miss, not a failure.
		return ports.TravelResult{}, false, nil
	}

	return ports.TravelResult{
		DurationSeconds: cached.DurationSeconds,
		DistanceMeters:  cached.DistanceMeters,
	}, true, nil
}

func (c *RedisTravelCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
	result ports.TravelResult,
) error {
	if c.Client == nil {
		return errors.New("travel cache: redis client is nil")
	}

	raw, err := json.Marshal(cachedTravel{
		DurationSeconds: result.DurationSeconds,
		DistanceMeters:  result.DistanceMeters,
	})
	if err != nil {
		return fmt.Errorf("marshal travel cache entry: %w", err)
	}

	if err := c.Client.Set(ctx, travelKey(origin, destination, mode), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert travel cache %s -> %s: %w", origin, destination, err)
	}

	return nil
}
