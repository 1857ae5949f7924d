package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"itinerary-planner-service/internal/adapters/travel"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// fakeResolver resolves from a fixed name -> coordinates map.
type fakeResolver struct {
	known map[string]domain.Coordinates
}

func (f *fakeResolver) Resolve(ctx context.Context, name string) (ports.ResolvedPOI, bool, error) {
	coords, ok := f.known[name]
	if !ok {
		return ports.ResolvedPOI{}, false, nil
	}
	return ports.ResolvedPOI{Name: name, Coords: coords}, true, nil
}

func testPlanner(seconds, meters int) (*Planner, *fakeResolver) {
	resolver := &fakeResolver{known: map[string]domain.Coordinates{
		"Garden": {Lat: 12.9507, Lon: 77.5848},
		"Palace": {Lat: 12.9987, Lon: 77.5920},
		"Market": {Lat: 12.9823, Lon: 77.6094},
	}}
	return NewPlanner(resolver, travel.NewFixedTravelProvider(seconds, meters)), resolver
}

func TestGenerateItineraryRequiresPOIs(t *testing.T) {
	planner, _ := testPlanner(600, 5000)

	if _, err := planner.GenerateItinerary(context.Background(), ItineraryRequest{Mode: domain.ModeDriving}); err == nil {
		t.Fatal("expected error for empty POI list")
	}
}

func TestGenerateItineraryUserPlanKeepsOrder(t *testing.T) {
	planner, _ := testPlanner(600, 5000)

	start := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	req := ItineraryRequest{
		POIs: []POIInput{
			{Name: "Palace", Priority: 2, DwellMinutes: 60},
			{Name: "Garden", Priority: 2, DwellMinutes: 60},
			{Name: "Market", Priority: 3, DwellMinutes: 30},
		},
		Mode:        domain.ModeDriving,
		StartCoords: &start,
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
	}

	it, err := planner.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Palace", "Garden", "Market"}
	if len(it.UserPlan.Sequence) != 3 {
		t.Fatalf("user plan has %d entries, want 3", len(it.UserPlan.Sequence))
	}
	for i, name := range want {
		if it.UserPlan.Sequence[i].Name != name {
			t.Fatalf("user plan position %d = %q, want %q", i, it.UserPlan.Sequence[i].Name, name)
		}
	}
	if len(it.UserPlan.OverTime) != 0 {
		t.Fatalf("wide window: over_time = %v, want empty", it.UserPlan.OverTime)
	}
	if len(it.Warnings) != 0 {
		t.Fatalf("warnings = %v, want none", it.Warnings)
	}
	if len(it.OptimizedPlan.Sequence) == 0 {
		t.Fatal("optimized plan missing")
	}
	if it.OptimizedPlan.Sequence[0].Name != "Palace" {
		t.Fatalf("optimized plan must keep the first POI pinned, got %q", it.OptimizedPlan.Sequence[0].Name)
	}
}

func TestGenerateItineraryFlagsOverTime(t *testing.T) {
	planner, _ := testPlanner(3600, 20000)

	start := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	req := ItineraryRequest{
		POIs: []POIInput{
			{Name: "Palace", Priority: 2, DwellMinutes: 60},
			{Name: "Garden", Priority: 2, DwellMinutes: 60},
			{Name: "Market", Priority: 3, DwellMinutes: 60},
		},
		Mode:        domain.ModeDriving,
		StartCoords: &start,
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
	}

	it, err := planner.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The user plan is never pruned; late stops are flagged instead.
	if len(it.UserPlan.Sequence) != 3 {
		t.Fatalf("user plan shrunk to %d entries", len(it.UserPlan.Sequence))
	}
	if len(it.UserPlan.OverTime) == 0 {
		t.Fatal("expected over_time flags for a 2h window")
	}

	// The optimized plan is pruned to fit.
	total := len(it.OptimizedPlan.Sequence) + len(it.OptimizedPlan.Dropped)
	if total != 3 {
		t.Fatalf("optimized kept+dropped = %d, want 3", total)
	}
	if len(it.OptimizedPlan.Dropped) == 0 {
		t.Fatal("expected the optimized plan to drop something")
	}
}

func TestGenerateItineraryWarnsOnUnknownPOI(t *testing.T) {
	planner, _ := testPlanner(600, 5000)

	req := ItineraryRequest{
		POIs: []POIInput{
			{Name: "Palace", Priority: 2, DwellMinutes: 60},
			{Name: "Atlantis", Priority: 2, DwellMinutes: 60},
		},
		Mode:      domain.ModeDriving,
		StartTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
	}

	it, err := planner.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, w := range it.Warnings {
		if strings.Contains(w, "Atlantis") {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %v, want one naming the unknown POI", it.Warnings)
	}

	if it.UserPlan.Sequence[1].Coords != domain.DefaultCoordinates {
		t.Fatalf("unknown POI coords = %v, want default", it.UserPlan.Sequence[1].Coords)
	}
}

func TestGenerateItineraryNormalizesInputs(t *testing.T) {
	planner, _ := testPlanner(600, 5000)

	req := ItineraryRequest{
		POIs: []POIInput{
			{Name: "Palace", Priority: 0, DwellMinutes: -10},
		},
		Mode:      domain.ModeDriving,
		StartTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
	}

	it, err := planner.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := it.UserPlan.Sequence[0]
	if entry.Priority != 1 {
		t.Fatalf("priority = %d, want normalized 1", entry.Priority)
	}
	if entry.DwellMinutes != domain.DefaultDwellMinutes {
		t.Fatalf("dwell = %d, want %d", entry.DwellMinutes, domain.DefaultDwellMinutes)
	}
	if len(it.Warnings) != 2 {
		t.Fatalf("warnings = %v, want two normalization notes", it.Warnings)
	}
}

func TestGenerateItineraryFirstTargetOverridesStart(t *testing.T) {
	planner, _ := testPlanner(600, 5000)

	start := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	target := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	req := ItineraryRequest{
		POIs: []POIInput{
			{Name: "Palace", Priority: 1, DwellMinutes: 60, TargetArrival: &target},
			{Name: "Garden", Priority: 2, DwellMinutes: 60},
		},
		Mode:        domain.ModeDriving,
		StartCoords: &start,
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
	}

	it, err := planner.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Departure shifts to target minus travel minus the early margin.
	want := target.Add(-600 * time.Second).Add(-5 * time.Minute)
	if !it.StartTime.Equal(want) {
		t.Fatalf("start = %s, want %s", it.StartTime, want)
	}
}

func TestGenerateItineraryPlansPastDegenerateWindow(t *testing.T) {
	planner, _ := testPlanner(600, 5000)

	// A late first-POI target pushes the computed start past the end of
	// the day. The request must still produce a plan, not an error.
	start := domain.Coordinates{Lat: 12.9352, Lon: 77.6245}
	target := time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC)
	req := ItineraryRequest{
		POIs: []POIInput{
			{Name: "Palace", Priority: 2, DwellMinutes: 60, TargetArrival: &target},
			{Name: "Garden", Priority: 2, DwellMinutes: 60},
		},
		Mode:        domain.ModeDriving,
		StartCoords: &start,
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
	}

	it, err := planner.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("degenerate window must degrade, not fail: %v", err)
	}

	// Start is target minus travel minus the early margin, past end time.
	want := target.Add(-600 * time.Second).Add(-5 * time.Minute)
	if !it.StartTime.Equal(want) {
		t.Fatalf("start = %s, want %s", it.StartTime, want)
	}
	if !it.StartTime.After(it.EndTime) {
		t.Fatalf("scenario broken: start %s not past end %s", it.StartTime, it.EndTime)
	}

	if len(it.UserPlan.Sequence) != 2 {
		t.Fatalf("user plan has %d entries, want 2", len(it.UserPlan.Sequence))
	}
	if len(it.UserPlan.OverTime) == 0 {
		t.Fatal("every arrival is past the end; over_time flags missing")
	}

	// Pruning is skipped; the optimized plan is the full unpruned sequence.
	if len(it.OptimizedPlan.Sequence) != 2 || len(it.OptimizedPlan.Dropped) != 0 {
		t.Fatalf("optimized kept=%d dropped=%d, want unpruned 2/0",
			len(it.OptimizedPlan.Sequence), len(it.OptimizedPlan.Dropped))
	}
}

func TestTravelMemoBoundsProviderCalls(t *testing.T) {
	inner := travel.NewFixedTravelProvider(600, 5000)
	memo := NewTravelMemo(inner)

	a := domain.Coordinates{Lat: 1, Lon: 1}
	b := domain.Coordinates{Lat: 2, Lon: 2}

	for i := 0; i < 10; i++ {
		if _, err := memo.GetTravelContext(context.Background(), a, b, domain.ModeDriving); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := inner.CallCount(); got != 1 {
		t.Fatalf("provider calls = %d, want 1", got)
	}
}
