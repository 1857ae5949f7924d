package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"itinerary-planner-service/internal/adapters/travel"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// lineProvider models POIs on a north-south line: travel time and distance
// scale with the latitude gap, so the cheapest tour visits them in order.
type lineProvider struct{}

func (lineProvider) GetTravelContext(_ context.Context, origin, destination domain.Coordinates, _ domain.TravelMode) (ports.TravelResult, error) {
	sec := int(math.Abs(origin.Lat-destination.Lat) * 600)
	return ports.TravelResult{DurationSeconds: sec, DistanceMeters: sec}, nil
}

func TestBuildSequenceFindsCheapestPermutation(t *testing.T) {
	cA := domain.Coordinates{Lat: 1, Lon: 0}
	cB := domain.Coordinates{Lat: 2, Lon: 0}
	cC := domain.Coordinates{Lat: 3, Lon: 0}

	hops := []travel.MockHop{
		{From: cA, To: cB, Mode: domain.ModeDriving, Seconds: 600, Meters: 6000},
		{From: cB, To: cA, Mode: domain.ModeDriving, Seconds: 600, Meters: 6000},
		{From: cA, To: cC, Mode: domain.ModeDriving, Seconds: 100, Meters: 1000},
		{From: cC, To: cA, Mode: domain.ModeDriving, Seconds: 100, Meters: 1000},
		{From: cB, To: cC, Mode: domain.ModeDriving, Seconds: 200, Meters: 2000},
		{From: cC, To: cB, Mode: domain.ModeDriving, Seconds: 200, Meters: 2000},
	}
	provider := travel.NewMockTravelProvider(hops)

	entries := []domain.POIEntry{
		{Name: "A", Priority: 2, DwellMinutes: 30, Coords: cA},
		{Name: "B", Priority: 2, DwellMinutes: 30, Coords: cB},
		{Name: "C", Priority: 2, DwellMinutes: 30, Coords: cC},
	}

	seq := BuildSequence(context.Background(), provider, entries, domain.ModeDriving)

	if len(seq) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(seq))
	}
	// A->C (100) + C->B (200) is the cheapest ordering; the tied B,C,A
	// loses because A,C,B comes first in permutation order.
	want := []string{"A", "C", "B"}
	for i, name := range want {
		if seq[i].Name != name {
			t.Fatalf("position %d = %q, want %q", i, seq[i].Name, name)
		}
	}
}

func TestBuildSequenceAnchorsKeepInputOrder(t *testing.T) {
	provider := travel.NewFixedTravelProvider(600, 5000)

	entries := []domain.POIEntry{
		{Name: "X", Priority: 1, DwellMinutes: 30, Coords: domain.Coordinates{Lat: 1, Lon: 1}},
		{Name: "Z", Priority: 3, DwellMinutes: 30, Coords: domain.Coordinates{Lat: 2, Lon: 2}},
		{Name: "Y", Priority: 1, DwellMinutes: 30, Coords: domain.Coordinates{Lat: 3, Lon: 3}},
	}

	seq := BuildSequence(context.Background(), provider, entries, domain.ModeDriving)

	if len(seq) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(seq))
	}

	xi, yi := -1, -1
	for i, e := range seq {
		switch e.Name {
		case "X":
			xi = i
		case "Y":
			yi = i
		}
	}
	if xi == -1 || yi == -1 {
		t.Fatal("anchors missing from result")
	}
	if xi > yi {
		t.Fatalf("anchor order flipped: X at %d, Y at %d", xi, yi)
	}
}

func TestBuildSequenceGreedyBeyondPermutationLimit(t *testing.T) {
	// Seven flexible entries exceed the exhaustive-search limit, forcing
	// greedy insertion. Scattered input order on a line must come out as
	// one monotonic sweep.
	lats := []float64{4, 7, 1, 3, 6, 2, 5}
	entries := make([]domain.POIEntry, 0, len(lats))
	for _, lat := range lats {
		entries = append(entries, domain.POIEntry{
			Name:         fmt.Sprintf("P%d", int(lat)),
			Priority:     2,
			DwellMinutes: 30,
			Coords:       domain.Coordinates{Lat: lat, Lon: 77.0},
		})
	}

	seq := BuildSequence(context.Background(), lineProvider{}, entries, domain.ModeDriving)

	if len(seq) != len(lats) {
		t.Fatalf("expected %d entries, got %d", len(lats), len(seq))
	}
	want := []string{"P7", "P6", "P5", "P4", "P3", "P2", "P1"}
	for i, name := range want {
		if seq[i].Name != name {
			t.Fatalf("position %d = %q, want %q (full: %v)", i, seq[i].Name, name, names(seq))
		}
	}
}

func names(seq []domain.POIEntry) []string {
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		out = append(out, e.Name)
	}
	return out
}

func TestBuildSequenceEmpty(t *testing.T) {
	provider := travel.NewFixedTravelProvider(600, 5000)
	if seq := BuildSequence(context.Background(), provider, nil, domain.ModeDriving); len(seq) != 0 {
		t.Fatalf("expected empty sequence, got %d entries", len(seq))
	}
}

func TestPermutationsLexicographic(t *testing.T) {
	perms := permutations(3)
	if len(perms) != 6 {
		t.Fatalf("expected 6 permutations, got %d", len(perms))
	}
	first, last := perms[0], perms[5]
	wantFirst, wantLast := []int{0, 1, 2}, []int{2, 1, 0}
	for i := range wantFirst {
		if first[i] != wantFirst[i] || last[i] != wantLast[i] {
			t.Fatalf("perms out of order: first=%v last=%v", first, last)
		}
	}
}
