package services

import (
	"context"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// Exhaustive permutation search is only tractable for small flexible sets;
// beyond this the builder switches to greedy insertion.
const maxPermutationSize = 6

// BuildSequence produces a candidate ordering minimizing total trip time.
//
// Entries with priority 1 are anchors: they keep their relative input order
// and are never reordered. With no anchors and at most maxPermutationSize
// flexible entries, every permutation is evaluated and the first-found
// minimum wins (a stable, reproducible tie-break). Otherwise flexible
// entries are greedily inserted one at a time at their cheapest position,
// seeded with the anchor list when anchors exist.
func BuildSequence(ctx context.Context, provider ports.TravelProvider, entries []domain.POIEntry, mode domain.TravelMode) []domain.POIEntry {
	if len(entries) == 0 {
		return []domain.POIEntry{}
	}

	var anchors, flexible []domain.POIEntry
	for _, e := range entries {
		if e.IsAnchor() {
			anchors = append(anchors, e.Clone())
		} else {
			flexible = append(flexible, e.Clone())
		}
	}

	evalStart := defaultEvalStart()
	cost := func(seq []domain.POIEntry) int {
		if len(seq) == 0 {
			return 0
		}
		sec, _, _ := ComputeTrip(ctx, provider, seq, mode, false, nil, evalStart)
		return sec
	}

	if len(anchors) == 0 {
		if len(flexible) == 0 {
			return []domain.POIEntry{}
		}

		if len(flexible) <= maxPermutationSize {
			var best []domain.POIEntry
			bestCost := int(^uint(0) >> 1)
			for _, idx := range permutations(len(flexible)) {
				seq := applyPermutation(flexible, idx)
				if c := cost(seq); c < bestCost {
					bestCost, best = c, seq
				}
			}
			return best
		}

		seq := []domain.POIEntry{flexible[0]}
		for _, p := range flexible[1:] {
			seq = insertAtBestPosition(seq, p, cost)
		}
		return seq
	}

	// Anchors pre-seed the working sequence; flexible entries are inserted
	// around them in input order, same algorithm as the large no-anchor case.
	seq := anchors
	for _, p := range flexible {
		seq = insertAtBestPosition(seq, p, cost)
	}
	return seq
}

// insertAtBestPosition tries every insertion point for p and keeps the
// cheapest resulting sequence. Earlier positions win ties (strict less-than).
func insertAtBestPosition(seq []domain.POIEntry, p domain.POIEntry, cost func([]domain.POIEntry) int) []domain.POIEntry {
	var best []domain.POIEntry
	bestCost := int(^uint(0) >> 1)
	for i := 0; i <= len(seq); i++ {
		trial := make([]domain.POIEntry, 0, len(seq)+1)
		trial = append(trial, seq[:i]...)
		trial = append(trial, p)
		trial = append(trial, seq[i:]...)
		if c := cost(trial); c < bestCost {
			bestCost, best = c, trial
		}
	}
	return best
}

// permutations returns every index permutation of [0, n) in lexicographic
// order. Callers rely on this order for reproducible tie-breaks.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}

	var out [][]int
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var recurse func(prefix []int, rest []int)
	recurse = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			perm := make([]int, len(prefix))
			copy(perm, prefix)
			out = append(out, perm)
			return
		}
		for i := range rest {
			next := make([]int, 0, len(rest)-1)
			next = append(next, rest[:i]...)
			next = append(next, rest[i+1:]...)
			recurse(append(prefix, rest[i]), next)
		}
	}
	recurse(make([]int, 0, n), idx)

	return out
}

func applyPermutation(entries []domain.POIEntry, idx []int) []domain.POIEntry {
	out := make([]domain.POIEntry, 0, len(idx))
	for _, i := range idx {
		out = append(out, entries[i])
	}
	return out
}

// defaultEvalStart anchors builder-internal timing evaluations at 09:00
// today. The absolute anchor cancels out when comparing candidate orderings.
func defaultEvalStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
}
