package services

import (
	"context"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// Prune iteratively removes the least valuable removable POI until the
// sequence fits the window, or nothing more can be removed.
//
// Each iteration restricts candidates to entries without a target arrival
// (falling back to nonzero-dwell entries when none remain), narrows to the
// numerically highest priority bucket (larger value = less important), and
// removes the candidate whose solo removal saves the most total time. Ties
// resolve by larger distance saved, then larger dwell, then the latest
// position in the current sequence. The positional fallback carries no
// semantic weight; it exists only to make removal deterministic.
//
// A sequence that already fits is returned unchanged with an empty dropped
// list. A sequence that cannot be shrunk further is returned best-effort.
func Prune(
	ctx context.Context,
	provider ports.TravelProvider,
	seq []domain.POIEntry,
	window domain.Window,
	mode domain.TravelMode,
	roundTrip bool,
	startCoords *domain.Coordinates,
) (kept, dropped []domain.POIEntry) {
	kept = domain.ClonePOIs(seq)
	dropped = []domain.POIEntry{}

	totalSec, totalDist, _ := ComputeTrip(ctx, provider, kept, mode, roundTrip, startCoords, window.Start)

	for !window.Fits(totalSec) {
		candidates := removableIndexes(kept)
		if len(candidates) == 0 {
			break
		}

		worst := kept[candidates[0]].Priority
		for _, i := range candidates[1:] {
			if kept[i].Priority > worst {
				worst = kept[i].Priority
			}
		}

		bucket := candidates[:0]
		for _, i := range candidates {
			if kept[i].Priority == worst {
				bucket = append(bucket, i)
			}
		}

		bestIdx := -1
		bestMarginal, bestDistSaved, bestDwell := -1, -1, -1
		for _, i := range bucket {
			trial := make([]domain.POIEntry, 0, len(kept)-1)
			trial = append(trial, kept[:i]...)
			trial = append(trial, kept[i+1:]...)

			secWithout, distWithout, _ := ComputeTrip(ctx, provider, domain.ClonePOIs(trial), mode, roundTrip, startCoords, window.Start)
			marginal := totalSec - secWithout
			distSaved := totalDist - distWithout
			dwell := kept[i].DwellMinutes

			pick := false
			switch {
			case marginal > bestMarginal:
				pick = true
			case marginal == bestMarginal && distSaved > bestDistSaved:
				pick = true
			case marginal == bestMarginal && distSaved == bestDistSaved && dwell > bestDwell:
				pick = true
			case marginal == bestMarginal && distSaved == bestDistSaved && dwell == bestDwell && i > bestIdx:
				pick = true
			}
			if pick {
				bestIdx, bestMarginal, bestDistSaved, bestDwell = i, marginal, distSaved, dwell
			}
		}

		if bestIdx == -1 {
			break
		}

		dropped = append(dropped, kept[bestIdx])
		kept = append(kept[:bestIdx], kept[bestIdx+1:]...)

		totalSec, totalDist, _ = ComputeTrip(ctx, provider, kept, mode, roundTrip, startCoords, window.Start)
	}

	return kept, dropped
}

// removableIndexes returns candidate positions for removal: entries without
// a target arrival first, then (when every entry carries a target) anything
// with nonzero dwell, which keeps only the immovable start marker off the
// table.
func removableIndexes(kept []domain.POIEntry) []int {
	out := make([]int, 0, len(kept))
	for i, p := range kept {
		if p.Removable() {
			out = append(out, i)
		}
	}
	if len(out) > 0 {
		return out
	}
	for i, p := range kept {
		if p.DwellMinutes > 0 {
			out = append(out, i)
		}
	}
	return out
}
