package domain

import "time"

// DefaultDwellMinutes is substituted for missing or non-positive dwell values.
const DefaultDwellMinutes = 15

// Represents a single point of interest in a planning request.
//
// A POIEntry is a value object: candidate sequences built during search and
// pruning must operate on clones so that no trial can alias another trial's
// state. Identity is name plus coordinates.
type POIEntry struct {
	Name          string
	Priority      int
	DwellMinutes  int
	TargetArrival *time.Time
	Coords        Coordinates
}

// Clone returns an independent copy, including the target arrival time.
func (p POIEntry) Clone() POIEntry {
	out := p
	if p.TargetArrival != nil {
		t := *p.TargetArrival
		out.TargetArrival = &t
	}
	return out
}

// IsAnchor reports whether this entry is pinned (top priority); anchors keep
// their relative input order during sequence search.
func (p POIEntry) IsAnchor() bool { return p.Priority == 1 }

// Removable reports whether the pruning engine may drop this entry in its
// first pass. Entries with a hard arrival target are kept as long as
// anything else can go.
func (p POIEntry) Removable() bool { return p.TargetArrival == nil }

// NormalizedDwell returns the dwell duration in minutes, substituting the
// default for non-positive values.
func (p POIEntry) NormalizedDwell() int {
	if p.DwellMinutes <= 0 {
		return DefaultDwellMinutes
	}
	return p.DwellMinutes
}

// ClonePOIs deep-copies a candidate sequence before a search or pruning trial.
func ClonePOIs(entries []POIEntry) []POIEntry {
	out := make([]POIEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Clone())
	}
	return out
}

// A POIRecord is one row of the persistent POI catalog.
type POIRecord struct {
	ID               int
	Name             string
	RawCategory      string
	FriendlyCategory string
	Coords           Coordinates
	AvgDwellMinutes  int
	Rating           float64
}
