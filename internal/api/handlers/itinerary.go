package handlers

import (
	"context"
	"encoding/json"
	"io"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
	"strings"
	"time"
)

// LocationProvider resolves the caller's current coordinates when a request
// omits explicit start coordinates. Implementations never fail; they fall
// back to default coordinates instead.
type LocationProvider interface {
	Current(ctx context.Context) domain.Coordinates
}

type ItineraryHandler struct {
	Planner *services.Planner
	Locator LocationProvider
}

// Generate plans a full itinerary: the user's entered order plus up to two
// optimized alternatives pruned to the day window.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GenerateItineraryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.POIs) == 0 {
		writeError(w, r, http.StatusBadRequest, "pois must contain at least one entry")
		return
	}

	svcReq := services.ItineraryRequest{
		Mode:      domain.ParseTravelMode(req.Mode),
		RoundTrip: req.RoundTrip,
	}

	var err error
	if svcReq.StartTime, err = parseOptionalClock(req.StartTime); err != nil {
		writeError(w, r, http.StatusBadRequest, "start_time is not a valid time")
		return
	}
	if svcReq.EndTime, err = parseOptionalClock(req.EndTime); err != nil {
		writeError(w, r, http.StatusBadRequest, "end_time is not a valid time")
		return
	}

	svcReq.POIs = make([]services.POIInput, 0, len(req.POIs))
	for _, p := range req.POIs {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			writeError(w, r, http.StatusBadRequest, "every poi needs a name")
			return
		}

		in := services.POIInput{
			Name:         name,
			Priority:     p.Priority,
			DwellMinutes: p.DwellMins,
		}
		if strings.TrimSpace(p.TargetArrival) != "" {
			target, err := dto.ParseClock(p.TargetArrival)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, "target_arrival is not a valid time")
				return
			}
			in.TargetArrival = &target
		}
		svcReq.POIs = append(svcReq.POIs, in)
	}

	if req.StartCoords != nil {
		svcReq.StartCoords = &domain.Coordinates{Lat: req.StartCoords.Lat, Lon: req.StartCoords.Lon}
	} else if h.Locator != nil {
		coords := h.Locator.Current(r.Context())
		svcReq.StartCoords = &coords
	}

	it, err := h.Planner.GenerateItinerary(r.Context(), svcReq)
	if err != nil {
		log.Printf("generate itinerary failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewItineraryResponse(it))
}

// Reoptimize re-plans the remaining POIs of a trip in progress from the
// caller's live location and clock.
func (h *ItineraryHandler) Reoptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ReoptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.RemainingPOIs) == 0 {
		writeError(w, r, http.StatusBadRequest, "remaining_pois must contain at least one entry")
		return
	}
	if req.CurrentTimeMinutes < 0 || req.CurrentTimeMinutes >= 24*60 {
		writeError(w, r, http.StatusBadRequest, "current_time_minutes must be between 0 and 1439")
		return
	}

	remaining := make([]domain.POIEntry, 0, len(req.RemainingPOIs))
	for _, p := range req.RemainingPOIs {
		entry := domain.POIEntry{
			Name:         strings.TrimSpace(p.Name),
			Priority:     p.Priority,
			DwellMinutes: p.DwellMins,
			Coords:       domain.Coordinates{Lat: p.Lat, Lon: p.Lon},
		}
		if entry.Name == "" {
			writeError(w, r, http.StatusBadRequest, "every remaining poi needs a name")
			return
		}
		if strings.TrimSpace(p.TargetArrival) != "" {
			target, err := dto.ParseClock(p.TargetArrival)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, "target_arrival is not a valid time")
				return
			}
			entry.TargetArrival = &target
		}
		remaining = append(remaining, entry)
	}

	location := domain.Coordinates{Lat: req.CurrentLocation.Lat, Lon: req.CurrentLocation.Lon}
	if location.IsZero() && h.Locator != nil {
		location = h.Locator.Current(r.Context())
	}

	plan, err := h.Planner.Reoptimize(
		r.Context(),
		location,
		req.CurrentTimeMinutes,
		remaining,
		domain.ParseTravelMode(req.Mode),
	)
	if err != nil {
		log.Printf("reoptimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewReoptimizeResponse(plan))
}

func parseOptionalClock(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return dto.ParseClock(s)
}
