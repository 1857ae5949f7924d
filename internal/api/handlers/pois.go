package handlers

import (
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/ports"
	"log"
	"net/http"
)

// POIHandler exposes read-only catalog retrieval endpoints.
type POIHandler struct {
	Repo ports.POIRepository
}

func (h *POIHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := h.Repo.ListPOIs(r.Context())
	if err != nil {
		log.Printf("list pois failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPOIsResponse{
		POIs: make([]dto.POIRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.POIs = append(res.POIs, dto.POIRecordResponse{
			ID:               rec.ID,
			Name:             rec.Name,
			FriendlyCategory: rec.FriendlyCategory,
			Lat:              rec.Coords.Lat,
			Lon:              rec.Coords.Lon,
			AvgDwellMins:     rec.AvgDwellMinutes,
			Rating:           rec.Rating,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
