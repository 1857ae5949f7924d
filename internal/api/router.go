package api

import (
	"net/http"

	"itinerary-planner-service/internal/api/handlers"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, repo ports.POIRepository, locator handlers.LocationProvider) http.Handler {
	mux := http.NewServeMux()

	poiHandler := &handlers.POIHandler{Repo: repo}
	itineraryHandler := &handlers.ItineraryHandler{
		Planner: planner,
		Locator: locator,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/pois", poiHandler.List)
	mux.HandleFunc("/itineraries", itineraryHandler.Generate)
	mux.HandleFunc("/reoptimize", itineraryHandler.Reoptimize)

	return requestIDMiddleware(loggingMiddleware(mux))
}
