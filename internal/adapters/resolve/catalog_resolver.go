package resolve

import (
	"context"
	"strings"

	"itinerary-planner-service/internal/ports"
)

// CatalogResolver resolves POI names against the persistent POI catalog.
type CatalogResolver struct {
	Repo ports.POIRepository
}

func NewCatalogResolver(repo ports.POIRepository) *CatalogResolver {
	return &CatalogResolver{Repo: repo}
}

func (r *CatalogResolver) Resolve(ctx context.Context, name string) (ports.ResolvedPOI, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.ResolvedPOI{}, false, nil
	}

	rec, ok, err := r.Repo.FindByName(ctx, name)
	if err != nil || !ok {
		return ports.ResolvedPOI{}, false, err
	}

	return ports.ResolvedPOI{Name: rec.Name, Coords: rec.Coords}, true, nil
}
