package resolve

import (
	"context"
	"log"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// ChainResolver consults resolvers in order and returns the first match.
//
// Each layer reports its outcome explicitly (found or not) instead of
// signalling misses through errors; a layer error is logged and the chain
// moves on, so a broken geocoding service cannot abort planning.
type ChainResolver struct {
	layers []ports.POIResolver
	repo   ports.POIRepository
}

// NewChainResolver builds a chain. When repo is non-nil, matches produced by
// later layers are written back into the catalog so the next request hits
// the first layer.
func NewChainResolver(repo ports.POIRepository, layers ...ports.POIResolver) *ChainResolver {
	return &ChainResolver{layers: layers, repo: repo}
}

func (r *ChainResolver) Resolve(ctx context.Context, name string) (ports.ResolvedPOI, bool, error) {
	for i, layer := range r.layers {
		resolved, ok, err := layer.Resolve(ctx, name)
		if err != nil {
			log.Printf("resolver layer=%d name=%q err=%v", i, name, err)
			continue
		}
		if !ok {
			continue
		}

		if i > 0 && r.repo != nil {
			rec := domain.POIRecord{
				Name:            resolved.Name,
				Coords:          resolved.Coords,
				AvgDwellMinutes: domain.DefaultDwellMinutes,
			}
			if err := r.repo.Upsert(ctx, rec); err != nil {
				log.Printf("catalog write-back failed name=%q err=%v", name, err)
			}
		}

		return resolved, true, nil
	}

	return ports.ResolvedPOI{}, false, nil
}
