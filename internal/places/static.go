package places

import (
	"context"

	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/geo"
)

// StaticSource serves candidates from a fixed list, filtered by radius.
// Used for offline runs and tests.
type StaticSource struct {
	Stations []domain.Station
}

func (s *StaticSource) Nearby(ctx context.Context, center domain.Coordinate, radiusMeters int) ([]domain.Station, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	radiusKm := float64(radiusMeters) / 1000
	var out []domain.Station
	for _, st := range s.Stations {
		if geo.DistanceKm(center, st.Location) <= radiusKm {
			out = append(out, st)
		}
	}
	return out, nil
}

var _ Source = (*StaticSource)(nil)
