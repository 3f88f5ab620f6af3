package geo

import (
	"sort"

	"refuel-rescue/internal/domain"
)

// Ranking is the result of one ranking pass: all candidates annotated
// with their distance from the origin, sorted ascending, plus the
// nearest candidate. Nearest is nil when the candidate set is empty.
type Ranking struct {
	Ranked  []domain.RankedStation
	Nearest *domain.RankedStation
}

// Rank annotates and sorts the candidate stations by distance from the
// origin. The sort is stable: candidates at equal distance keep the
// order the provider returned them in. An empty candidate set is not an
// error. Identical inputs always yield identical output.
func Rank(origin domain.Coordinate, stations []domain.Station) Ranking {
	ranked := make([]domain.RankedStation, 0, len(stations))
	for _, st := range stations {
		ranked = append(ranked, domain.RankedStation{
			Station:    st,
			DistanceKm: DistanceKm(origin, st.Location),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	if len(ranked) == 0 {
		return Ranking{Ranked: ranked}
	}
	nearest := ranked[0]
	return Ranking{Ranked: ranked, Nearest: &nearest}
}
