// Package places defines the place-source port and its adapters. A place
// source returns fuel-station candidates around a center point; the core
// calls it once per location fix and treats it as opaque.
package places

import (
	"context"

	"refuel-rescue/internal/domain"
)

// Category requested from the provider.
const Category = "fuel-station"

// DefaultRadiusMeters is the search radius used when none is configured.
const DefaultRadiusMeters = 5000

// Source yields fuel-station candidates within radiusMeters of center.
// An empty result is not an error.
type Source interface {
	Nearby(ctx context.Context, center domain.Coordinate, radiusMeters int) ([]domain.Station, error)
}
