// Package location defines the location-source port: one request, one
// coordinate or a typed denial. The fallback policy on denial lives in
// the session service, not here.
package location

import (
	"context"

	"refuel-rescue/internal/domain"
)

// DefaultFallback is the coordinate used when the source denies or
// fails.
var DefaultFallback = domain.Coordinate{Lat: 12.9716, Lng: 77.5946}

// Source yields the user's current coordinate or fails. A denial is
// reported as domain.ErrLocationDenied; any other error is treated the
// same way by the caller.
type Source interface {
	Current(ctx context.Context) (domain.Coordinate, error)
}

// StaticSource always returns a fixed coordinate. Used for tests and
// offline runs.
type StaticSource struct {
	Coordinate domain.Coordinate
}

func (s *StaticSource) Current(ctx context.Context) (domain.Coordinate, error) {
	return s.Coordinate, nil
}

// DeniedSource always denies, as a browser does when the user refuses
// the location prompt.
type DeniedSource struct{}

func (DeniedSource) Current(ctx context.Context) (domain.Coordinate, error) {
	return domain.Coordinate{}, domain.ErrLocationDenied
}

var (
	_ Source = (*StaticSource)(nil)
	_ Source = DeniedSource{}
)
