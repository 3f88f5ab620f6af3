package places

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/metrics"
)

const (
	cacheDefaultExpiry = 5 * time.Minute
	cacheCleanupTime   = 10 * time.Minute
)

// CachedSource memoizes nearby lookups for a short TTL so repeated map
// loads around the same fix do not re-hit the provider. Centers are
// keyed at 4 decimal places (~11 m), so nearby fixes share an entry.
type CachedSource struct {
	inner Source
	cache *cache.Cache
}

func NewCachedSource(inner Source) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: cache.New(cacheDefaultExpiry, cacheCleanupTime),
	}
}

func (s *CachedSource) Nearby(ctx context.Context, center domain.Coordinate, radiusMeters int) ([]domain.Station, error) {
	key := fmt.Sprintf("%.4f,%.4f,%d", center.Lat, center.Lng, radiusMeters)
	if cached, ok := s.cache.Get(key); ok {
		metrics.PlaceCacheHits.Inc()
		return cached.([]domain.Station), nil
	}
	stations, err := s.inner.Nearby(ctx, center, radiusMeters)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, stations, cache.DefaultExpiration)
	return stations, nil
}

var _ Source = (*CachedSource)(nil)
