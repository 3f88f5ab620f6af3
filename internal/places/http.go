package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"refuel-rescue/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// HTTPSource is a nearby-search client for a places web API.
type HTTPSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPSource(baseURL, apiKey string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		ID   string  `json:"id"`
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	} `json:"results"`
}

func (s *HTTPSource) Nearby(ctx context.Context, center domain.Coordinate, radiusMeters int) ([]domain.Station, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	query.Set("radius", strconv.Itoa(radiusMeters))
	query.Set("category", Category)
	if s.apiKey != "" {
		query.Set("key", s.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrProvider, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrProvider, err)
	}
	var parsed nearbyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", domain.ErrProvider, err)
	}
	switch parsed.Status {
	case statusOK:
	case statusZeroResults:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: provider status %q", domain.ErrProvider, parsed.Status)
	}

	stations := make([]domain.Station, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		loc := domain.Coordinate{Lat: result.Lat, Lng: result.Lng}
		if err := domain.ValidateCoordinate(loc); err != nil {
			continue
		}
		stations = append(stations, domain.Station{
			ID:       result.ID,
			Name:     result.Name,
			Location: loc,
		})
	}
	return stations, nil
}

var _ Source = (*HTTPSource)(nil)
