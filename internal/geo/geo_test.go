package geo

import (
	"math"
	"testing"

	"refuel-rescue/internal/domain"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 12.9716, Lng: 77.5946},
		{Lat: -45.5, Lng: 170.25},
	}
	for _, p := range points {
		if d := DistanceKm(p, p); d != 0 {
			t.Fatalf("expected zero distance for %+v, got %f", p, d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := domain.Coordinate{Lat: 12.9716, Lng: 77.5946}
	b := domain.Coordinate{Lat: 13.0827, Lng: 80.2707}
	if DistanceKm(a, b) != DistanceKm(b, a) {
		t.Fatalf("expected symmetric distance")
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Bangalore to Chennai, roughly 290 km great-circle.
	a := domain.Coordinate{Lat: 12.9716, Lng: 77.5946}
	b := domain.Coordinate{Lat: 13.0827, Lng: 80.2707}
	d := DistanceKm(a, b)
	if d < 280 || d > 300 {
		t.Fatalf("expected ~290 km, got %f", d)
	}
}

func TestRoundKm(t *testing.T) {
	if got := RoundKm(1.2345); got != 1.23 {
		t.Fatalf("expected 1.23, got %f", got)
	}
	if got := RoundKm(1.235); got != 1.24 {
		t.Fatalf("expected 1.24, got %f", got)
	}
}

func TestRankSortedAndNearest(t *testing.T) {
	origin := domain.Coordinate{Lat: 12.9716, Lng: 77.5946}
	stations := []domain.Station{
		{ID: "far", Name: "Far", Location: domain.Coordinate{Lat: 13.2, Lng: 77.9}},
		{ID: "near", Name: "Near", Location: domain.Coordinate{Lat: 12.98, Lng: 77.60}},
		{ID: "mid", Name: "Mid", Location: domain.Coordinate{Lat: 13.0, Lng: 77.7}},
	}
	r := Rank(origin, stations)
	if len(r.Ranked) != 3 {
		t.Fatalf("expected 3 ranked stations, got %d", len(r.Ranked))
	}
	for i := 1; i < len(r.Ranked); i++ {
		if r.Ranked[i-1].DistanceKm > r.Ranked[i].DistanceKm {
			t.Fatalf("ranked list not sorted ascending at %d", i)
		}
	}
	if r.Nearest == nil || r.Nearest.ID != "near" {
		t.Fatalf("expected nearest to be %q, got %+v", "near", r.Nearest)
	}
	min := math.Inf(1)
	for _, rs := range r.Ranked {
		if rs.DistanceKm < min {
			min = rs.DistanceKm
		}
	}
	if r.Nearest.DistanceKm != min {
		t.Fatalf("nearest does not have minimum distance")
	}
}

func TestRankStableOnTies(t *testing.T) {
	origin := domain.Coordinate{Lat: 0, Lng: 0}
	loc := domain.Coordinate{Lat: 0.01, Lng: 0.01}
	stations := []domain.Station{
		{ID: "a", Name: "A", Location: loc},
		{ID: "b", Name: "B", Location: loc},
		{ID: "c", Name: "C", Location: loc},
	}
	r := Rank(origin, stations)
	for i, want := range []string{"a", "b", "c"} {
		if r.Ranked[i].ID != want {
			t.Fatalf("expected provider order preserved on ties, got %q at %d", r.Ranked[i].ID, i)
		}
	}
	if r.Nearest.ID != "a" {
		t.Fatalf("expected first-in-order nearest on ties, got %q", r.Nearest.ID)
	}
}

func TestRankEmpty(t *testing.T) {
	r := Rank(domain.Coordinate{Lat: 1, Lng: 1}, nil)
	if len(r.Ranked) != 0 {
		t.Fatalf("expected empty ranked list")
	}
	if r.Nearest != nil {
		t.Fatalf("expected nil nearest for empty candidate set")
	}
}

func TestRankDeterministic(t *testing.T) {
	origin := domain.Coordinate{Lat: 12.9716, Lng: 77.5946}
	stations := []domain.Station{
		{ID: "1", Location: domain.Coordinate{Lat: 12.99, Lng: 77.61}},
		{ID: "2", Location: domain.Coordinate{Lat: 12.95, Lng: 77.58}},
	}
	first := Rank(origin, stations)
	second := Rank(origin, stations)
	if len(first.Ranked) != len(second.Ranked) {
		t.Fatalf("rankings differ in length")
	}
	for i := range first.Ranked {
		if first.Ranked[i] != second.Ranked[i] {
			t.Fatalf("ranking not deterministic at %d", i)
		}
	}
}
