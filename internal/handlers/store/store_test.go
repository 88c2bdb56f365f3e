package store

import (
	"testing"

	"swadbazaar-backend/internal/models"
)

func TestSortByDistance(t *testing.T) {
	stores := []models.Store{
		{Name: "Mumbai", Lat: 19.0760, Lng: 72.8777},
		{Name: "Delhi", Lat: 28.6139, Lng: 77.2090},
		{Name: "Pune", Lat: 18.5204, Lng: 73.8567},
	}

	// querying from Mumbai itself
	sorted := SortByDistance(stores, 19.0760, 72.8777)

	if len(sorted) != 3 {
		t.Fatalf("expected 3 stores, got %d", len(sorted))
	}
	if sorted[0].Name != "Mumbai" {
		t.Fatalf("nearest store must come first, got %s", sorted[0].Name)
	}
	if sorted[0].DistanceKm != 0 {
		t.Fatalf("distance at the store's own coordinates must be 0, got %f", sorted[0].DistanceKm)
	}
	if sorted[1].Name != "Pune" || sorted[2].Name != "Delhi" {
		t.Fatalf("expected Pune before Delhi from Mumbai, got %s then %s",
			sorted[1].Name, sorted[2].Name)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].DistanceKm < sorted[i-1].DistanceKm {
			t.Fatalf("distances must be ascending")
		}
	}
}

func TestSortByDistanceEmpty(t *testing.T) {
	sorted := SortByDistance(nil, 19.0760, 72.8777)
	if len(sorted) != 0 {
		t.Fatalf("expected empty result, got %d", len(sorted))
	}
}
