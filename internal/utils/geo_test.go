package utils

import (
	"math"
	"testing"
)

func TestHaversineSamePoint(t *testing.T) {
	d := Haversine(19.0760, 72.8777, 19.0760, 72.8777)
	if math.Abs(d) > 1e-9 {
		t.Fatalf("expected zero distance at identical coordinates, got %f", d)
	}
}

func TestHaversineDelhiMumbai(t *testing.T) {
	// New Delhi to Mumbai, great-circle distance is roughly 1150 km
	d := Haversine(28.6139, 77.2090, 19.0760, 72.8777)
	if d < 1100 || d > 1200 {
		t.Fatalf("expected roughly 1150 km, got %f", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(12.9716, 77.5946, 13.0827, 80.2707)
	b := Haversine(13.0827, 80.2707, 12.9716, 77.5946)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance must be symmetric: %f vs %f", a, b)
	}
}
