package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKM(t *testing.T) {
	// Tokyo Station to Kyoto Station is roughly 366 km.
	d := HaversineKM(35.6812, 139.7671, 34.9858, 135.7588)
	assert.InDelta(t, 366, d, 5)
}

func TestHaversineKMZeroDistance(t *testing.T) {
	assert.Zero(t, HaversineKM(48.8566, 2.3522, 48.8566, 2.3522))
}

func TestHaversineKMSymmetric(t *testing.T) {
	a := HaversineKM(40.7128, -74.0060, 51.5074, -0.1278)
	b := HaversineKM(51.5074, -0.1278, 40.7128, -74.0060)
	assert.InDelta(t, a, b, 1e-9)
}
