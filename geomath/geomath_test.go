package geomath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceKm(t *testing.T) {
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
	}{
		{
			name: "same point",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 40.7128, lon2: -74.0060,
			expected: 0,
		},
		{
			name: "new york to los angeles",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 34.0522, lon2: -118.2437,
			expected: 3935.7,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			expected: 111.2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineDistanceKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			assert.InDelta(t, tc.expected, got, 0.05)
		})
	}
}

func TestHaversineRoundsToOneDecimal(t *testing.T) {
	// downtown to midtown Manhattan, ~4.3km
	d := HaversineDistanceKm(40.7128, -74.0060, 40.7484, -73.9857)
	assert.InDelta(t, 4.3, d, 0.1)
}

func TestEquirectangularProjection(t *testing.T) {
	project := Equirectangular(Viewport{Width: 800, Height: 600})

	center, ok := project(0, 0)
	assert.True(t, ok)
	assert.Equal(t, Point{X: 400, Y: 300}, center)

	topLeft, ok := project(90, -180)
	assert.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 0}, topLeft)

	bottomRight, ok := project(-90, 180)
	assert.True(t, ok)
	assert.Equal(t, Point{X: 800, Y: 600}, bottomRight)
}

func TestEquirectangularOutOfRange(t *testing.T) {
	project := Equirectangular(Viewport{Width: 800, Height: 600})

	_, ok := project(91, 0)
	assert.False(t, ok)
	_, ok = project(0, -181)
	assert.False(t, ok)
}

func TestProjectionContinuity(t *testing.T) {
	project := Equirectangular(Viewport{Width: 800, Height: 600})

	a, _ := project(40.0, -74.0)
	b, _ := project(40.1, -74.1)
	assert.Less(t, ScreenDistance(a, b), 1.0)
}
