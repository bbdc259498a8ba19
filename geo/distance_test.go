package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForIdenticalPoints(t *testing.T) {
	p := Point{Lat: 10.7275, Lng: 76.2900}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistanceIsSymmetric(t *testing.T) {
	pairs := [][2]Point{
		{{10.7275, 76.29}, {10.73, 76.3}},
		{{-33.8688, 151.2093}, {51.5074, -0.1278}},
		{{0, 179.9}, {0, -179.9}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p[0], p[1]), Distance(p[1], p[0]), 1e-6)
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// one degree of latitude on a 6371 km sphere
	assert.InDelta(t, 111195, Distance(Point{0, 0}, Point{1, 0}), 1)
	// across the antimeridian stays short
	assert.InDelta(t, 22239, Distance(Point{0, 179.9}, Point{0, -179.9}), 1)
}

func TestWithin(t *testing.T) {
	center := Point{Lat: 10.7275, Lng: 76.2900}
	near := Point{Lat: 10.7282, Lng: 76.2900} // ~78 m north
	far := Point{Lat: 10.7300, Lng: 76.2900}  // ~278 m north

	assert.True(t, Within(near, []Point{center}, 100))
	assert.False(t, Within(far, []Point{center}, 100))
	assert.False(t, Within(near, nil, 100))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(Point{90, -180}))
	assert.False(t, ValidCoordinates(Point{90.1, 0}))
	assert.False(t, ValidCoordinates(Point{0, 181}))
}
