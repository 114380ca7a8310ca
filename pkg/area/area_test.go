package area_test

import (
	"testing"

	"github.com/mpsense/sampler/pkg/area"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	a := area.New(config.New().Area)
	assert.Equal(t, area.Point{Latitude: 14.4, Longitude: 121.25}, a.Center)

	tests := []struct {
		msg string
		p   area.Point
		res bool
	}{
		{"center", a.Center, true},
		{"near south-west corner", area.Point{Latitude: 14.18, Longitude: 121.01}, true},
		{"north of bounds", area.Point{Latitude: 14.60, Longitude: 121.25}, false},
		{"east of bounds", area.Point{Latitude: 14.40, Longitude: 121.50}, false},
		{"munich", area.Point{Latitude: 48.1173, Longitude: 11.5167}, false},
		{"null island", area.Point{}, false},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, a.Contains(v.p), v.msg)
	}
}

func TestDistance(t *testing.T) {
	a := area.New(config.New().Area)
	assert.InDelta(t, 0, a.DistanceFromCenter(a.Center), 1e-6)

	// one degree of latitude is about 111.2 km
	p := area.Point{Latitude: 15.4, Longitude: 121.25}
	assert.InDelta(t, 111_195, a.DistanceFromCenter(p), 50)
	assert.InDelta(t, area.Distance(p, a.Center), area.Distance(a.Center, p), 1e-9)
}

func TestFeatures(t *testing.T) {
	a := area.New(config.New().Area)

	pf := a.Center.Feature(map[string]any{"source": "fallback"})
	assert.True(t, pf.Geometry.IsPoint())
	assert.Equal(t, []float64{121.25, 14.4}, pf.Geometry.Point)
	assert.Equal(t, "fallback", pf.Properties["source"])

	af := a.Feature()
	assert.True(t, af.Geometry.IsPolygon())
	ring := af.Geometry.Polygon[0]
	assert.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4])
	assert.InDelta(t, 121.0, ring[0][0], 1e-9)
	assert.InDelta(t, 14.17, ring[0][1], 1e-9)
	assert.InDelta(t, 14.53, ring[2][1], 1e-9)
}
