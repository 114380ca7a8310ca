// Package area describes the study area of a sensor deployment: the point
// used when no GPS fix is available and the bounds fixes are expected in.
package area

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/mpsense/sampler/pkg/config"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6_371_008.8

// Point is a position in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Area is a latitude/longitude rectangle with a designated center.
type Area struct {
	Center Point
	rect   s2.Rect
}

// New creates Area from the study-area configuration.
func New(cfg config.AreaConfig) Area {
	minLL := s2.LatLngFromDegrees(cfg.MinLatitude, cfg.MinLongitude)
	maxLL := s2.LatLngFromDegrees(cfg.MaxLatitude, cfg.MaxLongitude)
	return Area{
		Center: Point{
			Latitude:  cfg.CenterLatitude,
			Longitude: cfg.CenterLongitude,
		},
		rect: s2.Rect{
			Lat: r1.Interval{
				Lo: minLL.Lat.Radians(),
				Hi: maxLL.Lat.Radians()},
			Lng: s1.Interval{
				Lo: minLL.Lng.Radians(),
				Hi: maxLL.Lng.Radians()},
		},
	}
}

// Contains reports whether p lies inside the area bounds.
func (a Area) Contains(p Point) bool {
	return a.rect.ContainsLatLng(p.latLng())
}

// DistanceFromCenter returns the great-circle distance from the area
// center to p in meters.
func (a Area) DistanceFromCenter(p Point) float64 {
	return Distance(a.Center, p)
}

// Distance returns the great-circle distance between two points in meters.
func Distance(p1, p2 Point) float64 {
	return p1.latLng().Distance(p2.latLng()).Radians() * EarthRadius
}

func (p Point) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Latitude, p.Longitude)
}
