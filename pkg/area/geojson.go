package area

import (
	geojson "github.com/paulmach/go.geojson"
)

// Feature returns p as a GeoJSON point feature with the given properties.
func (p Point) Feature(props map[string]any) *geojson.Feature {
	res := geojson.NewPointFeature([]float64{p.Longitude, p.Latitude})
	for k, v := range props {
		res.SetProperty(k, v)
	}
	return res
}

// Feature returns the area bounds as a GeoJSON polygon with the center
// in its properties.
func (a Area) Feature() *geojson.Feature {
	lo, hi := a.rect.Lo(), a.rect.Hi()
	minLat, minLon := lo.Lat.Degrees(), lo.Lng.Degrees()
	maxLat, maxLon := hi.Lat.Degrees(), hi.Lng.Degrees()
	return &geojson.Feature{
		Type: "Feature",
		Geometry: &geojson.Geometry{
			Type: "Polygon",
			Polygon: [][][]float64{
				{
					{minLon, minLat},
					{maxLon, minLat},
					{maxLon, maxLat},
					{minLon, maxLat},
					{minLon, minLat},
				},
			},
		},
		Properties: map[string]any{
			"center": []float64{a.Center.Longitude, a.Center.Latitude},
		},
	}
}
