package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// WriteMap renders the itinerary as a GeoJSON FeatureCollection at path:
// one point feature per geocoded stop plus one linestring per day route,
// suitable for dropping into geojson.io or any web map.
func (e *Exporter) WriteMap(ctx context.Context, it *Itinerary, path string) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "export: map cancelled")
	}

	fc := BuildFeatureCollection(it)
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "export: write map")
	}
	return nil
}

// BuildFeatureCollection converts itinerary days to GeoJSON features.
// Stops without coordinates are skipped.
func BuildFeatureCollection(it *Itinerary) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}

	for dayIdx, day := range it.Days {
		var flat []float64

		for stopIdx, poi := range day {
			if !poi.Geocoded() {
				continue
			}
			lng, lat := *poi.Lng, *poi.Lat
			flat = append(flat, lng, lat)

			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       fmt.Sprintf("d%d-s%d", dayIdx+1, stopIdx+1),
				Geometry: geom.NewPointFlat(geom.XY, []float64{lng, lat}),
				Properties: map[string]interface{}{
					"name":  poi.Name,
					"day":   dayIdx + 1,
					"stop":  stopIdx + 1,
					"score": poi.PersonaScore,
					"note":  poi.AgentNote,
				},
			})
		}

		if len(flat) >= 4 {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       fmt.Sprintf("d%d-route", dayIdx+1),
				Geometry: geom.NewLineStringFlat(geom.XY, flat),
				Properties: map[string]interface{}{
					"day":   dayIdx + 1,
					"route": true,
				},
			})
		}
	}

	return fc
}
