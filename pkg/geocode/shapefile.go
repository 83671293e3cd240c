package geocode

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// LoadShapefile extends a gazetteer from a populated-places point shapefile
// (e.g. Natural Earth ne_10m_populated_places). nameField is the attribute
// carrying the place name, typically "NAME". Non-point records and records
// with an empty name are skipped.
func LoadShapefile(g *Gazetteer, shpPath, nameField string) error {
	if nameField == "" {
		nameField = "NAME"
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return eris.Wrap(err, "geocode: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, nameField)
	if nameIdx < 0 {
		return eris.Errorf("geocode: shapefile field %q not found", nameField)
	}

	var loaded int
	for reader.Next() {
		_, shape := reader.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			continue
		}

		name := strings.TrimSpace(reader.Attribute(nameIdx))
		if name == "" {
			continue
		}

		g.Add(name, pt.Y, pt.X)
		loaded++
	}

	zap.L().Info("geocode: gazetteer loaded from shapefile",
		zap.String("path", shpPath),
		zap.Int("places", loaded),
	)
	return nil
}

// fieldIndex returns the index of a named attribute field, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
