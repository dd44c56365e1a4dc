package geom

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LoadPath dispatches on the file extension and returns the points it
// holds. Supported: .csv, .geojson, .json, .wkt, .kml.
func LoadPath(path string) ([]Point, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".wkt":
		return LoadWKT(path)
	case ".kml":
		return LoadKML(path)
	}
	return nil, errors.Errorf("unsupported file type: %s", path)
}
