package geom

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// LoadGeoJSON extracts point coordinates from a GeoJSON file.
// Supports FeatureCollection, Feature, and bare geometry documents; Point
// and MultiPoint geometries contribute points, everything else is ignored.
// Feature labels come from the name, title, or id property.
func LoadGeoJSON(path string) ([]Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "geojson")
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrapf(err, "geojson %s", path)
	}

	var points []Point
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrapf(err, "geojson %s", path)
		}
		for _, f := range fc.Features {
			points = collectPoints(points, f.Geometry, featureLabel(f))
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrapf(err, "geojson %s", path)
		}
		points = collectPoints(points, f.Geometry, featureLabel(f))
	case "":
		return nil, errors.Errorf("geojson %s: missing type", path)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrapf(err, "geojson %s", path)
		}
		points = collectPoints(points, g.Geometry(), "")
	}

	if len(points) == 0 {
		return nil, errors.Errorf("geojson %s: no point geometries found", path)
	}
	return points, nil
}

func collectPoints(dst []Point, g orb.Geometry, label string) []Point {
	switch g := g.(type) {
	case orb.Point:
		dst = append(dst, Point{X: g[0], Y: g[1], Label: label})
	case orb.MultiPoint:
		for _, p := range g {
			dst = append(dst, Point{X: p[0], Y: p[1], Label: label})
		}
	case orb.Collection:
		for _, sub := range g {
			dst = collectPoints(dst, sub, label)
		}
	}
	return dst
}

func featureLabel(f *geojson.Feature) string {
	if f == nil || f.Properties == nil {
		return ""
	}
	for _, key := range []string{"name", "title", "id"} {
		if v, ok := f.Properties[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
