package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadKML extracts Point coordinates from a KML file (Placemark > Point >
// coordinates). KML coordinates are "lon,lat[,alt]"; altitude is ignored.
// The Placemark name becomes the point label.
func LoadKML(path string) ([]Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "kml")
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
	}
	// Placemarks sit either directly under <kml> or inside <Document>.
	type kmlDoc struct {
		Placemarks    []kmlPlacemark `xml:"Placemark"`
		DocPlacemarks []kmlPlacemark `xml:"Document>Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "kml %s", path)
	}
	var points []Point
	for _, pm := range append(doc.Placemarks, doc.DocPlacemarks...) {
		if pm.Point == nil {
			continue
		}
		// coordinates may contain multiple tuples separated by whitespace
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			points = append(points, Point{X: lon, Y: lat, Label: strings.TrimSpace(pm.Name)})
		}
	}
	if len(points) == 0 {
		return nil, errors.Errorf("kml %s: no points found", path)
	}
	return points, nil
}
