package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSV reads a CSV with coordinate columns and returns points.
// Column detection (case-insensitive): lat|latitude|y and
// lon|lng|long|longitude|x, plus an optional name|label|id column used as
// the point label. Rows with unparseable coordinates are skipped.
func LoadCSV(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "csv")
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "csv %s", path)
	}
	if len(recs) == 0 {
		return nil, errors.Errorf("csv %s: empty file", path)
	}
	idxLat, idxLon, idxLabel := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "name", "label", "id":
			if idxLabel == -1 {
				idxLabel = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.Errorf("csv %s: coordinate columns not found", path)
	}
	var points []Point
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		p := Point{X: x, Y: y}
		if idxLabel != -1 && idxLabel < len(row) {
			p.Label = strings.TrimSpace(row[idxLabel])
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, errors.Errorf("csv %s: no valid points parsed", path)
	}
	return points, nil
}
