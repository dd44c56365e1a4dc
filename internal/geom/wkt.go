package geom

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseWKT parses the point-bearing subset of WKT.
// Supported: POINT(x y), MULTIPOINT(x y, ...) including the parenthesized
// tuple form MULTIPOINT((x y), (x y)).
func ParseWKT(wkt string) ([]Point, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("wkt: empty input")
	}
	up := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"), strings.HasPrefix(up, "POINT"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return nil, errors.New("wkt: unbalanced parentheses")
		}
		points := parseTuples(s[i+1 : j])
		if len(points) == 0 {
			return nil, errors.New("wkt: no coordinates parsed")
		}
		return points, nil
	}
	return nil, errors.New("wkt: unsupported geometry type")
}

// LoadWKT reads a file containing a single WKT geometry.
func LoadWKT(path string) ([]Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	points, err := ParseWKT(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "wkt %s", path)
	}
	return points, nil
}

func parseTuples(block string) []Point {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		tup = strings.TrimSpace(tup)
		// tolerate MULTIPOINT((1 2), (3 4))
		tup = strings.Trim(tup, "()")
		parts := strings.Fields(tup)
		if len(parts) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}
