package obstacle

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"grid-planner/internal/grid"
)

// Feature properties understood by the loader
const (
	RadiusProperty = "radius" // circle radius in cells
	KindProperty   = "kind"   // optional feature role
	KindObstacle   = "obstacle"
)

// ParseGeoJSON reads circles from a FeatureCollection. Point and MultiPoint
// features are circle centers in cell units; features of any other geometry,
// or with a negative position or radius, are skipped with a warning. Features
// whose kind property names something other than an obstacle are ignored, so
// exported solutions can be loaded back as obstacle files.
func ParseGeoJSON(data []byte, logger *log.Logger) ([]grid.Circle, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	var circles []grid.Circle
	for i, feature := range fc.Features {
		if kind, ok := feature.Properties[KindProperty].(string); ok && kind != KindObstacle {
			continue
		}
		radius := feature.Properties.MustFloat64(RadiusProperty, 0)

		var points []orb.Point
		switch g := feature.Geometry.(type) {
		case orb.Point:
			points = []orb.Point{g}
		case orb.MultiPoint:
			points = g
		default:
			warn(logger, "skipping feature with unsupported geometry", "feature", i, "type", geometryType(g))
			continue
		}

		for _, p := range points {
			c := grid.Circle{
				Center: grid.Coord{X: int(math.Round(p.X())), Y: int(math.Round(p.Y()))},
				Radius: int(math.Round(radius)),
			}
			if c.Center.X < 0 || c.Center.Y < 0 || c.Radius < 0 {
				warn(logger, "skipping circle with negative values", "feature", i, "center", c.Center, "radius", c.Radius)
				continue
			}
			circles = append(circles, c)
		}
	}
	return circles, nil
}

// LoadGeoJSON loads circles from every file matching pattern. Unreadable or
// malformed files are skipped with a warning; a bad pattern is an error.
func LoadGeoJSON(pattern string, logger *log.Logger) ([]grid.Circle, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid obstacle pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no obstacle files match %q", pattern)
	}

	if logger != nil {
		logger.Info("loading obstacles", "files", len(files))
	}

	var all []grid.Circle
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			warn(logger, "failed to read obstacle file", "file", file, "err", err)
			continue
		}

		circles, err := ParseGeoJSON(data, logger)
		if err != nil {
			warn(logger, "failed to parse obstacle file", "file", file, "err", err)
			continue
		}
		all = append(all, circles...)

		if logger != nil {
			logger.Info("loaded obstacles", "file", filepath.Base(file), "circles", len(circles))
		}
	}
	return all, nil
}

func warn(logger *log.Logger, msg string, keyvals ...any) {
	if logger != nil {
		logger.Warn(msg, keyvals...)
	}
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "none"
	}
	return g.GeoJSONType()
}
