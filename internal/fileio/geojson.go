package fileio

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"grid-planner/internal/grid"
	"grid-planner/internal/obstacle"
	"grid-planner/internal/search"
)

// Feature kinds written next to obstacle.KindObstacle
const (
	KindBounds    = "bounds"
	KindPath      = "path"
	KindWaypoints = "waypoints"
)

// Solution is everything exported for one planning run
type Solution struct {
	Shape     grid.Shape
	Radius    int
	Obstacles []grid.Circle
	Path      []grid.Coord
	Waypoints []grid.Coord
}

// FeatureCollection renders a solution in cell units: the grid outline, one
// point per obstacle with its radius, and the path and waypoints when found
func FeatureCollection(sol Solution) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	w, h := float64(sol.Shape.Width), float64(sol.Shape.Height)
	bounds := geojson.NewFeature(orb.Polygon{orb.Ring{{0, 0}, {w, 0}, {w, h}, {0, h}, {0, 0}}})
	bounds.Properties[obstacle.KindProperty] = KindBounds
	bounds.Properties["agent_radius"] = sol.Radius
	fc.Append(bounds)

	for _, c := range sol.Obstacles {
		f := geojson.NewFeature(orb.Point{float64(c.Center.X), float64(c.Center.Y)})
		f.Properties[obstacle.KindProperty] = obstacle.KindObstacle
		f.Properties[obstacle.RadiusProperty] = c.Radius
		fc.Append(f)
	}

	if len(sol.Path) > 0 {
		f := geojson.NewFeature(search.LineString(sol.Path))
		f.Properties[obstacle.KindProperty] = KindPath
		f.Properties["cells"] = len(sol.Path)
		fc.Append(f)
	}

	if len(sol.Waypoints) > 0 {
		mp := make(orb.MultiPoint, 0, len(sol.Waypoints))
		for _, c := range sol.Waypoints {
			mp = append(mp, orb.Point{float64(c.X), float64(c.Y)})
		}
		f := geojson.NewFeature(mp)
		f.Properties[obstacle.KindProperty] = KindWaypoints
		fc.Append(f)
	}

	return fc
}

// WriteGeoJSON writes a solution as a GeoJSON FeatureCollection
func WriteGeoJSON(w io.Writer, sol Solution) error {
	data, err := FeatureCollection(sol).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveGeoJSON writes a solution GeoJSON file, creating parent directories
func SaveGeoJSON(filename string, sol Solution) error {
	return writeFile(filename, func(w io.Writer) error { return WriteGeoJSON(w, sol) })
}
