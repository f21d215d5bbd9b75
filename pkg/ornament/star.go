// Package ornament generates symmetric ornamental primitives: star polygons
// and grids, rosettes, and girih tiles with their strapwork. Generation is
// parametric rather than recursive; every function validates first and
// returns fresh output.
package ornament

import (
	"math"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/pattern"
)

// StarCellMargin is the fraction of a grid cell left free around each star:
// stars in a StarGrid get radius (0.5 - StarCellMargin/2)·cellSize.
const StarCellMargin = 0.1

// StarPolygon returns a closed star outline: points outer vertices at radius
// alternating with points inner vertices at radius·innerRatio, the inner ones
// offset by half the angular step. The first vertex sits at -π/2 and is
// repeated at the end, giving 2·points+1 points.
func StarPolygon(center geom.Point, radius float64, points int, innerRatio float64) ([]geom.Point, error) {
	if err := validateStar(center, radius, points, innerRatio); err != nil {
		return nil, err
	}
	return starPoints(center, radius, points, innerRatio), nil
}

func validateStar(center geom.Point, radius float64, points int, innerRatio float64) error {
	return geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckPositive("radius", radius),
		geom.CheckMin("points", points, 3),
		checkElements("points", points, starVertices(points)),
		geom.CheckOpenUnit("innerRatio", innerRatio),
	)
}

func starPoints(center geom.Point, radius float64, points int, innerRatio float64) []geom.Point {
	step := 2 * math.Pi / float64(points)
	inner := radius * innerRatio
	out := make([]geom.Point, 0, 2*points+1)
	for i := 0; i < points; i++ {
		angle := float64(i)*step - math.Pi/2
		out = append(out,
			geom.PointAtAngle(center, angle, radius),
			geom.PointAtAngle(center, angle+step/2, inner),
		)
	}
	return append(out, out[0])
}

// StarGrid tiles stars over the rectangle starting at origin (its minimum
// corner) with the given width and height. The grid has ceil(width/cellSize)
// columns and ceil(height/cellSize) rows; each star is centered in its cell
// with radius 0.45·cellSize. Stars are emitted row by row, left to right.
// The total vertex count over all stars may not exceed MaxElements.
func StarGrid(origin geom.Point, width, height, cellSize float64, points int, innerRatio float64) ([][]geom.Point, error) {
	if err := geom.FirstError(
		geom.CheckPoint("origin", origin),
		geom.CheckPositive("width", width),
		geom.CheckPositive("height", height),
		geom.CheckPositive("cellSize", cellSize),
		geom.CheckMin("points", points, 3),
		geom.CheckOpenUnit("innerRatio", innerRatio),
	); err != nil {
		return nil, err
	}
	fcols, frows := math.Ceil(width/cellSize), math.Ceil(height/cellSize)
	if err := checkElements("cellSize", cellSize, fcols*frows*starVertices(points)); err != nil {
		return nil, err
	}

	cols, rows := int(fcols), int(frows)
	radius := cellSize * (0.5 - StarCellMargin/2)

	stars := make([][]geom.Point, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := origin.Add(geom.Point{
				X: (float64(col) + 0.5) * cellSize,
				Y: (float64(row) + 0.5) * cellSize,
			})
			stars = append(stars, starPoints(c, radius, points, innerRatio))
		}
	}
	return stars, nil
}

// StarConnections draws, for every outer vertex i of a regular star, a chord
// to outer vertex (i + points/2) mod points. The skip uses integer division,
// so odd counts get a truncated, asymmetric offset; that arithmetic is kept
// as is. The result has exactly points chords.
func StarConnections(center geom.Point, radius float64, points int) ([]pattern.Segment, error) {
	if err := geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckPositive("radius", radius),
		geom.CheckRange("points", points, 3, MaxElements),
	); err != nil {
		return nil, err
	}

	outer := geom.RegularPolygon(center, radius, points, 0)
	skip := points / 2
	chords := make([]pattern.Segment, points)
	for i := range outer {
		chords[i] = pattern.Segment{A: outer[i], B: outer[(i+skip)%points]}
	}
	return chords, nil
}
