package ornament

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/pattern"
)

// TileType enumerates the girih tile shapes.
type TileType int

const (
	TileDecagon  TileType = iota // regular decagon
	TilePentagon                 // regular pentagon
	TileHexagon                  // regular hexagon
	TileBowtie                   // concave hexagon with two waist points
	TileRhombus                  // golden-ratio rhombus
)

var tileNames = map[TileType]string{
	TileDecagon:  "decagon",
	TilePentagon: "pentagon",
	TileHexagon:  "hexagon",
	TileBowtie:   "bowtie",
	TileRhombus:  "rhombus",
}

func (t TileType) String() string {
	if name, ok := tileNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TileType(%d)", int(t))
}

// ParseTileType maps a lowercase token ("decagon", "bowtie", ...) to its
// TileType.
func ParseTileType(token string) (TileType, error) {
	for t, name := range tileNames {
		if name == token {
			return t, nil
		}
	}
	return 0, geom.Invalid("tile", token, "expected decagon, pentagon, hexagon, bowtie or rhombus")
}

// bowtieRule lists the bowtie's (angle in degrees, radius factor) pairs in
// counter-clockwise order. The two half-radius points form the waist.
var bowtieRule = [6][2]float64{
	{-36, 1},
	{36, 1},
	{90, 0.5},
	{144, 1},
	{216, 1},
	{270, 0.5},
}

// tileVertices applies the construction rule for tile. An unknown tile
// yields no vertices.
func tileVertices(tile TileType, center geom.Point, size float64) []geom.Point {
	switch tile {
	case TileDecagon:
		return geom.RegularPolygon(center, size, 10, 0)
	case TilePentagon:
		return geom.RegularPolygon(center, size, 5, 0)
	case TileHexagon:
		return geom.RegularPolygon(center, size, 6, 0)
	case TileBowtie:
		out := make([]geom.Point, len(bowtieRule))
		for i, r := range bowtieRule {
			out[i] = geom.PointAtAngle(center, geom.DegreesToRadians(r[0]), size*r[1])
		}
		return out
	case TileRhombus:
		long := size
		short := size / math.Phi
		return []geom.Point{
			center.Add(geom.Point{X: long}),
			center.Add(geom.Point{Y: short}),
			center.Add(geom.Point{X: -long}),
			center.Add(geom.Point{Y: -short}),
		}
	}
	return nil
}

// GirihTile returns the vertices of tile centered on center. size is the
// circumradius for the regular tiles and the bowtie, and the long
// half-diagonal for the rhombus (the short one is size/φ).
func GirihTile(tile TileType, center geom.Point, size float64) ([]geom.Point, error) {
	if err := geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckPositive("size", size),
	); err != nil {
		return nil, err
	}
	v := tileVertices(tile, center, size)
	if len(v) == 0 {
		return nil, geom.Invalid("tile", tile, "unknown tile type")
	}
	return v, nil
}

// Strapwork derives the interlace lines of a tile: first one radial segment
// from center to every vertex, then one cross segment per edge joining the
// midpoint of edge i to the midpoint of edge (i + n/2) mod n. The opposite
// index uses integer division; for odd n the mapping is deterministic but
// rotationally skewed.
func Strapwork(center geom.Point, vertices []geom.Point) ([]pattern.Segment, error) {
	if err := geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckMin("vertices", len(vertices), 3),
	); err != nil {
		return nil, err
	}

	n := len(vertices)
	radial := lo.Map(vertices, func(v geom.Point, _ int) pattern.Segment {
		return pattern.Segment{A: center, B: v}
	})
	mids := lo.Map(vertices, func(v geom.Point, i int) geom.Point {
		return geom.Midpoint(v, vertices[(i+1)%n])
	})
	cross := lo.Map(mids, func(m geom.Point, i int) pattern.Segment {
		return pattern.Segment{A: m, B: mids[(i+n/2)%n]}
	})
	return append(radial, cross...), nil
}

// GirihGrid lays cols×rows copies of tile on a square lattice with pitch
// 2·size, the first tile centered on origin. Tiles are emitted row by row as
// closed polylines. The total vertex count may not exceed MaxElements.
func GirihGrid(tile TileType, origin geom.Point, size float64, cols, rows int) ([]pattern.Polyline, error) {
	if err := geom.FirstError(
		geom.CheckPoint("origin", origin),
		geom.CheckPositive("size", size),
		geom.CheckMin("cols", cols, 1),
		geom.CheckMin("rows", rows, 1),
	); err != nil {
		return nil, err
	}
	n := len(tileVertices(tile, origin, size))
	if n == 0 {
		return nil, geom.Invalid("tile", tile, "unknown tile type")
	}
	if err := checkElements("rows", rows, float64(cols)*float64(rows)*float64(n)); err != nil {
		return nil, err
	}

	pitch := 2 * size
	tiles := make([]pattern.Polyline, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := origin.Add(geom.Point{X: float64(col) * pitch, Y: float64(row) * pitch})
			tiles = append(tiles, pattern.Polyline{Points: tileVertices(tile, c, size), Closed: true})
		}
	}
	return tiles, nil
}
