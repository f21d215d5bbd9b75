package lsystem

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/pattern"
)

// TurtleOptions configures turtle interpretation.
type TurtleOptions struct {
	Start   geom.Point
	Heading float64 // initial direction in degrees for the 2D turtle; 90 is +Y
	Length  float64 // step length
	Decay   float64 // length multiplier applied on every push
}

// DefaultTurtle starts at the origin heading up with unit steps and no decay.
func DefaultTurtle() TurtleOptions {
	return TurtleOptions{Heading: 90, Length: 1, Decay: 1}
}

func (o TurtleOptions) validate() error {
	return geom.FirstError(
		geom.CheckPoint("start", o.Start),
		geom.CheckPositive("length", o.Length),
		geom.CheckPositive("decay", o.Decay),
	)
}

// ---------------------------------------------------------------------------
// 2D turtle
// ---------------------------------------------------------------------------

type state2 struct {
	x, y, dir, length float64
}

// Interpret2D walks commands in the plane z = Start.Z. Drawing symbols step
// forward and emit a segment, 'f' steps without drawing, '+' turns right and
// '-' left by the system angle, '|' turns around, '[' saves the state and
// scales the step by Decay, ']' restores it. Other symbols are ignored, as is
// an unmatched ']'.
func (s *System) Interpret2D(commands string, opts TurtleOptions) ([]pattern.Segment, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	z := opts.Start.Z
	cur := state2{x: opts.Start.X, y: opts.Start.Y, dir: opts.Heading, length: opts.Length}
	var stack []state2
	var out []pattern.Segment

	for _, r := range commands {
		switch {
		case s.draws(r), r == 'f':
			rad := geom.DegreesToRadians(cur.dir)
			nx := cur.x + cur.length*math.Cos(rad)
			ny := cur.y + cur.length*math.Sin(rad)
			if r != 'f' {
				out = append(out, pattern.Segment{A: geom.Pt(cur.x, cur.y, z), B: geom.Pt(nx, ny, z)})
			}
			cur.x, cur.y = nx, ny
		case r == '+':
			cur.dir -= s.Angle
		case r == '-':
			cur.dir += s.Angle
		case r == '|':
			cur.dir += 180
		case r == '[':
			stack = append(stack, cur)
			cur.length *= opts.Decay
		case r == ']':
			if n := len(stack); n > 0 {
				cur = stack[n-1]
				stack = stack[:n-1]
			}
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// 3D turtle
// ---------------------------------------------------------------------------

type state3 struct {
	pos, heading, left, up mgl64.Vec3
	length                 float64
}

// Interpret3D walks commands in space. The turtle starts heading +Z with left
// -X and up +Y. '+' and '-' yaw about up, '&' and '^' pitch about left, '\'
// and '/' roll about heading; the remaining commands behave as in
// Interpret2D. Opts.Heading is unused.
func (s *System) Interpret3D(commands string, opts TurtleOptions) ([]pattern.Segment, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	angle := geom.DegreesToRadians(s.Angle)
	cur := state3{
		pos:     mgl64.Vec3{opts.Start.X, opts.Start.Y, opts.Start.Z},
		heading: mgl64.Vec3{0, 0, 1},
		left:    mgl64.Vec3{-1, 0, 0},
		up:      mgl64.Vec3{0, 1, 0},
		length:  opts.Length,
	}
	var stack []state3
	var out []pattern.Segment

	rot := func(v, axis mgl64.Vec3, a float64) mgl64.Vec3 {
		return mgl64.QuatRotate(a, axis).Rotate(v)
	}

	for _, r := range commands {
		switch {
		case s.draws(r), r == 'f':
			next := cur.pos.Add(cur.heading.Mul(cur.length))
			if r != 'f' {
				out = append(out, pattern.Segment{A: fromVec(cur.pos), B: fromVec(next)})
			}
			cur.pos = next
		case r == '+':
			cur.heading = rot(cur.heading, cur.up, -angle)
			cur.left = rot(cur.left, cur.up, -angle)
		case r == '-':
			cur.heading = rot(cur.heading, cur.up, angle)
			cur.left = rot(cur.left, cur.up, angle)
		case r == '&':
			cur.heading = rot(cur.heading, cur.left, -angle)
			cur.up = rot(cur.up, cur.left, -angle)
		case r == '^':
			cur.heading = rot(cur.heading, cur.left, angle)
			cur.up = rot(cur.up, cur.left, angle)
		case r == '\\':
			cur.left = rot(cur.left, cur.heading, angle)
			cur.up = rot(cur.up, cur.heading, angle)
		case r == '/':
			cur.left = rot(cur.left, cur.heading, -angle)
			cur.up = rot(cur.up, cur.heading, -angle)
		case r == '|':
			cur.heading = cur.heading.Mul(-1)
			cur.left = cur.left.Mul(-1)
		case r == '[':
			stack = append(stack, cur)
			cur.length *= opts.Decay
		case r == ']':
			if n := len(stack); n > 0 {
				cur = stack[n-1]
				stack = stack[:n-1]
			}
		}
	}
	return out, nil
}

func fromVec(v mgl64.Vec3) geom.Point {
	return geom.Pt(v[0], v[1], v[2])
}
