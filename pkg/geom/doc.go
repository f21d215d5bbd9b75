// Package geom is the vector math kernel shared by every generator: points,
// angle placement, interpolation, and the regular polygon primitives.
// All functions are pure and allocate fresh results.
package geom
