// Package geom provides the flat 2D primitives shared by the fiber-plane
// code: points, squared distance, and in-plane rotation by a precomputed
// (sin, cos) pair.
package geom

import "github.com/paulmach/orb"

// Point is a location in the PFI plane, in millimeters.
type Point = orb.Point

// New builds a Point from components.
func New(x, y float64) Point {
	return Point{x, y}
}

// DistSq returns the squared Euclidean distance between a and b.
func DistSq(a, b Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}

// Rotate rotates p in-plane by the angle whose sine and cosine are sa, ca,
// and returns the rotated point. It is passive: the basis rotates, not the
// vector's interpretation.
func Rotate(p Point, sa, ca float64) Point {
	return Point{
		ca*p[0] - sa*p[1],
		sa*p[0] + ca*p[1],
	}
}

// Add returns a+b componentwise.
func Add(a, b Point) Point {
	return Point{a[0] + b[0], a[1] + b[1]}
}
