// Package geometry provides cell geometry and connection constraints.
//
// A [Geometry] is the position and size of a cell. Vertices created with a
// relative geometry express X and Y as fractions of their parent's size.
// A [Factory] produces geometries; [Default] yields plain geometries while
// [Distributed] attaches evenly spaced connection points on the four sides.
package geometry

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool { return finite(p.X) && finite(p.Y) }

// IsFinite reports whether both dimensions are finite numbers.
func (s Size) IsFinite() bool { return finite(s.Width) && finite(s.Height) }

// IsNegative reports whether either dimension is below zero.
func (s Size) IsNegative() bool { return s.Width < 0 || s.Height < 0 }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// ConnectionConstraint is a fixed connection point on a vertex, expressed in
// fractions of the vertex bounds (0,0 top-left; 1,1 bottom-right).
type ConnectionConstraint struct {
	Point     Point `json:"point"`
	Perimeter bool  `json:"perimeter"` // project the point onto the shape perimeter
}

// Geometry holds the bounds of a cell and its connection constraints.
type Geometry struct {
	X, Y          float64
	Width, Height float64
	Relative      bool
	Constraints   []ConnectionConstraint
}

// Factory creates a geometry for the given bounds.
type Factory func(x, y, width, height float64) *Geometry

// Default creates a geometry with no connection constraints.
func Default(x, y, width, height float64) *Geometry {
	return &Geometry{X: x, Y: y, Width: width, Height: height}
}

// Clone returns a deep copy of g.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	c := *g
	if g.Constraints != nil {
		c.Constraints = append([]ConnectionConstraint(nil), g.Constraints...)
	}
	return &c
}

// Bounds returns the absolute origin and size of g given the absolute
// geometry of its parent (nil for top-level cells). Relative geometries
// place X/Y as fractions of the parent size; absolute ones offset from the
// parent origin.
func (g *Geometry) Bounds(parent *Geometry) (Point, Size) {
	size := Size{Width: g.Width, Height: g.Height}
	if parent == nil {
		return Point{X: g.X, Y: g.Y}, size
	}
	if g.Relative {
		return Point{
			X: parent.X + g.X*parent.Width,
			Y: parent.Y + g.Y*parent.Height,
		}, size
	}
	return Point{X: parent.X + g.X, Y: parent.Y + g.Y}, size
}

// Center returns the center of the rectangle at origin with size.
func Center(origin Point, size Size) Point {
	return Point{X: origin.X + size.Width/2, Y: origin.Y + size.Height/2}
}
