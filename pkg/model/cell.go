package model

import (
	"github.com/graph-module/graphdraw/pkg/geometry"
	"github.com/graph-module/graphdraw/pkg/style"
)

// Kind distinguishes the cells of a model.
type Kind int

const (
	// KindRoot is the single root cell. It holds the layers.
	KindRoot Kind = iota
	// KindLayer is a layer; the model starts with one default layer.
	KindLayer
	// KindVertex is a vertex. Vertices may contain other vertices.
	KindVertex
	// KindEdge is an edge between two vertices (either end may be unset).
	KindEdge
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLayer:
		return "layer"
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Cell is a node of the model tree. Cells are created by the model and read
// through accessors; mutate them only through Model methods.
type Cell struct {
	id       string
	kind     Kind
	value    string
	parent   *Cell
	children []*Cell
	source   *Cell
	target   *Cell
	geometry *geometry.Geometry
	style    style.Style
	model    *Model
}

// ID returns the cell id, unique within its model.
func (c *Cell) ID() string { return c.id }

// Kind returns the cell kind.
func (c *Cell) Kind() Kind { return c.kind }

// Value returns the label.
func (c *Cell) Value() string { return c.value }

// Parent returns the containing cell, or nil for the root.
func (c *Cell) Parent() *Cell { return c.parent }

// Children returns a copy of the child list in insertion order.
func (c *Cell) Children() []*Cell { return append([]*Cell(nil), c.children...) }

// Source returns the source terminal of an edge, or nil.
func (c *Cell) Source() *Cell { return c.source }

// Target returns the target terminal of an edge, or nil.
func (c *Cell) Target() *Cell { return c.target }

// Geometry returns a copy of the cell geometry (nil for root and layers).
func (c *Cell) Geometry() *geometry.Geometry { return c.geometry.Clone() }

// Style returns a copy of the cell style.
func (c *Cell) Style() style.Style { return c.style.Clone() }

// IsVertex reports whether c is a vertex.
func (c *Cell) IsVertex() bool { return c.kind == KindVertex }

// IsEdge reports whether c is an edge.
func (c *Cell) IsEdge() bool { return c.kind == KindEdge }

func (c *Cell) removeChild(child *Cell) {
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}
