package graph

import (
	"github.com/graph-module/graphdraw/pkg/model"
	"github.com/graph-module/graphdraw/pkg/scene"
	"github.com/graph-module/graphdraw/pkg/style"
)

// =============================================================================
// Document
// =============================================================================

// Document is the serialized form of a model.
type Document struct {
	Vertices []Vertex `json:"vertices" bson:"vertices"`
	Edges    []Edge   `json:"edges" bson:"edges"`
}

// Vertex is a serialized vertex. X and Y are relative to the parent, or
// fractions of the parent size when Relative is set.
type Vertex struct {
	ID       string      `json:"id" bson:"id"`
	Parent   string      `json:"parent,omitempty" bson:"parent,omitempty"`
	Value    string      `json:"value,omitempty" bson:"value,omitempty"`
	X        float64     `json:"x" bson:"x"`
	Y        float64     `json:"y" bson:"y"`
	Width    float64     `json:"width" bson:"width"`
	Height   float64     `json:"height" bson:"height"`
	Relative bool        `json:"relative,omitempty" bson:"relative,omitempty"`
	Style    style.Style `json:"style,omitempty" bson:"style,omitempty"`
}

// Edge is a serialized edge. Source and Target are empty for unconnected
// ends.
type Edge struct {
	ID     string      `json:"id" bson:"id"`
	Parent string      `json:"parent,omitempty" bson:"parent,omitempty"`
	Value  string      `json:"value,omitempty" bson:"value,omitempty"`
	Source string      `json:"source,omitempty" bson:"source,omitempty"`
	Target string      `json:"target,omitempty" bson:"target,omitempty"`
	Style  style.Style `json:"style,omitempty" bson:"style,omitempty"`
}

// =============================================================================
// Model ↔ Document Conversion
// =============================================================================

// FromModel snapshots m. Vertices and edges keep insertion order.
func FromModel(m *model.Model) Document {
	vertices := m.Vertices()
	edges := m.Edges()
	doc := Document{
		Vertices: make([]Vertex, 0, len(vertices)),
		Edges:    make([]Edge, 0, len(edges)),
	}
	for _, v := range vertices {
		out := Vertex{
			ID:     v.ID(),
			Parent: parentID(m, v),
			Value:  v.Value(),
			Style:  nonEmpty(v.Style()),
		}
		if geo := v.Geometry(); geo != nil {
			out.X, out.Y = geo.X, geo.Y
			out.Width, out.Height = geo.Width, geo.Height
			out.Relative = geo.Relative
		}
		doc.Vertices = append(doc.Vertices, out)
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, Edge{
			ID:     e.ID(),
			Parent: parentID(m, e),
			Value:  e.Value(),
			Source: cellID(e.Source()),
			Target: cellID(e.Target()),
			Style:  nonEmpty(e.Style()),
		})
	}
	return doc
}

// Scene converts the document into a scene that rebuilds the same cells.
// Edge styles and vertex styles are carried per cell; the scene has no
// default styles of its own.
func (d Document) Scene() *scene.Scene {
	s := &scene.Scene{
		Vertices: make([]scene.Vertex, 0, len(d.Vertices)),
	}
	for _, v := range d.Vertices {
		s.Vertices = append(s.Vertices, scene.Vertex{
			ID:       v.ID,
			Parent:   v.Parent,
			Value:    v.Value,
			Position: [2]float64{v.X, v.Y},
			Size:     [2]float64{v.Width, v.Height},
			Style:    v.Style.Clone(),
			Relative: v.Relative,
		})
	}
	for _, e := range d.Edges {
		s.Edges = append(s.Edges, scene.Edge{
			ID:     e.ID,
			Parent: e.Parent,
			Value:  e.Value,
			Source: e.Source,
			Target: e.Target,
			Style:  e.Style.Clone(),
		})
	}
	return s
}

func parentID(m *model.Model, c *model.Cell) string {
	p := c.Parent()
	if p == nil || p == m.Layer() {
		return ""
	}
	return p.ID()
}

func cellID(c *model.Cell) string {
	if c == nil {
		return ""
	}
	return c.ID()
}

func nonEmpty(st style.Style) style.Style {
	if len(st) == 0 {
		return nil
	}
	return st
}
