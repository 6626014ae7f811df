package draw

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/graph-module/graphdraw/pkg/geometry"
	"github.com/graph-module/graphdraw/pkg/style"
)

// Drawing is the result of Build. Its tables stay open for AddVertices and
// AddEdges.
type Drawing struct {
	Vertices VertexTable
	Edges    EdgeTable

	graph       Graph
	parent      Cell
	vertexStyle style.Style
	edgeStyle   style.Style
	dangling    DanglingPolicy
	logger      *log.Logger
}

// Build materializes cfg into g: all vertices, then all edges, inside one
// g.BatchUpdate call. On error the returned Drawing is nil.
func Build(g Graph, cfg Config) (*Drawing, error) {
	if g == nil {
		return nil, &InvalidSpecError{Field: "graph", Reason: "must not be nil"}
	}
	if cfg.Edges != nil && cfg.EdgesFunc != nil {
		return nil, &InvalidSpecError{Field: "edges", Reason: "Edges and EdgesFunc are mutually exclusive"}
	}
	if err := validateVertices(cfg.Vertices); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := &Drawing{
		Vertices:    make(VertexTable),
		Edges:       make(EdgeTable),
		graph:       g,
		parent:      g.DefaultParent(),
		vertexStyle: cfg.VertexStyle.Clone(),
		edgeStyle:   cfg.EdgeStyle.Clone(),
		dangling:    cfg.Dangling,
		logger:      logger,
	}

	if cfg.EdgesFunc == nil {
		pending := make(map[string]bool, len(cfg.Vertices))
		for i, v := range cfg.Vertices {
			pending[vertexID(v, i)] = true
		}
		if err := d.checkRefs(cfg.Edges, pending); err != nil {
			return nil, err
		}
	}

	err := g.BatchUpdate(func() error {
		if err := d.insertVertices(cfg.Vertices); err != nil {
			return err
		}
		edges := cfg.Edges
		if cfg.EdgesFunc != nil {
			edges = cfg.EdgesFunc(d.Vertices)
		}
		return d.insertEdges(edges)
	})
	if err != nil {
		return nil, err
	}

	d.logger.Debug("batch applied", "vertices", len(d.Vertices), "edges", len(d.Edges))
	return d, nil
}

// AddVertices inserts more vertices in a transaction of their own and
// returns the (shared) vertex table. Positional ids restart at "0".
func (d *Drawing) AddVertices(specs ...VertexSpec) (VertexTable, error) {
	if err := validateVertices(specs); err != nil {
		return d.Vertices, err
	}
	err := d.graph.BatchUpdate(func() error {
		return d.insertVertices(specs)
	})
	return d.Vertices, err
}

// AddEdges inserts more edges in a transaction of their own. Symbolic
// endpoints resolve against the current vertex table.
func (d *Drawing) AddEdges(specs ...EdgeSpec) error {
	if err := d.checkRefs(specs, nil); err != nil {
		return err
	}
	return d.graph.BatchUpdate(func() error {
		return d.insertEdges(specs)
	})
}

// AddEdgesFunc calls fn with the current vertex table inside a new
// transaction and inserts the edges it returns.
func (d *Drawing) AddEdgesFunc(fn EdgeFunc) error {
	if fn == nil {
		return &InvalidSpecError{Field: "edges", Reason: "EdgeFunc must not be nil"}
	}
	return d.graph.BatchUpdate(func() error {
		return d.insertEdges(fn(d.Vertices))
	})
}

func vertexID(v VertexSpec, idx int) string {
	if v.ID != "" {
		return v.ID
	}
	return strconv.Itoa(idx)
}

func edgeID(e EdgeSpec, idx int) string {
	if e.ID != "" {
		return e.ID
	}
	return strconv.Itoa(idx)
}

func validateVertices(specs []VertexSpec) error {
	for i, v := range specs {
		if !v.Position.IsFinite() {
			return &InvalidSpecError{Field: fmt.Sprintf("vertices[%d].position", i), Reason: "must be finite"}
		}
		if !v.Size.IsFinite() {
			return &InvalidSpecError{Field: fmt.Sprintf("vertices[%d].size", i), Reason: "must be finite"}
		}
		if v.Size.IsNegative() {
			return &InvalidSpecError{Field: fmt.Sprintf("vertices[%d].size", i), Reason: "must not be negative"}
		}
	}
	return nil
}

// checkRefs fails fast on symbolic endpoints that can resolve neither in the
// open table nor among pending ids. Only enforced under DanglingFail.
func (d *Drawing) checkRefs(edges []EdgeSpec, pending map[string]bool) error {
	if d.dangling != DanglingFail {
		return nil
	}
	for i, e := range edges {
		for _, ep := range []struct {
			field string
			end   Endpoint
		}{{"source", e.Source}, {"target", e.Target}} {
			ref, ok := ep.end.Symbol()
			if !ok {
				continue
			}
			if _, known := d.Vertices[ref]; known || pending[ref] {
				continue
			}
			return &DanglingReferenceError{EdgeIndex: i, EdgeID: edgeID(e, i), Field: ep.field, Ref: ref}
		}
	}
	return nil
}

func (d *Drawing) insertVertices(specs []VertexSpec) error {
	seen := make(map[string]bool, len(specs))
	for i, v := range specs {
		p := VertexParams{
			Parent:   v.Parent,
			ID:       vertexID(v, i),
			Value:    v.Value,
			Position: v.Position,
			Size:     v.Size,
			Style:    style.Merge(d.vertexStyle, v.Style),
			Relative: v.Relative,
			Geometry: v.Geometry,
		}
		if p.Parent == nil {
			p.Parent = d.parent
		}
		if p.Geometry == nil {
			p.Geometry = geometry.Default
		}
		if seen[p.ID] {
			d.logger.Warn("duplicate vertex id in batch, later vertex wins", "id", p.ID, "index", i)
		}
		seen[p.ID] = true

		cell, err := d.graph.InsertVertex(p)
		if err != nil {
			return err
		}
		d.Vertices[p.ID] = cell
	}
	return nil
}

func (d *Drawing) insertEdges(specs []EdgeSpec) error {
	for i, e := range specs {
		p := EdgeParams{
			ID:     edgeID(e, i),
			Parent: e.Parent,
			Value:  e.Value,
			Style:  style.Merge(d.edgeStyle, e.Style),
		}
		if p.Parent == nil {
			p.Parent = d.parent
		}

		var skip bool
		var err error
		if p.Source, skip, err = d.endpoint(i, p.ID, "source", e.Source); err != nil {
			return err
		} else if skip {
			continue
		}
		if p.Target, skip, err = d.endpoint(i, p.ID, "target", e.Target); err != nil {
			return err
		} else if skip {
			continue
		}

		cell, err := d.graph.InsertEdge(p)
		if err != nil {
			return err
		}
		d.Edges[p.ID] = cell
	}
	return nil
}

func (d *Drawing) endpoint(idx int, id, field string, ep Endpoint) (Cell, bool, error) {
	cell, ok := ep.resolve(d.Vertices)
	if ok {
		return cell, false, nil
	}
	ref, _ := ep.Symbol()
	switch d.dangling {
	case DanglingSkip:
		d.logger.Warn("skipping edge with unknown endpoint", "edge", id, "field", field, "ref", ref)
		return nil, true, nil
	case DanglingKeep:
		d.logger.Warn("edge endpoint left dangling", "edge", id, "field", field, "ref", ref)
		return nil, false, nil
	default:
		return nil, false, &DanglingReferenceError{EdgeIndex: idx, EdgeID: id, Field: field, Ref: ref}
	}
}
