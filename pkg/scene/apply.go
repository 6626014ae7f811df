package scene

import (
	"github.com/charmbracelet/log"

	"github.com/graph-module/graphdraw/pkg/draw"
	"github.com/graph-module/graphdraw/pkg/geometry"
)

// ApplyOptions tune how a scene is built.
type ApplyOptions struct {
	Dangling draw.DanglingPolicy
	Logger   *log.Logger
}

// Apply builds the scene into g and returns the builder's tables, keyed by
// vertex key and edge id (or index).
//
// Flat scenes are built with a single draw.Build. Scenes with nested vertices
// run inside one g.BatchUpdate: top-level vertices first, then each nesting
// level with Drawing.AddVertices, then all edges.
func (s *Scene) Apply(g draw.Graph, opts ApplyOptions) (*draw.Drawing, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	levels := s.levels()
	cfg := draw.Config{
		VertexStyle: s.VertexStyle,
		EdgeStyle:   s.EdgeStyle,
		Dangling:    opts.Dangling,
		Logger:      opts.Logger,
	}
	if len(levels) > 0 {
		cfg.Vertices = s.vertexSpecs(levels[0], nil)
	}

	if len(levels) <= 1 && !s.edgesHaveParents() {
		cfg.Edges = s.edgeSpecs(nil)
		return draw.Build(g, cfg)
	}

	var d *draw.Drawing
	err := g.BatchUpdate(func() error {
		var err error
		if d, err = draw.Build(g, cfg); err != nil {
			return err
		}
		for _, level := range levels[1:] {
			if _, err := d.AddVertices(s.vertexSpecs(level, d.Vertices)...); err != nil {
				return err
			}
		}
		return d.AddEdges(s.edgeSpecs(d.Vertices)...)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Config returns the builder configuration of a flat scene: every vertex at
// the top level and every edge as a list. Parent references are ignored; use
// Apply for nested scenes.
func (s *Scene) Config() draw.Config {
	all := make([]int, len(s.Vertices))
	for i := range all {
		all[i] = i
	}
	return draw.Config{
		Vertices:    s.vertexSpecs(all, nil),
		VertexStyle: s.VertexStyle,
		Edges:       s.edgeSpecs(nil),
		EdgeStyle:   s.EdgeStyle,
	}
}

// levels groups vertex indices by nesting depth, preserving file order
// within a level. Validate guarantees parents come first.
func (s *Scene) levels() [][]int {
	depth := make(map[string]int, len(s.Vertices))
	var out [][]int
	for i, v := range s.Vertices {
		d := 0
		if v.Parent != "" {
			d = depth[v.Parent] + 1
		}
		depth[s.Key(i)] = d
		for len(out) <= d {
			out = append(out, nil)
		}
		out[d] = append(out[d], i)
	}
	return out
}

func (s *Scene) vertexSpecs(indices []int, table draw.VertexTable) []draw.VertexSpec {
	specs := make([]draw.VertexSpec, 0, len(indices))
	for _, i := range indices {
		v := s.Vertices[i]
		spec := draw.VertexSpec{
			ID:       s.Key(i),
			Value:    v.Value,
			Position: geometry.Point{X: v.Position[0], Y: v.Position[1]},
			Size:     geometry.Size{Width: v.Size[0], Height: v.Size[1]},
			Style:    v.Style,
			Relative: v.Relative,
		}
		if v.Parent != "" && table != nil {
			spec.Parent = table[v.Parent]
		}
		if v.Constraints != nil {
			spec.Geometry = geometry.Distributed(v.Constraints.Step, v.Constraints.Start)
		}
		specs = append(specs, spec)
	}
	return specs
}

func (s *Scene) edgeSpecs(table draw.VertexTable) []draw.EdgeSpec {
	if len(s.Edges) == 0 {
		return nil
	}
	specs := make([]draw.EdgeSpec, 0, len(s.Edges))
	for _, e := range s.Edges {
		spec := draw.EdgeSpec{
			ID:    e.ID,
			Value: e.Value,
			Style: e.Style,
		}
		if e.Source != "" {
			spec.Source = draw.Ref(e.Source)
		}
		if e.Target != "" {
			spec.Target = draw.Ref(e.Target)
		}
		if e.Parent != "" && table != nil {
			spec.Parent = table[e.Parent]
		}
		specs = append(specs, spec)
	}
	return specs
}

func (s *Scene) edgesHaveParents() bool {
	for _, e := range s.Edges {
		if e.Parent != "" {
			return true
		}
	}
	return false
}
