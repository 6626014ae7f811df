package style

import (
	"errors"
	"sync"
)

// ErrEmptyStyleName is returned by [Stylesheet.Put] for an empty name.
var ErrEmptyStyleName = errors.New("style name must not be empty")

// Stylesheet holds the default vertex and edge styles plus named cell styles.
// It is safe for concurrent use.
type Stylesheet struct {
	mu     sync.RWMutex
	vertex Style
	edge   Style
	named  map[string]Style
}

// NewStylesheet returns a stylesheet seeded with the default vertex and edge
// styles.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{
		vertex: DefaultVertexStyle(),
		edge:   DefaultEdgeStyle(),
		named:  make(map[string]Style),
	}
}

// DefaultVertexStyle returns the built-in vertex style.
func DefaultVertexStyle() Style {
	return Style{
		KeyShape:         "rectangle",
		KeyPerimeter:     "rectanglePerimeter",
		KeyVerticalAlign: "middle",
		KeyAlign:         "center",
		KeyFillColor:     "#C3D9FF",
		KeyStrokeColor:   "#6482B9",
		KeyFontColor:     "#774400",
	}
}

// DefaultEdgeStyle returns the built-in edge style.
func DefaultEdgeStyle() Style {
	return Style{
		KeyShape:         "connector",
		KeyEndArrow:      "classic",
		KeyVerticalAlign: "middle",
		KeyAlign:         "center",
		KeyStrokeColor:   "#6482B9",
		KeyFontColor:     "#446299",
	}
}

// PutDefaultVertexStyle replaces the default vertex style.
func (s *Stylesheet) PutDefaultVertexStyle(st Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vertex = st.Clone()
}

// PutDefaultEdgeStyle replaces the default edge style.
func (s *Stylesheet) PutDefaultEdgeStyle(st Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edge = st.Clone()
}

// Put registers a named style. Registering an existing name replaces it.
func (s *Stylesheet) Put(name string, st Style) error {
	if name == "" {
		return ErrEmptyStyleName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.named[name] = st.Clone()
	return nil
}

// Get returns a copy of the named style.
func (s *Stylesheet) Get(name string) (Style, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.named[name]
	return st.Clone(), ok
}

// Clone returns an independent copy of the stylesheet, so per-request named
// styles can be added without touching a shared sheet.
func (s *Stylesheet) Clone() *Stylesheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := &Stylesheet{
		vertex: s.vertex.Clone(),
		edge:   s.edge.Clone(),
		named:  make(map[string]Style, len(s.named)),
	}
	for name, st := range s.named {
		out.named[name] = st.Clone()
	}
	return out
}

// Resolve computes the effective style of a cell: the default vertex or edge
// style, then every named style listed under baseStyleNames in order, then
// the cell's own keys. Unknown base names are ignored. The baseStyleNames key
// itself is not part of the result.
func (s *Stylesheet) Resolve(cellStyle Style, edge bool) Style {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.vertex
	if edge {
		out = s.edge
	}
	out = Merge(nil, out)
	for _, name := range cellStyle.BaseStyleNames() {
		if named, ok := s.named[name]; ok {
			out = Merge(out, named)
		}
	}
	out = Merge(out, cellStyle)
	delete(out, KeyBaseStyleNames)
	return out
}
