package style

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrDuplicateShape is returned by [ShapeRegistry.Register] when the name is taken.
var ErrDuplicateShape = errors.New("shape already registered")

// Shape describes how a named shape is drawn by the DOT renderer.
type Shape struct {
	DOTShape string            // Graphviz node shape
	Attrs    map[string]string // extra node attributes, applied after style attributes
}

// ShapeRegistry maps shape names used in styles to renderable shapes.
// Registrations happen at start-up; there is no removal.
type ShapeRegistry struct {
	mu     sync.RWMutex
	shapes map[string]Shape
}

// NewShapeRegistry returns a registry holding the built-in shapes.
func NewShapeRegistry() *ShapeRegistry {
	return &ShapeRegistry{shapes: builtinShapes()}
}

func builtinShapes() map[string]Shape {
	return map[string]Shape{
		"rectangle":     {DOTShape: "box"},
		"label":         {DOTShape: "box"},
		"swimlane":      {DOTShape: "tab"},
		"ellipse":       {DOTShape: "ellipse"},
		"doubleEllipse": {DOTShape: "doublecircle"},
		"rhombus":       {DOTShape: "diamond"},
		"triangle":      {DOTShape: "triangle"},
		"hexagon":       {DOTShape: "hexagon"},
		"cylinder":      {DOTShape: "cylinder"},
		"cloud":         {DOTShape: "ellipse", Attrs: map[string]string{"peripheries": "2"}},
		"actor":         {DOTShape: "invhouse"},
		"image":         {DOTShape: "none"},
	}
}

// Register adds a shape under name.
func (r *ShapeRegistry) Register(name string, sh Shape) error {
	if name == "" {
		return ErrEmptyStyleName
	}
	if sh.DOTShape == "" {
		return fmt.Errorf("shape %q: DOT shape must not be empty", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.shapes[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateShape, name)
	}
	r.shapes[name] = Shape{DOTShape: sh.DOTShape, Attrs: maps.Clone(sh.Attrs)}
	return nil
}

// Lookup returns the shape registered under name.
func (r *ShapeRegistry) Lookup(name string) (Shape, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sh, ok := r.shapes[name]
	return sh, ok
}

// Names returns the registered shape names in sorted order.
func (r *ShapeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.shapes))
}
