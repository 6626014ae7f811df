package model

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/graph-module/graphdraw/pkg/draw"
	gderrors "github.com/graph-module/graphdraw/pkg/errors"
	"github.com/graph-module/graphdraw/pkg/event"
	"github.com/graph-module/graphdraw/pkg/geometry"
	"github.com/graph-module/graphdraw/pkg/setting"
)

// Ids of the cells every model starts with.
const (
	RootID  = "root"
	LayerID = "layer"
)

var (
	// ErrLoopNotAllowed is returned by [Model.InsertEdge] when source and
	// target are the same vertex and the settings disallow loops.
	ErrLoopNotAllowed error = &modelError{"loops are not allowed", gderrors.ErrCodeInvalidScene}

	// ErrDuplicateEdge is returned by [Model.InsertEdge] when an edge with the
	// same source and target exists and the model is not a multigraph.
	ErrDuplicateEdge error = &modelError{"duplicate edge", gderrors.ErrCodeInvalidScene}

	// ErrForeignCell is returned when a parent or terminal was not created by
	// this model.
	ErrForeignCell error = &modelError{"cell does not belong to this model", gderrors.ErrCodeInvalidSpec}

	// ErrInvalidParent is returned when an edge is used as a parent.
	ErrInvalidParent error = &modelError{"parent must be a layer or a vertex", gderrors.ErrCodeInvalidScene}

	// ErrInvalidTerminal is returned when an edge terminal is not a vertex.
	ErrInvalidTerminal error = &modelError{"edge terminal must be a vertex", gderrors.ErrCodeInvalidScene}

	// ErrUnknownCell is returned for ids the model does not hold.
	ErrUnknownCell error = &modelError{"unknown cell", gderrors.ErrCodeNotFound}

	// ErrNotVertex is returned by [Model.Move] and [Model.Resize] for
	// anything but vertices.
	ErrNotVertex = errors.New("cell is not a vertex")

	// ErrReadonly is returned by mutations of geometry on a readonly model.
	ErrReadonly = errors.New("model is readonly")

	// ErrNotMovable is returned by [Model.Move] when cell moving is disabled.
	ErrNotMovable = errors.New("cells are not movable")

	// ErrNotResizable is returned by [Model.Resize] when resizing is disabled.
	ErrNotResizable = errors.New("cells are not resizable")

	// ErrInvalidSize is returned by [Model.Resize] for negative or non-finite
	// sizes.
	ErrInvalidSize error = &modelError{"invalid size", gderrors.ErrCodeInvalidInput}
)

// modelError is a sentinel error with a gderrors code.
type modelError struct {
	msg  string
	code gderrors.Code
}

func (e *modelError) Error() string       { return e.msg }
func (e *modelError) Code() gderrors.Code { return e.code }

// Model is an in-memory cell tree. It implements [draw.Graph].
//
// Every mutation happens inside an update. Updates nest; the events of all
// changes are fired once, when the outermost update ends. Model is not safe
// for concurrent use without external synchronization.
type Model struct {
	root  *Cell
	layer *Cell
	cells map[string]*Cell
	order []*Cell // vertices and edges in insertion order

	settings setting.GraphConfig
	events   *event.Emitter
	logger   *log.Logger

	level   int
	journal []*Cell // cells added since the outermost update began
	added   []*Cell
	removed []*Cell
	moved   []*Cell
	resized []*Cell
}

var _ draw.Graph = (*Model)(nil)

// New creates a model holding a root and its default layer. A nil cfg uses
// setting.Default.
func New(cfg *setting.GraphConfig) *Model {
	settings := setting.Default()
	if cfg != nil {
		settings = *cfg
	}
	m := &Model{
		cells:    make(map[string]*Cell),
		settings: settings,
		events:   event.NewEmitter(),
		logger:   log.New(io.Discard),
	}
	m.root = &Cell{id: RootID, kind: KindRoot, model: m}
	m.layer = &Cell{id: LayerID, kind: KindLayer, parent: m.root, model: m}
	m.root.children = []*Cell{m.layer}
	m.cells[RootID] = m.root
	m.cells[LayerID] = m.layer
	return m
}

// SetLogger sets the logger used for debug output. Nil discards.
func (m *Model) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	m.logger = l
}

// =============================================================================
// draw.Graph
// =============================================================================

// DefaultParent returns the default layer.
func (m *Model) DefaultParent() draw.Cell { return m.layer }

// InsertVertex adds a vertex. An empty or already used id is replaced by a
// generated one.
func (m *Model) InsertVertex(p draw.VertexParams) (draw.Cell, error) {
	parent, err := m.parentOf(p.Parent)
	if err != nil {
		return nil, err
	}
	factory := p.Geometry
	if factory == nil {
		factory = geometry.Default
	}
	geo := factory(p.Position.X, p.Position.Y, p.Size.Width, p.Size.Height)
	if geo == nil {
		geo = geometry.Default(p.Position.X, p.Position.Y, p.Size.Width, p.Size.Height)
	}
	geo.Relative = p.Relative

	c := &Cell{
		id:       m.assignID(p.ID),
		kind:     KindVertex,
		value:    p.Value,
		parent:   parent,
		geometry: geo,
		style:    p.Style.Clone(),
		model:    m,
	}
	m.add(c)
	return c, nil
}

// InsertEdge adds an edge. Nil terminals are allowed and leave that end
// unconnected.
func (m *Model) InsertEdge(p draw.EdgeParams) (draw.Cell, error) {
	parent, err := m.parentOf(p.Parent)
	if err != nil {
		return nil, err
	}
	source, err := m.terminal(p.Source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err := m.terminal(p.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if source != nil && source == target && !m.settings.AllowLoops {
		return nil, fmt.Errorf("%w: %s", ErrLoopNotAllowed, source.id)
	}
	if source != nil && target != nil && !m.settings.Multigraph && m.hasEdge(source, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, source.id, target.id)
	}

	c := &Cell{
		id:       m.assignID(p.ID),
		kind:     KindEdge,
		value:    p.Value,
		parent:   parent,
		source:   source,
		target:   target,
		geometry: &geometry.Geometry{Relative: true},
		style:    p.Style.Clone(),
		model:    m,
	}
	m.add(c)
	return c, nil
}

// BatchUpdate runs fn inside an update. When fn returns an error or panics,
// the cells added during this call are removed again before the update is
// released (a panic is then re-raised). Moves, resizes and removals are
// not undone.
func (m *Model) BatchUpdate(fn func() error) (err error) {
	mark := len(m.journal)
	m.BeginUpdate()
	defer func() {
		r := recover()
		if r != nil || err != nil {
			m.rollback(mark)
		}
		m.EndUpdate()
		if r != nil {
			panic(r)
		}
	}()
	return fn()
}

// =============================================================================
// Updates
// =============================================================================

// BeginUpdate opens an update. Calls nest.
func (m *Model) BeginUpdate() {
	m.level++
	if m.level == 1 {
		m.events.Fire(event.BeginUpdate, nil)
	}
}

// EndUpdate closes an update. Closing the outermost one fires endUpdate and,
// if anything changed, change followed by the per-kind cell events.
func (m *Model) EndUpdate() {
	if m.level == 0 {
		return
	}
	m.level--
	if m.level > 0 {
		return
	}

	added, removed, moved, resized := m.added, m.removed, m.moved, m.resized
	m.journal, m.added, m.removed, m.moved, m.resized = nil, nil, nil, nil, nil

	m.events.Fire(event.EndUpdate, nil)
	if len(added)+len(removed)+len(moved)+len(resized) == 0 {
		return
	}
	m.events.Fire(event.Change, map[string]any{
		"added":   added,
		"removed": removed,
		"moved":   moved,
		"resized": resized,
	})
	for _, e := range []struct {
		name  string
		cells []*Cell
	}{
		{event.CellsAdded, added},
		{event.CellsRemoved, removed},
		{event.CellsMoved, moved},
		{event.CellsResized, resized},
	} {
		if len(e.cells) > 0 {
			m.events.Fire(e.name, map[string]any{"cells": e.cells})
		}
	}
}

// UpdateLevel returns the current update nesting depth.
func (m *Model) UpdateLevel() int { return m.level }

// =============================================================================
// Mutations
// =============================================================================

// Move shifts a vertex by dx, dy.
func (m *Model) Move(id string, dx, dy float64) error {
	if m.settings.Readonly {
		return ErrReadonly
	}
	if !m.settings.CellMove {
		return ErrNotMovable
	}
	c, err := m.vertex(id)
	if err != nil {
		return err
	}
	m.BeginUpdate()
	defer m.EndUpdate()
	c.geometry.X += dx
	c.geometry.Y += dy
	m.moved = appendOnce(m.moved, c)
	return nil
}

// Resize sets the size of a vertex.
func (m *Model) Resize(id string, width, height float64) error {
	if m.settings.Readonly {
		return ErrReadonly
	}
	if !m.settings.CellResize {
		return ErrNotResizable
	}
	size := geometry.Size{Width: width, Height: height}
	if !size.IsFinite() || size.IsNegative() {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSize, width, height)
	}
	c, err := m.vertex(id)
	if err != nil {
		return err
	}
	m.BeginUpdate()
	defer m.EndUpdate()
	c.geometry.Width = width
	c.geometry.Height = height
	m.resized = appendOnce(m.resized, c)
	return nil
}

// Remove deletes the given cells with their descendants and every edge
// connected to a deleted vertex.
func (m *Model) Remove(ids ...string) error {
	var targets []*Cell
	for _, id := range ids {
		c, ok := m.cells[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCell, id)
		}
		if c.kind != KindVertex && c.kind != KindEdge {
			return fmt.Errorf("%w: cannot remove %s", ErrInvalidParent, c.kind)
		}
		targets = append(targets, c)
	}

	doomed := make(map[*Cell]bool)
	var mark func(c *Cell)
	mark = func(c *Cell) {
		if doomed[c] {
			return
		}
		doomed[c] = true
		for _, ch := range c.children {
			mark(ch)
		}
	}
	for _, c := range targets {
		mark(c)
	}
	for _, c := range m.order {
		if c.kind == KindEdge && (doomed[c.source] || doomed[c.target]) {
			mark(c)
		}
	}

	m.BeginUpdate()
	defer m.EndUpdate()
	for _, c := range m.order {
		if !doomed[c] {
			continue
		}
		if !m.dropPending(c) {
			m.removed = append(m.removed, c)
		}
	}
	m.detach(doomed)
	return nil
}

// =============================================================================
// Queries
// =============================================================================

// Root returns the root cell.
func (m *Model) Root() *Cell { return m.root }

// Layer returns the default layer.
func (m *Model) Layer() *Cell { return m.layer }

// Cell returns the cell with the given id, or nil.
func (m *Model) Cell(id string) *Cell { return m.cells[id] }

// Vertices returns all vertices in insertion order.
func (m *Model) Vertices() []*Cell { return m.filter(KindVertex) }

// Edges returns all edges in insertion order.
func (m *Model) Edges() []*Cell { return m.filter(KindEdge) }

// Len returns the number of vertices and edges.
func (m *Model) Len() int { return len(m.order) }

// Settings returns the model settings.
func (m *Model) Settings() setting.GraphConfig { return m.settings }

// Events returns the emitter the model fires to.
func (m *Model) Events() *event.Emitter { return m.events }

// AbsoluteBounds returns the origin and size of c in model coordinates,
// resolving relative geometries through the parent chain.
func (m *Model) AbsoluteBounds(c *Cell) (geometry.Point, geometry.Size) {
	if c == nil || c.geometry == nil {
		return geometry.Point{}, geometry.Size{}
	}
	var parent *geometry.Geometry
	if c.parent != nil && c.parent.kind == KindVertex {
		origin, size := m.AbsoluteBounds(c.parent)
		parent = &geometry.Geometry{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
	}
	return c.geometry.Bounds(parent)
}

// =============================================================================
// Internals
// =============================================================================

func (m *Model) owned(dc draw.Cell) (*Cell, error) {
	c, ok := dc.(*Cell)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignCell, dc)
	}
	if c == nil || c.model != m || m.cells[c.id] != c {
		return nil, ErrForeignCell
	}
	return c, nil
}

func (m *Model) parentOf(dc draw.Cell) (*Cell, error) {
	if dc == nil {
		return m.layer, nil
	}
	c, err := m.owned(dc)
	if err != nil {
		return nil, err
	}
	if c.kind == KindEdge || c.kind == KindRoot {
		return nil, fmt.Errorf("%w: %s is a %s", ErrInvalidParent, c.id, c.kind)
	}
	return c, nil
}

func (m *Model) terminal(dc draw.Cell) (*Cell, error) {
	if dc == nil {
		return nil, nil
	}
	c, err := m.owned(dc)
	if err != nil {
		return nil, err
	}
	if c.kind != KindVertex {
		return nil, fmt.Errorf("%w: %s is a %s", ErrInvalidTerminal, c.id, c.kind)
	}
	return c, nil
}

func (m *Model) vertex(id string) (*Cell, error) {
	c, ok := m.cells[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCell, id)
	}
	if c.kind != KindVertex {
		return nil, fmt.Errorf("%w: %s", ErrNotVertex, id)
	}
	return c, nil
}

func (m *Model) assignID(want string) string {
	if want != "" {
		if _, taken := m.cells[want]; !taken {
			return want
		}
	}
	id := uuid.NewString()
	if want != "" {
		m.logger.Debug("cell id taken, generated a new one", "want", want, "id", id)
	}
	return id
}

func (m *Model) hasEdge(source, target *Cell) bool {
	for _, c := range m.order {
		if c.kind == KindEdge && c.source == source && c.target == target {
			return true
		}
	}
	return false
}

func (m *Model) add(c *Cell) {
	m.BeginUpdate()
	defer m.EndUpdate()
	m.cells[c.id] = c
	m.order = append(m.order, c)
	c.parent.children = append(c.parent.children, c)
	m.journal = append(m.journal, c)
	m.added = append(m.added, c)
}

// rollback removes the cells journaled after mark. They were never
// announced, so no events are fired for them.
func (m *Model) rollback(mark int) {
	if mark >= len(m.journal) {
		return
	}
	doomed := make(map[*Cell]bool)
	for _, c := range m.journal[mark:] {
		if m.cells[c.id] == c {
			doomed[c] = true
			m.dropPending(c)
		}
	}
	m.journal = m.journal[:mark]
	m.detach(doomed)
	m.logger.Debug("rolled back batch", "cells", len(doomed))
}

func (m *Model) detach(doomed map[*Cell]bool) {
	if len(doomed) == 0 {
		return
	}
	kept := m.order[:0]
	for _, c := range m.order {
		if doomed[c] {
			delete(m.cells, c.id)
			c.parent.removeChild(c)
			continue
		}
		kept = append(kept, c)
	}
	m.order = kept
}

// dropPending forgets c from the not yet announced additions and reports
// whether it was there.
func (m *Model) dropPending(c *Cell) bool {
	for i, a := range m.added {
		if a == c {
			m.added = append(m.added[:i], m.added[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Model) filter(kind Kind) []*Cell {
	var out []*Cell
	for _, c := range m.order {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func appendOnce(cells []*Cell, c *Cell) []*Cell {
	for _, x := range cells {
		if x == c {
			return cells
		}
	}
	return append(cells, c)
}
