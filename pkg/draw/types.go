package draw

import (
	"github.com/charmbracelet/log"

	"github.com/graph-module/graphdraw/pkg/geometry"
	"github.com/graph-module/graphdraw/pkg/style"
)

// Cell is an opaque handle to a vertex or edge owned by a Graph.
type Cell interface {
	ID() string
}

// Graph is the mutable diagram the builder writes to.
type Graph interface {
	// DefaultParent returns the container new cells go into when a spec
	// names no parent.
	DefaultParent() Cell
	InsertVertex(p VertexParams) (Cell, error)
	InsertEdge(p EdgeParams) (Cell, error)
	// BatchUpdate runs fn as one transaction. It must leave the graph
	// consistent when fn returns an error or panics.
	BatchUpdate(fn func() error) error
}

// VertexSpec describes one vertex. Zero fields take defaults.
type VertexSpec struct {
	Parent   Cell
	ID       string // empty: positional index within the batch
	Value    string
	Position geometry.Point
	Size     geometry.Size
	Style    style.Style
	Relative bool
	Geometry geometry.Factory // nil: geometry.Default
}

// EdgeSpec describes one edge. Zero fields take defaults.
type EdgeSpec struct {
	ID     string // empty: positional index within the batch
	Parent Cell
	Value  string
	Source Endpoint
	Target Endpoint
	Style  style.Style
}

// VertexParams are the resolved parameters passed to Graph.InsertVertex.
type VertexParams struct {
	Parent   Cell
	ID       string
	Value    string
	Position geometry.Point
	Size     geometry.Size
	Style    style.Style
	Relative bool
	Geometry geometry.Factory
}

// EdgeParams are the resolved parameters passed to Graph.InsertEdge.
// Source and Target are nil for unset (or kept dangling) endpoints.
type EdgeParams struct {
	ID     string
	Parent Cell
	Value  string
	Source Cell
	Target Cell
	Style  style.Style
}

// VertexTable maps symbolic vertex ids to created cells.
type VertexTable map[string]Cell

// EdgeTable maps symbolic edge ids to created cells.
type EdgeTable map[string]Cell

// EdgeFunc produces edge specs from the populated vertex table.
type EdgeFunc func(vertices VertexTable) []EdgeSpec

// DanglingPolicy decides what happens to an edge whose symbolic endpoint is
// not in the vertex table.
type DanglingPolicy int

const (
	// DanglingFail aborts with a *DanglingReferenceError.
	DanglingFail DanglingPolicy = iota
	// DanglingSkip drops the edge and logs a warning.
	DanglingSkip
	// DanglingKeep inserts the edge with a nil endpoint.
	DanglingKeep
)

// String returns the flag spelling of the policy.
func (p DanglingPolicy) String() string {
	switch p {
	case DanglingFail:
		return "fail"
	case DanglingSkip:
		return "skip"
	case DanglingKeep:
		return "keep"
	default:
		return "unknown"
	}
}

// ParseDanglingPolicy parses "fail", "skip" or "keep". Empty means fail.
func ParseDanglingPolicy(s string) (DanglingPolicy, error) {
	switch s {
	case "", "fail":
		return DanglingFail, nil
	case "skip":
		return DanglingSkip, nil
	case "keep":
		return DanglingKeep, nil
	default:
		return DanglingFail, &InvalidSpecError{Field: "dangling", Reason: "unknown policy " + s + " (want fail, skip or keep)"}
	}
}

// Config is the input of Build.
type Config struct {
	Vertices    []VertexSpec
	VertexStyle style.Style

	// Edges and EdgesFunc are mutually exclusive.
	Edges     []EdgeSpec
	EdgesFunc EdgeFunc
	EdgeStyle style.Style

	Dangling DanglingPolicy
	Logger   *log.Logger // nil: discard
}
