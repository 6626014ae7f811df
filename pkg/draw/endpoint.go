package draw

type endpointKind uint8

const (
	endpointUnset endpointKind = iota
	endpointRef
	endpointCell
)

// Endpoint is the source or target of an edge spec. The zero value is unset.
type Endpoint struct {
	kind endpointKind
	ref  string
	cell Cell
}

// Ref returns an endpoint naming a vertex id of the batch's VertexTable.
func Ref(id string) Endpoint { return Endpoint{kind: endpointRef, ref: id} }

// To returns an endpoint bound to an already created cell. A nil cell gives
// an unset endpoint.
func To(c Cell) Endpoint {
	if c == nil {
		return Endpoint{}
	}
	return Endpoint{kind: endpointCell, cell: c}
}

// IsSet reports whether the endpoint names anything.
func (e Endpoint) IsSet() bool { return e.kind != endpointUnset }

// Symbol returns the symbolic id and true for endpoints created with Ref.
func (e Endpoint) Symbol() (string, bool) { return e.ref, e.kind == endpointRef }

// resolve maps the endpoint to a cell. ok is false only for a symbolic
// reference missing from vertices.
func (e Endpoint) resolve(vertices VertexTable) (c Cell, ok bool) {
	switch e.kind {
	case endpointRef:
		c, ok = vertices[e.ref]
		return c, ok
	case endpointCell:
		return e.cell, true
	default:
		return nil, true
	}
}
