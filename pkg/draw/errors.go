package draw

import (
	"fmt"

	gderrors "github.com/graph-module/graphdraw/pkg/errors"
)

// DanglingReferenceError reports a symbolic edge endpoint that is not in the
// vertex table.
type DanglingReferenceError struct {
	EdgeIndex int    // position of the edge within its batch
	EdgeID    string // resolved edge id
	Field     string // "source" or "target"
	Ref       string // the missing vertex id
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("edge %d (%q): %s references unknown vertex %q", e.EdgeIndex, e.EdgeID, e.Field, e.Ref)
}

// Code returns the error code for this error type.
func (e *DanglingReferenceError) Code() gderrors.Code { return gderrors.ErrCodeDanglingReference }

// InvalidSpecError reports a malformed configuration, detected before the
// graph is modified.
type InvalidSpecError struct {
	Field  string // e.g. "vertices[2].size"
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid spec: %s: %s", e.Field, e.Reason)
}

// Code returns the error code for this error type.
func (e *InvalidSpecError) Code() gderrors.Code { return gderrors.ErrCodeInvalidSpec }
