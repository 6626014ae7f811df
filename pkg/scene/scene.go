// Package scene reads declarative scene files and builds them into graphs.
//
// A scene lists vertices and edges by id. Files may be JSON, TOML or HCL:
//
//	version = "1.0"
//
//	vertex {
//	  id       = "a"
//	  value    = "Hello"
//	  position = [20, 20]
//	  size     = [80, 30]
//	}
//
//	vertex {
//	  id       = "b"
//	  value    = "World"
//	  position = [200, 150]
//	  size     = [80, 30]
//	  style    = { shape = "ellipse" }
//	}
//
//	edge {
//	  source = "a"
//	  target = "b"
//	}
//
// Vertices without an id are keyed by their index in the file. A vertex may
// name an earlier vertex as its parent; [Scene.Apply] builds containers
// before their children.
package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/Masterminds/semver/v3"

	gderrors "github.com/graph-module/graphdraw/pkg/errors"
	"github.com/graph-module/graphdraw/pkg/style"
)

// SupportedVersions is the semver constraint scene versions must satisfy.
const SupportedVersions = "^1"

// Scene is a parsed scene file.
type Scene struct {
	Version     string                 `json:"version,omitempty" toml:"version" bson:"version,omitempty"`
	Name        string                 `json:"name,omitempty" toml:"name" bson:"name,omitempty"`
	VertexStyle style.Style            `json:"vertexStyle,omitempty" toml:"vertex_style" bson:"vertex_style,omitempty"`
	EdgeStyle   style.Style            `json:"edgeStyle,omitempty" toml:"edge_style" bson:"edge_style,omitempty"`
	Styles      map[string]style.Style `json:"styles,omitempty" toml:"styles" bson:"styles,omitempty"`
	Vertices    []Vertex               `json:"vertices" toml:"vertex" bson:"vertices"`
	Edges       []Edge                 `json:"edges,omitempty" toml:"edge" bson:"edges,omitempty"`
}

// Vertex is a vertex entry. Position and Size are (x, y) and (width, height).
type Vertex struct {
	ID          string       `json:"id,omitempty" toml:"id" bson:"id,omitempty"`
	Parent      string       `json:"parent,omitempty" toml:"parent" bson:"parent,omitempty"`
	Value       string       `json:"value,omitempty" toml:"value" bson:"value,omitempty"`
	Position    [2]float64   `json:"position" toml:"position" bson:"position"`
	Size        [2]float64   `json:"size" toml:"size" bson:"size"`
	Style       style.Style  `json:"style,omitempty" toml:"style" bson:"style,omitempty"`
	Relative    bool         `json:"relative,omitempty" toml:"relative" bson:"relative,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty" toml:"constraints" bson:"constraints,omitempty"`
}

// Constraints asks for evenly distributed connection points.
type Constraints struct {
	Step  float64 `json:"step" toml:"step" bson:"step"`
	Start float64 `json:"start,omitempty" toml:"start" bson:"start,omitempty"`
}

// Edge is an edge entry. Source and Target name vertex keys; empty leaves
// the end unconnected.
type Edge struct {
	ID     string      `json:"id,omitempty" toml:"id" bson:"id,omitempty"`
	Parent string      `json:"parent,omitempty" toml:"parent" bson:"parent,omitempty"`
	Value  string      `json:"value,omitempty" toml:"value" bson:"value,omitempty"`
	Source string      `json:"source,omitempty" toml:"source" bson:"source,omitempty"`
	Target string      `json:"target,omitempty" toml:"target" bson:"target,omitempty"`
	Style  style.Style `json:"style,omitempty" toml:"style" bson:"style,omitempty"`
}

// Key returns the id of the vertex at index i: its ID, or i.
func (s *Scene) Key(i int) string {
	if id := s.Vertices[i].ID; id != "" {
		return id
	}
	return strconv.Itoa(i)
}

// Validate checks the version constraint, vertex keys and parent references.
// Edge endpoints are left to the build's dangling policy.
func (s *Scene) Validate() error {
	if err := s.checkVersion(); err != nil {
		return err
	}
	if s.Name != "" {
		if err := gderrors.ValidateSceneName(s.Name); err != nil {
			return err
		}
	}

	seen := make(map[string]int, len(s.Vertices))
	for i, v := range s.Vertices {
		key := s.Key(i)
		if err := gderrors.ValidateCellID(v.ID); err != nil {
			return gderrors.Wrap(gderrors.ErrCodeInvalidScene, err, "vertex %d", i)
		}
		if prev, dup := seen[key]; dup {
			return gderrors.New(gderrors.ErrCodeInvalidScene, "vertex %d: id %q already used by vertex %d", i, key, prev)
		}
		if v.Parent != "" {
			if _, ok := seen[v.Parent]; !ok {
				return gderrors.New(gderrors.ErrCodeInvalidScene, "vertex %d (%q): parent %q must be declared earlier", i, key, v.Parent)
			}
		}
		for _, f := range append(v.Position[:], v.Size[:]...) {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return gderrors.New(gderrors.ErrCodeInvalidScene, "vertex %d (%q): non-finite geometry", i, key)
			}
		}
		if v.Size[0] < 0 || v.Size[1] < 0 {
			return gderrors.New(gderrors.ErrCodeInvalidScene, "vertex %d (%q): negative size", i, key)
		}
		if v.Constraints != nil && v.Constraints.Step < 0 {
			return gderrors.New(gderrors.ErrCodeInvalidScene, "vertex %d (%q): negative constraint step", i, key)
		}
		seen[key] = i
	}

	if err := s.checkStyles(); err != nil {
		return err
	}

	for i, e := range s.Edges {
		if err := gderrors.ValidateCellID(e.ID); err != nil {
			return gderrors.Wrap(gderrors.ErrCodeInvalidScene, err, "edge %d", i)
		}
		if e.Parent != "" {
			if _, ok := seen[e.Parent]; !ok {
				return gderrors.New(gderrors.ErrCodeInvalidScene, "edge %d: unknown parent %q", i, e.Parent)
			}
		}
	}
	return nil
}

// checkStyles rejects NaN and infinite style values. TOML and HCL can
// express them but JSON cannot, and [Scene.Hash] encodes the scene as JSON.
func (s *Scene) checkStyles() error {
	check := func(where string, st style.Style) error {
		for k, v := range st {
			if !finiteValue(v) {
				return gderrors.New(gderrors.ErrCodeInvalidScene, "%s: style %q is not a finite number", where, k)
			}
		}
		return nil
	}
	if err := check("vertex_style", s.VertexStyle); err != nil {
		return err
	}
	if err := check("edge_style", s.EdgeStyle); err != nil {
		return err
	}
	for name, st := range s.Styles {
		if err := check("styles."+name, st); err != nil {
			return err
		}
	}
	for i, v := range s.Vertices {
		if err := check(fmt.Sprintf("vertex %d (%q)", i, s.Key(i)), v.Style); err != nil {
			return err
		}
	}
	for i, e := range s.Edges {
		if err := check(fmt.Sprintf("edge %d", i), e.Style); err != nil {
			return err
		}
	}
	return nil
}

func finiteValue(v any) bool {
	switch v := v.(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return finiteValue(float64(v))
	case map[string]any:
		for _, e := range v {
			if !finiteValue(e) {
				return false
			}
		}
	case []any:
		for _, e := range v {
			if !finiteValue(e) {
				return false
			}
		}
	}
	return true
}

func (s *Scene) checkVersion() error {
	if s.Version == "" {
		return nil
	}
	v, err := semver.NewVersion(s.Version)
	if err != nil {
		return gderrors.Wrap(gderrors.ErrCodeInvalidScene, err, "invalid version %q", s.Version)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return gderrors.Wrap(gderrors.ErrCodeInternal, err, "constraint %q", SupportedVersions)
	}
	if !c.Check(v) {
		return gderrors.New(gderrors.ErrCodeUnsupportedVersion, "scene version %s does not satisfy %s", v, SupportedVersions)
	}
	return nil
}

// RegisterStyles puts the scene's named styles into sheet.
func (s *Scene) RegisterStyles(sheet *style.Stylesheet) error {
	for name, st := range s.Styles {
		if err := sheet.Put(name, st); err != nil {
			return fmt.Errorf("style %q: %w", name, err)
		}
	}
	return nil
}

// Hash returns a stable content hash of the scene. It fails for scenes that
// cannot be encoded, such as ones holding NaN style values that skipped
// [Scene.Validate].
func (s *Scene) Hash() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", gderrors.Wrap(gderrors.ErrCodeInvalidScene, err, "hash scene")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
