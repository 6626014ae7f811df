package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	gderrors "github.com/graph-module/graphdraw/pkg/errors"
	"github.com/graph-module/graphdraw/pkg/style"
)

// Format is a scene file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTOML, FormatHCL:
		return f, nil
	default:
		return "", gderrors.New(gderrors.ErrCodeInvalidFormat, "unknown scene format %q (want json, toml or hcl)", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", gderrors.New(gderrors.ErrCodeInvalidFormat, "cannot infer scene format of %s", path)
	}
	return ParseFormat(ext)
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	if err := gderrors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gderrors.Wrap(gderrors.ErrCodeFileNotFound, err, "scene not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parse(data, format, filepath.Base(path))
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	return parse(data, format, "scene."+string(format))
}

func parse(data []byte, format Format, filename string) (*Scene, error) {
	var (
		s   *Scene
		err error
	)
	switch format {
	case FormatJSON:
		s, err = decodeJSON(data)
	case FormatTOML:
		s, err = decodeTOML(data)
	case FormatHCL:
		s, err = decodeHCL(data, filename)
	default:
		_, err = ParseFormat(string(format))
	}
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeJSON(data []byte) (*Scene, error) {
	var s Scene
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, gderrors.Wrap(gderrors.ErrCodeInvalidFormat, err, "decode json scene")
	}
	return &s, nil
}

func decodeTOML(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, gderrors.Wrap(gderrors.ErrCodeInvalidFormat, err, "decode toml scene")
	}
	// Style tables are free-form maps and always decode; anything left over
	// is a typo.
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, gderrors.New(gderrors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
	}
	return &s, nil
}

// =============================================================================
// HCL
// =============================================================================

type hclScene struct {
	Version     string       `hcl:"version,optional"`
	Name        string       `hcl:"name,optional"`
	VertexStyle cty.Value    `hcl:"vertex_style,optional"`
	EdgeStyle   cty.Value    `hcl:"edge_style,optional"`
	Styles      []*hclStyle  `hcl:"style,block"`
	Vertices    []*hclVertex `hcl:"vertex,block"`
	Edges       []*hclEdge   `hcl:"edge,block"`
}

type hclStyle struct {
	Name   string   `hcl:"name,label"`
	Remain hcl.Body `hcl:",remain"`
}

type hclVertex struct {
	ID          string          `hcl:"id,optional"`
	Parent      string          `hcl:"parent,optional"`
	Value       string          `hcl:"value,optional"`
	Position    []float64       `hcl:"position,optional"`
	Size        []float64       `hcl:"size,optional"`
	Style       cty.Value       `hcl:"style,optional"`
	Relative    bool            `hcl:"relative,optional"`
	Constraints *hclConstraints `hcl:"constraints,block"`
}

type hclConstraints struct {
	Step  float64 `hcl:"step"`
	Start float64 `hcl:"start,optional"`
}

type hclEdge struct {
	ID     string    `hcl:"id,optional"`
	Parent string    `hcl:"parent,optional"`
	Value  string    `hcl:"value,optional"`
	Source string    `hcl:"source,optional"`
	Target string    `hcl:"target,optional"`
	Style  cty.Value `hcl:"style,optional"`
}

func decodeHCL(data []byte, filename string) (*Scene, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, gderrors.Wrap(gderrors.ErrCodeInvalidFormat, diags, "parse hcl scene")
	}
	var raw hclScene
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, gderrors.Wrap(gderrors.ErrCodeInvalidFormat, diags, "decode hcl scene")
	}

	s := &Scene{Version: raw.Version, Name: raw.Name}
	var err error
	if s.VertexStyle, err = styleFromCty(raw.VertexStyle); err != nil {
		return nil, fmt.Errorf("vertex_style: %w", err)
	}
	if s.EdgeStyle, err = styleFromCty(raw.EdgeStyle); err != nil {
		return nil, fmt.Errorf("edge_style: %w", err)
	}

	for _, st := range raw.Styles {
		named, err := styleFromBody(st.Remain)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", st.Name, err)
		}
		if s.Styles == nil {
			s.Styles = make(map[string]style.Style)
		}
		s.Styles[st.Name] = named
	}

	for i, rv := range raw.Vertices {
		v := Vertex{ID: rv.ID, Parent: rv.Parent, Value: rv.Value, Relative: rv.Relative}
		if v.Position, err = pair(rv.Position); err != nil {
			return nil, fmt.Errorf("vertex %d: position: %w", i, err)
		}
		if v.Size, err = pair(rv.Size); err != nil {
			return nil, fmt.Errorf("vertex %d: size: %w", i, err)
		}
		if v.Style, err = styleFromCty(rv.Style); err != nil {
			return nil, fmt.Errorf("vertex %d: style: %w", i, err)
		}
		if rv.Constraints != nil {
			v.Constraints = &Constraints{Step: rv.Constraints.Step, Start: rv.Constraints.Start}
		}
		s.Vertices = append(s.Vertices, v)
	}

	for i, re := range raw.Edges {
		e := Edge{ID: re.ID, Parent: re.Parent, Value: re.Value, Source: re.Source, Target: re.Target}
		if e.Style, err = styleFromCty(re.Style); err != nil {
			return nil, fmt.Errorf("edge %d: style: %w", i, err)
		}
		s.Edges = append(s.Edges, e)
	}
	return s, nil
}

func pair(vals []float64) ([2]float64, error) {
	switch len(vals) {
	case 0:
		return [2]float64{}, nil
	case 2:
		return [2]float64{vals[0], vals[1]}, nil
	default:
		return [2]float64{}, gderrors.New(gderrors.ErrCodeInvalidScene, "want 2 numbers, got %d", len(vals))
	}
}

func styleFromBody(body hcl.Body) (style.Style, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, gderrors.Wrap(gderrors.ErrCodeInvalidFormat, diags, "style body")
	}
	out := make(style.Style, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, gderrors.Wrap(gderrors.ErrCodeInvalidFormat, diags, "style key %s", name)
		}
		gv, err := ctyToGo(v)
		if err != nil {
			return nil, fmt.Errorf("style key %s: %w", name, err)
		}
		out[name] = gv
	}
	return out, nil
}

func styleFromCty(v cty.Value) (style.Style, error) {
	if v.IsNull() {
		return nil, nil
	}
	t := v.Type()
	if !t.IsObjectType() && !t.IsMapType() {
		return nil, gderrors.New(gderrors.ErrCodeInvalidScene, "style must be an object, got %s", t.FriendlyName())
	}
	out := make(style.Style, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		gv, err := ctyToGo(ev)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", k.AsString(), err)
		}
		out[k.AsString()] = gv
	}
	return out, nil
}

func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, gderrors.New(gderrors.ErrCodeInvalidScene, "value is not known")
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case t == cty.Bool:
		return v.True(), nil
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	default:
		return nil, gderrors.New(gderrors.ErrCodeInvalidScene, "unsupported style value of type %s", t.FriendlyName())
	}
}
