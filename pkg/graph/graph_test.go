package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/graph-module/graphdraw/pkg/draw"
	"github.com/graph-module/graphdraw/pkg/geometry"
	"github.com/graph-module/graphdraw/pkg/model"
	"github.com/graph-module/graphdraw/pkg/scene"
	"github.com/graph-module/graphdraw/pkg/style"
)

func sampleScene() *scene.Scene {
	return &scene.Scene{
		VertexStyle: style.Style{style.KeyFillColor: "#FFFFFF"},
		Vertices: []scene.Vertex{
			{ID: "pool", Value: "Pool", Position: [2]float64{10, 10}, Size: [2]float64{400, 200}},
			{ID: "a", Parent: "pool", Value: "A", Position: [2]float64{20, 20}, Size: [2]float64{80, 30}},
			{ID: "b", Parent: "pool", Value: "B", Position: [2]float64{0.5, 0.5}, Size: [2]float64{80, 30}, Relative: true},
		},
		Edges: []scene.Edge{
			{ID: "ab", Source: "a", Target: "b", Value: "next", Style: style.Style{style.KeyDashed: true}},
		},
	}
}

func buildScene(t *testing.T, s *scene.Scene) *model.Model {
	t.Helper()
	m := model.New(nil)
	if _, err := s.Apply(m, scene.ApplyOptions{}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	return m
}

func TestFromModel(t *testing.T) {
	doc := FromModel(buildScene(t, sampleScene()))

	if len(doc.Vertices) != 3 {
		t.Fatalf("vertices = %d, want 3", len(doc.Vertices))
	}
	if len(doc.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(doc.Edges))
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"order", []string{doc.Vertices[0].ID, doc.Vertices[1].ID, doc.Vertices[2].ID}, []string{"pool", "a", "b"}},
		{"top-level parent omitted", doc.Vertices[0].Parent, ""},
		{"nested parent", doc.Vertices[1].Parent, "pool"},
		{"geometry", [4]float64{doc.Vertices[1].X, doc.Vertices[1].Y, doc.Vertices[1].Width, doc.Vertices[1].Height}, [4]float64{20, 20, 80, 30}},
		{"relative", doc.Vertices[2].Relative, true},
		{"merged style", doc.Vertices[0].Style[style.KeyFillColor], "#FFFFFF"},
		{"edge source", doc.Edges[0].Source, "a"},
		{"edge target", doc.Edges[0].Target, "b"},
		{"edge value", doc.Edges[0].Value, "next"},
		{"edge style", doc.Edges[0].Style[style.KeyDashed], true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestFromModelEmptyAndDangling(t *testing.T) {
	m := model.New(nil)
	if doc := FromModel(m); len(doc.Vertices) != 0 || len(doc.Edges) != 0 {
		t.Errorf("FromModel(empty) = %+v", doc)
	}

	_, err := draw.Build(m, draw.Config{
		Vertices: []draw.VertexSpec{{ID: "a"}},
		Edges:    []draw.EdgeSpec{{ID: "loose", Source: draw.Ref("a"), Target: draw.Ref("gone")}},
		Dangling: draw.DanglingKeep,
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	doc := FromModel(m)
	if doc.Edges[0].Target != "" {
		t.Errorf("dangling target = %q, want empty", doc.Edges[0].Target)
	}
	if doc.Vertices[0].Style != nil {
		t.Errorf("empty style = %v, want nil", doc.Vertices[0].Style)
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(buildScene(t, sampleScene()))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := raw["vertices"]; !ok {
		t.Error("missing vertices key")
	}
	if !strings.Contains(string(data), "\n  \"edges\"") {
		t.Error("output should be indented")
	}
}

func TestWriteAndReadFile(t *testing.T) {
	m := buildScene(t, sampleScene())
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteFile(m, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(doc.Vertices) != 3 || len(doc.Edges) != 1 {
		t.Errorf("ReadFile() = %d vertices, %d edges", len(doc.Vertices), len(doc.Edges))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v", err)
	}
	if err := WriteFile(m, filepath.Join(t.TempDir(), "no", "such", "dir.json")); err == nil {
		t.Error("WriteFile() into missing dir should fail")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); err == nil {
		t.Error("Unmarshal() should fail on malformed input")
	}
}

func TestRoundTrip(t *testing.T) {
	var first bytes.Buffer
	if err := Write(buildScene(t, sampleScene()), &first); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	doc, err := Unmarshal(first.Bytes())
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	var second bytes.Buffer
	if err := Write(buildScene(t, doc.Scene()), &second); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("round trip changed the document\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
}

func TestSceneGeometry(t *testing.T) {
	doc := Document{Vertices: []Vertex{{ID: "v", X: 1, Y: 2, Width: 3, Height: 4}}}
	s := doc.Scene()
	m := buildScene(t, s)
	origin, size := m.AbsoluteBounds(m.Cell("v"))
	if origin != (geometry.Point{X: 1, Y: 2}) || size != (geometry.Size{Width: 3, Height: 4}) {
		t.Errorf("bounds = %v %v", origin, size)
	}
}
