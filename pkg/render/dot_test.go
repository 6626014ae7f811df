package render

import (
	"strings"
	"testing"

	"github.com/graph-module/graphdraw/pkg/draw"
	"github.com/graph-module/graphdraw/pkg/geometry"
	"github.com/graph-module/graphdraw/pkg/model"
	"github.com/graph-module/graphdraw/pkg/style"
)

func buildModel(t *testing.T, cfg draw.Config) *model.Model {
	t.Helper()
	m := model.New(nil)
	if _, err := draw.Build(m, cfg); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return m
}

func TestToDOT(t *testing.T) {
	m := buildModel(t, draw.Config{
		Vertices: []draw.VertexSpec{
			{ID: "a", Value: "Hello", Position: geometry.Point{X: 20, Y: 20}, Size: geometry.Size{Width: 72, Height: 36}},
			{ID: "b", Value: "World", Position: geometry.Point{X: 200, Y: 150}, Size: geometry.Size{Width: 144, Height: 36}},
		},
		Edges: []draw.EdgeSpec{{Source: draw.Ref("a"), Target: draw.Ref("b")}},
	})

	dot := ToDOT(m, Options{})

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		`"a" [label="Hello", pos="56,-38!", width=1, height=0.5, shape=box`,
		`"b" [label="World", pos="272,-168!", width=2, height=0.5, shape=box`,
		`"a" -> "b" [`,
		"arrowhead=normal",
		`fillcolor="#C3D9FF"`,
		`style="filled"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTNestedPositions(t *testing.T) {
	m := model.New(nil)
	d, err := draw.Build(m, draw.Config{
		Vertices: []draw.VertexSpec{
			{ID: "pool", Position: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 300, Height: 200}},
		},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if _, err := d.AddVertices(draw.VertexSpec{
		ID:       "task",
		Parent:   d.Vertices["pool"],
		Position: geometry.Point{X: 10, Y: 20},
		Size:     geometry.Size{Width: 72, Height: 72},
	}); err != nil {
		t.Fatalf("AddVertices() error: %v", err)
	}

	dot := ToDOT(m, Options{})
	if !strings.Contains(dot, `"task" [label="", pos="146,-156!"`) {
		t.Errorf("ToDOT() nested vertex not at absolute center\n%s", dot)
	}
}

func TestToDOTStyles(t *testing.T) {
	sheet := style.NewStylesheet()
	if err := sheet.Put("warning", style.Style{style.KeyFillColor: "#FFCC00", style.KeyDashed: true}); err != nil {
		t.Fatal(err)
	}
	m := buildModel(t, draw.Config{
		Vertices: []draw.VertexSpec{
			{ID: "a", Size: geometry.Size{Width: 72, Height: 72}, Style: style.Style{
				style.KeyShape:          "cloud",
				style.KeyBaseStyleNames: "warning",
				style.KeyStrokeWidth:    2,
				style.KeyFontFamily:     "Helvetica",
			}},
			{ID: "b", Size: geometry.Size{Width: 72, Height: 72}, Style: style.Style{
				style.KeyShape:     "unknown",
				style.KeyFillColor: "none",
			}},
		},
		Edges: []draw.EdgeSpec{{
			Source: draw.Ref("a"),
			Target: draw.Ref("b"),
			Value:  "calls",
			Style: style.Style{
				style.KeyStartArrow:  "oval",
				style.KeyEndArrow:    "open",
				style.KeyDashed:      "1",
				style.KeyStrokeColor: "red",
			},
		}},
	})

	dot := ToDOT(m, Options{Stylesheet: sheet})

	tests := []struct {
		name string
		want string
	}{
		{"registry shape", "shape=ellipse"},
		{"shape attrs", `peripheries="2"`},
		{"named style fill", `fillcolor="#FFCC00"`},
		{"dashed vertex", `style="filled,dashed"`},
		{"pen width", "penwidth=2"},
		{"font family", `fontname="Helvetica"`},
		{"edge label", `label="calls"`},
		{"edge dashed", `style="dashed"`},
		{"edge color", `color="red"`},
		{"end arrow", "arrowhead=vee"},
		{"start arrow", "arrowtail=dot, dir=both"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(dot, tt.want) {
				t.Errorf("ToDOT() missing %q\n%s", tt.want, dot)
			}
		})
	}

	bLine := lineFor(dot, `"b" [`)
	if !strings.Contains(bLine, "shape=box") {
		t.Errorf("unknown shape should fall back to box: %s", bLine)
	}
	if strings.Contains(bLine, "fillcolor") {
		t.Errorf("fillColor none should not fill: %s", bLine)
	}
}

func TestToDOTSkipsDanglingEdges(t *testing.T) {
	m := buildModel(t, draw.Config{
		Vertices: []draw.VertexSpec{{ID: "a"}},
		Edges:    []draw.EdgeSpec{{Source: draw.Ref("a"), Target: draw.Ref("missing")}},
		Dangling: draw.DanglingKeep,
	})
	if len(m.Edges()) != 1 {
		t.Fatalf("Edges() = %d, want 1", len(m.Edges()))
	}
	if dot := ToDOT(m, Options{}); strings.Contains(dot, "->") {
		t.Errorf("ToDOT() drew a dangling edge\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	m := buildModel(t, draw.Config{
		Vertices: []draw.VertexSpec{{ID: "a", Value: "A"}, {ID: "b"}},
	})
	dot := ToDOT(m, Options{Detailed: true})
	if !strings.Contains(dot, `label="A\na"`) {
		t.Errorf("ToDOT() detailed label missing id\n%s", dot)
	}
	if !strings.Contains(dot, `"b" [label="b"`) {
		t.Errorf("ToDOT() detailed empty label should be the id\n%s", dot)
	}
}

func TestArrowhead(t *testing.T) {
	tests := []struct {
		marker string
		want   string
	}{
		{"none", "none"},
		{"classic", "normal"},
		{"block", "normal"},
		{"open", "vee"},
		{"oval", "dot"},
		{"diamond", "diamond"},
		{"bogus", "normal"},
	}
	for _, tt := range tests {
		st := style.Style{style.KeyEndArrow: tt.marker}
		if got := arrowhead(st, style.KeyEndArrow, "normal"); got != tt.want {
			t.Errorf("arrowhead(%q) = %q, want %q", tt.marker, got, tt.want)
		}
	}
	if got := arrowhead(style.Style{}, style.KeyStartArrow, "none"); got != "none" {
		t.Errorf("arrowhead(unset) = %q, want none", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if strings.Contains(got, "pt\"") {
		t.Errorf("normalizeViewBox() kept pt units: %s", got)
	}

	plain := []byte("<svg></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}

func lineFor(dot, prefix string) string {
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			return line
		}
	}
	return ""
}
