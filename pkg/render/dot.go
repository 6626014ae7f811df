package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/graph-module/graphdraw/pkg/geometry"
	"github.com/graph-module/graphdraw/pkg/model"
	"github.com/graph-module/graphdraw/pkg/style"
)

const pointsPerInch = 72

// Options configures DOT generation.
type Options struct {
	// Stylesheet resolves cell styles. Nil uses style.NewStylesheet().
	Stylesheet *style.Stylesheet
	// Shapes maps style shapes to DOT shapes. Nil uses the built-ins.
	Shapes *style.ShapeRegistry
	// Detailed appends the cell id to every label.
	Detailed bool
}

// ToDOT converts a model to a neato DOT graph with pinned vertex positions.
func ToDOT(m *model.Model, opts Options) string {
	sheet := opts.Stylesheet
	if sheet == nil {
		sheet = style.NewStylesheet()
	}
	shapes := opts.Shapes
	if shapes == nil {
		shapes = style.NewShapeRegistry()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fixedsize=true, fontsize=11, margin=0];\n")
	buf.WriteString("\n")

	for _, v := range m.Vertices() {
		origin, size := m.AbsoluteBounds(v)
		st := sheet.Resolve(v.Style(), false)
		attrs := []string{
			fmt.Sprintf("label=%q", label(v, opts.Detailed)),
			fmt.Sprintf("pos=%q", pinned(geometry.Center(origin, size))),
			"width=" + inches(size.Width),
			"height=" + inches(size.Height),
		}
		attrs = append(attrs, vertexAttrs(st, shapes)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges() {
		if e.Source() == nil || e.Target() == nil {
			continue
		}
		st := sheet.Resolve(e.Style(), true)
		attrs := edgeAttrs(st)
		if l := label(e, opts.Detailed); l != "" {
			attrs = append([]string{fmt.Sprintf("label=%q", l)}, attrs...)
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source().ID(), e.Target().ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(c *model.Cell, detailed bool) string {
	if !detailed {
		return c.Value()
	}
	if c.Value() == "" {
		return c.ID()
	}
	return c.Value() + "\n" + c.ID()
}

func pinned(p geometry.Point) string {
	return num(p.X) + "," + num(-p.Y) + "!"
}

func inches(points float64) string {
	return num(points / pointsPerInch)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func vertexAttrs(st style.Style, shapes *style.ShapeRegistry) []string {
	var attrs []string
	shape := style.Shape{DOTShape: "box"}
	if name, ok := st.String(style.KeyShape); ok {
		if sh, found := shapes.Lookup(name); found {
			shape = sh
		}
	}
	attrs = append(attrs, "shape="+shape.DOTShape)

	var drawStyle []string
	if fill, ok := st.String(style.KeyFillColor); ok && fill != "none" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		drawStyle = append(drawStyle, "filled")
	}
	if rounded, _ := st.Bool(style.KeyRounded); rounded {
		drawStyle = append(drawStyle, "rounded")
	}
	if dashed, _ := st.Bool(style.KeyDashed); dashed {
		drawStyle = append(drawStyle, "dashed")
	}
	if len(drawStyle) > 0 {
		attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(drawStyle, ",")))
	}
	attrs = append(attrs, strokeAndFont(st)...)

	for _, k := range slices.Sorted(maps.Keys(shape.Attrs)) {
		attrs = append(attrs, fmt.Sprintf("%s=%q", k, shape.Attrs[k]))
	}
	return attrs
}

func edgeAttrs(st style.Style) []string {
	var attrs []string
	if dashed, _ := st.Bool(style.KeyDashed); dashed {
		attrs = append(attrs, `style="dashed"`)
	}
	attrs = append(attrs, strokeAndFont(st)...)

	head := arrowhead(st, style.KeyEndArrow, "normal")
	tail := arrowhead(st, style.KeyStartArrow, "none")
	attrs = append(attrs, "arrowhead="+head)
	if tail != "none" {
		attrs = append(attrs, "arrowtail="+tail, "dir=both")
	}
	return attrs
}

func strokeAndFont(st style.Style) []string {
	var attrs []string
	if stroke, ok := st.String(style.KeyStrokeColor); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", stroke))
	}
	if w, ok := st.Float(style.KeyStrokeWidth); ok {
		attrs = append(attrs, "penwidth="+num(w))
	}
	if fc, ok := st.String(style.KeyFontColor); ok {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", fc))
	}
	if fs, ok := st.Float(style.KeyFontSize); ok {
		attrs = append(attrs, "fontsize="+num(fs))
	}
	if ff, ok := st.String(style.KeyFontFamily); ok {
		attrs = append(attrs, fmt.Sprintf("fontname=%q", ff))
	}
	return attrs
}

// arrowhead maps marker names to DOT arrow types.
func arrowhead(st style.Style, key, fallback string) string {
	name, ok := st.String(key)
	if !ok {
		return fallback
	}
	switch name {
	case "none", "":
		return "none"
	case "classic", "classicThin", "block", "blockThin":
		return "normal"
	case "open", "openThin", "openAsync":
		return "vee"
	case "oval":
		return "dot"
	case "diamond", "diamondThin":
		return "diamond"
	case "box":
		return "box"
	default:
		return fallback
	}
}
