// Package render turns graph models into Graphviz DOT and renders DOT to SVG
// or PNG.
//
// # DOT
//
// [ToDOT] writes a neato graph in which every vertex is pinned at the center
// of its absolute bounds (pos="x,y!"), so the picture follows the model
// geometry instead of a computed layout. Coordinates are points with the y
// axis flipped; node sizes are converted to inches. Cell styles are resolved
// through a [style.Stylesheet] and shapes through a [style.ShapeRegistry].
// Edges with an unconnected end are not drawn.
//
//	dot := render.ToDOT(m, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Rendering
//
// [RenderSVG] and [RenderPNG] use the WebAssembly build of Graphviz shipped
// with github.com/goccy/go-graphviz, so no system Graphviz is required.
package render
