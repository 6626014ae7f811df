// Package pkg provides the core libraries of graphdraw.
//
// # Overview
//
// Graphdraw inserts declarative batches of vertices and edges into a graph
// model in one atomic update and renders the result. The pkg directory is
// organized into four areas:
//
//  1. Building - [draw] turns vertex and edge specs into cells of any [draw.Graph]
//  2. Model - [model] is the in-memory graph with update batching and events
//  3. Scenes - [scene] reads JSON, TOML and HCL scene files into specs
//  4. Output - [render], [graph] and [pipeline] produce DOT, SVG, PNG and JSON
//
// # Architecture
//
// The typical data flow:
//
//	scene file (JSON / TOML / HCL)
//	         ↓
//	    [scene] package (parse + validate)
//	         ↓
//	    [draw] package (vertex table, edge resolution)
//	         ↓
//	    [model] package (cells, one batched update)
//	         ↓
//	    [render] / [graph] (DOT, SVG, PNG, JSON)
//
// # Quick Start
//
//	m := model.New(nil)
//	d, err := draw.Build(m, draw.Config{
//	    Vertices: []draw.VertexSpec{
//	        {ID: "a", Value: "Hello", Position: geometry.Point{X: 20, Y: 20}, Size: geometry.Size{Width: 80, Height: 30}},
//	        {ID: "b", Value: "World", Position: geometry.Point{X: 200, Y: 150}, Size: geometry.Size{Width: 80, Height: 30}},
//	    },
//	    Edges: []draw.EdgeSpec{{Source: draw.Ref("a"), Target: draw.Ref("b")}},
//	})
//	svg, err := render.RenderSVG(ctx, render.ToDOT(m, render.Options{}))
//
// # Main Packages
//
// [draw] - The batch builder. Vertices are inserted in order and recorded in a
// vertex table; edge endpoints are either cells or ids looked up in that
// table. Dangling ids fail the batch unless a [draw.DanglingPolicy] says
// otherwise.
//
// [model] - Reference graph implementation: root and layer cells, nested
// update levels, rollback on error, and change events through [event].
//
// [style], [geometry], [setting] - Cell styles and stylesheets, cell bounds,
// and the per-model behaviour switches.
//
// [scene] - Declarative scene documents with semver-checked versions.
//
// [pipeline] - Build, render and cache in one call. Used by the CLI and the
// HTTP server alike.
//
// [cache] - File, Redis and null artifact caches. [store] - Memory and
// MongoDB scene storage. [observability] - Hooks for metrics.
//
// [errors] - Coded errors shared by every layer.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/draw/...               # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [draw]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/draw
// [draw.Graph]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/draw#Graph
// [draw.DanglingPolicy]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/draw#DanglingPolicy
// [model]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/model
// [event]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/event
// [style]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/style
// [geometry]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/geometry
// [setting]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/setting
// [scene]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/scene
// [render]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/render
// [graph]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/cache
// [store]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/store
// [observability]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/observability
// [errors]: https://pkg.go.dev/github.com/graph-module/graphdraw/pkg/errors
package pkg
