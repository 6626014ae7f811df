// Package draw builds diagram models from declarative vertex and edge specs.
//
// The package does not own a graph. It drives any implementation of the
// [Graph] capability (see pkg/model for the in-memory one) and converts a flat
// description of a scene into insertion calls inside a single transaction.
//
// # Batches
//
// [Build] runs one batch: every vertex spec is materialized first, in list
// order, then every edge spec. Both phases execute inside exactly one call
// to [Graph.BatchUpdate], so observers of the graph see one change instead
// of one per cell:
//
//	d, err := draw.Build(g, draw.Config{
//	    Vertices: []draw.VertexSpec{
//	        {ID: "a", Size: geometry.Size{Width: 50, Height: 50}},
//	        {ID: "b", Position: geometry.Point{X: 100}, Size: geometry.Size{Width: 50, Height: 50}},
//	    },
//	    Edges: []draw.EdgeSpec{{Source: draw.Ref("a"), Target: draw.Ref("b")}},
//	})
//
// Vertices without an id are keyed by their index in the batch ("0", "1",
// ...). Indices restart at zero for every call, so two calls that both rely
// on positional ids collide in the tables; keeping ids unique across calls
// is the caller's job.
//
// # Endpoints
//
// An edge endpoint is an [Endpoint]: unset, a symbolic reference to a vertex
// id of the open [VertexTable] ([Ref]), or an already resolved cell ([To]).
// Edges may also be produced by an [EdgeFunc] that receives the fully
// populated vertex table of the same batch.
//
// What happens to a reference that does not resolve is governed by
// [DanglingPolicy]; the default fails with a [*DanglingReferenceError].
//
// # Styles
//
// The batch-wide VertexStyle and EdgeStyle are shallow-merged under each
// spec's own style: a key set on the spec always wins.
//
// # Failure
//
// Malformed configurations fail with [*InvalidSpecError] before the graph is
// touched. Errors raised by the graph propagate unchanged and abort the rest
// of the batch. The builder never compensates for cells inserted before the
// failure; whether they survive is up to the graph's BatchUpdate.
//
// # Incremental additions
//
// The returned [Drawing] keeps both tables open. [Drawing.AddVertices],
// [Drawing.AddEdges] and [Drawing.AddEdgesFunc] append to them, each in its
// own transaction.
//
// # Concurrency
//
// A Drawing is not safe for concurrent use. Builds are synchronous and run
// on the calling goroutine.
package draw
