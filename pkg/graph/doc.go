// Package graph provides the serialization format for built diagrams.
//
// A [Document] is a snapshot of a [model.Model]: every vertex and edge with
// its id, parent, value, geometry and own style. It is the wire format of
// the "json" render format, HTTP responses and cached artifacts.
//
// # Format
//
//	{
//	  "vertices": [
//	    {"id": "a", "value": "Hello", "x": 20, "y": 20, "width": 80, "height": 30},
//	    {"id": "b", "value": "World", "x": 200, "y": 150, "width": 80, "height": 30}
//	  ],
//	  "edges": [
//	    {"id": "e0", "source": "a", "target": "b"}
//	  ]
//	}
//
// Vertices are listed in insertion order, so a parent always precedes its
// children. Parents equal to the model's default layer are omitted.
//
// # Round Trip
//
// [Document.Scene] converts a snapshot back into a scene. Building that
// scene into a fresh model and exporting again yields the same document.
package graph
