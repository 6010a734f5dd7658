// Package dag provides the dependency graph used to schedule a pixelforge
// build.
//
// # Overview
//
// Every asset in a build is a node identified by its [asset.ID]. An edge
// from A to B records that A needs B built first: a shape needs the stamps
// and brushes in its legend, a map needs the shapes and prefabs it places,
// a shader needs its palette.
//
// # Basic Usage
//
// Register nodes with [Graph.AddNode] and edges with [Graph.AddEdge].
// Registration never fails; unknown endpoints are registered on the fly:
//
//	g := dag.New()
//	g.AddEdge(asset.NewID(asset.KindShape, "door"), asset.NewID(asset.KindStamp, "brick"))
//	order, err := g.BuildOrder()
//
// [FromRegistry] records every cross-reference of an [asset.Registry] in one
// call.
//
// # Ordering
//
// [Graph.BuildOrder] runs Kahn's algorithm over in-graph dependency counts.
// The ready queue is kept sorted, so identical graphs always produce the
// same order. When a cycle prevents a complete order, a depth-first search
// with an on-path marker recovers one concrete cycle and returns it as a
// [*CycleError].
//
// [Graph.Levels] groups the order into waves of mutually independent assets
// for concurrent rendering.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Once built, all
// query methods may be called from multiple goroutines.
package dag
