// Package nodelink renders asset dependency graphs as node-link diagrams.
//
// # Overview
//
// Each asset becomes a rounded box filled by kind; arrows point from a
// consumer to the asset it needs, so palettes and stamps sit at the bottom
// and targets at the top.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// When ordering fails, pass the cycle from [dag.CycleError] as
// Options.Highlight to outline its members.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
//
// [dag.CycleError]: github.com/matzehuels/pixelforge/pkg/dag.CycleError
package nodelink
