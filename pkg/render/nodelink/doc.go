// Package nodelink renders composed component views as node-link diagrams.
//
// A view is first converted to Graphviz DOT with [ToDOT], then rasterized
// with [RenderSVG] or [RenderPNG]. Element kinds map to distinct node
// shapes so people, software systems, containers, and components are
// distinguishable at a glance; components of the focus container are
// highlighted against discovered neighbors.
package nodelink
