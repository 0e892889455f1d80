// Package render groups the chart renderers.
//
// # Organization Charts
//
// The [orgchart] subpackage draws an organization tree as a Graphviz graph
// and rasterizes it in-process with go-graphviz. No external dot binary is
// required.
//
//	chart := orgchart.Build(root, orgchart.WithName("BfDI"))
//	png, err := orgchart.RenderPNG(ctx, chart.Graph.Bytes())
//
// [orgchart]: github.com/matzehuels/orgchart/pkg/render/orgchart
package render
