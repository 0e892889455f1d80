// Package orgchart draws organization trees as Graphviz charts.
//
// # Overview
//
// [Build] turns an [org.Entity] tree into a [dot.Graph]: one box per unit,
// labeled by [FormatLabel], connected by edges chosen by [Router]. The graph
// is then laid out and rasterized by Graphviz with [RenderPNG]:
//
//	chart := orgchart.Build(root, orgchart.WithName("BfDI"))
//	png, err := orgchart.RenderPNG(ctx, chart.Graph.Bytes())
//
// # Labels
//
// A unit label shows the short name in bold, the name split into one line per
// ", " separated segment, a blank line, and the head of the unit as
// "<position> <name>". Units without a short name show the name block in bold
// instead. Units without a head show [Vacant].
//
// # Edge Routing
//
// Up to [DefaultJointDepth] the chart fans out with direct parent-child edges.
// From that depth on, siblings are chained through invisible joint nodes, one
// per child, each sharing a rank with its child. With orthogonal splines this
// stacks deep sibling groups vertically below their parent.
//
// Joint IDs are built by [JointID] from the last five characters of both
// endpoint IDs, so they stay stable across runs.
//
// # Styles
//
// [DefaultStyle] carries the graph, node, joint and edge defaults. Overrides
// can be loaded from TOML with [LoadStyle]:
//
//	[graph]
//	ranksep = 0.5
//
//	[node]
//	fontname = "Helvetica"
//
// [org.Entity]: github.com/matzehuels/orgchart/pkg/org.Entity
// [dot.Graph]: github.com/matzehuels/orgchart/pkg/dot.Graph
package orgchart
