// Package dot models Graphviz graph descriptions and writes them as DOT source.
//
// # Overview
//
// A [Graph] holds graph-wide, node-wide and edge-wide default attributes and
// an ordered body of statements: node declarations, edges and nested
// [Subgraph] scopes. Statement order is preserved exactly, and attributes are
// kept in insertion order, so the same sequence of calls always produces
// byte-identical DOT output.
//
// # Usage
//
//	g := dot.NewGraph("G")
//	g.Attrs = dot.Attrs{{Key: "rankdir", Value: "TB"}}
//	g.AddNode("a", dot.Attr{Key: "label", Value: "A"})
//	sub := dot.NewSubgraph("", dot.Attr{Key: "rank", Value: "same"})
//	sub.AddEdge("a", "b")
//	g.AddSubgraph(sub)
//	src := g.String()
//
// # HTML Labels
//
// Attribute values created with [HTMLAttr] are written between angle brackets
// instead of quotes, which makes Graphviz interpret them as HTML-like labels.
// The caller is responsible for escaping text content; see [EscapeHTML].
//
// Layout is not computed here. The description is handed to Graphviz, see
// package render/orgchart.
package dot
