// Package pkg provides the core libraries for orgchart.
//
// # Overview
//
// Orgchart turns the JSON export of an organisation directory into an
// organization chart. The pkg directory is organized into four main areas:
//
//  1. [org] and [io] - The unit tree, its relations, and its JSON form
//  2. [dot] and [render/orgchart] - Chart drawing and Graphviz rasterization
//  3. [cache] and [observability] - Artifact caching and instrumentation hooks
//  4. [pipeline] - Orchestration (load → build → render)
//
// # Architecture
//
// The data flow through orgchart:
//
//	organigramm.json
//	         ↓
//	    [io] package (decode the entity tree)
//	         ↓
//	    [org] package (head-of index, sibling order, tree walk)
//	         ↓
//	    [render/orgchart] package (labels, edge routing, DOT graph)
//	         ↓
//	    BfDI.gv + BfDI.gv.png
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/orgchart/pkg/io"
//	    "github.com/matzehuels/orgchart/pkg/org"
//	    "github.com/matzehuels/orgchart/pkg/render/orgchart"
//	)
//
//	root, _ := io.ImportJSON("organigramm.json")
//	chart := orgchart.Build(root,
//	    orgchart.WithName("BfDI"),
//	    orgchart.WithOrder(org.ByShortName),
//	)
//	png, _ := orgchart.RenderPNG(context.Background(), chart.Graph.Bytes())
//
// Or run the whole pipeline, including output files and caching:
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, _ := runner.Run(ctx, pipeline.Options{Input: "organigramm.json"})
//
// # Main Packages
//
// [errors] - Coded errors shared by every stage (MALFORMED_INPUT,
// MISSING_FIELD, RENDER_ENGINE, ...).
//
// [buildinfo] - Version information injected with ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test -short ./pkg/...   # Skip Graphviz rendering
//	go test -run Example       # Examples only
//
// [org]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/org
// [io]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/io
// [dot]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/dot
// [render/orgchart]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/render/orgchart
// [cache]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/buildinfo
package pkg
