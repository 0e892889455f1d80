// Package pipeline provides the render driver for organization charts.
//
// This package implements the complete load → build → render pipeline used
// by the CLI. By centralizing this logic, every entry point produces
// byte-identical DOT for the same input and options.
//
// # Architecture
//
// A run consists of three stages:
//
//  1. Load: read the organigram JSON into an [org.Entity] tree
//  2. Build: walk the tree into a DOT graph with [orgchart.Build]
//  3. Render: rasterize the DOT to PNG, consulting the artifact cache
//
// The DOT is written to <OutputDir>/<Name>.gv and the PNG next to it as
// <OutputDir>/<Name>.gv.png.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    Input: "organigramm.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Paths.PNG)
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/render/orgchart"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Runner
// =============================================================================

const (
	// DefaultInput is the organigram read when no input is given.
	DefaultInput = "organigramm.json"

	// DefaultOutputDir is the directory the .gv and .gv.png files go to.
	DefaultOutputDir = "output"

	// DefaultName is the graph name and output file stem.
	DefaultName = "BfDI"

	// DefaultComment is written as a comment above the graph.
	DefaultComment = "Bundesbeauftragter für den Datenschutz und die Informationsfreiheit (BfDI)"

	// DefaultSort is the sibling order applied before drawing.
	DefaultSort = org.OrderName

	// FormatPNG is the only raster format produced.
	FormatPNG = "png"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a render run.
type Options struct {
	Input     string // organigram JSON file
	OutputDir string
	Name      string // graph name, also the output file stem
	Comment   string
	Sort      string // "name" or "source"

	// JointDepth is the first depth routed through joints. Zero selects
	// [orgchart.DefaultJointDepth]; negative values are rejected.
	JointDepth int

	// StylePath names a TOML file overlaid on the default style.
	StylePath string

	// NoWrite skips writing files; the result still carries DOT and PNG.
	NoWrite bool

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DOT is the serialized graph description.
	DOT []byte

	// PNG is the rasterized chart.
	PNG []byte

	// Paths lists the files written. Empty when NoWrite is set.
	Paths Paths

	// Stats contains timing and size information.
	Stats Stats

	// Cached reports whether the PNG came from the artifact cache.
	Cached bool
}

// Paths are the output files of a run.
type Paths struct {
	DOT string
	PNG string
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes      int // graph nodes, joints included
	Edges      int
	Joints     int
	Vacant     int // units without a head
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Sort == "" {
		o.Sort = DefaultSort
	}
	if o.JointDepth == 0 {
		o.JointDepth = orgchart.DefaultJointDepth
	}

	if err := errors.ValidateGraphName(o.Name); err != nil {
		return err
	}
	if err := errors.ValidateJointDepth(o.JointDepth); err != nil {
		return err
	}
	if _, ok := org.LookupOrder(o.Sort); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid sort: %q (must be one of: %v)", o.Sort, org.OrderNames())
	}

	o.validated = true
	return nil
}

// DOTPath returns the path the DOT description is written to.
func (o *Options) DOTPath() string {
	return filepath.Join(o.OutputDir, o.Name+".gv")
}

// PNGPath returns the path the PNG is written to.
func (o *Options) PNGPath() string {
	return o.DOTPath() + "." + FormatPNG
}
