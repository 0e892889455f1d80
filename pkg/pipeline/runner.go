package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/errors"
	pkgio "github.com/matzehuels/orgchart/pkg/io"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/render/orgchart"
)

// keyTypeArtifact labels artifact cache events.
const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results between runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	// render rasterizes DOT source; replaced in tests.
	render func(ctx context.Context, src []byte) ([]byte, error)
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
		render: orgchart.RenderPNG,
	}
}

// Run executes the complete load → build → render pipeline.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	loadStart := time.Now()
	root, err := pkgio.ImportJSON(opts.Input)
	entities := org.Count(root)
	hooks.OnLoadComplete(ctx, opts.Input, entities, time.Since(loadStart), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded organigram", "file", opts.Input, "entities", entities)

	return r.RunTree(ctx, root, opts)
}

// RunTree builds and renders an already loaded tree.
func (r *Runner) RunTree(ctx context.Context, root *org.Entity, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "empty organigram")
	}

	buildStart := time.Now()
	chart, err := r.Build(root, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{DOT: chart.Graph.Bytes()}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Nodes = chart.Graph.NodeCount()
	result.Stats.Edges = chart.Graph.EdgeCount()
	result.Stats.Joints = chart.Joints
	result.Stats.Vacant = chart.Vacant
	observability.Pipeline().OnBuildComplete(ctx, opts.Name,
		result.Stats.Nodes, result.Stats.Edges, result.Stats.Joints, result.Stats.BuildTime)

	if !opts.NoWrite {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		if err := writeFile(opts.DOTPath(), result.DOT); err != nil {
			return nil, err
		}
		result.Paths.DOT = opts.DOTPath()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	png, cached, err := r.Render(ctx, result.DOT)
	if err != nil {
		return nil, err
	}
	result.PNG = png
	result.Cached = cached
	result.Stats.RenderTime = time.Since(renderStart)

	if !opts.NoWrite {
		if err := writeFile(opts.PNGPath(), png); err != nil {
			return nil, err
		}
		result.Paths.PNG = opts.PNGPath()
	}

	r.Logger.Info("rendered chart",
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"cached", cached,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build draws the chart for root without rendering it.
func (r *Runner) Build(root *org.Entity, opts Options) (*orgchart.Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	style := orgchart.DefaultStyle()
	if opts.StylePath != "" {
		s, err := orgchart.LoadStyle(opts.StylePath)
		if err != nil {
			return nil, err
		}
		style = s
		r.Logger.Debug("loaded style", "file", opts.StylePath)
	}
	order, _ := org.LookupOrder(opts.Sort)

	chart := orgchart.Build(root,
		orgchart.WithName(opts.Name),
		orgchart.WithComment(opts.Comment),
		orgchart.WithStyle(style),
		orgchart.WithOrder(order),
		orgchart.WithJointDepth(opts.JointDepth),
		orgchart.WithLogger(r.Logger),
		orgchart.WithVisitHook(func(e *org.Entity) {
			r.Logger.Debugf("%s %s (%s)", e.ID, e.Name, e.ShortName)
		}),
	)

	r.Logger.Debug("built chart",
		"entities", chart.Entities,
		"joints", chart.Joints,
		"vacant", chart.Vacant)

	return chart, nil
}

// Render rasterizes DOT source to PNG, reading and filling the artifact
// cache. Cache failures never fail the render.
func (r *Runner) Render(ctx context.Context, src []byte) ([]byte, bool, error) {
	key := cache.ArtifactKey(cache.Hash(src), FormatPNG)
	cacheHooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	case hit && orgchart.IsPNG(data):
		r.Logger.Debug("cache hit", "key", key)
		cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
		return data, true, nil
	}
	cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, FormatPNG)
	start := time.Now()
	png, err := r.render(ctx, src)
	hooks.OnRenderComplete(ctx, FormatPNG, len(png), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, png, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(png))
	}
	return png, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
