package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/render/orgchart"
)

// renderFlags holds the render flags that are not pipeline options.
type renderFlags struct {
	print    bool   // write the DOT to stdout instead of the summary
	noCache  bool   // disable the artifact cache
	redisURL string // use a Redis artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{
		OutputDir:  pipeline.DefaultOutputDir,
		Name:       pipeline.DefaultName,
		Comment:    pipeline.DefaultComment,
		Sort:       pipeline.DefaultSort,
		JointDepth: orgchart.DefaultJointDepth,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an organigram to a DOT description and PNG chart",
		Long: `Render an organigram to a DOT description and PNG chart.

The input is the JSON export of an organisation entity tree (default
` + pipeline.DefaultInput + `). Every unit becomes a box labeled with its short
name, its name split at commas, and its head; units at depth 3 and below hang
off invisible joints so Graphviz stacks them vertically.

The DOT is written to <output-dir>/<name>.gv and the chart to
<output-dir>/<name>.gv.png. Rendered charts are cached locally, so unchanged
input skips rasterization.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", opts.OutputDir, "directory for the .gv and .gv.png files")
	cmd.Flags().StringVar(&opts.Name, "name", opts.Name, "graph name and output file stem")
	cmd.Flags().StringVar(&opts.Comment, "comment", opts.Comment, "comment written above the graph")
	cmd.Flags().StringVar(&opts.Sort, "sort", opts.Sort, "sibling order: "+strings.Join(org.OrderNames(), ", "))
	cmd.Flags().IntVar(&opts.JointDepth, "joint-depth", opts.JointDepth, "first depth routed through joints (0 keeps the default, so the smallest effective value is 1)")
	cmd.Flags().StringVar(&opts.StylePath, "style", "", "TOML file with [graph], [node], [joint], [edge] attribute overrides")
	cmd.Flags().BoolVar(&flags.print, "print", false, "print the DOT description to stdout")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "cache charts in Redis (redis://host:port/db, or $"+redisURLEnv+")")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return org.OrderNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagFilename("style", "toml")

	return cmd
}

// runRender runs the pipeline and reports the written files.
func (c *CLI) runRender(ctx context.Context, out io.Writer, opts pipeline.Options, flags renderFlags) error {
	logger := loggerFromContext(ctx)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, flags.redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger.Infof("Rendering %s", opts.Input)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Rendering chart...")
	spinner.Start()

	result, err := runner.Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("rendered %s", opts.Name)

	if flags.print {
		_, err := out.Write(result.DOT)
		return err
	}

	printSuccess("Rendered %s", opts.Name)
	printFile(result.Paths.DOT)
	printFile(result.Paths.PNG)
	printStats(result.Stats.Nodes, result.Stats.Edges, result.Stats.Joints, result.Cached)
	if result.Stats.Vacant > 0 {
		printDetail("%d units without a head (%s)", result.Stats.Vacant, orgchart.Vacant)
	}
	return nil
}
