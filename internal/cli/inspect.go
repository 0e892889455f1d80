package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/errors"
	pkgio "github.com/matzehuels/orgchart/pkg/io"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/render/orgchart"
)

// inspectCommand creates the inspect command for viewing the unit tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		sort   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the unit tree of an organigram",
		Long: `Print the unit tree of an organigram.

Each unit is listed under its parent with its head, in the order render would
draw it. With --json the loaded tree is written back as JSON using plain
arrays for children and claims.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := pipeline.DefaultInput
			if len(args) == 1 {
				input = args[0]
			}
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), input, sort, asJSON)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", pipeline.DefaultSort, "sibling order: "+strings.Join(org.OrderNames(), ", "))
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the tree as JSON")

	return cmd
}

// runInspect loads input and writes its outline, or its JSON, to out.
func (c *CLI) runInspect(ctx context.Context, out io.Writer, input, sort string, asJSON bool) error {
	logger := loggerFromContext(ctx)

	order, ok := org.LookupOrder(sort)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid sort: %q (must be one of: %v)", sort, org.OrderNames())
	}

	root, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded organigram", "file", input, "entities", org.Count(root))

	if asJSON {
		return pkgio.WriteJSON(root, out)
	}

	s := writeOutline(out, root, order)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", StyleDim.Render("units: "), StyleValue.Render(fmt.Sprint(s.units)))
	fmt.Fprintf(out, "%s %s\n", StyleDim.Render("vacant:"), StyleValue.Render(fmt.Sprint(s.vacant)))
	fmt.Fprintf(out, "%s %s\n", StyleDim.Render("depth: "), StyleValue.Render(fmt.Sprint(s.depth)))
	return nil
}

// outlineStats summarizes an outline.
type outlineStats struct {
	units  int // including the root
	vacant int // units below the root without a head
	depth  int // levels below the root
}

// writeOutline prints root and its descendants indented by depth, each
// followed by its head or the vacant marker.
func writeOutline(w io.Writer, root *org.Entity, order org.Order) outlineStats {
	s := outlineStats{units: 1}
	fmt.Fprintln(w, StyleTitle.Render(root.Name))

	idx := org.NewIndex(root)
	org.Walk(root, org.VisitorFuncs{
		VisitFunc: func(_, child *org.Entity, depth, _ int) {
			s.units++
			s.depth = max(s.depth, depth+1)

			head, ok := idx.HeadOf(child.ID)
			headText := StyleDim.Render(head)
			if !ok {
				s.vacant++
				headText = StyleWarning.Render(orgchart.Vacant)
			}

			name := child.Name
			if child.ShortName != "" {
				name = StyleHighlight.Render(child.ShortName) + " " + name
			}
			fmt.Fprintf(w, "%s%s %s %s\n", strings.Repeat("  ", depth+1), name, StyleDim.Render("·"), headText)
		},
	}, org.WithOrder(order))

	return s
}
