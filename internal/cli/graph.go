package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/dag"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/render/nodelink"
)

const (
	graphFormatDOT = "dot"
	graphFormatSVG = "svg"
)

// graphOpts holds the command-line flags of graph.
type graphOpts struct {
	format   string
	output   string
	detailed bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: graphFormatDOT}

	cmd := &cobra.Command{
		Use:   "graph [files...]",
		Short: "Draw the asset dependency graph",
		Long: `Draw the asset dependency graph as Graphviz DOT or SVG.

Edges point from an asset to what it depends on. When the graph has a cycle,
the assets on the cycle are outlined in red. With --detailed, assets nothing
depends on get a double border and assets without dependencies a dashed one.`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case graphFormatDOT, graphFormatSVG:
			default:
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with kind and name and mark sources and sinks")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, w io.Writer, paths []string, opts graphOpts) error {
	reg, err := c.loadProject(ctx, paths)
	if err != nil {
		return err
	}
	g := dag.FromRegistry(reg)

	dotOpts := nodelink.Options{Detailed: opts.detailed}
	if g.Validate() != nil {
		_, err := g.BuildOrder()
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			dotOpts.Highlight = cycle.Cycle
			c.Logger.Warn("graph has a cycle", "cycle", cycle.Error())
		}
	}
	dot := nodelink.ToDOT(g, dotOpts)

	data := []byte(dot)
	if opts.format == graphFormatSVG {
		data, err = nodelink.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}

	if opts.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printFile(w, opts.output)
	return nil
}
