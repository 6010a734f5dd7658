package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/dag"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// orderOpts holds the command-line flags of order.
type orderOpts struct {
	flat   bool
	assets []string
}

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var opts orderOpts

	cmd := &cobra.Command{
		Use:   "order [files...]",
		Short: "Print the build order",
		Long: `Print the build order.

Assets are grouped into waves: every asset depends only on assets of earlier
waves, so the members of one wave are rendered concurrently. With --flat the
order is printed one asset per line. With --asset only the named assets and
everything they depend on are ordered.`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOrder(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.flat, "flat", false, "print one asset per line without waves")
	cmd.Flags().StringSliceVarP(&opts.assets, "asset", "a", nil, "order only these assets (kind:name) and their dependencies")
	_ = cmd.RegisterFlagCompletionFunc("asset", completeIDs)

	return cmd
}

func (c *CLI) runOrder(ctx context.Context, w io.Writer, paths []string, opts orderOpts) error {
	reg, err := c.loadProject(ctx, paths)
	if err != nil {
		return err
	}
	g, err := closure(dag.FromRegistry(reg), opts.assets)
	if err != nil {
		return err
	}

	if opts.flat {
		order, err := g.BuildOrder()
		if err != nil {
			return err
		}
		for _, id := range order {
			fmt.Fprintln(w, id)
		}
		return nil
	}

	levels, err := g.Levels()
	if err != nil {
		return err
	}
	for i, level := range levels {
		fmt.Fprintf(w, "%s %s\n", StyleTitle.Render(fmt.Sprintf("wave %d", i+1)), joinIDs(level))
	}
	return nil
}

// closure narrows g to the named assets and their dependencies. With no
// names g is returned unchanged.
func closure(g *dag.Graph, names []string) (*dag.Graph, error) {
	if len(names) == 0 {
		return g, nil
	}
	roots := make([]asset.ID, 0, len(names))
	for _, n := range names {
		id, err := asset.ParseID(n)
		if err != nil {
			return nil, err
		}
		if !g.HasNode(id) {
			return nil, errors.New(errors.ErrCodeNotFound, "asset %s not found", id)
		}
		roots = append(roots, id)
	}
	return g.Closure(roots...)
}

func joinIDs(ids []asset.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
