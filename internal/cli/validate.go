package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/validate"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Report problems in a project without rendering",
		Long: `Report problems in a project without rendering.

Errors are problems that make the build fail, such as missing references,
undefined colours or dependency cycles. Warnings point at likely mistakes,
such as unused legend entries or glyphs that render in the missing colour.`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), cmd.OutOrStdout(), args, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, w io.Writer, paths []string, strict bool) error {
	reg, err := c.loadProject(ctx, paths)
	if err != nil {
		return err
	}

	res := validate.Run(reg)
	for _, d := range res.Diagnostics {
		printDiagnostic(w, d)
	}

	switch {
	case res.HasErrors():
		return fmt.Errorf("validation failed with %d error(s) and %d warning(s): %w",
			res.ErrorCount(), res.WarningCount(), res.Err())
	case strict && res.WarningCount() > 0:
		return fmt.Errorf("validation failed with %d warning(s)", res.WarningCount())
	case res.OK():
		printSuccess(w, "No problems found in %d asset(s)", reg.Len())
	default:
		printWarning(w, "%d warning(s)", res.WarningCount())
	}
	return nil
}
