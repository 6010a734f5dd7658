package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/pipeline"
	"github.com/matzehuels/pixelforge/pkg/validate"
)

// buildOpts holds the command-line flags of build.
type buildOpts struct {
	out      string // output directory
	workers  int    // concurrent renders
	validate bool   // run validation first and abort on errors
	pipeline.Options
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{
		out:     c.Config.Out,
		workers: c.Config.Workers,
	}
	opts.Target = c.Config.Target
	var padding int

	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Render every asset and write the target's artifacts",
		Long: `Render every asset and write the target's artifacts.

Depending on the target, build writes one PNG and one JSON file per shape,
prefab and map, a packed sheet.png with its sheet.json frame atlas, or a
PICO-8 cartridge (cart.p8).

Assets whose dependencies failed are skipped; everything else is still built
and written, and the command fails afterwards.`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("padding") {
				opts.Padding = &padding
			}
			return c.runBuild(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output directory (env PIXELFORGE_OUT)")
	cmd.Flags().StringVarP(&opts.Target, "target", "t", opts.Target, "target profile: web, sheet, p8 or a project target (env PIXELFORGE_TARGET)")
	cmd.Flags().StringVar(&opts.Shader, "shader", "", "shader overriding the target's")
	cmd.Flags().IntVar(&opts.Scale, "scale", 0, "integer upscale overriding target and asset scales")
	cmd.Flags().IntVar(&padding, "padding", 0, "sheet padding in pixels overriding the target's, 0 included")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "sheet mode overriding the target's: none, auto or WxH")
	cmd.Flags().StringVar(&opts.Dither, "dither", "", "dithering for p8 output: none, ordered or floyd-steinberg")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", opts.workers, "concurrent renders, 0 for one per CPU (env PIXELFORGE_WORKERS)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "validate first and abort on errors")

	_ = cmd.RegisterFlagCompletionFunc("target", completeNames(asset.KindTarget))
	_ = cmd.RegisterFlagCompletionFunc("shader", completeNames(asset.KindShader))

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, w io.Writer, paths []string, opts buildOpts) error {
	if err := errors.ValidatePath(opts.out); err != nil {
		return err
	}
	reg, err := c.loadProject(ctx, paths)
	if err != nil {
		return err
	}

	if opts.validate {
		res := validate.Run(reg)
		for _, d := range res.Diagnostics {
			printDiagnostic(w, d)
		}
		if res.HasErrors() {
			return fmt.Errorf("validation failed with %d error(s): %w", res.ErrorCount(), res.Err())
		}
	}

	spin := newSpinner(ctx, os.Stderr, "Building...")
	spin.Start()
	result, buildErr := c.newRunner(opts.workers).Build(ctx, reg, opts.Options)
	spin.Stop()
	if result == nil {
		return buildErr
	}

	prog := newProgress(c.logger(ctx))
	written, err := writeArtifacts(opts.out, result)
	prog.done("Wrote artifacts", "files", len(written), "dir", opts.out)
	for _, path := range written {
		printFile(w, path)
	}
	if err != nil {
		return err
	}

	for _, id := range result.Failed {
		printError(w, "%s failed", id)
	}
	for _, id := range result.Skipped {
		printWarning(w, "%s skipped", id)
	}
	if buildErr != nil {
		return buildErr
	}

	printKeyValue(w, "target", result.Target.Name)
	printKeyValue(w, "shader", result.Shader.Name)
	printKeyValue(w, "build", result.BuildID)
	printSuccess(w, "Built %d image(s) into %d file(s) in %s",
		result.Stats.Rendered, len(written), opts.out)
	if result.Target.Format == asset.FormatPNG && result.Target.Sheet.Kind == asset.SheetNone && opts.Sheet == "" {
		printNextStep(w, "Pack a sprite sheet", "pixelforge build --target sheet "+paths[0])
	}
	return nil
}

// writeArtifacts writes every artifact into dir, creating it if needed, and
// returns the written paths in sorted order.
func writeArtifacts(dir string, result *pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	var written []string
	for _, name := range result.ArtifactNames() {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, result.Artifacts[name], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
