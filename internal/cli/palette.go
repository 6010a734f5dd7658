package cli

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/palette"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// paletteOpts holds the command-line flags of palette.
type paletteOpts struct {
	name    string
	variant string
}

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	opts := paletteOpts{name: palette.DefaultName}

	cmd := &cobra.Command{
		Use:   "palette [files...]",
		Short: "Print the resolved colours of a palette",
		Long: `Print the resolved colours of a palette.

Every colour expression is evaluated, including inherited colours. With
--variant the variant's overrides are applied; overridden colours are marked.`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPalette(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", opts.name, "palette to print")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "variant to apply")
	_ = cmd.RegisterFlagCompletionFunc("name", completeNames(asset.KindPalette))

	cmd.AddCommand(c.paletteExtractCommand())

	return cmd
}

// paletteExtractCommand creates the palette extract subcommand.
func (c *CLI) paletteExtractCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "extract <png>",
		Short: "Sample the colours of a PNG as palette entries",
		Long: `Sample the colours of a PNG as palette entries.

Fully transparent pixels are skipped. Colours are printed most frequent
first, one "$colour-N: #hex" line each. --max keeps only the N most
frequent colours.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaletteExtract(cmd.OutOrStdout(), args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "max", 0, "maximum number of colours (0 for all)")

	return cmd
}

func (c *CLI) runPaletteExtract(w io.Writer, path string, limit int) error {
	if limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--max must not be negative, got %d", limit)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", path)
	}

	counts := render.FromImage(path, src).Histogram()
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	c.Logger.Info("sampled colours", "count", len(counts), "file", path)

	for i, cc := range counts {
		fmt.Fprintf(w, "$colour-%d: %s\n", i+1, cc.Colour)
	}
	return nil
}

func (c *CLI) runPalette(ctx context.Context, w io.Writer, paths []string, opts paletteOpts) error {
	reg, err := c.loadProject(ctx, paths)
	if err != nil {
		return err
	}
	if _, ok := reg.Palettes[opts.name]; !ok {
		return errors.New(errors.ErrCodeNotFound, "palette %q not found", opts.name)
	}

	resolved, resolveErr := palette.ResolveAll(reg.Palettes)
	p, ok := resolved[opts.name]
	if !ok {
		return fmt.Errorf("resolve palette %s: %w", opts.name, resolveErr)
	}
	if resolveErr != nil {
		c.Logger.Warn("other palettes failed to resolve", "error", resolveErr)
	}
	if opts.variant != "" && !p.HasVariant(opts.variant) {
		return errors.New(errors.ErrCodeNotFound, "palette %s has no variant %q (available: %v)",
			p.Name(), opts.variant, p.Variants())
	}

	printPalette(w, p, opts.variant)
	return nil
}

// printPalette prints one line per colour: swatch, name, hex value.
func printPalette(w io.Writer, p *palette.Palette, variant string) {
	title := p.Name()
	if variant != "" {
		title += " (" + variant + ")"
	}
	fmt.Fprintln(w, StyleTitle.Render(title))

	names := p.Names()
	overridden := make(map[string]bool)
	for _, name := range p.VariantNames(variant) {
		overridden[name] = true
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	nameStyle := lipgloss.NewStyle().Width(16)
	for _, name := range names {
		col, _ := p.Variant(variant, name)
		line := "  " + swatch(col) + " " + nameStyle.Render("$"+name) + " " + StyleValue.Render(col.String())
		if overridden[name] {
			line += " " + StyleDim.Render("*")
		}
		fmt.Fprintln(w, line)
	}
	if variants := p.Variants(); variant == "" && len(variants) > 0 {
		printDetail(w, "variants: %v", variants)
	}
}
