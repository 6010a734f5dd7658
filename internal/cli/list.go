package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/asset"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		kind     string
		builtins bool
	)

	cmd := &cobra.Command{
		Use:   "list [files...]",
		Short: "Print a table of every asset",
		Args:  projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var only asset.Kind
			if kind != "" {
				k, ok := asset.ParseKind(kind)
				if !ok {
					return fmt.Errorf("invalid kind: %s", kind)
				}
				only = k
			}
			return c.runList(cmd.Context(), cmd.OutOrStdout(), args, only, builtins)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only list assets of this kind")
	cmd.Flags().BoolVar(&builtins, "builtins", false, "include builtin assets")

	return cmd
}

func (c *CLI) runList(ctx context.Context, w io.Writer, paths []string, only asset.Kind, builtins bool) error {
	reg, err := c.loadProject(ctx, paths)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, id := range reg.IDs() {
		if only != "" && id.Kind != only {
			continue
		}
		source := "user"
		if reg.IsBuiltin(id) {
			if !builtins {
				continue
			}
			source = "builtin"
		}
		rows = append(rows, []string{string(id.Kind), id.Name, describe(reg, id), source})
	}

	if len(rows) == 0 {
		printInfo(w, "No assets")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Name", "Details", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 3 && rows[row][3] == "builtin" {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	printDetail(w, "%d asset(s)", len(rows))
	return nil
}

// describe summarises an asset for the list table.
func describe(reg *asset.Registry, id asset.ID) string {
	switch id.Kind {
	case asset.KindPalette:
		b := reg.Palettes[id.Name]
		s := fmt.Sprintf("%d colours", len(b.Definitions()))
		if n := len(b.VariantDefinitions()); n > 0 {
			s += fmt.Sprintf(", %d variants", n)
		}
		if b.Parent != "" {
			s += ", inherits " + b.Parent
		}
		return s
	case asset.KindStamp:
		st := reg.Stamps[id.Name]
		s := fmt.Sprintf("%dx%d", st.Width(), st.Height())
		if st.Glyph != 0 {
			s += fmt.Sprintf(", glyph %q", st.Glyph)
		}
		return s
	case asset.KindBrush:
		b := reg.Brushes[id.Name]
		return fmt.Sprintf("%dx%d, letters %s", b.Width(), b.Height(), string(b.Letters()))
	case asset.KindShader:
		sh := reg.Shaders[id.Name]
		var parts []string
		if sh.Palette != "" {
			parts = append(parts, "palette "+sh.Palette)
		}
		if sh.Variant != "" {
			parts = append(parts, "variant "+sh.Variant)
		}
		if sh.Parent != "" {
			parts = append(parts, "inherits "+sh.Parent)
		}
		if len(sh.Effects) > 0 {
			parts = append(parts, fmt.Sprintf("%d effects", len(sh.Effects)))
		}
		return strings.Join(parts, ", ")
	case asset.KindShape:
		sh := reg.Shapes[id.Name]
		return gridDetails(sh.Grid, sh.Tags)
	case asset.KindPrefab, asset.KindMap:
		comp, _ := reg.Composite(id)
		return gridDetails(comp.Grid, comp.Tags) + fmt.Sprintf(", %d pieces", len(comp.References()))
	case asset.KindTarget:
		t := reg.Targets[id.Name]
		s := t.Format + ", sheet " + t.Sheet.String()
		if t.Scale > 0 {
			s += fmt.Sprintf(", scale %d", t.Scale)
		}
		return s
	}
	return ""
}

func gridDetails(g asset.Grid, tags []string) string {
	s := fmt.Sprintf("%dx%d", g.Width(), g.Height())
	if len(tags) > 0 {
		s += " [" + strings.Join(tags, ", ") + "]"
	}
	return s
}
