package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          buildinfo.App,
		Short:        "pixelforge compiles text-described pixel art into images, sheets and cartridges",
		Long:         `pixelforge compiles palettes, stamps, brushes, shapes, prefabs and maps described in TOML into PNG images, packed sprite sheets and PICO-8 cartridges.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose || c.Config.Verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the CLI with configuration from the environment.
func Execute(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return New(os.Stderr, LogInfo, cfg).RootCommand().ExecuteContext(ctx)
}
