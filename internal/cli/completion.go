package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/project"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pixelforge.

Besides commands and flags, the scripts complete asset names read from the
project files already on the command line:

  pixelforge build assets/ --target <TAB>     web, sheet, p8 and project targets
  pixelforge build assets/ --shader <TAB>     shaders
  pixelforge order assets/ --asset <TAB>      kind:name of every project asset
  pixelforge palette assets/ --name <TAB>     palettes

Bash:
  $ source <(pixelforge completion bash)
  $ pixelforge completion bash > /etc/bash_completion.d/pixelforge

Zsh:
  $ pixelforge completion zsh > "${fpath[1]}/_pixelforge"

Fish:
  $ pixelforge completion fish | source

PowerShell:
  PS> pixelforge completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completionRegistry loads the project named by args for completion. Load
// errors are ignored so builtins still complete while a file is half written.
func completionRegistry(args []string) *asset.Registry {
	if len(args) > 0 {
		if reg, err := project.Load(args...); err == nil {
			return reg
		}
	}
	return asset.NewRegistry().WithBuiltins()
}

// completeNames returns a flag completion function offering the names of
// one asset kind.
func completeNames(kind asset.Kind) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterPrefix(completionRegistry(args).Names(kind), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeIDs offers kind:name for every project asset, builtins excluded.
func completeIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	reg := completionRegistry(args)
	var ids []string
	for _, id := range reg.IDs() {
		if !reg.IsBuiltin(id) {
			ids = append(ids, id.String())
		}
	}
	return filterPrefix(ids, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
