package cli

import (
	"github.com/spf13/cobra"
)

// shells lists the shells completion scripts can be generated for.
var shells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

Load it for the current session:

  $ source <(rabo completion bash)
  $ rabo completion fish | source

Or install it once, for example:

  $ rabo completion zsh > "${fpath[1]}/_rabo"
  $ rabo completion fish > ~/.config/fish/completions/rabo.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return root.GenBashCompletionV2(out, true)
			}
		},
	}
}
