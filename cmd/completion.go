package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for wfx.

To load completions:

Bash:
  $ source <(wfx completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ wfx completion bash > /etc/bash_completion.d/wfx
  # macOS:
  $ wfx completion bash > $(brew --prefix)/etc/bash_completion.d/wfx

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ wfx completion zsh > "${fpath[1]}/_wfx"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ wfx completion fish | source

  # To load completions for each session, execute once:
  $ wfx completion fish > ~/.config/fish/completions/wfx.fish

PowerShell:
  PS> wfx completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> wfx completion powershell > wfx.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	Annotations:           map[string]string{skipConfigCheck: "true"},
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
