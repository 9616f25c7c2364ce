package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cmsrd configuration file values.",
	Long: `Create, edit, and display the cmsrd configuration file.

The configuration stores application-wide values:
- backend.url / backend.token
- user.id
- storage.path`,
	Example: `
  # Create default config in $HOME/.cmsrd.yaml
  cmsrd config create

  # Show active config and source file
  cmsrd config show

  # Open active config in editor (creates example if missing)
  cmsrd config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
