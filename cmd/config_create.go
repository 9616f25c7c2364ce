package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a starter config file.",
	Long: `Write a starter config file with the backend, user, and storage
sections filled with defaults.

The file lands where the active config would be loaded from. When a
config file is already in use, nothing is overwritten.`,
	Example: `
  # Write the starter template to $HOME/.cmsrd.yaml
  cmsrd config create

  # Write it to an explicit location
  cmsrd config create --configFile ./cmsrd.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig()
	},
}

func saveDefaultConfig() error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("Starter config written to: %s\n", configPath)
		return nil
	}

	fmt.Printf("Config file already exists, leaving it untouched: %s\n", configPath)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
