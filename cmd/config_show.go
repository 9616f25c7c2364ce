package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.
The backend token is masked.`,
	Example: `
  # Show active configuration
  cmsrd config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("backend.url: %s\n", cfg.Backend.URL)
		fmt.Printf("backend.token: %s\n", maskToken(cfg.Backend.Token))
		fmt.Printf("user.id: %s\n", cfg.User.ID)
		fmt.Printf("storage.path: %s\n", cfg.Storage.Path)
	},
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****" + token[len(token)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
