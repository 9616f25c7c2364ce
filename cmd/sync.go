package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/config"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/remote"
)

var syncDBPath string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the local database with the hosted backend.",
	Long: `Push local days to the hosted backend or pull the backend's state into the
local database. Requires backend.url and backend.token in the configuration.`,
	Example: `
  # Upload every local day
  cmsrd sync push

  # Replace the local cache with the backend state
  cmsrd sync pull
`,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.PersistentFlags().StringVar(&syncDBPath, "db", "./cmsrd.db", "Path to local SQLite database")
}

func requireRemoteClient() (remote.Client, string, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, "", err
	}
	client, err := buildRemoteClient(cfg)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", fmt.Errorf("backend not configured: set backend.token in the config file")
	}
	return client, cfg.User.ID, nil
}
