/*
Copyright © 2025 CMS R&D

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/config"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/remote"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmsrd",
	Short: "Track daily project hours, reconcile allocations, and report monthly totals.",
	Long: `
**********************************************
*              CMS  R&D  HOURS               *
**********************************************

This CLI keeps a local SQLite timesheet of daily shifts and per-project hour
allocations, reconciles allocated against worked time, imports project catalogs
from Excel/CSV exports, exports monthly grids, syncs with a hosted backend, and
serves a local JSON API for the browser frontend.

Supported import formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
`,
	Example: `
  # Create configuration file
  cmsrd config create

  # Import a project catalog export
  cmsrd import -i projects-2026.xlsx --mapper catalog

  # Record one day and check reconciliation
  cmsrd day set --date 2026-03-02 --morning 08:00-12:00 --afternoon 13:00-17:00 --alloc p-1a2b3c=4 --alloc p-9f8e7d=4
  cmsrd day show --date 2026-03-02

  # Spread the worked hours evenly across projects
  cmsrd day distribute --date 2026-03-02 --project p-1a2b3c --project p-9f8e7d

  # Monthly report and export
  cmsrd report --month 2026-03
  cmsrd export --month 2026-03 --output ./march.xlsx

  # Sync with the hosted backend
  cmsrd sync push
  cmsrd sync pull

  # Serve the local JSON API
  cmsrd serve --port 8080
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.cmsrd.yaml, then ./.cmsrd.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "push", "pull":
		return true
	default:
		return false
	}
}

// currentUserID resolves the user the local store is keyed by. Defaults
// apply when no config file exists.
func currentUserID() string {
	id := strings.TrimSpace(viper.GetString(config.KeyUserID))
	if id == "" {
		return "default"
	}
	return id
}

// buildRemoteClient returns nil when no backend token is configured,
// which keeps every command usable fully offline.
func buildRemoteClient(cfg *config.Config) (remote.Client, error) {
	if strings.TrimSpace(cfg.Backend.Token) == "" {
		return nil, nil
	}
	return remote.NewClient(remote.ClientConfig{
		BaseURL:   cfg.Backend.URL,
		APIToken:  cfg.Backend.Token,
		UserAgent: "cmsrd/1.0",
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".cmsrd" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cmsrd")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: cmsrd config create")
	}
}
