package cmd

import "github.com/spf13/cobra"

var projectDBPath string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the local project catalog.",
	Long: `List, add, deactivate, and delete projects in the local SQLite catalog.

Projects imported from spreadsheet exports carry stable content-derived IDs;
manually added projects get a random ID.`,
	Example: `
  # List active projects
  cmsrd project list

  # List every project including inactive ones
  cmsrd project list --all

  # Add a project by hand
  cmsrd project add --name "Data Platform" --client "Acme" --code DP-1

  # Deactivate and reactivate
  cmsrd project toggle --id p-1a2b3c4d5e6f --off
  cmsrd project toggle --id p-1a2b3c4d5e6f --on

  # Delete a project and strip its allocations from every day
  cmsrd project delete --id p-1a2b3c4d5e6f
`,
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.PersistentFlags().StringVar(&projectDBPath, "db", "./cmsrd.db", "Path to local SQLite database")
}
