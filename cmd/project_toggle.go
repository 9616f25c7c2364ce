package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var (
	projectToggleID  string
	projectToggleOn  bool
	projectToggleOff bool
)

var projectToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Activate or deactivate a project",
	Long: `Deactivated projects stay in the catalog and keep their past allocations,
but no longer appear in active project listings.`,
	Example: `
  # Deactivate
  cmsrd project toggle --id p-1a2b3c4d5e6f --off

  # Reactivate
  cmsrd project toggle --id p-1a2b3c4d5e6f --on
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectToggleOn == projectToggleOff {
			return fmt.Errorf("exactly one of --on or --off is required")
		}

		store, err := storage.OpenSQLite(projectDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SetProjectActive(projectToggleID, projectToggleOn); err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				return fmt.Errorf("project not found: %s", projectToggleID)
			}
			return err
		}

		state := "active"
		if projectToggleOff {
			state = "inactive"
		}
		fmt.Printf("Project %s is now %s\n", projectToggleID, state)
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectToggleCmd)

	projectToggleCmd.Flags().StringVar(&projectToggleID, "id", "", "Project ID")
	projectToggleCmd.Flags().BoolVar(&projectToggleOn, "on", false, "Activate the project")
	projectToggleCmd.Flags().BoolVar(&projectToggleOff, "off", false, "Deactivate the project")

	_ = projectToggleCmd.MarkFlagRequired("id")
}
