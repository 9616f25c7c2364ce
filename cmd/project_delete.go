package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var projectDeleteID string

var projectDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project and strip its allocations",
	Long: `Delete a project from the catalog. Every daily allocation referencing the
project is removed as well; the affected days themselves are kept.`,
	Example: `
  # Delete a project
  cmsrd project delete --id p-1a2b3c4d5e6f
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(projectDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		stripped, err := store.DeleteProject(projectDeleteID)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				return fmt.Errorf("project not found: %s", projectDeleteID)
			}
			return err
		}

		fmt.Printf("Project %s deleted. Allocations stripped: %d\n", projectDeleteID, stripped)
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectDeleteCmd)

	projectDeleteCmd.Flags().StringVar(&projectDeleteID, "id", "", "Project ID")

	_ = projectDeleteCmd.MarkFlagRequired("id")
}
