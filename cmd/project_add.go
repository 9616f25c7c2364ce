package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/importer"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

var (
	projectAddName         string
	projectAddClient       string
	projectAddCode         string
	projectAddAccountingID string
)

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project to the local catalog",
	Long: `Add a project manually. The project receives a random ID, unlike imported
projects whose IDs derive from their name, client, and accounting ID.`,
	Example: `
  # Minimal
  cmsrd project add --name "Data Platform"

  # Full
  cmsrd project add --name "Data Platform" --client "Acme" --code DP-1 --accounting-id CC-4711
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(projectAddName) == "" {
			return fmt.Errorf("project name must not be blank")
		}

		store, err := storage.OpenSQLite(projectDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		project := timesheet.Project{
			ID:           importer.NewProjectID(),
			Name:         strings.TrimSpace(projectAddName),
			Code:         strings.TrimSpace(projectAddCode),
			Client:       strings.TrimSpace(projectAddClient),
			AccountingID: strings.TrimSpace(projectAddAccountingID),
			Active:       true,
		}
		if err := store.SaveProject(project); err != nil {
			return err
		}

		fmt.Printf("Project created: %s (%s)\n", project.ID, project.Name)
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectAddCmd)

	projectAddCmd.Flags().StringVar(&projectAddName, "name", "", "Project name")
	projectAddCmd.Flags().StringVar(&projectAddClient, "client", "", "Client name")
	projectAddCmd.Flags().StringVar(&projectAddCode, "code", "", "Project code")
	projectAddCmd.Flags().StringVar(&projectAddAccountingID, "accounting-id", "", "Accounting identifier (cost center)")

	_ = projectAddCmd.MarkFlagRequired("name")
}
