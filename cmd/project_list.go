package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var projectListAll bool

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects from the local catalog",
	Example: `
  # Active projects only
  cmsrd project list

  # Include inactive projects
  cmsrd project list --all
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(projectDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		projects, err := store.ListProjects()
		if err != nil {
			return err
		}

		printed := 0
		for _, project := range projects {
			if !project.Active && !projectListAll {
				continue
			}
			status := "active"
			if !project.Active {
				status = "inactive"
			}
			fmt.Printf("%s  %-8s  %s / %s", project.ID, status, project.Client, project.Name)
			if project.Code != "" {
				fmt.Printf("  [%s]", project.Code)
			}
			fmt.Println()
			printed++
		}
		fmt.Printf("Projects: %d\n", printed)
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectListCmd)

	projectListCmd.Flags().BoolVar(&projectListAll, "all", false, "Include inactive projects")
}
