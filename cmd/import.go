package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/importer"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var (
	importInputs []string
	importFormat string
	importMapper string
	importDBPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV/Excel project catalogs into the local SQLite database",
	Long: `Read source files, map each row to a project via the selected mapper, and
persist the results in the local catalog.

Use mapper "catalog" for project catalog exports with explicit name/client
columns, and mapper "accounting" for cost-center exports whose description
column combines client and project name.

When --format is omitted, format is inferred from each input file extension.
Re-importing the same export is idempotent: row identity derives from the
normalized name, client, and accounting ID, so unchanged rows update in place.`,
	Example: `
  # Import multiple catalog Excel files
  cmsrd import -i projects-rz.xlsx -i projects-sz.xlsx --mapper catalog --db ./cmsrd.db

  # Import an accounting CSV export
  cmsrd import -i cost-centers.csv --format csv --mapper accounting --db ./cmsrd.db

  # Import with custom config file
  cmsrd --configFile ./custom-cmsrd.yaml import -i ./projects.xlsx --mapper catalog
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mapper, err := importer.MapperByName(importMapper)
		if err != nil {
			return err
		}

		result, err := importer.Run(importInputs, importFormat, mapper)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		created, err := store.SaveProjects(result.Projects)
		if err != nil {
			return err
		}

		fmt.Printf("Import completed. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Projects saved: %d, New: %d\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RowsMapped,
			result.RowsSkipped,
			len(result.Projects),
			created,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVarP(&importMapper, "mapper", "m", "catalog", "Mapper to normalize input data: catalog|accounting")
	importCmd.Flags().StringVar(&importDBPath, "db", "./cmsrd.db", "Path to local SQLite database")

	_ = importCmd.MarkFlagRequired("input")
}
