package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/output"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var (
	exportMonth  string
	exportFormat string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the monthly report grid to CSV/Excel",
	Long: `Export one month as a grid: one column per day, one row per project grouped
under its client, with totals and percentage shares. The Excel variant merges
the day columns on client header rows.

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export March 2026 to CSV
  cmsrd export --month 2026-03 --db ./cmsrd.db --output ./march.csv

  # Export to Excel
  cmsrd export --month 2026-03 --output ./march.xlsx

  # Force Excel format independent of extension
  cmsrd export --month 2026-03 --format excel --output ./march.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		all, err := store.AllAllocations(currentUserID())
		if err != nil {
			return err
		}
		projects, err := store.ListProjects()
		if err != nil {
			return err
		}

		grid, err := output.BuildReportGrid(all, projects, exportMonth)
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, grid); err != nil {
			return err
		}

		fmt.Printf("Export completed. Month: %s, Format: %s, File: %s\n", exportMonth, format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Month to export, format YYYY-MM")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./cmsrd.db", "Path to local SQLite database")

	_ = exportCmd.MarkFlagRequired("month")
	_ = exportCmd.MarkFlagRequired("output")
}
