package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, grid ReportGrid) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := append([]string{"Client / Project"}, dayLabels(grid.Dates)...)
	headers = append(headers, "Total", "Percent")
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range grid.Rows {
		if err := writer.Write(csvRow(row, len(grid.Dates))); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	if err := writer.Write(csvRow(grid.TotalRow, len(grid.Dates))); err != nil {
		return fmt.Errorf("write csv total row: %w", err)
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func csvRow(row GridRow, dayCount int) []string {
	out := make([]string, 0, dayCount+3)
	out = append(out, row.Label)
	for i := 0; i < dayCount; i++ {
		if i < len(row.Cells) {
			out = append(out, row.Cells[i])
		} else {
			out = append(out, "")
		}
	}
	out = append(out, row.Total, FormatPercent(row.Percent))
	return out
}

func dayLabels(dates []string) []string {
	labels := make([]string, 0, len(dates))
	for _, date := range dates {
		labels = append(labels, strings.TrimPrefix(date[8:], "0"))
	}
	return labels
}
