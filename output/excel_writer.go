package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, grid ReportGrid) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	headers := append([]string{"Client / Project"}, dayLabels(grid.Dates)...)
	headers = append(headers, "Total", "Percent")
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	totalCol := len(grid.Dates) + 2
	percentCol := len(grid.Dates) + 3

	rowNumber := 2
	for _, row := range grid.Rows {
		if err := writeExcelRow(file, sheet, rowNumber, row, totalCol, percentCol); err != nil {
			return err
		}
		// Client header rows span the otherwise empty day columns.
		if row.Kind == RowClient && len(grid.Dates) > 0 {
			from, _ := excelize.CoordinatesToCellName(2, rowNumber)
			to, _ := excelize.CoordinatesToCellName(totalCol-1, rowNumber)
			if err := file.MergeCell(sheet, from, to); err != nil {
				return fmt.Errorf("merge client cells %s:%s: %w", from, to, err)
			}
		}
		rowNumber++
	}

	if err := writeExcelRow(file, sheet, rowNumber, grid.TotalRow, totalCol, percentCol); err != nil {
		return err
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

func writeExcelRow(file *excelize.File, sheet string, rowNumber int, row GridRow, totalCol, percentCol int) error {
	labelCell, _ := excelize.CoordinatesToCellName(1, rowNumber)
	if err := file.SetCellValue(sheet, labelCell, row.Label); err != nil {
		return fmt.Errorf("set excel value %s: %w", labelCell, err)
	}

	for i, value := range row.Cells {
		if value == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+2, rowNumber)
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set excel value %s: %w", cell, err)
		}
	}

	totalCell, _ := excelize.CoordinatesToCellName(totalCol, rowNumber)
	if err := file.SetCellValue(sheet, totalCell, row.Total); err != nil {
		return fmt.Errorf("set excel value %s: %w", totalCell, err)
	}
	percentCell, _ := excelize.CoordinatesToCellName(percentCol, rowNumber)
	if err := file.SetCellValue(sheet, percentCell, FormatPercent(row.Percent)); err != nil {
		return fmt.Errorf("set excel value %s: %w", percentCell, err)
	}

	return nil
}
