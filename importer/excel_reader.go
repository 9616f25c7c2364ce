package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads catalog exports saved as Excel workbooks. Catalog
// exports carry the project table on the first sheet.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) ([]Record, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog workbook %s: %w", path, err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("catalog workbook %s has no sheets", path)
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read catalog sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog sheet %s has no header row", sheet)
	}

	return rowsToRecords(rows), nil
}
