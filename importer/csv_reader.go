package importer

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVReader reads catalog exports saved as CSV. The first row is the
// header; column counts may vary per row.
type CSVReader struct{}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv %s: %w", path, err)
	}
	defer file.Close()

	parser := csv.NewReader(file)
	parser.FieldsPerRecord = -1

	rows, err := parser.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog csv %s has no header row", path)
	}

	return rowsToRecords(rows), nil
}
