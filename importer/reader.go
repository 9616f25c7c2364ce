package importer

import "fmt"

// Reader loads the rows of a project catalog export.
type Reader interface {
	Read(path string) ([]Record, error)
}

// ReaderForFormat picks a reader by export format name. Format matching
// reuses the header normalization, so "CSV" and "csv" are the same.
func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("no reader for catalog format %q", format)
	}
}
