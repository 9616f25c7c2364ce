package importer

import (
	"strings"
)

// Record is one spreadsheet row with header-keyed cell values. Header
// lookup is tolerant of case, spaces, dashes, and underscores.
type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// rowsToRecords turns a header row plus data rows into Records keyed by
// normalized header. Short rows are padded with empty cells so every
// record answers for every header. RowNumber counts from the top of the
// file, so the first data row is 2.
func rowsToRecords(rows [][]string) []Record {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for col, header := range headers {
			if col < len(row) {
				values[header] = row[col]
			} else {
				values[header] = ""
			}
		}
		records = append(records, Record{RowNumber: i + 2, Values: values})
	}
	return records
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
