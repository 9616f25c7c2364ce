package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Projects       []timesheet.Project
}

// Run reads the given spreadsheet files and maps their rows into
// Project records. Rows mapping to an already-seen project ID within
// the run overwrite the earlier one, so repeated rows in one export do
// not multiply identities.
func Run(paths []string, format string, mapper Mapper) (*Result, error) {
	result := &Result{Projects: make([]timesheet.Project, 0, 32)}
	indexByID := make(map[string]int)

	for _, path := range paths {
		sourceFormat, err := inferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		records, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			project, ok, mapErr := mapper.Map(record)
			if mapErr != nil {
				return nil, fmt.Errorf("%s: %w", path, mapErr)
			}
			if !ok || project == nil {
				result.RowsSkipped++
				continue
			}

			result.RowsMapped++
			if index, seen := indexByID[project.ID]; seen {
				result.Projects[index] = *project
				continue
			}
			indexByID[project.ID] = len(result.Projects)
			result.Projects = append(result.Projects, *project)
		}
	}

	return result, nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
