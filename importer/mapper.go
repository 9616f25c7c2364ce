package importer

import (
	"fmt"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// Mapper turns one spreadsheet row into a Project record. A (nil,
// false, nil) return skips the row without failing the import.
type Mapper interface {
	Name() string
	Map(record Record) (*timesheet.Project, bool, error)
}

func SupportedMapperNames() []string {
	return []string{"catalog", "accounting"}
}

func MapperByName(name string) (Mapper, error) {
	switch normalizeHeader(name) {
	case "catalog":
		return &CatalogMapper{}, nil
	case "accounting":
		return &AccountingMapper{}, nil
	default:
		return nil, fmt.Errorf("unsupported mapper: %s", name)
	}
}
