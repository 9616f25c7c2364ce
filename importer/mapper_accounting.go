package importer

import (
	"fmt"
	"strings"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// AccountingMapper reads cost-center exports from the accounting system.
// Rows there describe bookable units: the cost-center number doubles as
// the accounting ID and the description column carries "client - name".
type AccountingMapper struct{}

func (m *AccountingMapper) Name() string {
	return "accounting"
}

func (m *AccountingMapper) Map(record Record) (*timesheet.Project, bool, error) {
	costCenter := record.Get("costcenter", "kostenstelle", "number")
	if costCenter == "" {
		return nil, false, nil
	}

	description := record.Get("description", "bezeichnung", "label")
	if description == "" {
		return nil, false, fmt.Errorf("row %d: cost center %s has no description", record.RowNumber, costCenter)
	}

	client, name := splitClientName(description)

	project := &timesheet.Project{
		ID:           StableProjectID(name, client, costCenter),
		Name:         name,
		Code:         record.Get("code", "kuerzel"),
		Client:       client,
		AccountingID: costCenter,
		Active:       !isInactiveStatus(record.Get("status", "state")),
	}

	return project, true, nil
}

// splitClientName splits "client - name" descriptions; a description
// without a separator becomes the project name with an empty client.
func splitClientName(description string) (client, name string) {
	for _, separator := range []string{" - ", " – ", ": "} {
		before, after, found := strings.Cut(description, separator)
		if found {
			return strings.TrimSpace(before), strings.TrimSpace(after)
		}
	}
	return "", strings.TrimSpace(description)
}
