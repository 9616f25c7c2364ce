package importer

import (
	"strings"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// CatalogMapper reads project catalog sheets with explicit name, client,
// code, and cost-center columns.
type CatalogMapper struct{}

func (m *CatalogMapper) Name() string {
	return "catalog"
}

func (m *CatalogMapper) Map(record Record) (*timesheet.Project, bool, error) {
	name := record.Get("name", "project", "projectname")
	if name == "" {
		return nil, false, nil
	}

	client := record.Get("client", "customer", "account")
	accountingID := record.Get("accountingid", "costcenter", "kostenstelle")

	project := &timesheet.Project{
		ID:           StableProjectID(name, client, accountingID),
		Name:         name,
		Code:         record.Get("code", "projectcode", "shortcode"),
		Client:       client,
		AccountingID: accountingID,
		Active:       !isInactiveStatus(record.Get("status", "state")),
	}

	return project, true, nil
}

func isInactiveStatus(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "inactive", "closed", "archived", "0", "false":
		return true
	default:
		return false
	}
}
