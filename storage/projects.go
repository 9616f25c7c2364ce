package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// SaveProject inserts or updates one project by ID.
func (s *SQLiteStore) SaveProject(project timesheet.Project) error {
	if project.ID == "" {
		return fmt.Errorf("project id must not be empty")
	}

	const upsertStmt = `
INSERT INTO projects (id, name, code, client, accounting_id, active)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	code = excluded.code,
	client = excluded.client,
	accounting_id = excluded.accounting_id,
	active = excluded.active;`

	if _, err := s.db.Exec(
		upsertStmt,
		project.ID, project.Name, project.Code, project.Client, project.AccountingID,
		boolToInt(project.Active),
	); err != nil {
		return fmt.Errorf("save project %s: %w", project.ID, err)
	}
	return nil
}

// SaveProjects upserts a batch, typically one spreadsheet import run.
// Returns how many rows were newly created rather than updated.
func (s *SQLiteStore) SaveProjects(projects []timesheet.Project) (int, error) {
	if len(projects) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	created := 0
	for _, project := range projects {
		if project.ID == "" {
			_ = tx.Rollback()
			return created, fmt.Errorf("project %q has no id", project.Name)
		}

		var exists int
		err := tx.QueryRow(`SELECT COUNT(1) FROM projects WHERE id = ?;`, project.ID).Scan(&exists)
		if err != nil {
			_ = tx.Rollback()
			return created, fmt.Errorf("check project %s: %w", project.ID, err)
		}

		const upsertStmt = `
INSERT INTO projects (id, name, code, client, accounting_id, active)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	code = excluded.code,
	client = excluded.client,
	accounting_id = excluded.accounting_id,
	active = excluded.active;`
		if _, err := tx.Exec(
			upsertStmt,
			project.ID, project.Name, project.Code, project.Client, project.AccountingID,
			boolToInt(project.Active),
		); err != nil {
			_ = tx.Rollback()
			return created, fmt.Errorf("save project %s: %w", project.ID, err)
		}
		if exists == 0 {
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return created, fmt.Errorf("commit transaction: %w", err)
	}
	return created, nil
}

// GetProject returns one project by ID.
func (s *SQLiteStore) GetProject(id string) (timesheet.Project, bool, error) {
	const query = `
SELECT id, name, code, client, accounting_id, active
FROM projects
WHERE id = ?;`

	var (
		project timesheet.Project
		active  int
	)
	err := s.db.QueryRow(query, id).Scan(
		&project.ID, &project.Name, &project.Code, &project.Client, &project.AccountingID, &active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timesheet.Project{}, false, nil
		}
		return timesheet.Project{}, false, fmt.Errorf("query project %s: %w", id, err)
	}
	project.Active = active != 0

	return project, true, nil
}

// ListProjects returns all projects ordered by client then name.
func (s *SQLiteStore) ListProjects() ([]timesheet.Project, error) {
	const query = `
SELECT id, name, code, client, accounting_id, active
FROM projects
ORDER BY client, name, id;`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]timesheet.Project, 0, 16)
	for rows.Next() {
		var (
			project timesheet.Project
			active  int
		)
		if err := rows.Scan(
			&project.ID, &project.Name, &project.Code, &project.Client, &project.AccountingID, &active,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		project.Active = active != 0
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// SetProjectActive toggles a project in or out of the allocation picker.
func (s *SQLiteStore) SetProjectActive(id string, active bool) error {
	res, err := s.db.Exec(`UPDATE projects SET active = ? WHERE id = ?;`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("update project %s: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteProject removes the project and strips its allocations from
// every day. Day records themselves are left in place, possibly with an
// empty allocation list.
func (s *SQLiteStore) DeleteProject(id string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM projects WHERE id = ?;`, id)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete project %s: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	if rowsAffected == 0 {
		_ = tx.Rollback()
		return 0, ErrProjectNotFound
	}

	allocationRes, err := tx.Exec(`DELETE FROM allocations WHERE project_id = ?;`, id)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("strip allocations for project %s: %w", id, err)
	}
	stripped, err := allocationRes.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read stripped row count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return int(stripped), nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
