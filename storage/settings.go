package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SetSetting stores one per-user settings value.
func (s *SQLiteStore) SetSetting(userID, key, value string) error {
	if key == "" {
		return fmt.Errorf("settings key must not be empty")
	}

	const upsertStmt = `
INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value;`

	if _, err := s.db.Exec(upsertStmt, userID, key, value); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

// GetSetting returns one per-user settings value.
func (s *SQLiteStore) GetSetting(userID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM settings WHERE user_id = ? AND key = ?;`,
		userID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query setting %s: %w", key, err)
	}
	return value, true, nil
}

// Settings returns all settings for one user.
func (s *SQLiteStore) Settings(userID string) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings WHERE user_id = ?;`, userID)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return settings, nil
}
