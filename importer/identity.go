package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// StableProjectID derives a content-addressed project ID from the
// fields that identify a project in the real world. Re-importing the
// same project from any month's spreadsheet resolves to the same
// identity; the import period is deliberately not part of the key.
func StableProjectID(name, client, accountingID string) string {
	sum := sha256.Sum256([]byte(
		normalizeIdentity(name) + "\n" + normalizeIdentity(client) + "\n" + normalizeIdentity(accountingID),
	))
	return "p-" + hex.EncodeToString(sum[:12])
}

// NewProjectID returns a random ID for projects created by hand, which
// have no spreadsheet identity to derive from.
func NewProjectID() string {
	return "p-" + uuid.NewString()
}

func normalizeIdentity(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}
