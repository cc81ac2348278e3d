// Package ids guards uuid columns: Postgres rejects malformed uuids with a
// syntax error, which callers should see as "not found" instead.
package ids

import "github.com/google/uuid"

func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
