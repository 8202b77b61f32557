package postgresql

import (
	"fmt"

	"github.com/google/uuid"
)

// newID returns a time-ordered UUIDv7 for a new row of the named entity.
func newID(entity string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate %s id: %w", entity, err)
	}
	return id.String(), nil
}
