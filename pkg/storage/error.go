package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrInvalidID is returned for puzzle IDs that cannot name a stored table.
var ErrInvalidID = errors.New("invalid puzzle id")

// NotFoundError is returned when a puzzle doesn't exist in the store.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "puzzle not found"
	}

	return "puzzle not found: " + e.ID
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ValidateID checks that id is usable as a key by every driver, including
// as a single directory name.
func ValidateID(id string) error {
	if id == "" || id == "." || strings.ContainsAny(id, `/\`) || !fs.ValidPath(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
