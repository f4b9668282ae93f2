package store

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable is matched (via errors.Is) by every error that comes
// out of the database layer: open, read, write or commit failures.
var ErrStorageUnavailable = errors.New("storage unavailable")

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
