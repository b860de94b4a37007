package ingest

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ConflictError is a natural-key uniqueness violation, e.g. two concurrent
// first-time inserts of the same title id racing inside their own
// transactions. Surfaced, never retried: re-invoking the whole add is safe
// because resolution is by natural key.
type ConflictError struct {
	Key string
	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Key, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// classify maps sqlite uniqueness violations onto ConflictError and leaves
// everything else (including CHECK length failures) as a wrapped error.
func classify(key string, err error) error {
	if err == nil {
		return nil
	}
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &ConflictError{Key: key, Err: err}
		}
	}
	return fmt.Errorf("%s: %w", key, err)
}
