package repository

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// ErrNotFound is what every repository wraps when a lookup matches no
// row. It is the apperr sentinel, so callers can branch with errors.Is
// against either name.
var ErrNotFound = apperr.ErrNotFound

// writeErr wraps a write failure, translating SQLite constraint codes
// into the error taxonomy: UNIQUE and PRIMARY KEY violations become
// ErrConflict, the rest (foreign key, check, not null) become
// ErrInvalidArgument.
func writeErr(op string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w: %v", op, apperr.ErrConflict, err)
		default:
			return fmt.Errorf("%s: %w: %v", op, apperr.ErrInvalidArgument, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
