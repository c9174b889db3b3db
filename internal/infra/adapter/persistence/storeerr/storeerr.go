// Package storeerr classifies driver failures shared by the SQL adapters.
package storeerr

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"williampedia/internal/domain/entity"
)

// IsUnavailable reports whether err means the store could not be reached or
// the connection broke, as opposed to a query or data error.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Wrap prefixes err with op. Unavailability additionally wraps
// entity.ErrStoreUnavailable so callers can branch with errors.Is.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Conflict wraps err as a duplicate-key failure.
func Conflict(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, entity.ErrConflict, err)
}
