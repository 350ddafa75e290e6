package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
)

var (
	// ErrSecretUnreadable is returned when the password file cannot be read.
	ErrSecretUnreadable = errors.New("database secret unreadable")
	// ErrConnect covers refused connections and authentication failures.
	ErrConnect = errors.New("database connection failed")
	// ErrQuery is returned when a statement fails on an established connection.
	ErrQuery = errors.New("database query failed")
)

// undefinedTable is the SQLSTATE for a relation that does not exist.
const undefinedTable = "42P01"

// IsSecretUnreadable reports whether err came from reading the password file.
func IsSecretUnreadable(err error) bool { return errors.Is(err, ErrSecretUnreadable) }

// IsConnect reports whether err is a connection or authentication failure.
func IsConnect(err error) bool { return errors.Is(err, ErrConnect) }

// IsQuery reports whether err is a statement failure.
func IsQuery(err error) bool { return errors.Is(err, ErrQuery) }

// sqlState returns the SQLSTATE code carried by err, or "" if there is none.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// connectError classifies a failure to obtain a connection. A failing secret
// read keeps its own sentinel so callers can tell the two apart.
func connectError(err error) error {
	if IsSecretUnreadable(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConnect, err)
}
