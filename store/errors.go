// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a unique or primary key
// constraint failure from any of the supported drivers.
func isUniqueViolation(err error) bool {
	return sqlState(err) == pgUniqueViolation
}

// isForeignKeyViolation reports whether err is a foreign key failure
func isForeignKeyViolation(err error) bool {
	return sqlState(err) == pgForeignKeyViolation
}

// sqlState extracts a PostgreSQL-style SQLSTATE from a driver error.
// sqlite extended result codes are mapped onto the matching SQLSTATE.
func sqlState(err error) string {
	if err == nil {
		return ""
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return pgUniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return pgForeignKeyViolation
		}
		// primary code only: fall back to the message
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := liteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE constraint failed"):
				return pgUniqueViolation
			case strings.Contains(msg, "FOREIGN KEY constraint failed"):
				return pgForeignKeyViolation
			}
		}
	}

	return ""
}
