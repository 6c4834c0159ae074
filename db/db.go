// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Database types accepted by Open and Migrate
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypePGX      = "pgx"
)

const sqliteParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// driverName maps a database type to its database/sql driver
func driverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	case TypePGX:
		return "pgx", nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

// gooseDialect maps a database type to its goose dialect
func gooseDialect(dbType string) goose.Dialect {
	if dbType == TypeSQLite {
		return goose.DialectSQLite3
	}
	return goose.DialectPostgres
}

// SQLiteDSN appends the parameters the schema relies on (foreign keys, busy
// timeout, sortable time format) unless the DSN already sets pragmas of its own.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqliteParams
}

// Open connects to the database and verifies the connection
func Open(ctx context.Context, dbType, dsn string) (*sql.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}
	if dbType == TypeSQLite {
		dsn = SQLiteDSN(dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	// sqlite allows a single writer; in-memory databases live on one connection
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}

	return conn, nil
}

// gooseUp is a seam for testing Provider.Up
var gooseUp = func(ctx context.Context, p *goose.Provider) ([]*goose.MigrationResult, error) {
	return p.Up(ctx)
}

// Migrate applies the embedded migrations.
// Safe to call multiple times and from parallel tests; goose records applied
// versions and each call gets its own provider.
func Migrate(ctx context.Context, conn *sql.DB, dbType string) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect(dbType), conn, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := gooseUp(ctx, provider)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, res := range results {
		slog.Info("migration applied",
			"component", "migrations",
			"version", res.Source.Version,
			"duration_ms", res.Duration.Milliseconds(),
		)
	}
	return nil
}
