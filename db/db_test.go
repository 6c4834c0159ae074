// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(context.Background(), TypeSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"app.db", "app.db?" + sqliteParams},
		{"file:x?mode=memory", "file:x?mode=memory&" + sqliteParams},
		{"app.db?_pragma=journal_mode(WAL)", "app.db?_pragma=journal_mode(WAL)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SQLiteDSN(tt.in), tt.in)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
}

func TestMigrate_CreatesTables(t *testing.T) {
	conn := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, conn, TypeSQLite))
	// Second run is a no-op
	require.NoError(t, Migrate(ctx, conn, TypeSQLite))

	for _, table := range []string{"poll", "ballot"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}
}

func TestMigrate_BallotUniquePerVoter(t *testing.T) {
	conn := openMemory(t)
	require.NoError(t, Migrate(context.Background(), conn, TypeSQLite))

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, content, owner_id, end_at, created_at, updated_at)
		VALUES ('p1', 't', '{"options":["a","b"]}', 'u1', '2030-01-01 00:00:00', '2025-01-01 00:00:00', '2025-01-01 00:00:00')
	`)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO ballot (id, poll_id, voter_id, option_index, cast_at) VALUES ('b1', 'p1', 'v1', 0, '2025-01-01 00:00:00')`)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO ballot (id, poll_id, voter_id, option_index, cast_at) VALUES ('b2', 'p1', 'v1', 1, '2025-01-01 00:00:00')`)
	require.Error(t, err, "second ballot for the same voter must violate the unique constraint")

	// Foreign keys are enforced
	_, err = conn.Exec(`INSERT INTO ballot (id, poll_id, voter_id, option_index, cast_at) VALUES ('b3', 'missing', 'v2', 0, '2025-01-01 00:00:00')`)
	require.Error(t, err)
}

func TestMigrate_Error(t *testing.T) {
	conn := openMemory(t)

	orig := gooseUp
	gooseUp = func(ctx context.Context, p *goose.Provider) ([]*goose.MigrationResult, error) {
		if len(p.ListSources()) == 0 {
			return nil, errors.New("no migrations found")
		}
		return nil, errors.New("boom")
	}
	defer func() { gooseUp = orig }()

	err := Migrate(context.Background(), conn, TypeSQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestGooseDialect(t *testing.T) {
	assert.Equal(t, goose.DialectSQLite3, gooseDialect(TypeSQLite))
	assert.Equal(t, goose.DialectPostgres, gooseDialect(TypePostgres))
	assert.Equal(t, goose.DialectPostgres, gooseDialect(TypePGX))
}

func TestMigrate_ParallelDatabases(t *testing.T) {
	for _, name := range []string{"alpha", "beta", "gamma", "delta"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			conn, err := Open(context.Background(), TypeSQLite, "file:parallel_"+name+"?mode=memory&cache=shared")
			require.NoError(t, err)
			t.Cleanup(func() { _ = conn.Close() })

			require.NoError(t, Migrate(context.Background(), conn, TypeSQLite))

			var n int
			require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM poll`).Scan(&n))
			assert.Zero(t, n)
		})
	}
}
