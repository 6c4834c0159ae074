// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages the schema.

# Drivers

Open picks a database/sql driver from the configured type:

  - sqlite: modernc.org/sqlite (pure Go, default; foreign keys enabled)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

# Migrations

The schema ships as goose migrations embedded in the binary:

	if err := db.Migrate(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - goose tracks applied versions.

# Tables

  - poll: Poll metadata, options (JSON), privacy and lifecycle flags
  - ballot: One ballot per voter per poll

# Relationships

	poll 1──* ballot

ballot.poll_id uses ON DELETE CASCADE. UNIQUE (poll_id, voter_id) on ballot
is the authoritative one-vote-per-user guard.

# Indexes

  - poll.owner_id
  - poll.end_at
  - poll.created_at
  - ballot.poll_id
  - ballot.voter_id
*/
package db
