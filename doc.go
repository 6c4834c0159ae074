// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollbooth API server.

pollbooth is a polling service: users create multiple-choice polls, cast one
ballot per poll and read live tallies. Private polls are guarded by a
password; admins can disable abusive polls.

# Starting the Server

Configuration comes from flags, the environment, or a .env file:

	DATABASE_URL=pollbooth.db SESSION_SECRET=... PASSWORD_PEPPER=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-secret ... -pepper ...

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string or sqlite file path
  - SESSION_SECRET (-session-secret): HS256 key for session tokens
  - PASSWORD_PEPPER (-pepper): pepper for poll password digests

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - LOG_LEVEL (-log-level): debug, info, warn or error
  - LOG_FORMAT (-log-format): text or json

# Architecture

  - voting: poll lifecycle, access guard, ballots and tallies
  - store: poll and ballot repositories on database/sql
  - dbx: shared DB interface and transaction helper
  - db: connection setup and embedded goose migrations
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, identity, CORS and envelope helpers
  - models: request, response and domain types
  - auth: password digests and session tokens
  - cliparse: Configuration parsing
*/
package main
