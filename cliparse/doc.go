// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string or sqlite file (required)
  - DatabaseType: sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - SessionSecret: HMAC secret for session tokens (required)
  - PasswordPepper: Server-side pepper for poll password digests (required)
  - LogLevel, LogFormat: slog handler settings

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--session-secret  Session token secret
	--pepper          Poll password pepper
	--log-level       debug, info, warn, error
	--log-format      text or json

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	SESSION_SECRET  → --session-secret
	PASSWORD_PEPPER → --pepper
	LOG_LEVEL       → --log-level
	LOG_FORMAT      → --log-format

CLI flags take precedence over environment variables. LoadDotEnv can seed the
environment from a .env file before parsing; it never overrides variables that
are already set.

# Validation

ParseFlags returns an error if required values are missing or the database
type is unknown.
*/
package cliparse
