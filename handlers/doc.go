// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollbooth API.

# Handler Types

Each handler is a thin struct over the voting service:

  - PollHandler: create, edit, delete and list polls
  - VotingHandler: cast a ballot, read your own ballot
  - ResultsHandler: view a poll and its tally behind the password guard
  - AdminHandler: ungated view, disable and enable

	svc := voting.NewService(db, store.NewSQLManager(), cfg.PasswordPepper)
	pollHandler := handlers.NewPollHandler(svc)

The caller identity comes from middleware.IdentityFrom; routes are expected
to be wrapped in the matching Require* guard.

# Responses

Every body is an envelope {"status": "ok"|"error", "message", "data"}.
Domain errors map to status codes:

	ErrValidation           → 400
	ErrForbidden            → 403
	ErrNotFound             → 404
	ErrDuplicateVote        → 409
	ErrState                → 409

Anything else is logged and answered with 500 "Database error".
*/
package handlers
