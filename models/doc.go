// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - PollRequest: title, content, is_private, password, anonymous, end_at
  - CastBallotRequest: option (kept raw for validation)

# Response Types

Every response is wrapped in an Envelope:

	{"status": "ok" | "error", "message": "...", "data": {...}}

Payloads placed in Envelope.Data:

  - PollResponse: poll
  - PollListResponse: polls
  - PollViewResponse: poll, result
  - ResultResponse: poll_id, result
  - BallotResponse: ballot

# Domain Types

  - Poll: title, options, owner, privacy and lifecycle flags
  - PollContent: ordered option labels and an optional description
  - Ballot: one voter's option index for one poll
  - Identity: authenticated caller (user id and role, or admin)

The password digest on Poll is never serialized.

# Constants

Envelope status:

	StatusOK    = "ok"
	StatusError = "error"

Listing windows:

	StateAll     = "all"
	StateOngoing = "ongoing"
	StateEnded   = "ended"

Roles:

	RoleMember  = "member"
	RoleManager = "manager"
*/
package models
