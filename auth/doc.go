// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password digests, session tokens and ID generation.

# Password Digests

Private polls store a one-way digest of their password:

	digest := auth.DigestPassword(password, pepper)
	ok := auth.MatchPassword(candidate, digest, pepper)

The digest is argon2id keyed with the server pepper and hex encoded. It is
deterministic, so checking a password means comparing digests; plaintext is
never stored or compared. An empty stored digest never matches.

# Session Tokens

Callers are identified by HS256 JWTs issued by the account service:

	token, err := auth.IssueSessionToken(models.Identity{UserID: "u1", Role: models.RoleManager}, secret, time.Hour)
	id, err := auth.ParseSessionToken(token, secret)

Claims carry the user id (uid), role and an admin flag (adm). Tokens without a
role are treated as ordinary members.

# ID Generation

Random hex IDs, used for request ids:

	id, err := auth.GenerateID(8)  // 16 hex characters
*/
package auth
