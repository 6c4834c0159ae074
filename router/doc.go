// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollbooth API.

# Route Registration

NewRouter builds the voting service and returns the API handler, already
wrapped with session token resolution:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health
	GET /

Poll lifecycle (user; edit and delete also accept admins):

	POST   /polls      - Create poll
	PUT    /polls/{id} - Edit poll (owner or admin)
	DELETE /polls/{id} - Delete poll (manager owner or admin)

Listings (user, ?title=&state=all|ongoing|ended&page=N):

	GET /polls            - All polls
	GET /users/{id}/polls - Polls owned by a user
	GET /me/voted         - Polls the caller voted on

Viewing and voting (user):

	GET  /polls/{id}           - Poll and tally (X-Poll-Password for private polls)
	GET  /polls/{id}/result    - Tally only
	POST /polls/{id}/ballots   - Cast ballot {"option": n}
	GET  /polls/{id}/my-ballot - Caller's ballot

Moderation (admin):

	GET  /admin/polls/{id}         - Poll and tally, no password
	POST /admin/polls/{id}/disable - Disable poll
	POST /admin/polls/{id}/enable  - Enable poll
*/
package router
