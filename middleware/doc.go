// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets a request_id (from X-Request-ID or 16 random hex characters) that is
logged with the client IP, status and duration_ms and echoed back in the
X-Request-ID response header.

# Identity

WithIdentity resolves an "Authorization: Bearer <token>" session token into a
models.Identity on the request context. Requests without the header pass
through anonymously; bad tokens get a 401. Routes then pick a guard:

	mux.HandleFunc("POST /polls", middleware.RequireUser(h.CreatePoll))
	mux.HandleFunc("GET /admin/polls/{id}", middleware.RequireAdmin(h.AdminViewPoll))

Handlers read the caller with IdentityFrom(r.Context()).

# CORS Middleware

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization and X-Poll-Password.

# Envelope Helpers

Every JSON body is an envelope {"status", "message", "data"}:

	middleware.OKResponse(w, http.StatusOK, "Poll found", data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
*/
package middleware
