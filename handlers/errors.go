// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollbooth/middleware"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/voting"
)

// statusFor maps a domain error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, voting.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, voting.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, voting.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, voting.ErrDuplicateVote), errors.Is(err, voting.ErrState):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError turns a service error into an error envelope.
// Infrastructure failures are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var domainErr *voting.Error
	if errors.As(err, &domainErr) {
		middleware.ErrorResponse(w, statusFor(domainErr), domainErr.Message)
		return
	}
	slog.Error("request failed", "op", op, "path", r.URL.Path, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

// caller returns the identity attached by the identity middleware
func caller(r *http.Request) models.Identity {
	id, _ := middleware.IdentityFrom(r.Context())
	return id
}

// listQuery reads ?title=&state=&page= from the URL.
// A malformed page is a validation error.
func listQuery(r *http.Request) (voting.ListQuery, error) {
	q := r.URL.Query()
	query := voting.ListQuery{
		Title: q.Get("title"),
		State: q.Get("state"),
	}
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return voting.ListQuery{}, &voting.Error{Kind: voting.ErrValidation, Message: "page must be a positive integer"}
		}
		query.Page = page
	}
	return query, nil
}
