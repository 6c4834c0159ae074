// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollbooth/middleware"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/voting"
)

type PollHandler struct {
	svc *voting.Service
}

func NewPollHandler(svc *voting.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.PollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.svc.CreatePoll(r.Context(), caller(r), req)
	if err != nil {
		writeError(w, r, "create poll", err)
		return
	}

	middleware.OKResponse(w, http.StatusCreated, "Poll created", models.PollResponse{Poll: poll})
}

// EditPoll handles PUT /polls/{id}
func (h *PollHandler) EditPoll(w http.ResponseWriter, r *http.Request) {
	var req models.PollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.svc.EditPoll(r.Context(), caller(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, "edit poll", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Poll updated", models.PollResponse{Poll: poll})
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePoll(r.Context(), caller(r), r.PathValue("id")); err != nil {
		writeError(w, r, "delete poll", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Poll deleted", nil)
}

// ListPolls handles GET /polls?title=&state=&page=
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, "list polls", err)
		return
	}

	polls, err := h.svc.ListPolls(r.Context(), q)
	if err != nil {
		writeError(w, r, "list polls", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Polls found", models.PollListResponse{Polls: polls})
}

// ListPollsByOwner handles GET /users/{id}/polls
func (h *PollHandler) ListPollsByOwner(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, "list polls", err)
		return
	}

	polls, err := h.svc.ListPollsByOwner(r.Context(), r.PathValue("id"), q)
	if err != nil {
		writeError(w, r, "list polls by owner", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Polls found", models.PollListResponse{Polls: polls})
}

// ListVotedPolls handles GET /me/voted
func (h *PollHandler) ListVotedPolls(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, "list polls", err)
		return
	}

	polls, err := h.svc.ListPollsVotedByUser(r.Context(), caller(r), q)
	if err != nil {
		writeError(w, r, "list voted polls", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Polls found", models.PollListResponse{Polls: polls})
}
