// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollbooth/middleware"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/voting"
)

type VotingHandler struct {
	svc *voting.Service
}

func NewVotingHandler(svc *voting.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// CastBallot handles POST /polls/{id}/ballots
func (h *VotingHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	option, err := voting.ParseOptionIndex(req.Option)
	if err != nil {
		writeError(w, r, "cast ballot", err)
		return
	}

	ballot, err := h.svc.CastBallot(r.Context(), caller(r), r.PathValue("id"), option)
	if err != nil {
		writeError(w, r, "cast ballot", err)
		return
	}

	middleware.OKResponse(w, http.StatusCreated, "Ballot cast", models.BallotResponse{Ballot: ballot})
}

// MyBallot handles GET /polls/{id}/my-ballot
func (h *VotingHandler) MyBallot(w http.ResponseWriter, r *http.Request) {
	ballot, err := h.svc.MyBallot(r.Context(), caller(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "my ballot", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Ballot found", models.BallotResponse{Ballot: ballot})
}
