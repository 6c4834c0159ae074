// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollbooth/middleware"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/voting"
)

type ResultsHandler struct {
	svc *voting.Service
}

func NewResultsHandler(svc *voting.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// ViewPoll handles GET /polls/{id}
// Private polls need the X-Poll-Password header unless the caller is the managing owner.
func (h *ResultsHandler) ViewPoll(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ViewPoll(r.Context(), caller(r), r.PathValue("id"), r.Header.Get(middleware.PollPasswordHeader))
	if err != nil {
		writeError(w, r, "view poll", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Poll found", models.PollViewResponse{
		Poll:   view.Poll,
		Result: view.Result,
	})
}

// ViewResult handles GET /polls/{id}/result
func (h *ResultsHandler) ViewResult(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	result, err := h.svc.ViewResult(r.Context(), caller(r), pollID, r.Header.Get(middleware.PollPasswordHeader))
	if err != nil {
		writeError(w, r, "view result", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Result found", models.ResultResponse{
		PollID: pollID,
		Result: result,
	})
}
