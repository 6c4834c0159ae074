// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollbooth/middleware"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/voting"
)

// AdminHandler serves the admin-only poll routes. Routes must be wrapped
// with middleware.RequireAdmin.
type AdminHandler struct {
	svc *voting.Service
}

func NewAdminHandler(svc *voting.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ViewPoll handles GET /admin/polls/{id}, skipping the private-poll password
func (h *AdminHandler) ViewPoll(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.AdminViewPoll(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "admin view poll", err)
		return
	}

	middleware.OKResponse(w, http.StatusOK, "Poll found", models.PollViewResponse{
		Poll:   view.Poll,
		Result: view.Result,
	})
}

// DisablePoll handles POST /admin/polls/{id}/disable
func (h *AdminHandler) DisablePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SetActive(r.Context(), r.PathValue("id"), false); err != nil {
		writeError(w, r, "disable poll", err)
		return
	}
	middleware.OKResponse(w, http.StatusOK, "Poll disabled", nil)
}

// EnablePoll handles POST /admin/polls/{id}/enable
func (h *AdminHandler) EnablePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SetActive(r.Context(), r.PathValue("id"), true); err != nil {
		writeError(w, r, "enable poll", err)
		return
	}
	middleware.OKResponse(w, http.StatusOK, "Poll enabled", nil)
}
