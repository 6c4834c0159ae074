// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/pollbooth/cliparse"
	"github.com/danielhkuo/pollbooth/handlers"
	"github.com/danielhkuo/pollbooth/middleware"
	"github.com/danielhkuo/pollbooth/store"
	"github.com/danielhkuo/pollbooth/voting"
)

// NewRouter wires the service and handlers and returns the API handler.
// Bearer session tokens are resolved before any route runs.
func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	svc := voting.NewService(db, store.NewSQLManager(), cfg.PasswordPepper)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll lifecycle
	mux.HandleFunc("POST /polls", middleware.WithLogging(middleware.RequireUser(pollHandler.CreatePoll)))
	mux.HandleFunc("PUT /polls/{id}", middleware.WithLogging(middleware.RequireIdentity(pollHandler.EditPoll)))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(middleware.RequireIdentity(pollHandler.DeletePoll)))

	// Listings
	mux.HandleFunc("GET /polls", middleware.WithLogging(middleware.RequireUser(pollHandler.ListPolls)))
	mux.HandleFunc("GET /users/{id}/polls", middleware.WithLogging(middleware.RequireUser(pollHandler.ListPollsByOwner)))
	mux.HandleFunc("GET /me/voted", middleware.WithLogging(middleware.RequireUser(pollHandler.ListVotedPolls)))

	// Viewing (private polls take X-Poll-Password)
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(middleware.RequireUser(resultsHandler.ViewPoll)))
	mux.HandleFunc("GET /polls/{id}/result", middleware.WithLogging(middleware.RequireUser(resultsHandler.ViewResult)))

	// Voting
	mux.HandleFunc("POST /polls/{id}/ballots", middleware.WithLogging(middleware.RequireUser(votingHandler.CastBallot)))
	mux.HandleFunc("GET /polls/{id}/my-ballot", middleware.WithLogging(middleware.RequireUser(votingHandler.MyBallot)))

	// Admin moderation
	mux.HandleFunc("GET /admin/polls/{id}", middleware.WithLogging(middleware.RequireAdmin(adminHandler.ViewPoll)))
	mux.HandleFunc("POST /admin/polls/{id}/disable", middleware.WithLogging(middleware.RequireAdmin(adminHandler.DisablePoll)))
	mux.HandleFunc("POST /admin/polls/{id}/enable", middleware.WithLogging(middleware.RequireAdmin(adminHandler.EnablePoll)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollbooth API v1"))
	})

	return middleware.WithIdentity([]byte(cfg.SessionSecret))(mux)
}
