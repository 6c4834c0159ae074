// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/pollbooth/auth"
	"github.com/danielhkuo/pollbooth/dbx"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/store"
)

// Service implements the poll lifecycle, ballots, tallies and the
// private-poll access guard on top of the stores.
type Service struct {
	db     *sql.DB
	repos  store.Manager
	pepper string
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(db *sql.DB, repos store.Manager, pepper string, opts ...Option) *Service {
	s := &Service{
		db:     db,
		repos:  repos,
		pepper: pepper,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

func (s *Service) digest(password string) string {
	if password == "" {
		return ""
	}
	return auth.DigestPassword(password, s.pepper)
}

// getPoll loads a poll, turning a store miss into ErrNotFound
func (s *Service) getPoll(ctx context.Context, db dbx.DBTX, pollID string) (*models.Poll, error) {
	if pollID == "" {
		return nil, invalid("poll id is required")
	}
	poll, err := s.repos.Polls(db).Get(ctx, pollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(ErrNotFound, "poll not found")
		}
		return nil, fmt.Errorf("load poll %s: %w", pollID, err)
	}
	return poll, nil
}

// requireUser rejects callers that are not an ordinary user
func requireUser(caller models.Identity) error {
	if caller.UserID == "" || caller.Admin {
		return newError(ErrForbidden, "a user account is required")
	}
	return nil
}
