// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/pollbooth/dbx"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/store"
)

// Accepted end time layouts; layouts without a zone are read as UTC
var endAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseEndAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range endAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// validateFields applies the rules shared by create and edit, in order,
// and returns the parsed end time.
func validateFields(req models.PollRequest, withContent bool, now time.Time) (time.Time, error) {
	if strings.TrimSpace(req.Title) == "" {
		return time.Time{}, invalid("title is required")
	}
	if withContent {
		if req.Content == nil {
			return time.Time{}, invalid("content is required")
		}
		if len(req.Content.Options) == 0 {
			return time.Time{}, invalid("options are required")
		}
		for i, label := range req.Content.Options {
			if strings.TrimSpace(label) == "" {
				return time.Time{}, invalid(fmt.Sprintf("option %d is empty", i))
			}
		}
	}
	if req.IsPrivate && req.Password == "" {
		return time.Time{}, invalid("password is required for a private poll")
	}
	if strings.TrimSpace(req.EndAt) == "" {
		return time.Time{}, invalid("end time is required")
	}
	endAt, ok := parseEndAt(req.EndAt)
	if !ok {
		return time.Time{}, invalid("end time is not a valid timestamp")
	}
	if !endAt.After(now) {
		return time.Time{}, invalid("end time must be in the future")
	}
	return endAt, nil
}

// CreatePoll validates the request and stores a new active poll owned by the caller
func (s *Service) CreatePoll(ctx context.Context, caller models.Identity, req models.PollRequest) (*models.Poll, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}

	now := s.clock()
	endAt, err := validateFields(req, true, now)
	if err != nil {
		return nil, err
	}

	options := make([]string, len(req.Content.Options))
	for i, label := range req.Content.Options {
		options[i] = strings.TrimSpace(label)
	}

	poll := &models.Poll{
		Title: strings.TrimSpace(req.Title),
		Content: models.PollContent{
			Description: req.Content.Description,
			Options:     options,
		},
		OwnerID:        caller.UserID,
		IsPrivate:      req.IsPrivate,
		PasswordDigest: s.digest(req.Password),
		Anonymous:      req.Anonymous,
		IsActive:       true,
		EndAt:          endAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repos.Polls(s.db).Insert(ctx, poll); err != nil {
		return nil, fmt.Errorf("insert poll: %w", err)
	}

	slog.Info("poll created", "poll_id", poll.ID, "owner_id", poll.OwnerID, "options", len(options))
	return poll, nil
}

// EditPoll overwrites title, privacy, password, anonymity and end time.
// Options cannot be changed. Only the owner or an admin may edit.
func (s *Service) EditPoll(ctx context.Context, caller models.Identity, pollID string, req models.PollRequest) (*models.Poll, error) {
	var poll *models.Poll
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		poll, err = s.getPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if !caller.Admin && (caller.UserID == "" || caller.UserID != poll.OwnerID) {
			return newError(ErrForbidden, "only the owner can edit this poll")
		}

		now := s.clock()
		endAt, err := validateFields(req, false, now)
		if err != nil {
			return err
		}

		poll.Title = strings.TrimSpace(req.Title)
		poll.IsPrivate = req.IsPrivate
		poll.PasswordDigest = s.digest(req.Password)
		poll.Anonymous = req.Anonymous
		poll.EndAt = endAt
		poll.UpdatedAt = now

		if err := s.repos.Polls(tx).Update(ctx, poll); err != nil {
			return fmt.Errorf("update poll: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("poll edited", "poll_id", poll.ID, "editor", caller.UserID, "admin", caller.Admin)
	return poll, nil
}

// ListQuery holds the optional listing filters
type ListQuery struct {
	Title string
	State string // all, ongoing or ended
	Page  int    // 1-indexed; <= 0 lists everything
}

func (s *Service) filter(q ListQuery) (store.PollFilter, error) {
	f := store.PollFilter{
		TitleContains: strings.TrimSpace(q.Title),
		Page:          q.Page,
	}
	now := s.clock()
	switch q.State {
	case "", models.StateAll:
	case models.StateOngoing:
		f.EndAfter = &now
	case models.StateEnded:
		f.EndNotAfter = &now
	default:
		return store.PollFilter{}, invalid("state must be one of: all, ongoing, ended")
	}
	return f, nil
}

func (s *Service) list(ctx context.Context, f store.PollFilter) ([]models.Poll, error) {
	polls, err := s.repos.Polls(s.db).List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	return polls, nil
}

// ListPolls lists every poll matching the query
func (s *Service) ListPolls(ctx context.Context, q ListQuery) ([]models.Poll, error) {
	f, err := s.filter(q)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, f)
}

// ListPollsByOwner lists the polls created by one user
func (s *Service) ListPollsByOwner(ctx context.Context, ownerID string, q ListQuery) ([]models.Poll, error) {
	if ownerID == "" {
		return nil, invalid("owner id is required")
	}
	f, err := s.filter(q)
	if err != nil {
		return nil, err
	}
	f.OwnerID = ownerID
	return s.list(ctx, f)
}

// ListPollsVotedByUser lists the polls the caller has cast a ballot on
func (s *Service) ListPollsVotedByUser(ctx context.Context, caller models.Identity, q ListQuery) ([]models.Poll, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	f, err := s.filter(q)
	if err != nil {
		return nil, err
	}
	f.VotedBy = caller.UserID
	return s.list(ctx, f)
}

// SetActive enables or disables a poll. Setting the flag to its current
// value is rejected with ErrState.
func (s *Service) SetActive(ctx context.Context, pollID string, active bool) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		poll, err := s.getPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if poll.IsActive == active {
			if active {
				return newError(ErrState, "poll is not disabled")
			}
			return newError(ErrState, "poll is already disabled")
		}

		poll.IsActive = active
		poll.UpdatedAt = s.clock()
		if err := s.repos.Polls(tx).Update(ctx, poll); err != nil {
			return fmt.Errorf("update poll: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("poll active flag changed", "poll_id", pollID, "active", active)
	return nil
}

// DeletePoll removes a poll and its ballots. Admins may delete any poll;
// users only polls they own while holding the manager role.
func (s *Service) DeletePoll(ctx context.Context, caller models.Identity, pollID string) error {
	var removed int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		poll, err := s.getPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if !caller.Admin && !(caller.IsManager() && caller.UserID == poll.OwnerID) {
			return newError(ErrForbidden, "insufficient permissions")
		}

		removed, err = s.repos.Ballots(tx).DeleteByPoll(ctx, poll.ID)
		if err != nil {
			return fmt.Errorf("delete ballots: %w", err)
		}
		if err := s.repos.Polls(tx).Delete(ctx, poll.ID); err != nil {
			return fmt.Errorf("delete poll: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("poll deleted", "poll_id", pollID, "by", caller.UserID, "admin", caller.Admin, "ballots", removed)
	return nil
}
