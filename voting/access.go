// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"

	"github.com/danielhkuo/pollbooth/auth"
	"github.com/danielhkuo/pollbooth/models"
)

// PollView is a poll together with its current tally
type PollView struct {
	Poll   *models.Poll
	Result []int
}

// CanView reports whether the caller may see a poll's content and result.
// Public polls are open to everyone; private polls need a manager-role owner
// or the right password.
func (s *Service) CanView(poll *models.Poll, caller models.Identity, password string) bool {
	if !poll.IsPrivate {
		return true
	}
	if caller.IsManager() && caller.UserID != "" && caller.UserID == poll.OwnerID {
		return true
	}
	return auth.MatchPassword(password, poll.PasswordDigest, s.pepper)
}

func (s *Service) guard(poll *models.Poll, caller models.Identity, password string) error {
	if s.CanView(poll, caller, password) {
		return nil
	}
	if password == "" {
		return invalid("password is required")
	}
	return newError(ErrForbidden, "wrong password")
}

// ViewPoll returns the poll and its tally if the guard allows it
func (s *Service) ViewPoll(ctx context.Context, caller models.Identity, pollID, password string) (*PollView, error) {
	poll, err := s.getPoll(ctx, s.db, pollID)
	if err != nil {
		return nil, err
	}
	if err := s.guard(poll, caller, password); err != nil {
		return nil, err
	}
	result, err := s.tally(ctx, poll)
	if err != nil {
		return nil, err
	}
	return &PollView{Poll: poll, Result: result}, nil
}

// ViewResult returns only the tally, behind the same guard as ViewPoll
func (s *Service) ViewResult(ctx context.Context, caller models.Identity, pollID, password string) ([]int, error) {
	view, err := s.ViewPoll(ctx, caller, pollID, password)
	if err != nil {
		return nil, err
	}
	return view.Result, nil
}

// AdminViewPoll skips the guard. Callers must have checked for an admin.
func (s *Service) AdminViewPoll(ctx context.Context, pollID string) (*PollView, error) {
	poll, err := s.getPoll(ctx, s.db, pollID)
	if err != nil {
		return nil, err
	}
	result, err := s.tally(ctx, poll)
	if err != nil {
		return nil, err
	}
	return &PollView{Poll: poll, Result: result}, nil
}
