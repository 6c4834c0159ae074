// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollbooth/models"
)

// Tally counts the ballots of a poll per option. The result always has one
// entry per option and is computed fresh on every call.
func (s *Service) Tally(ctx context.Context, pollID string) ([]int, error) {
	poll, err := s.getPoll(ctx, s.db, pollID)
	if err != nil {
		return nil, err
	}
	return s.tally(ctx, poll)
}

func (s *Service) tally(ctx context.Context, poll *models.Poll) ([]int, error) {
	ballots, err := s.repos.Ballots(s.db).FindByPoll(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("load ballots: %w", err)
	}

	counts := make([]int, poll.OptionCount())
	for _, b := range ballots {
		if b.OptionIndex < 0 || b.OptionIndex >= len(counts) {
			slog.Warn("ballot option out of range", "poll_id", poll.ID, "ballot_id", b.ID, "option", b.OptionIndex)
			continue
		}
		counts[b.OptionIndex]++
	}
	return counts, nil
}
