// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollbooth/dbx"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/store"
)

// ParseOptionIndex decodes the raw "option" value of a ballot request.
// It must be a JSON integer; strings, fractions and null are rejected.
func ParseOptionIndex(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, invalid("option is required")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, invalid("option must be an integer")
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, invalid("option must be an integer")
	}
	n, err := num.Int64()
	if err != nil {
		return 0, invalid("option must be an integer")
	}
	if int64(int(n)) != n {
		return 0, invalid("option is out of range")
	}
	return int(n), nil
}

// CastBallot records the caller's single ballot on a poll
func (s *Service) CastBallot(ctx context.Context, caller models.Identity, pollID string, option int) (*models.Ballot, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}

	var ballot *models.Ballot
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		poll, err := s.getPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}

		ballots := s.repos.Ballots(tx)
		voted, err := ballots.ExistsFor(ctx, caller.UserID, poll.ID)
		if err != nil {
			return fmt.Errorf("check ballot: %w", err)
		}
		if voted {
			return newError(ErrDuplicateVote, "you have already voted on this poll")
		}

		if option < 0 || option >= poll.OptionCount() {
			return invalid(fmt.Sprintf("option must be between 0 and %d", poll.OptionCount()-1))
		}

		now := s.clock()
		if !poll.IsActive {
			return newError(ErrState, "poll is disabled")
		}
		if poll.HasEnded(now) {
			return newError(ErrState, "poll has ended")
		}

		ballot = &models.Ballot{
			PollID:      poll.ID,
			VoterID:     caller.UserID,
			OptionIndex: option,
			CastAt:      now,
		}
		if err := ballots.Insert(ctx, ballot); err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicate):
				return newError(ErrDuplicateVote, "you have already voted on this poll")
			case errors.Is(err, store.ErrNotFound):
				return newError(ErrNotFound, "poll not found")
			}
			return fmt.Errorf("insert ballot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("ballot cast", "poll_id", ballot.PollID, "ballot_id", ballot.ID)
	return ballot, nil
}

// MyBallot returns the caller's ballot on a poll
func (s *Service) MyBallot(ctx context.Context, caller models.Identity, pollID string) (*models.Ballot, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if _, err := s.getPoll(ctx, s.db, pollID); err != nil {
		return nil, err
	}

	ballot, err := s.repos.Ballots(s.db).Get(ctx, caller.UserID, pollID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(ErrNotFound, "no ballot found for this poll")
		}
		return nil, fmt.Errorf("load ballot: %w", err)
	}
	return ballot, nil
}
