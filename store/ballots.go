// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbooth/dbx"
	"github.com/danielhkuo/pollbooth/models"
)

type BallotStore struct {
	db dbx.DBTX
}

func NewBallotStore(db dbx.DBTX) *BallotStore {
	return &BallotStore{db: db}
}

// ExistsFor reports whether the voter already has a ballot on the poll
func (s *BallotStore) ExistsFor(ctx context.Context, voterID, pollID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM ballot
			WHERE poll_id = $1 AND voter_id = $2
		)
	`, pollID, voterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Get returns the voter's ballot on the poll or ErrNotFound
func (s *BallotStore) Get(ctx context.Context, voterID, pollID string) (*models.Ballot, error) {
	var b models.Ballot
	err := s.db.QueryRowContext(ctx, `
		SELECT id, poll_id, voter_id, option_index, cast_at
		FROM ballot
		WHERE poll_id = $1 AND voter_id = $2
	`, pollID, voterID).Scan(&b.ID, &b.PollID, &b.VoterID, &b.OptionIndex, &b.CastAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &b, nil
}

// Insert records a ballot. A second ballot for the same (poll, voter) pair
// fails with ErrDuplicate; a ballot for a missing poll fails with ErrNotFound.
func (s *BallotStore) Insert(ctx context.Context, ballot *models.Ballot) error {
	if ballot.ID == "" {
		ballot.ID = uuid.NewString()
	}
	ballot.CastAt = timestamp(ballot.CastAt)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ballot (id, poll_id, voter_id, option_index, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ballot.ID, ballot.PollID, ballot.VoterID, ballot.OptionIndex, ballot.CastAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicate
		case isForeignKeyViolation(err):
			return ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByPoll returns every ballot cast on the poll
func (s *BallotStore) FindByPoll(ctx context.Context, pollID string) ([]models.Ballot, error) {
	return s.find(ctx, `
		SELECT id, poll_id, voter_id, option_index, cast_at
		FROM ballot
		WHERE poll_id = $1
		ORDER BY cast_at, id
	`, pollID)
}

// DeleteByPoll removes the poll's ballots and returns how many were removed
func (s *BallotStore) DeleteByPoll(ctx context.Context, pollID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ballot WHERE poll_id = $1`, pollID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (s *BallotStore) find(ctx context.Context, query string, arg string) ([]models.Ballot, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ballots := []models.Ballot{}
	for rows.Next() {
		var b models.Ballot
		if err := rows.Scan(&b.ID, &b.PollID, &b.VoterID, &b.OptionIndex, &b.CastAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ballots, nil
}
