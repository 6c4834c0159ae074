// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store implements poll and ballot persistence on database/sql.
// Repositories are bound to a dbx.DBTX so the same code runs on a plain
// connection or inside a transaction.
package store

import (
	"context"
	"time"

	"github.com/danielhkuo/pollbooth/dbx"
	"github.com/danielhkuo/pollbooth/models"
)

// PollFilter narrows a poll listing. Zero values mean "no constraint".
type PollFilter struct {
	OwnerID       string
	VotedBy       string
	TitleContains string     // case-insensitive substring
	EndAfter      *time.Time // end_at > t
	EndNotAfter   *time.Time // end_at <= t
	Page          int        // 1-indexed; <= 0 returns every match
}

type PollRepository interface {
	Get(ctx context.Context, id string) (*models.Poll, error)
	Insert(ctx context.Context, poll *models.Poll) error
	Update(ctx context.Context, poll *models.Poll) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PollFilter) ([]models.Poll, error)
}

type BallotRepository interface {
	ExistsFor(ctx context.Context, voterID, pollID string) (bool, error)
	Get(ctx context.Context, voterID, pollID string) (*models.Ballot, error)
	Insert(ctx context.Context, ballot *models.Ballot) error
	FindByPoll(ctx context.Context, pollID string) ([]models.Ballot, error)
	DeleteByPoll(ctx context.Context, pollID string) (int64, error)
}

// Manager vends repositories bound to a connection or transaction
type Manager interface {
	Polls(db dbx.DBTX) PollRepository
	Ballots(db dbx.DBTX) BallotRepository
}

// SQLManager is the database/sql backed Manager
type SQLManager struct{}

func NewSQLManager() *SQLManager {
	return &SQLManager{}
}

func (m *SQLManager) Polls(db dbx.DBTX) PollRepository {
	return NewPollStore(db)
}

func (m *SQLManager) Ballots(db dbx.DBTX) BallotRepository {
	return NewBallotStore(db)
}

// timestamp normalizes times before they are written: UTC at the
// microsecond precision every supported database keeps.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
