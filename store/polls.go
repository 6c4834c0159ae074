// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbooth/dbx"
	"github.com/danielhkuo/pollbooth/models"
)

const pollColumns = `id, title, content, owner_id, is_private, password_digest,
		       anonymous, is_active, end_at, created_at, updated_at`

type PollStore struct {
	db dbx.DBTX
}

func NewPollStore(db dbx.DBTX) *PollStore {
	return &PollStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*models.Poll, error) {
	var poll models.Poll
	var content string
	err := row.Scan(
		&poll.ID, &poll.Title, &content, &poll.OwnerID, &poll.IsPrivate, &poll.PasswordDigest,
		&poll.Anonymous, &poll.IsActive, &poll.EndAt, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(content), &poll.Content); err != nil {
		return nil, fmt.Errorf("decode content of poll %s: %w", poll.ID, err)
	}
	return &poll, nil
}

// Get returns the poll with the given id or ErrNotFound
func (s *PollStore) Get(ctx context.Context, id string) (*models.Poll, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+pollColumns+`
		FROM poll
		WHERE id = $1
	`, id)

	poll, err := scanPoll(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return poll, nil
}

// Insert persists a new poll. The id is assigned here when empty.
func (s *PollStore) Insert(ctx context.Context, poll *models.Poll) error {
	if poll.ID == "" {
		poll.ID = uuid.NewString()
	}
	poll.EndAt = timestamp(poll.EndAt)
	poll.CreatedAt = timestamp(poll.CreatedAt)
	poll.UpdatedAt = timestamp(poll.UpdatedAt)

	content, err := json.Marshal(poll.Content)
	if err != nil {
		return fmt.Errorf("encode poll content: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO poll (id, title, title_folded, content, owner_id, is_private, password_digest,
		                  anonymous, is_active, end_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, poll.ID, poll.Title, foldTitle(poll.Title), string(content), poll.OwnerID, poll.IsPrivate,
		poll.PasswordDigest, poll.Anonymous, poll.IsActive, poll.EndAt, poll.CreatedAt, poll.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of an existing poll.
// Content and owner are fixed at creation.
func (s *PollStore) Update(ctx context.Context, poll *models.Poll) error {
	poll.EndAt = timestamp(poll.EndAt)
	poll.UpdatedAt = timestamp(poll.UpdatedAt)

	res, err := s.db.ExecContext(ctx, `
		UPDATE poll
		SET title = $1, title_folded = $2, is_private = $3, password_digest = $4, anonymous = $5,
		    is_active = $6, end_at = $7, updated_at = $8
		WHERE id = $9
	`, poll.Title, foldTitle(poll.Title), poll.IsPrivate, poll.PasswordDigest, poll.Anonymous,
		poll.IsActive, poll.EndAt, poll.UpdatedAt, poll.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectRow(res)
}

// Delete removes a poll; ballots go with it via ON DELETE CASCADE
func (s *PollStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectRow(res)
}

// List returns polls matching the filter ordered by creation time
func (s *PollStore) List(ctx context.Context, f PollFilter) ([]models.Poll, error) {
	var b strings.Builder
	var args []any
	where := func(cond string, arg any) {
		args = append(args, arg)
		b.WriteString(" AND ")
		b.WriteString(fmt.Sprintf(cond, len(args)))
	}

	b.WriteString(`SELECT ` + pollColumns + ` FROM poll WHERE 1 = 1`)
	if f.OwnerID != "" {
		where("owner_id = $%d", f.OwnerID)
	}
	if f.VotedBy != "" {
		where("id IN (SELECT poll_id FROM ballot WHERE voter_id = $%d)", f.VotedBy)
	}
	if f.TitleContains != "" {
		where(`title_folded LIKE $%d ESCAPE '\'`, likePattern(f.TitleContains))
	}
	if f.EndAfter != nil {
		where("end_at > $%d", timestamp(*f.EndAfter))
	}
	if f.EndNotAfter != nil {
		where("end_at <= $%d", timestamp(*f.EndNotAfter))
	}
	b.WriteString(" ORDER BY created_at, id")
	if f.Page > 0 {
		args = append(args, models.PageSize, (f.Page-1)*models.PageSize)
		b.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		polls = append(polls, *poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return polls, nil
}

// foldTitle is the case-folded title the title filter matches against.
// Folding happens here rather than in SQL because sqlite LOWER only folds ASCII.
func foldTitle(title string) string {
	return strings.ToLower(title)
}

// likePattern builds a folded LIKE pattern matching s anywhere,
// with LIKE wildcards in s escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(foldTitle(s)) + "%"
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
