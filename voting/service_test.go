// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollbooth/auth"
	"github.com/danielhkuo/pollbooth/dbx"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/store"
	"github.com/danielhkuo/pollbooth/testutil"
)

const testPepper = "test-pepper"

func newTestService(t *testing.T, opts ...Option) (*Service, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return NewService(conn, store.NewSQLManager(), testPepper, opts...), conn
}

func futureEnd() string {
	return time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
}

func validRequest() models.PollRequest {
	return models.PollRequest{
		Title:   "Lunch",
		Content: &models.PollContent{Description: "Where to?", Options: []string{"Pizza", "Sushi", "Tacos"}},
		EndAt:   futureEnd(),
	}
}

func TestErrorKinds(t *testing.T) {
	err := newError(ErrDuplicateVote, "you have already voted on this poll")
	assert.ErrorIs(t, err, ErrDuplicateVote)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "you have already voted on this poll", err.Error())

	var domainErr *Error
	assert.True(t, errors.As(fmt.Errorf("ctx: %w", err), &domainErr))
	assert.Equal(t, ErrDuplicateVote, domainErr.Kind)
	assert.False(t, errors.As(errors.New("connection reset"), &domainErr))
}

func TestRequireUser(t *testing.T) {
	assert.NoError(t, requireUser(testutil.Member("u1")))
	assert.ErrorIs(t, requireUser(models.Identity{}), ErrForbidden)
	assert.ErrorIs(t, requireUser(testutil.Admin("root")), ErrForbidden)
}

// blindManager hides existing ballots from the pre-check so inserts
// reach the storage constraint.
type blindManager struct {
	*store.SQLManager
}

type blindBallots struct {
	store.BallotRepository
}

func (blindBallots) ExistsFor(context.Context, string, string) (bool, error) {
	return false, nil
}

func (m blindManager) Ballots(db dbx.DBTX) store.BallotRepository {
	return blindBallots{m.SQLManager.Ballots(db)}
}

func TestCastBallot_ConstraintTranslatedToDuplicateVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := NewService(conn, blindManager{store.NewSQLManager()}, testPepper)
	poll := testutil.CreateTestPoll(t, conn, testutil.GetTestConfig(), "owner", "Race", "")

	ctx := context.Background()
	_, err := svc.CastBallot(ctx, testutil.Member("v1"), poll.ID, 0)
	require.NoError(t, err)

	_, err = svc.CastBallot(ctx, testutil.Member("v1"), poll.ID, 1)
	require.ErrorIs(t, err, ErrDuplicateVote)

	result, err := svc.Tally(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0}, result)
}

func TestDigestOnlyForSuppliedPasswords(t *testing.T) {
	svc := NewService(nil, nil, testPepper)
	assert.Empty(t, svc.digest(""))
	assert.Equal(t, auth.DigestPassword("pw", testPepper), svc.digest("pw"))
}
