// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/testutil"
)

func TestParseOptionIndex(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"2", 2, false},
		{" 7 ", 7, false},
		{"-1", -1, false},
		{"", 0, true},
		{"null", 0, true},
		{"1.5", 0, true},
		{"1e2", 0, true},
		{`"1"`, 0, true},
		{"true", 0, true},
		{"[1]", 0, true},
		{"{}", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOptionIndex(json.RawMessage(tt.raw))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCastBallot_Scenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := validRequest()
	req.Content.Options = []string{"A", "B", "C"}
	poll, err := svc.CreatePoll(ctx, testutil.Member("owner"), req)
	require.NoError(t, err)

	result, err := svc.Tally(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, result)

	b, err := svc.CastBallot(ctx, testutil.Member("v1"), poll.ID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "v1", b.VoterID)

	_, err = svc.CastBallot(ctx, testutil.Member("v2"), poll.ID, 2)
	require.NoError(t, err)

	result, err = svc.Tally(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, result)

	_, err = svc.CastBallot(ctx, testutil.Member("v1"), poll.ID, 1)
	require.ErrorIs(t, err, ErrDuplicateVote)

	result, err = svc.Tally(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, result)
}

func TestCastBallot_Errors(t *testing.T) {
	svc, conn := newTestService(t)
	cfg := testutil.GetTestConfig()
	ctx := context.Background()

	poll := testutil.CreateTestPoll(t, conn, cfg, "owner", "Errors", "", "A", "B")
	testutil.CastTestBallot(t, conn, poll.ID, "already", 0)

	disabled := testutil.CreateTestPoll(t, conn, cfg, "owner", "Disabled", "", "A", "B")
	require.NoError(t, svc.SetActive(ctx, disabled.ID, false))

	tests := []struct {
		name    string
		caller  models.Identity
		pollID  string
		option  int
		wantErr error
	}{
		{"missing poll", testutil.Member("v"), "missing", 0, ErrNotFound},
		{"empty poll id", testutil.Member("v"), "", 0, ErrValidation},
		{"duplicate", testutil.Member("already"), poll.ID, 1, ErrDuplicateVote},
		{"duplicate wins over range", testutil.Member("already"), poll.ID, 9, ErrDuplicateVote},
		{"negative option", testutil.Member("v"), poll.ID, -1, ErrValidation},
		{"option equal to count", testutil.Member("v"), poll.ID, 2, ErrValidation},
		{"disabled poll", testutil.Member("v"), disabled.ID, 0, ErrState},
		{"admin", testutil.Admin("root"), poll.ID, 0, ErrForbidden},
		{"no identity", models.Identity{}, poll.ID, 0, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ballot, err := svc.CastBallot(ctx, tt.caller, tt.pollID, tt.option)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, ballot)
		})
	}

	result, err := svc.Tally(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, result)
}

func TestCastBallot_EndedPoll(t *testing.T) {
	svc, conn := newTestService(t)
	poll := testutil.CreateTestPoll(t, conn, testutil.GetTestConfig(), "owner", "Closing", "")

	later := NewService(conn, svc.repos, testPepper, WithClock(func() time.Time {
		return poll.EndAt
	}))

	_, err := later.CastBallot(context.Background(), testutil.Member("v"), poll.ID, 0)
	require.ErrorIs(t, err, ErrState)
}

func TestCastBallot_ConcurrentSameVoter(t *testing.T) {
	svc, conn := newTestService(t)
	poll := testutil.CreateTestPoll(t, conn, testutil.GetTestConfig(), "owner", "Race", "")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(option int) {
			defer wg.Done()
			_, err := svc.CastBallot(context.Background(), testutil.Member("racer"), poll.ID, option%3)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicateVote):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dup)

	result, err := svc.Tally(context.Background(), poll.ID)
	require.NoError(t, err)
	sum := 0
	for _, n := range result {
		sum += n
	}
	assert.Equal(t, 1, sum)
}

func TestMyBallot(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	poll := testutil.CreateTestPoll(t, conn, testutil.GetTestConfig(), "owner", "Mine", "")

	_, err := svc.MyBallot(ctx, testutil.Member("v"), poll.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.MyBallot(ctx, testutil.Member("v"), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	cast, err := svc.CastBallot(ctx, testutil.Member("v"), poll.ID, 2)
	require.NoError(t, err)

	got, err := svc.MyBallot(ctx, testutil.Member("v"), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, cast.ID, got.ID)
	assert.Equal(t, 2, got.OptionIndex)
}

func TestTally(t *testing.T) {
	svc, conn := newTestService(t)
	cfg := testutil.GetTestConfig()
	ctx := context.Background()

	t.Run("missing poll", func(t *testing.T) {
		_, err := svc.Tally(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("length and sum", func(t *testing.T) {
		poll := testutil.CreateTestPoll(t, conn, cfg, "owner", "Sum", "", "A", "B", "C", "D")
		votes := []int{0, 3, 3, 1, 3, 0, 2}
		for i, opt := range votes {
			testutil.CastTestBallot(t, conn, poll.ID, fmt.Sprintf("voter-%d", i), opt)
		}

		result, err := svc.Tally(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 1, 3}, result)
	})

	t.Run("out of range ballots skipped", func(t *testing.T) {
		poll := testutil.CreateTestPoll(t, conn, cfg, "owner", "Skew", "", "A", "B")
		testutil.CastTestBallot(t, conn, poll.ID, "ok", 1)
		testutil.CastTestBallot(t, conn, poll.ID, "stale", 5)

		result, err := svc.Tally(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, result)
	})
}
