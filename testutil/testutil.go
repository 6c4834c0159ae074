// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/pollbooth/auth"
	"github.com/danielhkuo/pollbooth/cliparse"
	"github.com/danielhkuo/pollbooth/db"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/store"
)

var (
	dbSeq   atomic.Int64
	unsafeN = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// SetupTestDB opens a private in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("%s_%d", unsafeN.ReplaceAllString(t.Name(), "_"), dbSeq.Add(1))
	dsn := "file:" + name + "?mode=memory&cache=shared"

	ctx := context.Background()
	conn, err := db.Open(ctx, db.TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(ctx, conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file:test?mode=memory",
		DatabaseType:   cliparse.DatabaseSQLite,
		SessionSecret:  "test-session-secret",
		PasswordPepper: "test-pepper",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Member returns an ordinary user identity
func Member(id string) models.Identity {
	return models.Identity{UserID: id, Role: models.RoleMember}
}

// Manager returns a manager-role user identity
func Manager(id string) models.Identity {
	return models.Identity{UserID: id, Role: models.RoleManager}
}

// Admin returns an admin identity
func Admin(id string) models.Identity {
	return models.Identity{UserID: id, Admin: true}
}

// CreateTestPoll inserts an active poll owned by ownerID that ends in an hour.
// A non-empty password makes the poll private.
func CreateTestPoll(t *testing.T, conn *sql.DB, cfg cliparse.Config, ownerID, title, password string, options ...string) *models.Poll {
	t.Helper()

	if len(options) == 0 {
		options = []string{"A", "B", "C"}
	}

	now := time.Now().UTC()
	poll := &models.Poll{
		Title:     title,
		Content:   models.PollContent{Options: options},
		OwnerID:   ownerID,
		IsPrivate: password != "",
		IsActive:  true,
		EndAt:     now.Add(time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if password != "" {
		poll.PasswordDigest = auth.DigestPassword(password, cfg.PasswordPepper)
	}

	if err := store.NewPollStore(conn).Insert(context.Background(), poll); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll
}

// CastTestBallot records a ballot directly in the store
func CastTestBallot(t *testing.T, conn *sql.DB, pollID, voterID string, option int) *models.Ballot {
	t.Helper()

	ballot := &models.Ballot{
		PollID:      pollID,
		VoterID:     voterID,
		OptionIndex: option,
		CastAt:      time.Now().UTC(),
	}
	if err := store.NewBallotStore(conn).Insert(context.Background(), ballot); err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballot
}

// AuthHeader returns an Authorization header carrying a session token for id
func AuthHeader(t *testing.T, cfg cliparse.Config, id models.Identity) map[string]string {
	t.Helper()

	token, err := auth.IssueSessionToken(id, []byte(cfg.SessionSecret), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// DecodeEnvelope decodes the response envelope, unpacking its data into v
// when v is not nil.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, v interface{}) models.Envelope {
	t.Helper()

	var raw struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	AssertJSON(t, w, &raw)

	if v != nil {
		if len(raw.Data) == 0 {
			t.Fatalf("Envelope has no data. Message: %s", raw.Message)
		}
		if err := json.Unmarshal(raw.Data, v); err != nil {
			t.Fatalf("Failed to decode envelope data: %v", err)
		}
	}

	return models.Envelope{Status: raw.Status, Message: raw.Message}
}
