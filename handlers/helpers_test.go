// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/pollbooth/middleware"
	"github.com/danielhkuo/pollbooth/models"
	"github.com/danielhkuo/pollbooth/store"
	"github.com/danielhkuo/pollbooth/testutil"
	"github.com/danielhkuo/pollbooth/voting"
)

func setupService(t *testing.T) (*voting.Service, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return voting.NewService(db, store.NewSQLManager(), cfg.PasswordPepper), db
}

// as attaches an identity the way middleware.WithIdentity would
func as(req *http.Request, id models.Identity) *http.Request {
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), id))
}

func futureEnd() string {
	return time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
