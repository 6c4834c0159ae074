// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestSQLState(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		unique bool
		fk     bool
	}{
		{"nil", nil, false, false},
		{"plain", errors.New("boom"), false, false},
		{"pq unique", &pq.Error{Code: "23505"}, true, false},
		{"pq foreign key", &pq.Error{Code: "23503"}, false, true},
		{"pq other", &pq.Error{Code: "42P01"}, false, false},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true, false},
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, false, true},
		{"wrapped pgx unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueViolation(tt.err))
			assert.Equal(t, tt.fk, isForeignKeyViolation(tt.err))
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%lunch%", likePattern("Lunch"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_OFF"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
	assert.Equal(t, "%élection%", likePattern("ÉLECTION"))
}
